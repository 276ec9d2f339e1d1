// Package app runs the two batch jobs end to end.
//
// # Generator
//
// RunGenerator loads the catalog, draws the synthetic registrations and
// writes them atomically to the configured input file.
//
// # Analyzer
//
// RunAnalyzer loads the registrations, computes every report and writes the
// artifacts: console summary, charts, report CSVs, the XLSX workbook and,
// when enabled, a Prometheus textfile and a trace dump.
//
// Artifacts are rendered into a staging directory next to the output
// directory and only moved into place once all of them have been written.
// On failure the staging directory is removed and the output directory is
// left as it was.
//
// # Error Handling
//
// Errors are returned to the caller. The app does not call os.Exit()
// directly, allowing the main function to control the exit process.
package app
