// Package exporter writes analytics artifacts: the registrations CSV, one CSV
// per report, an XLSX workbook with a sheet per report and Prometheus gauges
// for the headline values.
//
// CSV files are written to a temporary file and renamed into place.
//
// Example usage:
//
//	tables := exporter.ReportTables(report)
//	w := exporter.NewCSVWriter(outputDir, logger)
//	for _, t := range tables {
//	    if err := w.WriteTable(t); err != nil {
//	        return err
//	    }
//	}
//	err := exporter.WriteWorkbook(filepath.Join(outputDir, "event_analytics.xlsx"), tables, logger)
package exporter
