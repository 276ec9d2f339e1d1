// Package analytics derives the marketing-funnel reports from a registrations
// table: KPIs, per-event and per-channel statistics, the conversion funnel,
// registration timing, demographics and the headline findings.
//
// Every report is a pure function of the table. A ratio whose denominator is
// zero is NaN; use Defined to test for it. Renderers show it as "n/a".
//
// Analyzer.Run computes all reports, optionally in parallel, wrapping each in
// an OpenTelemetry span.
package analytics
