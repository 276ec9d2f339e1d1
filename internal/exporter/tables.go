package exporter

import (
	"strconv"

	"eventcli/internal/analytics"
	"eventcli/internal/config"
)

// NotAvailable is written in place of an undefined value
const NotAvailable = "n/a"

// ReportTable is one report flattened to rows. Cells hold string, int or
// float64; a NaN float is undefined.
type ReportTable struct {
	File   string
	Sheet  string
	Header []string
	Rows   [][]any
}

// Records formats the rows for CSV output
func (t ReportTable) Records() [][]string {
	out := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		rec := make([]string, len(row))
		for j, cell := range row {
			rec[j] = formatCell(cell)
		}
		out[i] = rec
	}
	return out
}

func formatCell(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case float64:
		if !analytics.Defined(x) {
			return NotAvailable
		}
		return strconv.FormatFloat(x, 'f', 2, 64)
	default:
		return ""
	}
}

// ReportTables flattens every report, in file order
func ReportTables(r *analytics.Report) []ReportTable {
	return []ReportTable{
		kpiTable(r.KPIs),
		eventTable(r.Events),
		channelTable(r.Channels),
		funnelTable(r.Funnel),
		timingTable(r.Timing),
		jobTitleTable(r.Demographics.JobTitles),
		industryTable(r.Demographics.Industries),
	}
}

func kpiTable(k analytics.KPIs) ReportTable {
	return ReportTable{
		File:   config.KPIFile,
		Sheet:  "KPIs",
		Header: []string{"metric", "value"},
		Rows: [][]any{
			{"total_registrations", k.Total},
			{"attended", k.Attended},
			{"no_shows", k.NoShows},
			{"cancelled", k.Cancelled},
			{"attendance_rate", k.AttendanceRate},
			{"no_show_rate", k.NoShowRate},
			{"cancellation_rate", k.CancellationRate},
			{"avg_engagement", k.AvgEngagement},
			{"survey_completed", k.SurveyCompleted},
			{"survey_rate", k.SurveyRate},
			{"avg_cost", k.AvgCost},
			{"total_cost", k.TotalCost},
			{"cost_per_attendee", k.CostPerAttendee},
		},
	}
}

func eventTable(events []analytics.GroupStats) ReportTable {
	t := ReportTable{
		File:  config.EventsFile,
		Sheet: "Events",
		Header: []string{"event_name", "registrations", "attended", "no_shows", "avg_engagement",
			"total_cost", "attendance_rate", "no_show_rate", "cost_per_attendee"},
	}
	for _, e := range events {
		t.Rows = append(t.Rows, []any{e.Name, e.Registrations, e.Attended, e.NoShows, e.AvgEngagement,
			e.TotalCost, e.AttendanceRate, e.NoShowRate, e.CostPerAttendee})
	}
	return t
}

func channelTable(channels analytics.ChannelReport) ReportTable {
	t := ReportTable{
		File:  config.ChannelsFile,
		Sheet: "Channels",
		Header: []string{"channel_source", "registrations", "reg_share", "attended", "avg_engagement",
			"avg_cost", "total_cost", "attendance_rate", "cost_per_attendee"},
	}
	for _, c := range channels {
		t.Rows = append(t.Rows, []any{c.Name, c.Registrations, c.Share, c.Attended, c.AvgEngagement,
			c.AvgCost, c.TotalCost, c.AttendanceRate, c.CostPerAttendee})
	}
	return t
}

func funnelTable(stages []analytics.FunnelStage) ReportTable {
	t := ReportTable{
		File:   config.FunnelFile,
		Sheet:  "Funnel",
		Header: []string{"stage", "count", "percent_of_total"},
	}
	for _, s := range stages {
		t.Rows = append(t.Rows, []any{s.Name, s.Count, s.Percent})
	}
	return t
}

func timingTable(timing analytics.TimingReport) ReportTable {
	t := ReportTable{
		File:   config.TimingFile,
		Sheet:  "Timing",
		Header: []string{"timing_window", "registrations", "attended", "attendance_rate"},
	}
	for _, b := range timing.Bins {
		t.Rows = append(t.Rows, []any{b.Label, b.Registrations, b.Attended, b.AttendanceRate})
	}
	return t
}

func jobTitleTable(titles []analytics.JobTitleStats) ReportTable {
	t := ReportTable{
		File:   config.JobTitlesFile,
		Sheet:  "Job Titles",
		Header: []string{"job_title", "attendees", "avg_engagement"},
	}
	for _, jt := range titles {
		t.Rows = append(t.Rows, []any{jt.Title, jt.Attendees, jt.AvgEngagement})
	}
	return t
}

func industryTable(industries []analytics.IndustryStats) ReportTable {
	t := ReportTable{
		File:   config.IndustryFile,
		Sheet:  "Industries",
		Header: []string{"industry", "registrations", "attended", "attendance_rate"},
	}
	for _, ind := range industries {
		t.Rows = append(t.Rows, []any{ind.Industry, ind.Registrations, ind.Attended, ind.AttendanceRate})
	}
	return t
}
