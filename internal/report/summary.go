package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"eventcli/internal/analytics"
)

const rule = "============================================================"

// Header describes the dataset behind a report
type Header struct {
	Rows      int
	Events    int
	FirstDate time.Time
	LastDate  time.Time
	HasDates  bool
}

// Summary renders the console summary of an analytics report
type Summary struct {
	Header Header
	Report *analytics.Report
}

// String renders the summary
func (s Summary) String() string {
	var b strings.Builder
	_ = s.Write(&b)
	return b.String()
}

// Write renders the summary to w
func (s Summary) Write(w io.Writer) error {
	p := &printer{w: w}
	r := s.Report

	p.line(rule)
	p.line("EVENT REGISTRATION & ATTENDANCE ANALYTICS")
	p.line(rule)
	p.f("\nDataset: %s registrations across %d events\n", thousands(s.Header.Rows), s.Header.Events)
	if s.Header.HasDates {
		p.f("Date range: %s to %s\n", s.Header.FirstDate.Format("2006-01-02"), s.Header.LastDate.Format("2006-01-02"))
	}

	p.section("1. KEY PERFORMANCE INDICATORS")
	k := r.KPIs
	p.f("\nTotal Registrations:     %s\n", thousands(k.Total))
	p.f("Total Attended:          %s\n", thousands(k.Attended))
	p.f("Attendance Rate:         %s\n", pct(k.AttendanceRate))
	p.f("No-Show Rate:            %s\n", pct(k.NoShowRate))
	p.f("Cancellation Rate:       %s\n", pct(k.CancellationRate))
	if k.HasAttendees() {
		p.f("Avg Engagement Score:    %s / 10\n", num(k.AvgEngagement, 1))
		p.f("Survey Completion Rate:  %s\n", pct(k.SurveyRate))
	} else {
		p.line("Avg Engagement Score:    n/a (no attendees)")
		p.line("Survey Completion Rate:  n/a (no attendees)")
	}
	p.f("Avg Cost per Reg:        %s\n", money(k.AvgCost))
	p.f("Cost per Attendee:       %s\n", money(k.CostPerAttendee))

	p.section("2. EVENT PERFORMANCE COMPARISON")
	p.table(
		[]string{"Event", "Registrations", "Attended", "Attendance", "No-Show", "Cost/Attendee"},
		eventRows(r.Events))

	p.section("3. CHANNEL ATTRIBUTION ANALYSIS")
	p.table(
		[]string{"Channel", "Registrations", "Share", "Attendance", "Avg Cost", "Cost/Attendee"},
		channelRows(r.Channels))

	p.section("4. CONVERSION FUNNEL")
	p.f("\n%-30s %8s %10s\n", "Stage", "Count", "Rate")
	p.line(strings.Repeat("-", 50))
	for _, st := range r.Funnel {
		p.f("%-30s %8s %10s\n", st.Name, thousands(st.Count), pct(st.Percent))
	}

	p.section("5. REGISTRATION TIMING ANALYSIS")
	p.f("\n%-20s %15s %18s\n", "Registration Window", "Registrations", "Attendance Rate")
	p.line(strings.Repeat("-", 55))
	for _, bin := range r.Timing.Bins {
		p.f("%-20s %15s %18s\n", bin.Label, thousands(bin.Registrations), pct(bin.AttendanceRate))
	}
	if r.Timing.Excluded > 0 {
		p.f("(%d registrations outside every window)\n", r.Timing.Excluded)
	}
	p.f("\nLead time (days)   %6s %6s %6s %6s %6s %6s\n", "mean", "p25", "p50", "p75", "p90", "max")
	p.leadTime("All registrations", r.Timing.All)
	p.leadTime("Attendees", r.Timing.Attended)

	p.section("6. ATTENDEE DEMOGRAPHICS")
	p.line("\nTop Job Titles (Attended):")
	p.table([]string{"Job Title", "Attendees", "Avg Engagement"}, jobTitleRows(r.Demographics.JobTitles))
	p.f("\n%-20s %15s %10s %10s\n", "Industry", "Registrations", "Attended", "Rate")
	p.line(strings.Repeat("-", 58))
	for _, ind := range r.Demographics.Industries {
		p.f("%-20s %15d %10d %10s\n", ind.Industry, ind.Registrations, ind.Attended, pct(ind.AttendanceRate))
	}

	p.section("7. KEY FINDINGS & RECOMMENDATIONS")
	p.line("")
	p.line(Narrative(r.Findings))

	p.line(rule)
	p.line("Analysis complete.")
	p.line(rule)
	return p.err
}

func eventRows(events []analytics.GroupStats) [][]string {
	rows := make([][]string, len(events))
	for i, e := range events {
		rows[i] = []string{e.Name, strconv.Itoa(e.Registrations), strconv.Itoa(e.Attended),
			pct(e.AttendanceRate), pct(e.NoShowRate), money(e.CostPerAttendee)}
	}
	return rows
}

func channelRows(channels analytics.ChannelReport) [][]string {
	rows := make([][]string, len(channels))
	for i, c := range channels {
		rows[i] = []string{c.Name, strconv.Itoa(c.Registrations), pct(c.Share),
			pct(c.AttendanceRate), money(c.AvgCost), money(c.CostPerAttendee)}
	}
	return rows
}

func jobTitleRows(titles []analytics.JobTitleStats) [][]string {
	rows := make([][]string, len(titles))
	for i, jt := range titles {
		rows[i] = []string{jt.Title, strconv.Itoa(jt.Attendees), num(jt.AvgEngagement, 1)}
	}
	return rows
}

// printer remembers the first write error so rendering code stays linear
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) f(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) line(s string) {
	p.f("%s\n", s)
}

func (p *printer) section(title string) {
	p.f("\n%s\n%s\n%s\n", rule, title, rule)
}

func (p *printer) leadTime(label string, d analytics.LeadTimeDistribution) {
	p.f("%-18s %6s %6s %6s %6s %6s %6s\n", label,
		num(d.Mean, 1), num(d.P25, 0), num(d.P50, 0), num(d.P75, 0), num(d.P90, 0), num(d.Max, 0))
}

// table prints a left-aligned first column and right-aligned value columns
func (p *printer) table(header []string, rows [][]string) {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], len(cell))
		}
	}

	write := func(cells []string) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			if i == 0 {
				parts[i] = fmt.Sprintf("%-*s", widths[i], cell)
			} else {
				parts[i] = fmt.Sprintf("%*s", widths[i], cell)
			}
		}
		p.line(strings.TrimRight(strings.Join(parts, "  "), " "))
	}

	p.line("")
	write(header)
	total := 2 * (len(widths) - 1)
	for _, w := range widths {
		total += w
	}
	p.line(strings.Repeat("-", total))
	for _, row := range rows {
		write(row)
	}
}
