package charts

import (
	"fmt"
	"math"
	"strconv"

	"eventcli/internal/analytics"
)

// Chart file names, in dashboard order
const (
	AttendanceByEventFile   = "01_attendance_rate_by_event.png"
	ChannelPerformanceFile  = "02_channel_performance.png"
	CostPerAttendeeFile     = "03_cost_per_attendee.png"
	ConversionFunnelFile    = "04_conversion_funnel.png"
	RegistrationTimingFile  = "05_registration_timing.png"
	AttendeesByIndustryFile = "06_attendees_by_industry.png"
)

// Chart is one rendered PNG
type Chart struct {
	File string
	PNG  []byte
}

// Renderer draws report charts with a fixed style
type Renderer struct {
	style Style
	fonts *fonts
}

// NewRenderer parses the fonts and validates the style
func NewRenderer(style Style) (*Renderer, error) {
	if style.Width <= 0 || style.Height <= 0 || style.FontSize <= 0 {
		return nil, fmt.Errorf("invalid chart style %dx%d font %.1f", style.Width, style.Height, style.FontSize)
	}
	if len(style.Palette.FunnelRamp) == 0 {
		style.Palette.FunnelRamp = DefaultPalette().FunnelRamp
	}
	f, err := loadFonts()
	if err != nil {
		return nil, err
	}
	return &Renderer{style: style, fonts: f}, nil
}

// RenderAll draws the six dashboard charts
func (r *Renderer) RenderAll(report *analytics.Report) ([]Chart, error) {
	steps := []struct {
		file string
		draw func() ([]byte, error)
	}{
		{AttendanceByEventFile, func() ([]byte, error) { return r.AttendanceByEvent(report.Events) }},
		{ChannelPerformanceFile, func() ([]byte, error) { return r.ChannelPerformance(report.Channels) }},
		{CostPerAttendeeFile, func() ([]byte, error) { return r.CostPerAttendee(report.Channels) }},
		{ConversionFunnelFile, func() ([]byte, error) { return r.ConversionFunnel(report.Funnel) }},
		{RegistrationTimingFile, func() ([]byte, error) { return r.RegistrationTiming(report.Timing) }},
		{AttendeesByIndustryFile, func() ([]byte, error) { return r.AttendeesByIndustry(report.Demographics.Industries) }},
	}

	charts := make([]Chart, 0, len(steps))
	for _, step := range steps {
		png, err := step.draw()
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", step.file, err)
		}
		charts = append(charts, Chart{File: step.file, PNG: png})
	}
	return charts, nil
}

// AttendanceByEvent draws attendance rate per event on a 0-100 scale
func (r *Renderer) AttendanceByEvent(events []analytics.GroupStats) ([]byte, error) {
	bars := make([]bar, len(events))
	for i, e := range events {
		bars[i] = bar{
			Label: e.Name,
			Value: e.AttendanceRate,
			Color: r.style.AttendanceColor(e.AttendanceRate),
			Text:  formatPercent(e.AttendanceRate),
		}
	}

	c := r.newCanvas("Attendance Rate by Event")
	c.horizontalBars(bars, 100, formatWhole, "Attendance Rate (%)")
	return c.png()
}

// ChannelPerformance draws registrations per channel as bars with the
// attendance rate as a line on a secondary 0-100 axis
func (r *Renderer) ChannelPerformance(channels analytics.ChannelReport) ([]byte, error) {
	p := r.style.Palette
	bars := make([]bar, len(channels))
	top := 0.0
	for i, ch := range channels {
		bars[i] = bar{Label: ch.Name, Value: float64(ch.Registrations), Color: p.Blue, Text: strconv.Itoa(ch.Registrations)}
		top = math.Max(top, float64(ch.Registrations))
	}

	c := r.newCanvas("Channel Performance: Volume vs Quality")
	c.right -= r.style.FontSize * 3
	c.verticalBars(bars, niceMax(top*1.1), formatWhole, "Registrations", "")

	// secondary axis
	for _, v := range ticks(100) {
		y := c.bottom - v/100*c.plotHeight()
		c.label(c.small, p.Line, formatWhole(v), c.right+r.style.FontSize*0.4, y, 0, 0.5)
	}

	band := c.plotWidth() / math.Max(1, float64(len(channels)))
	var prevX, prevY float64
	havePrev := false
	for i, ch := range channels {
		if !analytics.Defined(ch.AttendanceRate) {
			havePrev = false
			continue
		}
		x := c.left + band*(float64(i)+0.5)
		y := c.bottom - ch.AttendanceRate/100*c.plotHeight()
		if havePrev {
			c.line(p.Line, 3, prevX, prevY, x, y)
		}
		c.dc.SetHexColor(p.Line)
		c.dc.DrawCircle(x, y, r.style.FontSize*0.35)
		c.dc.Fill()
		prevX, prevY, havePrev = x, y, true
	}

	r.legend(c, []legendEntry{{"Registrations", p.Blue}, {"Attendance Rate (%)", p.Line}})
	return c.png()
}

// CostPerAttendee draws cost per attendee per channel, cheapest first
func (r *Renderer) CostPerAttendee(channels analytics.ChannelReport) ([]byte, error) {
	sorted := channels.ByCostPerAttendee()
	bars := make([]bar, len(sorted))
	top := 0.0
	for i, ch := range sorted {
		bars[i] = bar{
			Label: ch.Name,
			Value: ch.CostPerAttendee,
			Color: r.style.CostColor(ch.CostPerAttendee),
			Text:  formatMoney(ch.CostPerAttendee),
		}
		if analytics.Defined(ch.CostPerAttendee) {
			top = math.Max(top, ch.CostPerAttendee)
		}
	}

	c := r.newCanvas("Cost per Attendee by Channel (Lower = Better ROI)")
	c.horizontalBars(bars, niceMax(top*1.1), formatWhole, "Cost per Attendee ($)")
	return c.png()
}

// ConversionFunnel draws each stage as a percent of registrations
func (r *Renderer) ConversionFunnel(stages []analytics.FunnelStage) ([]byte, error) {
	ramp := r.style.Palette.FunnelRamp
	bars := make([]bar, len(stages))
	for i, s := range stages {
		bars[i] = bar{
			Label: s.Name,
			Value: s.Percent,
			Color: ramp[min(i, len(ramp)-1)],
			Text:  fmt.Sprintf("%s (%s)", formatThousands(s.Count), formatPercent(s.Percent)),
		}
	}

	c := r.newCanvas("Registration-to-Engagement Conversion Funnel")
	c.horizontalBars(bars, 100, formatWhole, "% of Total Registrations")
	return c.png()
}

// RegistrationTiming draws the attendance rate of each lead-time window
func (r *Renderer) RegistrationTiming(timing analytics.TimingReport) ([]byte, error) {
	colors := r.style.TimingColors()
	bars := make([]bar, len(timing.Bins))
	for i, b := range timing.Bins {
		bars[i] = bar{
			Label: b.Label,
			Value: b.AttendanceRate,
			Color: colors[i%len(colors)],
			Text:  formatPercent(b.AttendanceRate),
		}
	}

	c := r.newCanvas("Earlier Registrations = Higher Attendance")
	c.verticalBars(bars, 100, formatWhole, "Attendance Rate (%)", "Registration Window (Days Before Event)")
	return c.png()
}

// AttendeesByIndustry draws attendee counts per industry
func (r *Renderer) AttendeesByIndustry(industries []analytics.IndustryStats) ([]byte, error) {
	bars := make([]bar, len(industries))
	top := 0.0
	for i, ind := range industries {
		bars[i] = bar{Label: ind.Industry, Value: float64(ind.Attended), Color: r.style.Palette.Blue, Text: strconv.Itoa(ind.Attended)}
		top = math.Max(top, float64(ind.Attended))
	}

	c := r.newCanvas("Attendees by Industry")
	c.verticalBars(bars, niceMax(top*1.1), formatWhole, "Attendees", "")
	return c.png()
}

type legendEntry struct {
	label string
	color string
}

func (r *Renderer) legend(c *canvas, entries []legendEntry) {
	fs := r.style.FontSize
	labels := make([]string, len(entries))
	for i, e := range entries {
		labels[i] = e.label
	}
	w := c.measure(c.small, labels...) + fs*2.2
	x := c.right - w - fs*0.5
	y := c.top + fs*0.5

	c.rect(r.style.Palette.Background, x, y, w, fs*1.4*float64(len(entries))+fs*0.4)
	for i, e := range entries {
		ey := y + fs*0.9 + fs*1.4*float64(i)
		c.rect(e.color, x+fs*0.4, ey-fs*0.35, fs*0.9, fs*0.7)
		c.label(c.small, r.style.Palette.Text, e.label, x+fs*1.6, ey, 0, 0.5)
	}
}

func formatWhole(v float64) string {
	return strconv.FormatFloat(v, 'f', 0, 64)
}

func formatPercent(v float64) string {
	if !analytics.Defined(v) {
		return "n/a"
	}
	return strconv.FormatFloat(v, 'f', 1, 64) + "%"
}

func formatMoney(v float64) string {
	if !analytics.Defined(v) {
		return "n/a"
	}
	return "$" + strconv.FormatFloat(v, 'f', 2, 64)
}

// formatThousands renders n with comma separators
func formatThousands(n int) string {
	if n < 0 {
		return "-" + formatThousands(-n)
	}
	s := strconv.Itoa(n)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return s
}
