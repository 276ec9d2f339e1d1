package charts

import "eventcli/internal/config"

// Palette holds the hex colors used by the charts
type Palette struct {
	Background string
	Text       string
	Grid       string
	Axis       string

	Blue       string
	Orange     string
	Green      string
	Red        string
	Line       string
	FunnelRamp []string // one color per funnel stage, top to bottom
}

// Style is the presentation configuration for one render call
type Style struct {
	Width    int
	Height   int
	FontSize float64
	Palette  Palette

	// Band thresholds for bar colors
	GoodAttendanceRate float64 // percent; at or above is Blue
	CheapCost          float64 // cost per attendee below is Green
	ModerateCost       float64 // below is Orange, otherwise Red
}

// DefaultPalette is the Material-style palette of the dashboards
func DefaultPalette() Palette {
	return Palette{
		Background: "#FFFFFF",
		Text:       "#212121",
		Grid:       "#E0E0E0",
		Axis:       "#9E9E9E",
		Blue:       "#2196F3",
		Orange:     "#FF9800",
		Green:      "#4CAF50",
		Red:        "#F44336",
		Line:       "#FF5722",
		FunnelRamp: []string{"#2196F3", "#42A5F5", "#66BB6A", "#FFA726", "#EF5350"},
	}
}

// DefaultStyle returns the style used when no configuration is given
func DefaultStyle() Style {
	return StyleFromConfig(config.Default().Charts)
}

// StyleFromConfig builds a style from chart configuration
func StyleFromConfig(cfg config.ChartsConfig) Style {
	return Style{
		Width:              cfg.Width,
		Height:             cfg.Height,
		FontSize:           cfg.FontSize,
		Palette:            DefaultPalette(),
		GoodAttendanceRate: 65,
		CheapCost:          15,
		ModerateCost:       30,
	}
}

// AttendanceColor colors an attendance-rate bar
func (s Style) AttendanceColor(rate float64) string {
	if rate >= s.GoodAttendanceRate {
		return s.Palette.Blue
	}
	return s.Palette.Orange
}

// CostColor colors a cost-per-attendee bar
func (s Style) CostColor(cost float64) string {
	switch {
	case cost < s.CheapCost:
		return s.Palette.Green
	case cost < s.ModerateCost:
		return s.Palette.Orange
	default:
		return s.Palette.Red
	}
}

// TimingColors colors the timing bins from latest to earliest registration
func (s Style) TimingColors() []string {
	return []string{s.Palette.Red, s.Palette.Orange, s.Palette.Green, s.Palette.Blue}
}
