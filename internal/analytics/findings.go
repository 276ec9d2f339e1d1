package analytics

// ChannelFinding names a channel selected by cost per attendee
type ChannelFinding struct {
	Found           bool
	Channel         string
	CostPerAttendee float64
}

// EventFinding names the event with the highest attendance rate
type EventFinding struct {
	Found          bool
	Event          string
	AttendanceRate float64
}

// TimingFinding compares the earliest and latest registration windows
type TimingFinding struct {
	Found     bool
	EarlyBin  string
	EarlyRate float64
	LateBin   string
	LateRate  float64
}

// EarlyAttendsMore reports whether early registrants attended at a higher rate
func (t TimingFinding) EarlyAttendsMore() bool {
	return t.Found && t.EarlyRate > t.LateRate
}

// Findings are the headline facts behind the narrative summary
type Findings struct {
	BestChannel  ChannelFinding
	WorstChannel ChannelFinding
	BestEvent    EventFinding
	Timing       TimingFinding

	HasAttendees   bool
	AttendanceRate float64
	NoShowRate     float64
	SurveyRate     float64
}

// ExtractFindings picks the best and worst ROI channels and the best event.
// Undefined values are skipped; on ties the first entry in the report's own
// order wins.
func ExtractFindings(kpis KPIs, events []GroupStats, channels ChannelReport, timing TimingReport) Findings {
	f := Findings{
		HasAttendees:   kpis.HasAttendees(),
		AttendanceRate: kpis.AttendanceRate,
		NoShowRate:     kpis.NoShowRate,
		SurveyRate:     kpis.SurveyRate,
	}

	for _, ch := range channels {
		if !Defined(ch.CostPerAttendee) {
			continue
		}
		if !f.BestChannel.Found || ch.CostPerAttendee < f.BestChannel.CostPerAttendee {
			f.BestChannel = ChannelFinding{Found: true, Channel: ch.Name, CostPerAttendee: ch.CostPerAttendee}
		}
		if !f.WorstChannel.Found || ch.CostPerAttendee > f.WorstChannel.CostPerAttendee {
			f.WorstChannel = ChannelFinding{Found: true, Channel: ch.Name, CostPerAttendee: ch.CostPerAttendee}
		}
	}

	for _, ev := range events {
		if !Defined(ev.AttendanceRate) {
			continue
		}
		if !f.BestEvent.Found || ev.AttendanceRate > f.BestEvent.AttendanceRate {
			f.BestEvent = EventFinding{Found: true, Event: ev.Name, AttendanceRate: ev.AttendanceRate}
		}
	}

	if n := len(timing.Bins); n > 1 {
		early, late := timing.Bins[n-1], timing.Bins[0]
		if Defined(early.AttendanceRate) && Defined(late.AttendanceRate) {
			f.Timing = TimingFinding{
				Found:     true,
				EarlyBin:  early.Label,
				EarlyRate: early.AttendanceRate,
				LateBin:   late.Label,
				LateRate:  late.AttendanceRate,
			}
		}
	}

	return f
}
