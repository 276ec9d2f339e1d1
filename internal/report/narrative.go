package report

import (
	"fmt"
	"strings"

	"eventcli/internal/analytics"
)

// Narrative turns findings into the numbered findings and recommendations
// text. Items whose underlying value is undefined are left out.
func Narrative(f analytics.Findings) string {
	var findings, recs []string

	if analytics.Defined(f.AttendanceRate) {
		findings = append(findings, fmt.Sprintf("Overall attendance rate is %s with a %s no-show rate",
			pct(f.AttendanceRate), pct(f.NoShowRate)))
	}
	if f.BestChannel.Found {
		findings = append(findings, fmt.Sprintf("Best ROI channel: %s (%s/attendee)",
			f.BestChannel.Channel, money(f.BestChannel.CostPerAttendee)))
		recs = append(recs, fmt.Sprintf("Increase budget allocation to %s - lowest cost per attendee",
			f.BestChannel.Channel))
	}
	if f.WorstChannel.Found && f.WorstChannel.Channel != f.BestChannel.Channel {
		findings = append(findings, fmt.Sprintf("Most expensive channel: %s (%s/attendee)",
			f.WorstChannel.Channel, money(f.WorstChannel.CostPerAttendee)))
		recs = append(recs, fmt.Sprintf("Reduce spend on %s or improve targeting to increase conversion",
			f.WorstChannel.Channel))
	}
	if f.BestEvent.Found {
		findings = append(findings, fmt.Sprintf("Highest attendance event: %s (%s)",
			f.BestEvent.Event, pct(f.BestEvent.AttendanceRate)))
	}
	if f.Timing.Found {
		if f.Timing.EarlyAttendsMore() {
			findings = append(findings, fmt.Sprintf("Early registrants (%s out) attend at %s vs %s for %s out",
				f.Timing.EarlyBin, pct(f.Timing.EarlyRate), pct(f.Timing.LateRate), f.Timing.LateBin))
		} else {
			findings = append(findings, fmt.Sprintf("Early registrants (%s out) attend no better than late ones (%s vs %s)",
				f.Timing.EarlyBin, pct(f.Timing.EarlyRate), pct(f.Timing.LateRate)))
		}
	}
	if f.HasAttendees {
		findings = append(findings, fmt.Sprintf("Only %s of attendees completed post-event surveys", pct(f.SurveyRate)))
	} else {
		findings = append(findings, "No registrant attended; engagement and survey figures are not available")
	}

	recs = append(recs, "Send reminder campaigns to registrants in the final 7 days to reduce no-shows")
	if f.HasAttendees {
		recs = append(recs, fmt.Sprintf("Incentivize post-event survey completion to improve the %s response rate",
			pct(f.SurveyRate)))
	}
	recs = append(recs, "Focus early-bird promotions 30+ days before events to lock in higher attendance")

	var b strings.Builder
	b.WriteString("FINDINGS:\n")
	numbered(&b, findings)
	b.WriteString("\nRECOMMENDATIONS:\n")
	numbered(&b, recs)
	return b.String()
}

func numbered(b *strings.Builder, items []string) {
	for i, item := range items {
		fmt.Fprintf(b, "%d. %s\n", i+1, item)
	}
}
