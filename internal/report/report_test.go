package report

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventcli/internal/analytics"
	"eventcli/internal/dataprocessing"
	"eventcli/internal/shared/testutil"
	"eventcli/pkg/contracts/domain"
)

func summaryFor(t *testing.T, rows []domain.Registration) Summary {
	t.Helper()
	table := dataprocessing.NewTable(rows)
	an, err := analytics.NewAnalyzer(analytics.Options{}, nil)
	require.NoError(t, err)
	r, err := an.Run(t.Context(), table)
	require.NoError(t, err)

	first, last, ok := table.DateRange()
	return Summary{
		Header: Header{Rows: table.Len(), Events: table.EventCount(), FirstDate: first, LastDate: last, HasDates: ok},
		Report: r,
	}
}

func TestSummary_Example(t *testing.T) {
	out := summaryFor(t, testutil.ExampleRows()).String()

	for _, want := range []string{
		"Dataset: 4 registrations across 1 events",
		"Date range: 2024-02-24 to 2024-02-24",
		"1. KEY PERFORMANCE INDICATORS",
		"Attendance Rate:         50.0%",
		"No-Show Rate:            25.0%",
		"Cancellation Rate:       25.0%",
		"Avg Engagement Score:    7.0 / 10",
		"2. EVENT PERFORMANCE COMPARISON",
		"3. CHANNEL ATTRIBUTION ANALYSIS",
		"4. CONVERSION FUNNEL",
		"Engaged (Score 6+)",
		"5. REGISTRATION TIMING ANALYSIS",
		"15-30 days",
		"6. ATTENDEE DEMOGRAPHICS",
		"7. KEY FINDINGS & RECOMMENDATIONS",
		"Best ROI channel: Email Campaign ($10.00/attendee)",
		"Highest attendance event: Tech Summit 2024 (50.0%)",
	} {
		assert.Contains(t, out, want)
	}
}

func TestSummary_AllCancelled(t *testing.T) {
	out := summaryFor(t, []domain.Registration{
		testutil.Registration(1, domain.StatusCancelled),
		testutil.Registration(2, domain.StatusCancelled),
		testutil.Registration(3, domain.StatusCancelled),
	}).String()

	assert.Contains(t, out, "Cancellation Rate:       100.0%")
	assert.Contains(t, out, "Avg Engagement Score:    n/a (no attendees)")
	assert.Contains(t, out, "Cost per Attendee:       n/a")
	assert.Contains(t, out, "No registrant attended")
	assert.NotContains(t, out, "NaN")
	assert.NotContains(t, out, "Best ROI channel")
}

func TestSummary_Empty(t *testing.T) {
	out := summaryFor(t, nil).String()
	assert.Contains(t, out, "Dataset: 0 registrations across 0 events")
	assert.NotContains(t, out, "Date range")
	assert.NotContains(t, out, "NaN")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestSummary_WriteError(t *testing.T) {
	s := summaryFor(t, testutil.ExampleRows())
	assert.EqualError(t, s.Write(failingWriter{}), "disk full")
}

func TestNarrative(t *testing.T) {
	f := analytics.Findings{
		BestChannel:    analytics.ChannelFinding{Found: true, Channel: "Referral", CostPerAttendee: 1.87},
		WorstChannel:   analytics.ChannelFinding{Found: true, Channel: "LinkedIn Ad", CostPerAttendee: 46.5},
		BestEvent:      analytics.EventFinding{Found: true, Event: "Tech Summit 2024", AttendanceRate: 70.2},
		Timing:         analytics.TimingFinding{Found: true, EarlyBin: "31-60 days", EarlyRate: 71, LateBin: "1-7 days", LateRate: 60},
		HasAttendees:   true,
		AttendanceRate: 66.4,
		NoShowRate:     28.6,
		SurveyRate:     44.9,
	}
	out := Narrative(f)

	assert.True(t, strings.HasPrefix(out, "FINDINGS:\n1. Overall attendance rate is 66.4% with a 28.6% no-show rate\n"))
	assert.Contains(t, out, "2. Best ROI channel: Referral ($1.87/attendee)")
	assert.Contains(t, out, "3. Most expensive channel: LinkedIn Ad ($46.50/attendee)")
	assert.Contains(t, out, "Early registrants (31-60 days out) attend at 71.0% vs 60.0% for 1-7 days out")
	assert.Contains(t, out, "Only 44.9% of attendees completed post-event surveys")
	assert.Contains(t, out, "RECOMMENDATIONS:\n1. Increase budget allocation to Referral")
	assert.Contains(t, out, "2. Reduce spend on LinkedIn Ad")
	assert.Contains(t, out, "improve the 44.9% response rate")
}

func TestNarrative_NothingFound(t *testing.T) {
	out := Narrative(analytics.Findings{AttendanceRate: math.NaN(), NoShowRate: math.NaN(), SurveyRate: math.NaN()})
	assert.Equal(t, "FINDINGS:\n1. No registrant attended; engagement and survey figures are not available\n"+
		"\nRECOMMENDATIONS:\n1. Send reminder campaigns to registrants in the final 7 days to reduce no-shows\n"+
		"2. Focus early-bird promotions 30+ days before events to lock in higher attendance\n", out)
}

func TestThousands(t *testing.T) {
	assert.Equal(t, "2,180", thousands(2180))
	assert.Equal(t, "0", thousands(0))
	assert.Equal(t, "-12,000", thousands(-12000))
}

func TestHeaderDates(t *testing.T) {
	h := Header{Rows: 1, Events: 1, FirstDate: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), LastDate: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), HasDates: true}
	out := Summary{Header: h, Report: &analytics.Report{}}.String()
	assert.Contains(t, out, "Date range: 2024-01-02 to 2024-03-04")
}
