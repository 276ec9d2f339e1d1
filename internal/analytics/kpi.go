package analytics

import (
	"eventcli/internal/dataprocessing"
	"eventcli/pkg/contracts/domain"
)

// KPIs is the headline summary of a registrations table. Rates are percents of
// Total, except SurveyRate which is a percent of Attended.
type KPIs struct {
	Total            int
	Attended         int
	NoShows          int
	Cancelled        int
	AttendanceRate   float64
	NoShowRate       float64
	CancellationRate float64
	AvgEngagement    float64
	SurveyCompleted  int
	SurveyRate       float64
	AvgCost          float64
	TotalCost        float64
	CostPerAttendee  float64
}

// HasAttendees is false when nobody attended, in which case AvgEngagement,
// SurveyRate and CostPerAttendee are undefined.
func (k KPIs) HasAttendees() bool {
	return k.Attended > 0
}

// ComputeKPIs builds the KPI summary
func ComputeKPIs(table *dataprocessing.Table) KPIs {
	var (
		k             KPIs
		engagementSum float64
	)

	for _, r := range table.Rows() {
		k.Total++
		k.TotalCost += r.AcquisitionCost
		if r.SurveyCompleted {
			k.SurveyCompleted++
		}

		switch r.Status {
		case domain.StatusAttended:
			k.Attended++
			engagementSum += float64(r.EngagementScore)
		case domain.StatusNoShow:
			k.NoShows++
		case domain.StatusCancelled:
			k.Cancelled++
		}
	}

	k.AttendanceRate = percent(k.Attended, k.Total)
	k.NoShowRate = percent(k.NoShows, k.Total)
	k.CancellationRate = percent(k.Cancelled, k.Total)
	k.AvgEngagement = mean(engagementSum, k.Attended)
	k.SurveyRate = percent(k.SurveyCompleted, k.Attended)
	k.AvgCost = mean(k.TotalCost, k.Total)
	k.CostPerAttendee = ratio(k.TotalCost, float64(k.Attended))
	return k
}
