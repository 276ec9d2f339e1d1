package analytics

import (
	"fmt"

	"eventcli/internal/dataprocessing"
	"eventcli/pkg/contracts/domain"
)

// Funnel stage names, in order
const (
	StageRegistered      = "Registered"
	StageNotCancelled    = "Not Cancelled"
	StageAttended        = "Attended"
	StageSurveyCompleted = "Survey Completed"
)

// DefaultEngagedScore is the minimum engagement score of the Engaged stage
const DefaultEngagedScore = 6

// EngagedStageName labels the Engaged stage for a threshold
func EngagedStageName(threshold int) string {
	return fmt.Sprintf("Engaged (Score %d+)", threshold)
}

// FunnelStage is one step of the conversion funnel. Percent is relative to
// the registered total, not to the previous stage.
type FunnelStage struct {
	Name    string
	Count   int
	Percent float64
}

// ComputeFunnel builds the five-stage registration funnel. Engaged counts
// Attended rows scoring at least engagedScore; Survey Completed counts every
// row with a completed survey.
func ComputeFunnel(table *dataprocessing.Table, engagedScore int) []FunnelStage {
	var notCancelled, attended, engaged, surveyed int
	for _, r := range table.Rows() {
		if r.Status != domain.StatusCancelled {
			notCancelled++
		}
		if r.IsAttended() {
			attended++
			if r.EngagementScore >= engagedScore {
				engaged++
			}
		}
		if r.SurveyCompleted {
			surveyed++
		}
	}

	total := table.Len()
	stages := []FunnelStage{
		{Name: StageRegistered, Count: total},
		{Name: StageNotCancelled, Count: notCancelled},
		{Name: StageAttended, Count: attended},
		{Name: EngagedStageName(engagedScore), Count: engaged},
		{Name: StageSurveyCompleted, Count: surveyed},
	}
	for i := range stages {
		stages[i].Percent = percent(stages[i].Count, total)
	}
	return stages
}
