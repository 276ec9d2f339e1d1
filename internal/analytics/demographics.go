package analytics

import (
	"cmp"
	"slices"

	"eventcli/internal/dataprocessing"
	"eventcli/pkg/contracts/domain"
)

// DefaultTopJobTitles is how many job titles the demographics report keeps
const DefaultTopJobTitles = 8

// JobTitleStats counts attendees holding one job title
type JobTitleStats struct {
	Title         string
	Attendees     int
	AvgEngagement float64
}

// IndustryStats is the attendance of one industry over all registrations
type IndustryStats struct {
	Industry       string
	Registrations  int
	Attended       int
	AttendanceRate float64
}

// Demographics profiles who registers and who shows up
type Demographics struct {
	JobTitles  []JobTitleStats
	Industries []IndustryStats
}

// ComputeDemographics keeps the top job titles among attendees (count
// descending, ties by title) and every industry ordered by attendees
// descending (ties by name)
func ComputeDemographics(table *dataprocessing.Table, topJobTitles int) Demographics {
	return Demographics{
		JobTitles:  topTitles(table.Filter(domain.Registration.IsAttended), topJobTitles),
		Industries: industries(table.Rows()),
	}
}

func topTitles(attended []domain.Registration, limit int) []JobTitleStats {
	type acc struct {
		count int
		sum   float64
	}
	byTitle := make(map[string]*acc)
	for _, r := range attended {
		a, ok := byTitle[r.JobTitle]
		if !ok {
			a = &acc{}
			byTitle[r.JobTitle] = a
		}
		a.count++
		a.sum += float64(r.EngagementScore)
	}

	out := make([]JobTitleStats, 0, len(byTitle))
	for title, a := range byTitle {
		out = append(out, JobTitleStats{Title: title, Attendees: a.count, AvgEngagement: mean(a.sum, a.count)})
	}
	slices.SortFunc(out, func(a, b JobTitleStats) int {
		if c := cmp.Compare(b.Attendees, a.Attendees); c != 0 {
			return c
		}
		return cmp.Compare(a.Title, b.Title)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func industries(rows []domain.Registration) []IndustryStats {
	byIndustry := make(map[string]*IndustryStats)
	for _, r := range rows {
		s, ok := byIndustry[r.Industry]
		if !ok {
			s = &IndustryStats{Industry: r.Industry}
			byIndustry[r.Industry] = s
		}
		s.Registrations++
		if r.IsAttended() {
			s.Attended++
		}
	}

	out := make([]IndustryStats, 0, len(byIndustry))
	for _, s := range byIndustry {
		s.AttendanceRate = percent(s.Attended, s.Registrations)
		out = append(out, *s)
	}
	slices.SortFunc(out, func(a, b IndustryStats) int {
		if c := cmp.Compare(b.Attended, a.Attended); c != 0 {
			return c
		}
		return cmp.Compare(a.Industry, b.Industry)
	})
	return out
}
