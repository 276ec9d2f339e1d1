package analytics

import (
	"cmp"
	"math"
	"slices"

	"eventcli/internal/dataprocessing"
	"eventcli/pkg/contracts/domain"
)

// GroupStats aggregates the registrations sharing one key (event or channel)
type GroupStats struct {
	Name            string
	Registrations   int
	Attended        int
	NoShows         int
	AvgEngagement   float64 // over the group's Attended rows
	TotalCost       float64
	AttendanceRate  float64
	NoShowRate      float64
	CostPerAttendee float64
}

// ChannelStats extends GroupStats with spend and volume share
type ChannelStats struct {
	GroupStats
	AvgCost float64 // mean cost per registration
	Share   float64 // percent of all registrations
}

// ChannelReport lists channels by registrations, highest first
type ChannelReport []ChannelStats

// ByCostPerAttendee returns a copy ordered by cost per attendee ascending,
// undefined values last
func (c ChannelReport) ByCostPerAttendee() ChannelReport {
	out := slices.Clone(c)
	slices.SortStableFunc(out, func(a, b ChannelStats) int {
		return compareDefinedFirst(a.CostPerAttendee, b.CostPerAttendee)
	})
	return out
}

// compareDefinedFirst orders ascending with NaN after every defined value
func compareDefinedFirst(a, b float64) int {
	switch an, bn := math.IsNaN(a), math.IsNaN(b); {
	case an && bn:
		return 0
	case an:
		return 1
	case bn:
		return -1
	}
	return cmp.Compare(a, b)
}

type groupAccumulator struct {
	GroupStats
	engagementSum float64
}

func (g *groupAccumulator) add(r domain.Registration) {
	g.Registrations++
	g.TotalCost += r.AcquisitionCost
	switch r.Status {
	case domain.StatusAttended:
		g.Attended++
		g.engagementSum += float64(r.EngagementScore)
	case domain.StatusNoShow:
		g.NoShows++
	}
}

func (g *groupAccumulator) finish() GroupStats {
	s := g.GroupStats
	s.AvgEngagement = mean(g.engagementSum, s.Attended)
	s.AttendanceRate = percent(s.Attended, s.Registrations)
	s.NoShowRate = percent(s.NoShows, s.Registrations)
	s.CostPerAttendee = ratio(s.TotalCost, float64(s.Attended))
	return s
}

// groupBy aggregates rows by key; the result is in no particular order
func groupBy(rows []domain.Registration, key func(domain.Registration) string) []GroupStats {
	groups := make(map[string]*groupAccumulator)
	for _, r := range rows {
		k := key(r)
		acc, ok := groups[k]
		if !ok {
			acc = &groupAccumulator{GroupStats: GroupStats{Name: k}}
			groups[k] = acc
		}
		acc.add(r)
	}

	out := make([]GroupStats, 0, len(groups))
	for _, acc := range groups {
		out = append(out, acc.finish())
	}
	return out
}

// ComputeEventStats compares events, ordered by event name
func ComputeEventStats(table *dataprocessing.Table) []GroupStats {
	stats := groupBy(table.Rows(), func(r domain.Registration) string { return r.EventName })
	slices.SortFunc(stats, func(a, b GroupStats) int { return cmp.Compare(a.Name, b.Name) })
	return stats
}

// ComputeChannelStats attributes registrations to channels, ordered by
// registrations descending with ties broken by name
func ComputeChannelStats(table *dataprocessing.Table) ChannelReport {
	groups := groupBy(table.Rows(), func(r domain.Registration) string { return r.Channel })

	report := make(ChannelReport, 0, len(groups))
	for _, g := range groups {
		report = append(report, ChannelStats{
			GroupStats: g,
			AvgCost:    mean(g.TotalCost, g.Registrations),
			Share:      percent(g.Registrations, table.Len()),
		})
	}
	slices.SortFunc(report, func(a, b ChannelStats) int {
		if c := cmp.Compare(b.Registrations, a.Registrations); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return report
}
