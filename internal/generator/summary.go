package generator

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"eventcli/pkg/contracts/domain"
)

// ValueCount is one distinct value and how often it occurs
type ValueCount struct {
	Value string
	Count int
}

// Summary holds the value counts printed after a generator run
type Summary struct {
	Total    int
	Events   []ValueCount
	Statuses []ValueCount
	Channels []ValueCount
}

// Summarize counts rows per event, status and channel, most frequent first
func Summarize(rows []domain.Registration) Summary {
	return Summary{
		Total:    len(rows),
		Events:   valueCounts(rows, func(r domain.Registration) string { return r.EventName }),
		Statuses: valueCounts(rows, func(r domain.Registration) string { return string(r.Status) }),
		Channels: valueCounts(rows, func(r domain.Registration) string { return r.Channel }),
	}
}

func valueCounts(rows []domain.Registration, key func(domain.Registration) string) []ValueCount {
	counts := make(map[string]int)
	for _, r := range rows {
		counts[key(r)]++
	}

	out := make([]ValueCount, 0, len(counts))
	for v, n := range counts {
		out = append(out, ValueCount{Value: v, Count: n})
	}
	slices.SortFunc(out, func(a, b ValueCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Value, b.Value)
	})
	return out
}

// String renders the summary for the console
func (s Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dataset created: %d registrations\n", s.Total)
	writeCounts(&b, "Events", s.Events)
	writeCounts(&b, "Attendance Status", s.Statuses)
	writeCounts(&b, "Channels", s.Channels)
	return b.String()
}

func writeCounts(b *strings.Builder, title string, counts []ValueCount) {
	width := 0
	for _, c := range counts {
		width = max(width, len(c.Value))
	}
	fmt.Fprintf(b, "\n%s:\n", title)
	for _, c := range counts {
		fmt.Fprintf(b, "  %-*s %6d\n", width, c.Value, c.Count)
	}
}
