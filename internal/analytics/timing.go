package analytics

import (
	"math"

	"github.com/HdrHistogram/hdrhistogram-go"

	"eventcli/internal/dataprocessing"
	"eventcli/pkg/contracts/domain"
)

// TimingBin is one lead-time window, covering days in (Low, High]
type TimingBin struct {
	Label          string
	Low            int
	High           int
	Registrations  int
	Attended       int
	AttendanceRate float64
}

// LeadTimeDistribution summarizes days before event over binned rows
type LeadTimeDistribution struct {
	Count int
	Mean  float64
	P25   float64
	P50   float64
	P75   float64
	P90   float64
	Max   float64
}

// TimingReport relates lead time to attendance
type TimingReport struct {
	Bins     []TimingBin
	Excluded int // rows outside every bin
	All      LeadTimeDistribution
	Attended LeadTimeDistribution
}

// Bin edges in days before the event. Bins are left-open, right-closed.
var timingEdges = []struct {
	label string
	high  int
}{
	{"1-7 days", 7},
	{"8-14 days", 14},
	{"15-30 days", 30},
	{"31-60 days", 60},
}

const maxTrackedLeadDays = 3650

// BinFor returns the index of the bin holding days, or -1 when days is not
// positive or beyond the last edge
func BinFor(days int) int {
	if days <= 0 {
		return -1
	}
	for i, e := range timingEdges {
		if days <= e.high {
			return i
		}
	}
	return -1
}

// ComputeTiming bins registrations by days before event. Bins are always
// present, in edge order, even when empty.
func ComputeTiming(table *dataprocessing.Table) (TimingReport, error) {
	report := TimingReport{Bins: make([]TimingBin, len(timingEdges))}
	low := 0
	for i, e := range timingEdges {
		report.Bins[i] = TimingBin{Label: e.label, Low: low, High: e.high}
		low = e.high
	}

	all := hdrhistogram.New(1, maxTrackedLeadDays, 3)
	attended := hdrhistogram.New(1, maxTrackedLeadDays, 3)

	for _, r := range table.Rows() {
		days := r.DaysBeforeEvent()
		idx := BinFor(days)
		if idx < 0 {
			report.Excluded++
			continue
		}

		bin := &report.Bins[idx]
		bin.Registrations++
		if err := all.RecordValue(int64(days)); err != nil {
			return TimingReport{}, err
		}
		if r.Status == domain.StatusAttended {
			bin.Attended++
			if err := attended.RecordValue(int64(days)); err != nil {
				return TimingReport{}, err
			}
		}
	}

	for i := range report.Bins {
		report.Bins[i].AttendanceRate = percent(report.Bins[i].Attended, report.Bins[i].Registrations)
	}
	report.All = distribution(all)
	report.Attended = distribution(attended)
	return report, nil
}

func distribution(h *hdrhistogram.Histogram) LeadTimeDistribution {
	if h.TotalCount() == 0 {
		nan := math.NaN()
		return LeadTimeDistribution{Mean: nan, P25: nan, P50: nan, P75: nan, P90: nan, Max: nan}
	}
	return LeadTimeDistribution{
		Count: int(h.TotalCount()),
		Mean:  h.Mean(),
		P25:   float64(h.ValueAtQuantile(25)),
		P50:   float64(h.ValueAtQuantile(50)),
		P75:   float64(h.ValueAtQuantile(75)),
		P90:   float64(h.ValueAtQuantile(90)),
		Max:   float64(h.Max()),
	}
}
