package analytics

import "math"

// ratio divides num by den; a zero denominator yields NaN, the undefined value
// every report uses for rates and per-attendee figures with no base.
func ratio(num, den float64) float64 {
	if den == 0 {
		return math.NaN()
	}
	return num / den
}

// percent is count/total*100, undefined for an empty total
func percent(count, total int) float64 {
	return ratio(float64(count), float64(total)) * 100
}

// Defined reports whether v holds a value, i.e. is not the NaN marker
func Defined(v float64) bool {
	return !math.IsNaN(v)
}

// mean is the arithmetic mean, undefined for an empty set
func mean(sum float64, n int) float64 {
	return ratio(sum, float64(n))
}
