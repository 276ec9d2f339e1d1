package report

import (
	"strconv"

	"eventcli/internal/analytics"
)

// NotAvailable is how an undefined value is rendered
const NotAvailable = "n/a"

func pct(v float64) string {
	if !analytics.Defined(v) {
		return NotAvailable
	}
	return strconv.FormatFloat(v, 'f', 1, 64) + "%"
}

func money(v float64) string {
	if !analytics.Defined(v) {
		return NotAvailable
	}
	return "$" + strconv.FormatFloat(v, 'f', 2, 64)
}

func num(v float64, decimals int) string {
	if !analytics.Defined(v) {
		return NotAvailable
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

// thousands renders n with comma separators
func thousands(n int) string {
	if n < 0 {
		return "-" + thousands(-n)
	}
	s := strconv.Itoa(n)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return s
}
