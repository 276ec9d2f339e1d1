package dataprocessing

import (
	"slices"
	"time"

	"eventcli/pkg/contracts/domain"
)

// Table is a loaded registrations table. It is read-only: accessors hand out
// copies, so no analysis step can mutate the rows another step sees.
type Table struct {
	rows []domain.Registration
}

// NewTable wraps rows in a Table, copying the slice
func NewTable(rows []domain.Registration) *Table {
	return &Table{rows: slices.Clone(rows)}
}

// Len returns the number of registrations
func (t *Table) Len() int {
	return len(t.rows)
}

// Rows returns a copy of all registrations in file order
func (t *Table) Rows() []domain.Registration {
	return slices.Clone(t.rows)
}

// Filter returns the registrations matching keep, in file order
func (t *Table) Filter(keep func(domain.Registration) bool) []domain.Registration {
	var out []domain.Registration
	for _, r := range t.rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// EventCount returns the number of distinct event names
func (t *Table) EventCount() int {
	seen := make(map[string]struct{})
	for _, r := range t.rows {
		seen[r.EventName] = struct{}{}
	}
	return len(seen)
}

// DateRange returns the earliest and latest registration dates; ok is false
// for an empty table.
func (t *Table) DateRange() (first, last time.Time, ok bool) {
	if len(t.rows) == 0 {
		return time.Time{}, time.Time{}, false
	}
	first, last = t.rows[0].RegistrationDate, t.rows[0].RegistrationDate
	for _, r := range t.rows[1:] {
		if r.RegistrationDate.Before(first) {
			first = r.RegistrationDate
		}
		if r.RegistrationDate.After(last) {
			last = r.RegistrationDate
		}
	}
	return first, last, true
}
