// Package dataprocessing loads the event registrations table.
//
// The loader reads a CSV with the sixteen registration columns, locates
// columns by header name and parses every row into a domain.Registration.
// Schema problems (missing columns, unparseable dates, unknown status values)
// are reported as SCHEMA errors carrying the offending column and line.
//
// # Usage
//
//	table, err := dataprocessing.LoadFile("data/event_registrations.csv", logger)
//	if err != nil {
//	    return err
//	}
//	attended := table.Filter(domain.Registration.IsAttended)
//
// A Table is read-only after loading; Rows and Filter return copies.
package dataprocessing
