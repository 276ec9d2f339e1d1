// Package shared holds helpers used by tests across the event analytics
// packages.
//
// # Structure
//
// - testutil: registration fixtures and CSV helpers
//
// This package should only contain code with no domain logic of its own; the
// fixtures build rows through the public domain types.
package shared
