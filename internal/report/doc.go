// Package report renders the plain-text analytics summary printed to the
// console and saved as summary.txt.
package report
