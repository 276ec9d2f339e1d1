// Package generator produces a synthetic event registrations table.
//
// A Catalog names the events, acquisition channels and demographic
// vocabularies; Params hold the probabilities. Generation is deterministic
// for a given seed: one PCG source drives every draw, in a fixed order per
// row (channel, lead time, cancellation, attendance, sessions, demographics,
// engagement, survey, cost).
//
//	gen, err := generator.New(generator.DefaultCatalog(), generator.DefaultParams(), logger)
//	rows, err := gen.Generate(ctx)
//	fmt.Print(generator.Summarize(rows))
package generator
