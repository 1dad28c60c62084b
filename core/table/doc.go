// Package table provides the in-memory tabular model the matcher works on.
//
// A Table is an ordered list of typed columns (Text or Number) and rows of
// nullable values. It is deliberately small: just enough to load delimited
// files, run key-based operations (dedup, drop-null, equi-join support) and
// write results back out.
//
// # Nulls
//
// Empty cells and the usual "not available" markers (NaN, NA, null, ...) are
// decoded as null. Key operations treat two nulls as equal, the way the
// upstream spreadsheet tooling does; callers that must not match on missing
// data drop null keys first.
//
// # Sources
//
// A Source yields a table as a finite, single-pass sequence of batches. Every
// call to Batches starts a new pass, so the same Source can be consumed by
// several tiers:
//
//	src := table.Chunked(report, 50_000)
//	for batch, err := range src.Batches() {
//	    ...
//	}
package table
