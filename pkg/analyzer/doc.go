// Package analyzer is the entry point to bigo's complexity classification.
//
// [Analyze] runs the whole pipeline on a raw expression:
//
//	normalize -> tokenize -> parse -> expand -> simplify -> pick dominant -> format
//
// and returns a [Result] holding the derivation trace, the simplified terms,
// the dominant term and the Big-O class:
//
//	r := analyzer.Analyze("t(n) = 3n^2 + 5n*log(n) + 2^n")
//	fmt.Println(r.BigO) // O(2^n)
//
// Failures never escape as panics or Go errors: a failed analysis is a
// Result with OK set to false, a message in Error and a machine-readable
// Code from package errors. Results are deterministic functions of the input.
//
// [NormalizePreview] exposes only the first stage, for live previews while
// the user is typing.
package analyzer
