// Package growth classifies the asymptotic growth of an expression tree.
//
// # Overview
//
// Classification runs in three steps:
//
//  1. [Expand] distributes multiplication over addition, turning the tree
//     into a sum of [Term] values (multiplicative chains of factors).
//  2. [Simplify] folds each term into a [CanonicalTerm]: a coefficient, a
//     power of n, a power of log n and at most one [Exponential].
//  3. [PickDominant] selects the asymptotically largest valid term under
//     the order implemented by [Compare].
//
// [CanonicalTerm.String] and [CanonicalTerm.BigO] render the results.
//
// # Canonical Terms
//
// A canonical term stands for
//
//	Coefficient * (Base^NMultiplier)^n * n^NExponent * (log n)^LogExponent
//
// Several exponential factors in one term are merged by [MergeExponential]
// into a single one whose base is the product of the per-n rates.
//
// Shapes that cannot be reduced, such as n^n or an exponential with a
// non-positive base, produce a term with Valid set to false and a Reason.
// Invalid terms are rendered as "Unsupported term" and never take part in
// dominance.
//
// # Dominance
//
// Terms are ordered by effective exponential rate, then by whether an
// exponential is present at all, then by the power of n and finally by the
// power of log n. Coefficients are ignored, as Big-O discards constant
// factors. Floating point ties use a relative tolerance of 1e-9.
//
// # Limits
//
// Expansion is capped at [DefaultTermLimit] terms; exceeding the cap is a
// TooManyTerms error from package errors.
package growth
