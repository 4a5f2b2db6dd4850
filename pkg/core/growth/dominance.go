package growth

import (
	"fmt"
	"math"

	errs "github.com/matzehuels/bigo/pkg/errors"
)

// Tolerance is the relative tolerance used when comparing rates and
// exponents.
const Tolerance = 1e-9

// Dominance is the outcome of [PickDominant].
type Dominance struct {
	Term   CanonicalTerm
	Index  int    // position of Term in the input slice
	Reason string // the criterion that decided dominance
}

// Compare orders two valid canonical terms by asymptotic growth. It returns
// a positive number when a grows faster than b, a negative number when b
// grows faster and 0 when both are in the same class. Coefficients are
// ignored.
func Compare(a, b CanonicalTerm) int {
	if c := cmpFloat(a.Rate(), b.Rate()); c != 0 {
		return c
	}
	if ae, be := a.Exponential != nil, b.Exponential != nil; ae != be {
		if ae {
			return 1
		}
		return -1
	}
	if c := cmpFloat(a.NExponent, b.NExponent); c != 0 {
		return c
	}
	return cmpFloat(a.LogExponent, b.LogExponent)
}

func cmpFloat(a, b float64) int {
	if a == b || math.Abs(a-b) <= Tolerance*math.Max(math.Abs(a), math.Abs(b)) {
		return 0
	}
	if a > b {
		return 1
	}
	return -1
}

// PickDominant returns the asymptotically largest valid term. Invalid terms
// are skipped. A later term replaces the current best only when it is
// strictly larger, so ties resolve to the earliest term.
func PickDominant(terms []CanonicalTerm) (Dominance, error) {
	best := -1
	for i, t := range terms {
		if !t.Valid {
			continue
		}
		if best < 0 || Compare(t, terms[best]) > 0 {
			best = i
		}
	}
	if best < 0 {
		return Dominance{}, errs.New(errs.ErrCodeUnsupportedShape, "no term has a supported shape")
	}

	d := Dominance{Term: terms[best], Index: best}
	if d.Term.Exponential != nil {
		d.Reason = fmt.Sprintf("exponential growth with effective base %s per n dominates polynomial and logarithmic terms",
			FormatNumber(d.Term.Rate()))
	} else {
		d.Reason = fmt.Sprintf("higher exponents dominate: n^%s then (log n)^%s",
			FormatNumber(d.Term.NExponent), FormatNumber(d.Term.LogExponent))
	}
	return d, nil
}
