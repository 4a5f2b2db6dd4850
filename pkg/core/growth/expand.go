package growth

import (
	"strings"

	"github.com/matzehuels/bigo/pkg/core/expr"
	errs "github.com/matzehuels/bigo/pkg/errors"
)

// DefaultTermLimit is the maximum number of additive terms an expression may
// expand to.
const DefaultTermLimit = 10

// Term is a multiplicative chain of factors.
type Term []expr.Node

// String joins the factors with '*'.
func (t Term) String() string {
	parts := make([]string, len(t))
	for i, f := range t {
		parts[i] = f.String()
	}
	return strings.Join(parts, "*")
}

// Expand flattens node into a sum of products. Sums concatenate the
// expansions of their operands; products take the cartesian product of
// theirs; every other node is a single one-factor term.
//
// A limit of zero or less means [DefaultTermLimit]. Partial expansions never
// shrink, so the limit is checked as soon as any partial result exceeds it.
func Expand(node expr.Node, limit int) ([]Term, error) {
	if limit <= 0 {
		limit = DefaultTermLimit
	}
	return expand(node, limit)
}

func expand(node expr.Node, limit int) ([]Term, error) {
	switch n := node.(type) {
	case expr.Add:
		left, err := expand(n.Left, limit)
		if err != nil {
			return nil, err
		}
		right, err := expand(n.Right, limit)
		if err != nil {
			return nil, err
		}
		if len(left)+len(right) > limit {
			return nil, tooManyTerms(len(left)+len(right), limit)
		}
		return append(left, right...), nil

	case expr.Multiply:
		left, err := expand(n.Left, limit)
		if err != nil {
			return nil, err
		}
		right, err := expand(n.Right, limit)
		if err != nil {
			return nil, err
		}
		if len(left)*len(right) > limit {
			return nil, tooManyTerms(len(left)*len(right), limit)
		}
		out := make([]Term, 0, len(left)*len(right))
		for _, l := range left {
			for _, r := range right {
				t := make(Term, 0, len(l)+len(r))
				t = append(t, l...)
				out = append(out, append(t, r...))
			}
		}
		return out, nil
	}
	return []Term{{node}}, nil
}

func tooManyTerms(n, limit int) error {
	return errs.New(errs.ErrCodeTooManyTerms, "expression expands to at least %d terms (limit %d)", n, limit)
}
