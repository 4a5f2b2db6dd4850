package growth

import (
	"fmt"
	"math"

	"github.com/matzehuels/bigo/pkg/core/expr"
)

// Simplify folds the factors of term left to right into a canonical term.
// Folding stops at the first factor with an unsupported shape and the
// result is invalid.
func Simplify(term Term) CanonicalTerm {
	acc := Unit()
	for _, f := range term {
		acc.fold(f)
		if !acc.Valid {
			break
		}
	}
	return acc
}

// SimplifyNode simplifies a single factor.
func SimplifyNode(n expr.Node) CanonicalTerm {
	return Simplify(Term{n})
}

func (c *CanonicalTerm) invalidate(format string, args ...any) {
	*c = Invalid(fmt.Sprintf(format, args...))
}

// scaleCoefficient multiplies the coefficient by v, invalidating the term
// when the product is not a finite number.
func (c *CanonicalTerm) scaleCoefficient(v float64, what expr.Node) {
	p := c.Coefficient * v
	if !finite(p) {
		c.invalidate("non-finite coefficient from %s", what)
		return
	}
	c.Coefficient = p
}

// mul multiplies another canonical term into c.
func (c *CanonicalTerm) mul(o CanonicalTerm, what expr.Node) {
	c.scaleCoefficient(o.Coefficient, what)
	if !c.Valid {
		return
	}
	c.NExponent += o.NExponent
	c.LogExponent += o.LogExponent
	c.mergeExponential(o.Exponential, what)
}

func (c *CanonicalTerm) mergeExponential(e *Exponential, what expr.Node) {
	m := MergeExponential(c.Exponential, e)
	if m != nil && !(finite(m.Base) && finite(m.NMultiplier)) {
		c.invalidate("exponential rate of %s overflows", what)
		return
	}
	c.Exponential = m
}

func (c *CanonicalTerm) fold(n expr.Node) {
	switch f := n.(type) {
	case expr.Number:
		c.scaleCoefficient(f.Value, f)
	case expr.Variable:
		c.NExponent++
	case expr.Multiply:
		c.fold(f.Left)
		if c.Valid {
			c.fold(f.Right)
		}
	case expr.Add:
		c.foldSum(f)
	case expr.Power:
		c.foldPower(f)
	case expr.Log:
		c.foldLog(f)
	default:
		c.invalidate("unknown factor %v", n)
	}
}

// foldSum multiplies in the dominant term of a nested sum. Sums only reach
// the simplifier inside power bases and exponents.
func (c *CanonicalTerm) foldSum(sum expr.Add) {
	if v, ok := expr.Constant(sum); ok {
		c.scaleCoefficient(v, sum)
		return
	}
	terms, err := Expand(sum, DefaultTermLimit)
	if err != nil {
		c.invalidate("sum %s is too large", expr.Render(sum))
		return
	}
	simplified := make([]CanonicalTerm, len(terms))
	for i, t := range terms {
		simplified[i] = Simplify(t)
	}
	d, err := PickDominant(simplified)
	if err != nil {
		c.invalidate("no supported term in %s", expr.Render(sum))
		return
	}
	c.mul(d.Term, sum)
}

func (c *CanonicalTerm) foldPower(p expr.Power) {
	k, constExp := expr.Constant(p.Exponent)

	if _, constBase := expr.Constant(p.Base); constBase && constExp {
		v, ok := expr.Constant(p)
		if !ok {
			c.invalidate("%s is not a finite number", p)
			return
		}
		c.scaleCoefficient(v, p)
		return
	}

	if _, ok := p.Base.(expr.Variable); ok && constExp {
		c.NExponent += k
		return
	}

	if base, ok := expr.Constant(p.Base); ok {
		c.foldExponential(p, base)
		return
	}

	if constExp {
		sub := SimplifyNode(p.Base)
		if !sub.Valid {
			*c = sub
			return
		}
		scaled := CanonicalTerm{
			Coefficient: math.Pow(sub.Coefficient, k),
			NExponent:   sub.NExponent * k,
			LogExponent: sub.LogExponent * k,
			Valid:       true,
		}
		if !finite(scaled.Coefficient) {
			c.invalidate("non-finite coefficient from %s", p)
			return
		}
		if e := sub.Exponential; e != nil {
			scaled.Exponential = &Exponential{Base: e.Base, NMultiplier: e.NMultiplier * k}
		}
		c.mul(scaled, p)
		return
	}

	c.invalidate("unsupported power %s", p)
}

// foldExponential handles base^(k*n) with a constant base. The exponent
// must reduce to a single power of n with no log or exponential part.
func (c *CanonicalTerm) foldExponential(p expr.Power, base float64) {
	if base <= 0 {
		c.invalidate("exponential base %s is not positive", FormatNumber(base))
		return
	}
	e := SimplifyNode(p.Exponent)
	if !e.Valid || e.NExponent != 1 || e.LogExponent != 0 || e.Exponential != nil {
		c.invalidate("unsupported power %s", p)
		return
	}
	c.mergeExponential(&Exponential{Base: base, NMultiplier: e.Coefficient}, p)
}

func (c *CanonicalTerm) foldLog(l expr.Log) {
	if !(l.Base > 0) || l.Base == 1 || math.IsInf(l.Base, 0) {
		c.invalidate("invalid logarithm base %s", l.BaseName)
		return
	}
	lnBase := math.Log(l.Base)

	if v, ok := expr.Constant(l.Arg); ok {
		c.scaleCoefficient(math.Log(v)/lnBase, l)
		return
	}

	switch arg := l.Arg.(type) {
	case expr.Variable:
		c.LogExponent++
		return

	case expr.Power:
		if _, ok := arg.Base.(expr.Variable); ok {
			if k, ok := expr.Constant(arg.Exponent); ok {
				c.scaleCoefficient(k, l)
				if c.Valid {
					c.LogExponent++
				}
				return
			}
		}
		if a, ok := expr.Constant(arg.Base); ok {
			c.scaleCoefficient(math.Log(a)/lnBase, l)
			if c.Valid {
				c.fold(arg.Exponent)
			}
			return
		}
	}

	// Any other argument counts as one power of log n.
	c.LogExponent++
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
