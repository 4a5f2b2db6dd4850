package growth

import (
	"math"
	"strings"

	"github.com/matzehuels/bigo/pkg/core/expr"
)

// UnsupportedText is the rendering of an invalid term.
const UnsupportedText = "Unsupported term"

// Exponential is the factor (Base^NMultiplier)^n.
type Exponential struct {
	Base        float64 `json:"base"`
	NMultiplier float64 `json:"nMultiplier"`
}

// Rate returns the per-n growth factor Base^NMultiplier.
func (e Exponential) Rate() float64 {
	return math.Pow(e.Base, e.NMultiplier)
}

// MergeExponential returns the product of two exponential factors. A nil
// operand is the identity. The product of a^(k1*n) and b^(k2*n) is
// (a^k1 * b^k2)^n. Neither operand is modified.
func MergeExponential(a, b *Exponential) *Exponential {
	switch {
	case a == nil && b == nil:
		return nil
	case a == nil:
		c := *b
		return &c
	case b == nil:
		c := *a
		return &c
	}
	return &Exponential{Base: a.Rate() * b.Rate(), NMultiplier: 1}
}

// CanonicalTerm is the growth signature of a term. When Valid is false the
// numeric fields carry no meaning and Reason describes the unsupported
// shape.
type CanonicalTerm struct {
	Coefficient float64      `json:"coefficient"`
	NExponent   float64      `json:"nExponent"`
	LogExponent float64      `json:"logExponent"`
	Exponential *Exponential `json:"exponential,omitempty"`
	Valid       bool         `json:"valid"`
	Reason      string       `json:"reason,omitempty"`
}

// Unit returns the canonical term of the empty product.
func Unit() CanonicalTerm {
	return CanonicalTerm{Coefficient: 1, Valid: true}
}

// Invalid returns an invalid term with the given reason.
func Invalid(reason string) CanonicalTerm {
	return CanonicalTerm{Reason: reason}
}

// Rate returns the effective exponential rate, 1 when there is no
// exponential factor.
func (c CanonicalTerm) Rate() float64 {
	if c.Exponential == nil {
		return 1
	}
	return c.Exponential.Rate()
}

// FormatNumber renders v with up to 6 significant digits, using exponential
// notation outside [1e-4, 1e6).
func FormatNumber(v float64) string {
	return expr.FormatFloat(v)
}

func formatBase(v float64) string {
	if v == math.E {
		return "e"
	}
	return FormatNumber(v)
}

func (c CanonicalTerm) expFactor() string {
	e := c.Exponential
	if e == nil {
		return ""
	}
	if e.NMultiplier == 1 {
		return formatBase(e.Base) + "^n"
	}
	return formatBase(e.Base) + "^(" + FormatNumber(e.NMultiplier) + "*n)"
}

func (c CanonicalTerm) polyFactor() string {
	switch c.NExponent {
	case 0:
		return ""
	case 1:
		return "n"
	}
	return "n^" + FormatNumber(c.NExponent)
}

// String renders the term with '*' between factors, ordered coefficient,
// exponential, polynomial, logarithmic: 3*n^2, 5*n*log(n), 2^(3*n).
func (c CanonicalTerm) String() string {
	if !c.Valid {
		return UnsupportedText
	}

	var parts []string
	if c.Coefficient != 1 {
		parts = append(parts, FormatNumber(c.Coefficient))
	}
	if f := c.expFactor(); f != "" {
		parts = append(parts, f)
	}
	if f := c.polyFactor(); f != "" {
		parts = append(parts, f)
	}
	switch c.LogExponent {
	case 0:
	case 1:
		parts = append(parts, "log(n)")
	default:
		parts = append(parts, "log(n)^"+FormatNumber(c.LogExponent))
	}

	if len(parts) == 0 {
		return "1"
	}
	return strings.Join(parts, "*")
}

// BigO renders the growth class without the coefficient, factors separated
// by spaces: O(2^n), O(n^2 log n), O(n (log n)^2), O(1).
func (c CanonicalTerm) BigO() string {
	if !c.Valid {
		return UnsupportedText
	}

	var parts []string
	if f := c.expFactor(); f != "" {
		parts = append(parts, f)
	}
	if f := c.polyFactor(); f != "" {
		parts = append(parts, f)
	}
	switch c.LogExponent {
	case 0:
	case 1:
		parts = append(parts, "log n")
	default:
		parts = append(parts, "(log n)^"+FormatNumber(c.LogExponent))
	}

	if len(parts) == 0 {
		return "O(1)"
	}
	return "O(" + strings.Join(parts, " ") + ")"
}
