package expr

import (
	"math"
	"strconv"
)

// Symbol is the name of the only variable an expression may contain.
const Symbol = "n"

// Kind identifies the concrete type of a [Node].
type Kind int

const (
	KindNumber Kind = iota
	KindVariable
	KindPower
	KindMultiply
	KindAdd
	KindLog
)

var kindNames = [...]string{
	KindNumber:   "number",
	KindVariable: "variable",
	KindPower:    "power",
	KindMultiply: "multiply",
	KindAdd:      "add",
	KindLog:      "log",
}

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Node is an expression tree node. The set of implementations is closed.
type Node interface {
	Kind() Kind
	String() string
	node() // sealed marker
}

// =============================================================================
// Leaves
// =============================================================================

// Number is a real-valued literal.
type Number struct {
	Value float64
}

func (Number) Kind() Kind { return KindNumber }
func (Number) node()      {}

func (n Number) String() string {
	if n.Value == math.E {
		return "e"
	}
	return FormatFloat(n.Value)
}

// Variable is the symbol n.
type Variable struct{}

func (Variable) Kind() Kind     { return KindVariable }
func (Variable) String() string { return Symbol }
func (Variable) node()          {}

// =============================================================================
// Composite nodes
// =============================================================================

// Power is Base raised to Exponent. Power is right-associative in the
// grammar, so n^2^3 parses as Power{n, Power{2, 3}}.
type Power struct {
	Base     Node
	Exponent Node
}

func (Power) Kind() Kind { return KindPower }
func (Power) node()      {}

func (p Power) String() string {
	return wrap(p.Base) + "^" + wrap(p.Exponent)
}

// Multiply is the product Left*Right.
type Multiply struct {
	Left, Right Node
}

func (Multiply) Kind() Kind { return KindMultiply }
func (Multiply) node()      {}

func (m Multiply) String() string {
	return m.Left.String() + "*" + m.Right.String()
}

// Add is the sum Left+Right.
type Add struct {
	Left, Right Node
}

func (Add) Kind() Kind { return KindAdd }
func (Add) node()      {}

func (a Add) String() string {
	return "(" + a.Left.String() + " + " + a.Right.String() + ")"
}

// Log is the logarithm of Arg in base Base. BaseName keeps the spelling the
// base was written with ("2", "10", "e").
type Log struct {
	Base     float64
	BaseName string
	Arg      Node
}

func (Log) Kind() Kind { return KindLog }
func (Log) node()      {}

func (l Log) String() string {
	arg := l.Arg.String()
	if a, ok := l.Arg.(Add); ok {
		// Add already renders its own parentheses.
		arg = a.Left.String() + " + " + a.Right.String()
	}
	if l.IsNatural() {
		return "log(" + arg + ")"
	}
	return "log_" + l.BaseName + "(" + arg + ")"
}

// IsNatural reports whether the logarithm is in base e.
func (l Log) IsNatural() bool {
	return l.Base == math.E
}

// =============================================================================
// Helpers
// =============================================================================

// Render is String without the outermost parentheses of a top-level sum.
func Render(n Node) string {
	if a, ok := n.(Add); ok {
		return a.Left.String() + " + " + a.Right.String()
	}
	return n.String()
}

// wrap parenthesises operands of ^ that would otherwise read ambiguously.
func wrap(n Node) string {
	switch v := n.(type) {
	case Multiply, Power:
		return "(" + v.String() + ")"
	case Number:
		if v.Value < 0 {
			return "(" + v.String() + ")"
		}
	}
	return n.String()
}

// FormatFloat renders v with up to 6 significant digits. Magnitudes outside
// [1e-4, 1e6) use exponential notation.
func FormatFloat(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// Walk traverses the tree rooted at n depth-first, calling fn for every node
// with its depth. Children are visited only when fn returns true.
func Walk(n Node, fn func(n Node, depth int) bool) {
	walk(n, 0, fn)
}

func walk(n Node, depth int, fn func(Node, int) bool) {
	if n == nil || !fn(n, depth) {
		return
	}
	for _, c := range Children(n) {
		walk(c, depth+1, fn)
	}
}

// Children returns the direct children of n in left-to-right order.
func Children(n Node) []Node {
	switch v := n.(type) {
	case Power:
		return []Node{v.Base, v.Exponent}
	case Multiply:
		return []Node{v.Left, v.Right}
	case Add:
		return []Node{v.Left, v.Right}
	case Log:
		return []Node{v.Arg}
	}
	return nil
}

// ContainsVariable reports whether n appears anywhere in the tree.
func ContainsVariable(root Node) bool {
	found := false
	Walk(root, func(n Node, _ int) bool {
		if _, ok := n.(Variable); ok {
			found = true
		}
		return !found
	})
	return found
}

// Constant folds a variable-free tree to its numeric value. It reports false
// when the tree mentions n or folds to a non-finite value.
func Constant(n Node) (float64, bool) {
	var v float64
	switch x := n.(type) {
	case Number:
		v = x.Value
	case Variable:
		return 0, false
	case Add:
		l, ok := Constant(x.Left)
		if !ok {
			return 0, false
		}
		r, ok := Constant(x.Right)
		if !ok {
			return 0, false
		}
		v = l + r
	case Multiply:
		l, ok := Constant(x.Left)
		if !ok {
			return 0, false
		}
		r, ok := Constant(x.Right)
		if !ok {
			return 0, false
		}
		v = l * r
	case Power:
		b, ok := Constant(x.Base)
		if !ok {
			return 0, false
		}
		e, ok := Constant(x.Exponent)
		if !ok {
			return 0, false
		}
		v = math.Pow(b, e)
	case Log:
		a, ok := Constant(x.Arg)
		if !ok || a <= 0 {
			return 0, false
		}
		v = math.Log(a) / math.Log(x.Base)
	default:
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
