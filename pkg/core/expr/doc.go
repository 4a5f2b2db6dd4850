// Package expr defines the expression tree that the bigo front end produces
// and the growth analysis consumes.
//
// # Overview
//
// A time-complexity expression such as 3n^2 + 5n*log(n) + 2^n is represented
// as a tree over a small, closed set of node kinds:
//
//   - [Number]: a real literal (Euler's number is a Number too)
//   - [Variable]: the single symbol n
//   - [Power]: Base^Exponent
//   - [Multiply]: Left*Right
//   - [Add]: Left+Right (subtraction is encoded as Add(l, Multiply(-1, r)))
//   - [Log]: log_Base(Arg)
//
// [Node] is sealed: only this package can add node kinds, so a type switch
// over the kinds above is exhaustive. Trees are built bottom-up by the parser
// and are read-only afterwards; nothing in the module mutates a node once it
// is reachable from a parse result.
//
// # Rendering
//
// Every node implements String, producing a fully parenthesised, canonical
// rendering used in derivation traces:
//
//	expr.Add{Left: expr.Number{Value: 3}, Right: expr.Variable{}}.String() // "(3 + n)"
//
// [Walk] visits a tree depth-first and is used by renderers such as
// render/treeviz.
package expr
