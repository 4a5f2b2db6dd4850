// Package syntax turns user-typed complexity expressions into [expr.Node]
// trees.
//
// # Overview
//
// The front end runs in three stages, each consuming the previous stage's
// output:
//
//  1. [Normalize] rewrites shorthand ("3n²", "2 x n", "log2(n)", "ln(n)")
//     into an unambiguous canonical string. It never fails.
//  2. [Tokenize] scans the canonical string into [Token] values and makes
//     implicit multiplication explicit by inserting [Mul] tokens between
//     adjacent operands.
//  3. [Parse] (or [ParseTokens]) builds the tree by recursive descent.
//
// # Grammar
//
//	Expr    := Term (('+' | '-') Term)*
//	Term    := Power ('*' Power)*
//	Power   := Primary ('^' Power)?
//	Primary := number | n | '(' Expr ')' | log '(' Expr ')'
//
// Exponentiation is right-associative. Subtraction has no node of its own:
// a - b is parsed as Add(a, Multiply(-1, b)).
//
// # Identifiers
//
// The only identifiers are n, e (Euler's number), log and ln (natural
// logarithm) and log_<base> where base is a decimal number or e.
//
// # Errors
//
// [Tokenize] fails with a TokenizeError and [Parse] with a ParseError, both
// from package errors and both carrying the byte offset of the offending
// token in the canonical string.
package syntax
