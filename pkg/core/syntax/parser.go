package syntax

import (
	"github.com/matzehuels/bigo/pkg/core/expr"
	errs "github.com/matzehuels/bigo/pkg/errors"
)

type parser struct {
	tokens []Token
	pos    int
}

// Parse tokenizes s and parses it into an expression tree.
func Parse(s string) (expr.Node, error) {
	tokens, err := Tokenize(s)
	if err != nil {
		return nil, err
	}
	return ParseTokens(tokens)
}

// ParseTokens parses a token stream produced by [Tokenize]. A missing EOF
// terminator is tolerated. Every token must be consumed: input that still
// has tokens after a complete expression is rejected.
func ParseTokens(tokens []Token) (expr.Node, error) {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != EOF {
		end := 0
		if len(tokens) > 0 {
			last := tokens[len(tokens)-1]
			end = last.Pos + len(last.Text)
		}
		tokens = append(tokens[:len(tokens):len(tokens)], Token{Kind: EOF, Pos: end})
	}

	p := &parser{tokens: tokens}
	if p.peek() == EOF {
		return nil, errs.At(errs.ErrCodeParse, p.current().Pos, "empty expression")
	}

	node, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if tok := p.current(); tok.Kind != EOF {
		return nil, errs.At(errs.ErrCodeParse, tok.Pos, "unexpected %s after complete expression at position %d", tok.Kind, tok.Pos)
	}
	return node, nil
}

func (p *parser) current() Token {
	return p.tokens[p.pos]
}

func (p *parser) peek() TokenKind {
	return p.current().Kind
}

func (p *parser) advance() Token {
	tok := p.current()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *parser) expect(kind TokenKind) error {
	tok := p.current()
	if tok.Kind != kind {
		return errs.At(errs.ErrCodeParse, tok.Pos, "expected %s, got %s at position %d", kind, tok.Kind, tok.Pos)
	}
	p.advance()
	return nil
}

// Expr := Term (('+' | '-') Term)*
func (p *parser) parseExpr() (expr.Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.peek() == Plus || p.peek() == Minus {
		op := p.advance()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if op.Kind == Minus {
			right = expr.Multiply{Left: expr.Number{Value: -1}, Right: right}
		}
		left = expr.Add{Left: left, Right: right}
	}
	return left, nil
}

// Term := Power ('*' Power)*
func (p *parser) parseTerm() (expr.Node, error) {
	left, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	for p.peek() == Mul {
		p.advance()
		right, err := p.parsePower()
		if err != nil {
			return nil, err
		}
		left = expr.Multiply{Left: left, Right: right}
	}
	return left, nil
}

// Power := Primary ('^' Power)?
func (p *parser) parsePower() (expr.Node, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.peek() != Pow {
		return base, nil
	}
	p.advance()
	exp, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	return expr.Power{Base: base, Exponent: exp}, nil
}

// Primary := number | n | '(' Expr ')' | log '(' Expr ')'
func (p *parser) parsePrimary() (expr.Node, error) {
	tok := p.current()
	switch tok.Kind {
	case Number:
		p.advance()
		return expr.Number{Value: tok.Value}, nil

	case Variable:
		p.advance()
		return expr.Variable{}, nil

	case LParen:
		p.advance()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(RParen); err != nil {
			return nil, err
		}
		return inner, nil

	case Log:
		p.advance()
		if err := p.expect(LParen); err != nil {
			return nil, err
		}
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(RParen); err != nil {
			return nil, err
		}
		return expr.Log{Base: tok.Value, BaseName: tok.BaseName(), Arg: arg}, nil

	case EOF:
		return nil, errs.At(errs.ErrCodeParse, tok.Pos, "unexpected end of input, expected an operand")
	}
	return nil, errs.At(errs.ErrCodeParse, tok.Pos, "unexpected %s at position %d, expected an operand", tok.Kind, tok.Pos)
}
