package syntax

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	errs "github.com/matzehuels/bigo/pkg/errors"
)

// TokenKind identifies the type of a lexer token.
type TokenKind int

const (
	Number   TokenKind = iota // numeric literal, including e
	Variable                  // n
	Log                       // log, ln, log_<base>
	Plus                      // +
	Minus                     // -
	Mul                       // *
	Pow                       // ^
	LParen                    // (
	RParen                    // )
	EOF
)

var tokenNames = [...]string{
	Number:   "number",
	Variable: "n",
	Log:      "log",
	Plus:     "'+'",
	Minus:    "'-'",
	Mul:      "'*'",
	Pow:      "'^'",
	LParen:   "'('",
	RParen:   "')'",
	EOF:      "end of input",
}

func (k TokenKind) String() string {
	if k < 0 || int(k) >= len(tokenNames) {
		return fmt.Sprintf("TokenKind(%d)", int(k))
	}
	return tokenNames[k]
}

// Token is a single lexical unit.
//
// Number tokens carry their value in Value. Log tokens carry the numeric
// base in Value and the spelling they were written with in Text.
type Token struct {
	Kind  TokenKind
	Text  string
	Value float64
	Pos   int // byte offset in the scanned string
}

func (t Token) String() string {
	if t.Kind == EOF {
		return "EOF"
	}
	return fmt.Sprintf("%s %q @%d", t.Kind, t.Text, t.Pos)
}

// BaseName returns the base spelling of a Log token: "e" for log and ln,
// the text after the underscore for log_<base>.
func (t Token) BaseName() string {
	if b, ok := strings.CutPrefix(t.Text, "log_"); ok {
		return b
	}
	return "e"
}

// Tokenize scans s into tokens terminated by an [EOF] token.
//
// After scanning, a [Mul] token is inserted between every adjacent pair
// whose left side is a number, n or ')' and whose right side is a number,
// n, '(' or a log. This is the only place implicit multiplication is
// resolved structurally.
func Tokenize(s string) ([]Token, error) {
	sc := &scanner{src: s}
	var raw []Token
	for {
		tok, err := sc.next()
		if err != nil {
			return nil, err
		}
		raw = append(raw, tok)
		if tok.Kind == EOF {
			break
		}
	}
	return insertImplicitMul(raw), nil
}

func insertImplicitMul(raw []Token) []Token {
	out := make([]Token, 0, len(raw))
	for i, tok := range raw {
		if i > 0 && endsOperand(raw[i-1].Kind) && startsOperand(tok.Kind) {
			out = append(out, Token{Kind: Mul, Text: "*", Pos: tok.Pos})
		}
		out = append(out, tok)
	}
	return out
}

func endsOperand(k TokenKind) bool {
	return k == Number || k == Variable || k == RParen
}

func startsOperand(k TokenKind) bool {
	return k == Number || k == Variable || k == LParen || k == Log
}

// =============================================================================
// Scanner
// =============================================================================

type scanner struct {
	src string
	pos int
}

func (s *scanner) peekByte() byte {
	if s.pos >= len(s.src) {
		return 0
	}
	return s.src[s.pos]
}

func (s *scanner) next() (Token, error) {
	for s.pos < len(s.src) && isSpace(s.src[s.pos]) {
		s.pos++
	}
	if s.pos >= len(s.src) {
		return Token{Kind: EOF, Pos: s.pos}, nil
	}

	start := s.pos
	c := s.src[s.pos]
	switch {
	case isDigit(c) || c == '.':
		return s.number()
	case isLetter(c):
		return s.identifier()
	}

	if kind, ok := punct[c]; ok {
		s.pos++
		return Token{Kind: kind, Text: string(c), Pos: start}, nil
	}

	r, _ := utf8.DecodeRuneInString(s.src[s.pos:])
	return Token{}, errs.At(errs.ErrCodeTokenize, start, "unexpected character %q at position %d", r, start)
}

var punct = map[byte]TokenKind{
	'+': Plus,
	'-': Minus,
	'*': Mul,
	'^': Pow,
	'(': LParen,
	')': RParen,
}

func (s *scanner) number() (Token, error) {
	start := s.pos
	text := s.readDecimal()
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Token{}, errs.At(errs.ErrCodeTokenize, start, "invalid number %q at position %d", text, start)
	}
	return Token{Kind: Number, Text: text, Value: v, Pos: start}, nil
}

func (s *scanner) readDecimal() string {
	start := s.pos
	for s.pos < len(s.src) && (isDigit(s.src[s.pos]) || s.src[s.pos] == '.') {
		s.pos++
	}
	return s.src[start:s.pos]
}

func (s *scanner) identifier() (Token, error) {
	start := s.pos
	for s.pos < len(s.src) && isLetter(s.src[s.pos]) {
		s.pos++
	}
	word := s.src[start:s.pos]

	switch word {
	case "n":
		return Token{Kind: Variable, Text: word, Pos: start}, nil
	case "e":
		return Token{Kind: Number, Text: word, Value: math.E, Pos: start}, nil
	case "ln":
		return Token{Kind: Log, Text: word, Value: math.E, Pos: start}, nil
	case "log":
		if s.peekByte() != '_' {
			return Token{Kind: Log, Text: word, Value: math.E, Pos: start}, nil
		}
		return s.logBase(start)
	}
	return Token{}, errs.At(errs.ErrCodeTokenize, start, "unknown identifier %q at position %d", word, start)
}

// logBase scans the "_<base>" suffix of log_<base>.
func (s *scanner) logBase(start int) (Token, error) {
	s.pos++ // '_'
	c := s.peekByte()
	switch {
	case c == 'e' && (s.pos+1 >= len(s.src) || !isLetter(s.src[s.pos+1])):
		s.pos++
		return Token{Kind: Log, Text: s.src[start:s.pos], Value: math.E, Pos: start}, nil
	case isDigit(c) || c == '.':
		text := s.readDecimal()
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Token{}, errs.At(errs.ErrCodeTokenize, start, "invalid logarithm base %q at position %d", text, start)
		}
		return Token{Kind: Log, Text: s.src[start:s.pos], Value: v, Pos: start}, nil
	}
	for s.pos < len(s.src) && (isLetter(s.src[s.pos]) || s.src[s.pos] == '_') {
		s.pos++
	}
	return Token{}, errs.At(errs.ErrCodeTokenize, start, "unknown identifier %q at position %d", s.src[start:s.pos], start)
}

func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
func isLetter(c byte) bool { return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' }
func isSpace(c byte) bool  { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }
