package syntax

import (
	"math"
	"testing"

	errs "github.com/matzehuels/bigo/pkg/errors"
)

func kinds(tokens []Token) []TokenKind {
	out := make([]TokenKind, len(tokens))
	for i, t := range tokens {
		out[i] = t.Kind
	}
	return out
}

func equalKinds(a, b []TokenKind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		in   string
		want []TokenKind
	}{
		{"2*n", []TokenKind{Number, Mul, Variable, EOF}},
		{"2n", []TokenKind{Number, Mul, Variable, EOF}},
		{"2 n", []TokenKind{Number, Mul, Variable, EOF}},
		{"n^2 + 1", []TokenKind{Variable, Pow, Number, Plus, Number, EOF}},
		{"n - 1", []TokenKind{Variable, Minus, Number, EOF}},
		{"(n+1)(n+2)", []TokenKind{LParen, Variable, Plus, Number, RParen, Mul, LParen, Variable, Plus, Number, RParen, EOF}},
		{"n log(n)", []TokenKind{Variable, Mul, Log, LParen, Variable, RParen, EOF}},
		{"e^n", []TokenKind{Number, Pow, Variable, EOF}},
		{"log(n)(n)", []TokenKind{Log, LParen, Variable, RParen, Mul, LParen, Variable, RParen, EOF}},
		{"", []TokenKind{EOF}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			tokens, err := Tokenize(tt.in)
			if err != nil {
				t.Fatalf("Tokenize(%q) error: %v", tt.in, err)
			}
			if got := kinds(tokens); !equalKinds(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTokenizeValues(t *testing.T) {
	tokens, err := Tokenize("2.5*log_2(n) + log_e(n) + ln(n) + log_10(e)")
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}

	if tokens[0].Value != 2.5 {
		t.Errorf("number value = %v, want 2.5", tokens[0].Value)
	}

	var logs []Token
	for _, tok := range tokens {
		if tok.Kind == Log {
			logs = append(logs, tok)
		}
	}
	if len(logs) != 4 {
		t.Fatalf("got %d log tokens, want 4", len(logs))
	}

	want := []struct {
		text string
		base float64
		name string
	}{
		{"log_2", 2, "2"},
		{"log_e", math.E, "e"},
		{"ln", math.E, "e"},
		{"log_10", 10, "10"},
	}
	for i, w := range want {
		if logs[i].Text != w.text || logs[i].Value != w.base || logs[i].BaseName() != w.name {
			t.Errorf("log %d = %q base %v name %q, want %q base %v name %q",
				i, logs[i].Text, logs[i].Value, logs[i].BaseName(), w.text, w.base, w.name)
		}
	}

	last := tokens[len(tokens)-3]
	if last.Kind != Number || last.Value != math.E {
		t.Errorf("e token = %v, want number e", last)
	}
}

func TestTokenizePositions(t *testing.T) {
	tokens, err := Tokenize("3 * n^2")
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}
	wantPos := []int{0, 2, 4, 5, 6, 7}
	for i, p := range wantPos {
		if tokens[i].Pos != p {
			t.Errorf("token %d Pos = %d, want %d", i, tokens[i].Pos, p)
		}
	}
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		in  string
		pos int
	}{
		{"n $ 1", 2},
		{"x", 0},
		{"2 * sin(n)", 4},
		{"1.2.3", 0},
		{".", 0},
		{"log_(n)", 0},
		{"log_x(n)", 0},
		{"n / 2", 2},
		{"n²", 1},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := Tokenize(tt.in)
			if err == nil {
				t.Fatalf("Tokenize(%q) succeeded, want error", tt.in)
			}
			if !errs.Is(err, errs.ErrCodeTokenize) {
				t.Errorf("code = %v, want %v", errs.GetCode(err), errs.ErrCodeTokenize)
			}
			var e *errs.Error
			if errsAs(err, &e) && e.Pos != tt.pos {
				t.Errorf("Pos = %d, want %d", e.Pos, tt.pos)
			}
		})
	}
}

func TestTokenKindString(t *testing.T) {
	if Mul.String() != "'*'" {
		t.Errorf("Mul.String() = %q", Mul.String())
	}
	if EOF.String() != "end of input" {
		t.Errorf("EOF.String() = %q", EOF.String())
	}
	if TokenKind(99).String() != "TokenKind(99)" {
		t.Errorf("TokenKind(99).String() = %q", TokenKind(99).String())
	}
}
