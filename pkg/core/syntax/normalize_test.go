package syntax

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"prefix and implicit mul", "t(n)=3n^2 + 5n*log(n) + 2^n", "3*n^2 + 5*n*log(n) + 2^n"},
		{"prefix spaced uppercase", "T(N) = n", "n"},
		{"prefix only", "t(n)=", ""},
		{"coefficient", "2n", "2*n"},
		{"n digits", "n2", "n^2"},
		{"n digits with coefficient", "3n10", "3*n^10"},
		{"superscript", "3n²", "3*n^2"},
		{"superscript run", "n²³", "n^23"},
		{"superscript n", "2ⁿ", "2^n"},
		{"superscript after caret", "n^²", "n^2"},
		{"superscript n before digits", "2ⁿ3", "2^n^3"},
		{"x between digits", "2 x 3", "2 * 3"},
		{"x digit n", "2x n", "2* n"},
		{"x n digit", "n x 4", "n * 4"},
		{"x n n untouched", "n x n", "n x n"},
		{"x inside identifier", "max", "max"},
		{"x without left operand", "x2", "x2"},
		{"unicode times", "3 × n", "3 * n"},
		{"middle dot", "3·n", "3*n"},
		{"log digits", "log2(n)", "log_2(n)"},
		{"log ten", "log10(n)", "log_10(n)"},
		{"ln", "ln(n)", "log_e(n)"},
		{"log base kept", "log_2(n)", "log_2(n)"},
		{"whitespace", "  n   +\t1  ", "n + 1"},
		{"star run", "2**n", "2*n"},
		{"spaced star run", "2 * * n", "2 * n"},
		{"paren product", "(n+1)(n+2)", "(n+1)*(n+2)"},
		{"n before paren", "n(n+1)", "n*(n+1)"},
		{"n before log", "nlog(n)", "n*log(n)"},
		{"paren before letter", "(n)log(n)", "(n)*log(n)"},
		{"number before log", "5n log(n)", "5*n log(n)"},
		{"exponent before paren", "n^2(n+1)", "n^2*(n+1)"},
		{"decimal coefficient", "2.5n", "2.5*n"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"t(n)=3n^2 + 5n*log(n) + 2^n",
		"n³ + n²·log2(n)",
		"2 x 3 x n",
		"(n+1)(n-1) ln(n)",
		"e^n + 2ⁿ",
		"n2n",
		"  4   n  ",
	}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}
