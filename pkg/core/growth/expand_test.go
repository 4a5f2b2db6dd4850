package growth

import (
	"strings"
	"testing"

	"github.com/matzehuels/bigo/pkg/core/expr"
	"github.com/matzehuels/bigo/pkg/core/syntax"
	errs "github.com/matzehuels/bigo/pkg/errors"
)

func mustParse(t *testing.T, s string) expr.Node {
	t.Helper()
	node, err := syntax.Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q): %v", s, err)
	}
	return node
}

func termStrings(terms []Term) []string {
	out := make([]string, len(terms))
	for i, t := range terms {
		out[i] = t.String()
	}
	return out
}

func TestExpand(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"5", []string{"5"}},
		{"n + 1", []string{"n", "1"}},
		{"3*n^2 + 5*n*log(n) + 2^n", []string{"3*n^2", "5*n*log(n)", "2^n"}},
		{"(n+1)*(n+2)", []string{"n*n", "n*2", "1*n", "1*2"}},
		{"2*(n + log(n))", []string{"2*n", "2*log(n)"}},
		{"(n+1)^2", []string{"(n + 1)^2"}},
		{"n - 1", []string{"n", "-1*1"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			terms, err := Expand(mustParse(t, tt.in), DefaultTermLimit)
			if err != nil {
				t.Fatalf("Expand error: %v", err)
			}
			got := termStrings(terms)
			if strings.Join(got, " | ") != strings.Join(tt.want, " | ") {
				t.Errorf("Expand(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestExpandLimit(t *testing.T) {
	sum := func(k int) string {
		parts := make([]string, k)
		for i := range parts {
			parts[i] = "n"
		}
		return strings.Join(parts, " + ")
	}

	tests := []struct {
		name    string
		in      string
		limit   int
		wantErr bool
	}{
		{"ten terms", sum(10), DefaultTermLimit, false},
		{"eleven terms", sum(11), DefaultTermLimit, true},
		{"default limit", sum(11), 0, true},
		{"product of sums", "(n+1)*(n+1)*(n+1)*(n+1)", DefaultTermLimit, true},
		{"product within limit", "(n+1)*(n+2)*(n+3)", DefaultTermLimit, false},
		{"custom limit", "(n+1)*(n+2)", 3, true},
		{"sum inside power is not expanded", "(" + sum(20) + ")^2", DefaultTermLimit, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Expand(mustParse(t, tt.in), tt.limit)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Expand error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errs.Is(err, errs.ErrCodeTooManyTerms) {
				t.Errorf("code = %v, want %v", errs.GetCode(err), errs.ErrCodeTooManyTerms)
			}
		})
	}
}

func TestExpandDoesNotAlias(t *testing.T) {
	terms, err := Expand(mustParse(t, "(n+1)*(n+2)"), DefaultTermLimit)
	if err != nil {
		t.Fatal(err)
	}
	terms[0][0] = expr.Number{Value: 42}
	if terms[1][0].String() != "n" {
		t.Errorf("terms share backing storage: %v", termStrings(terms))
	}
}
