package treeviz

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/bigo/pkg/core/syntax"
	errs "github.com/matzehuels/bigo/pkg/errors"
)

func mustParse(t *testing.T, s string) string {
	t.Helper()
	n, err := syntax.Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q): %v", s, err)
	}
	return ToDOT(n, Options{})
}

func TestToDOT(t *testing.T) {
	dot := mustParse(t, "3*n^2+log_2(n)")

	for _, want := range []string{
		"digraph G {",
		`n0 [label="+"]`,
		`n1 [label="*"]`,
		`n2 [label="3", shape=ellipse, fillcolor=lightgrey]`,
		`n3 [label="^"]`,
		`n4 [label="n", shape=ellipse, fillcolor=lightblue]`,
		`n5 [label="2", shape=ellipse, fillcolor=lightgrey]`,
		`n6 [label="log_2"]`,
		`n7 [label="n", shape=ellipse, fillcolor=lightblue]`,
		"n0 -> n1;",
		"n1 -> n2;",
		"n1 -> n3;",
		"n3 -> n4;",
		"n3 -> n5;",
		"n0 -> n6;",
		"n6 -> n7;",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if got := strings.Count(dot, "->"); got != 7 {
		t.Errorf("edge count = %d, want 7", got)
	}
}

func TestToDOTSingleLeaf(t *testing.T) {
	dot := mustParse(t, "n")
	if strings.Contains(dot, "->") {
		t.Errorf("single leaf should have no edges:\n%s", dot)
	}
	if !strings.Contains(dot, `n0 [label="n"`) {
		t.Errorf("missing leaf node:\n%s", dot)
	}
}

func TestToDOTDetailed(t *testing.T) {
	n, err := syntax.Parse("log(n)")
	if err != nil {
		t.Fatal(err)
	}
	dot := ToDOT(n, Options{Detailed: true})
	if !strings.Contains(dot, `label="log\nlog\nlog(n)"`) {
		t.Errorf("detailed label missing:\n%s", dot)
	}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"dot", false},
		{"svg", false},
		{"png", true},
		{"SVG", true},
		{"", true},
	}
	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errs.Is(err, errs.ErrCodeUnsupported) {
			t.Errorf("ValidateFormat(%q) code = %q", tt.format, errs.GetCode(err))
		}
	}
}

func TestRenderDOT(t *testing.T) {
	n, _ := syntax.Parse("n+1")
	out, err := Render(context.Background(), n, FormatDOT, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(out, []byte("digraph G {")) {
		t.Errorf("Render(dot) = %s", out)
	}
}

func TestRenderSVG(t *testing.T) {
	if testing.Short() {
		t.Skip("graphviz rendering is slow")
	}
	n, _ := syntax.Parse("2^n+n^3")
	out, err := Render(context.Background(), n, FormatSVG, Options{})
	if err != nil {
		t.Fatalf("Render(svg): %v", err)
	}
	if !bytes.Contains(out, []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 `)) {
		t.Errorf("SVG root not normalized:\n%.200s", out)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="44pt" viewBox="0.00 0.00 62.00 44.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 62.00 44.00" width="62" height="44"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox =\n%s\nwant\n%s", got, want)
	}
	if got := normalizeViewBox([]byte("<svg></svg>")); string(got) != "<svg></svg>" {
		t.Errorf("without viewBox = %s", got)
	}
}
