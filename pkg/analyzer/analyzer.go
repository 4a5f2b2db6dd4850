package analyzer

import (
	"fmt"
	"strings"

	"github.com/matzehuels/bigo/pkg/core/expr"
	"github.com/matzehuels/bigo/pkg/core/growth"
	"github.com/matzehuels/bigo/pkg/core/syntax"
	errs "github.com/matzehuels/bigo/pkg/errors"
)

// Result is the outcome of one analysis. On success OK is true and every
// field except Error and Code is set; on failure only Error and Code are.
type Result struct {
	OK              bool      `json:"ok"`
	Normalized      string    `json:"normalized,omitempty"`
	Steps           []string  `json:"steps,omitempty"`
	SimplifiedTerms []string  `json:"simplifiedTerms,omitempty"`
	Dominant        string    `json:"dominant,omitempty"`
	BigO            string    `json:"bigO,omitempty"`
	Error           string    `json:"error,omitempty"`
	Code            errs.Code `json:"code,omitempty"`
}

// Err returns the failure as an *errors.Error, or nil for a successful
// result.
func (r Result) Err() error {
	if r.OK {
		return nil
	}
	return &errs.Error{Code: r.Code, Message: strings.TrimPrefix(r.Error, string(r.Code)+": "), Pos: errs.NoPos}
}

func failure(err error) Result {
	code := errs.GetCode(err)
	if code == "" {
		code = errs.ErrCodeInternal
	}
	return Result{Error: err.Error(), Code: code}
}

// Analyze classifies the asymptotic growth of input.
func Analyze(input string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = failure(errs.New(errs.ErrCodeInternal, "analysis of %q panicked: %v", input, r))
		}
	}()

	if err := errs.ValidateInput(input); err != nil {
		return failure(err)
	}

	normalized := syntax.Normalize(input)
	if normalized == "" {
		return failure(errs.New(errs.ErrCodeEmptyInput, "input has no expression after the t(n)= prefix"))
	}
	steps := []string{"Normalized input: " + normalized}

	tokens, err := syntax.Tokenize(normalized)
	if err != nil {
		return failure(err)
	}
	steps = append(steps, fmt.Sprintf("Tokenized into %d tokens", len(tokens)-1))

	tree, err := syntax.ParseTokens(tokens)
	if err != nil {
		return failure(err)
	}
	steps = append(steps, "Parsed expression: "+expr.Render(tree))

	terms, err := growth.Expand(tree, growth.DefaultTermLimit)
	if err != nil {
		return failure(err)
	}
	steps = append(steps, fmt.Sprintf("Expanded into %d %s: %s", len(terms), plural(len(terms), "term"), joinTerms(terms)))

	canonical := make([]growth.CanonicalTerm, len(terms))
	rendered := make([]string, len(terms))
	for i, t := range terms {
		c := growth.Simplify(t)
		canonical[i] = c
		rendered[i] = c.String()
		if c.Valid {
			steps = append(steps, fmt.Sprintf("Term %d: %s → %s", i+1, t, c))
		} else {
			steps = append(steps, fmt.Sprintf("Term %d: %s → %s (%s)", i+1, t, c, c.Reason))
		}
	}

	d, err := growth.PickDominant(canonical)
	if err != nil {
		return failure(err)
	}
	steps = append(steps,
		fmt.Sprintf("Dominant term: %s (%s)", d.Term, d.Reason),
		"Drop constant factors: "+d.Term.BigO(),
	)

	return Result{
		OK:              true,
		Normalized:      normalized,
		Steps:           steps,
		SimplifiedTerms: rendered,
		Dominant:        d.Term.String(),
		BigO:            d.Term.BigO(),
	}
}

// NormalizePreview returns the normalized form of input. It never panics;
// if normalization fails unexpectedly the raw input is returned.
func NormalizePreview(input string) (preview string) {
	defer func() {
		if r := recover(); r != nil {
			preview = input
		}
	}()
	return syntax.Normalize(input)
}

func joinTerms(terms []growth.Term) string {
	parts := make([]string, len(terms))
	for i, t := range terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, " + ")
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
