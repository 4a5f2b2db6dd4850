package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bigo/pkg/analyzer"
	"github.com/matzehuels/bigo/pkg/pipeline"
)

// analyzeOpts holds the command-line flags for the analyze command.
type analyzeOpts struct {
	json    bool // print the result as JSON
	noCache bool // disable the result cache
	refresh bool // recompute even when cached
	record  bool // save the analysis to history
	steps   bool // include derivation steps in the report
}

// analyzeCommand creates the analyze command.
func (c *CLI) analyzeCommand() *cobra.Command {
	opts := analyzeOpts{steps: true}

	cmd := &cobra.Command{
		Use:   "analyze <expression...>",
		Short: "Report the Big-O class of an expression",
		Long: `Report the Big-O class of an expression.

Arguments are joined with spaces, so quoting is optional:

  bigo analyze 't(n)=3n^2 + 5n log(n) + 2^n'
  bigo analyze 3n^2 + 5n*log(n)

Results are cached; use --refresh to recompute and --record to save the
analysis to history. A failed analysis exits with status 1.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAnalyze(cmd.Context(), cmd.OutOrStdout(), strings.Join(args, " "), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.json, "json", false, "print the result as JSON")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if cached")
	cmd.Flags().BoolVar(&opts.record, "record", false, "save the analysis to history")
	cmd.Flags().BoolVar(&opts.steps, "steps", opts.steps, "show derivation steps")

	return cmd
}

func (c *CLI) runAnalyze(ctx context.Context, w io.Writer, input string, opts analyzeOpts) error {
	runner, err := c.newRunner(ctx, runnerOpts{noCache: opts.noCache, noHistory: !opts.record})
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	res, hit, err := runner.AnalyzeWithCacheInfo(ctx, input, pipeline.Options{
		Refresh: opts.refresh,
		Record:  opts.record,
		Logger:  loggerFromContext(ctx),
	})
	if err != nil {
		return err
	}

	if opts.json {
		if err := writeJSON(w, pipeline.BatchItem{Input: input, Result: res.Analysis, Cached: hit}); err != nil {
			return err
		}
		return res.Analysis.Err()
	}

	fmt.Fprint(w, renderReport(res.Analysis, hit, opts.steps))
	if res.RecordID != "" {
		fmt.Fprintln(w, StyleDim.Render("recorded as "+res.RecordID))
	}
	return res.Analysis.Err()
}

// renderReport formats an analysis for the terminal.
func renderReport(res analyzer.Result, cached, steps bool) string {
	var b strings.Builder
	if !res.OK {
		b.WriteString(styleIconError.Render(iconError) + " " + res.Error + "\n")
		return b.String()
	}

	b.WriteString(StyleTitle.Render(res.BigO))
	b.WriteString("  ")
	b.WriteString(cacheStatus(cached))
	b.WriteString("\n\n")

	b.WriteString(keyValue("Normalized", res.Normalized))
	b.WriteString(keyValue("Dominant", res.Dominant))
	b.WriteString("\n")

	b.WriteString(termsTable(res).Render())
	b.WriteString("\n")

	if steps {
		b.WriteString("\n" + StyleHighlight.Render("Steps") + "\n")
		for i, s := range res.Steps {
			fmt.Fprintf(&b, "%s %s\n", StyleDim.Render(fmt.Sprintf("%2d.", i+1)), s)
		}
	}
	return b.String()
}

// termsTable lists the simplified terms, marking the dominant one.
func termsTable(res analyzer.Result) *table.Table {
	rows := make([][]string, len(res.SimplifiedTerms))
	dominant := -1
	for i, term := range res.SimplifiedTerms {
		mark := ""
		if dominant < 0 && term == res.Dominant {
			mark = iconArrow
			dominant = i
		}
		rows[i] = []string{strconv.Itoa(i + 1), term, mark}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Simplified term", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row == dominant:
				return cellStyle.Foreground(colorGreen).Bold(true)
			case col == 0:
				return cellStyle.Foreground(colorDim)
			}
			return cellStyle
		})
}

// writeJSON writes v as indented JSON followed by a newline.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// normalizeCommand creates the normalize command.
func (c *CLI) normalizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize <expression...>",
		Short: "Show the normalized form of an expression",
		Long: `Show the normalized form of an expression.

This is the text the parser sees after prefix removal, implicit
multiplication, superscript folding and whitespace cleanup. It never fails:
input that cannot be normalized is echoed back unchanged.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), analyzer.NormalizePreview(strings.Join(args, " ")))
			return nil
		},
	}
}
