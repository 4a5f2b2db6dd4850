package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bigo/pkg/pipeline"
)

// batchOpts holds the command-line flags for the batch command.
type batchOpts struct {
	workers int  // concurrent analyses
	json    bool // print results as JSON
	noCache bool // disable the result cache
	refresh bool // recompute even when cached
	record  bool // save every analysis to history
}

// batchCommand creates the batch command.
func (c *CLI) batchCommand() *cobra.Command {
	opts := batchOpts{workers: pipeline.DefaultMaxWorkers}

	cmd := &cobra.Command{
		Use:   "batch <file|->",
		Short: "Analyze one expression per line",
		Long: `Analyze one expression per line of a file, or of stdin when the file is "-".

Blank lines and lines starting with # are skipped. Results are printed in
input order. The command exits with status 1 if any analysis failed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := readBatchInput(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			return c.runBatch(cmd.Context(), cmd.OutOrStdout(), inputs, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.workers, "workers", "w", opts.workers, "number of concurrent analyses")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print results as JSON")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if cached")
	cmd.Flags().BoolVar(&opts.record, "record", false, "save every analysis to history")

	return cmd
}

// readBatchInput reads expressions from path, or from stdin when path is "-".
func readBatchInput(path string, stdin io.Reader) ([]string, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	return scanExpressions(r)
}

// scanExpressions returns the non-blank, non-comment lines of r.
func scanExpressions(r io.Reader) ([]string, error) {
	var inputs []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		inputs = append(inputs, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read expressions: %w", err)
	}
	return inputs, nil
}

func (c *CLI) runBatch(ctx context.Context, w io.Writer, inputs []string, opts batchOpts) error {
	if err := pipeline.ValidateBatch(inputs); err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, runnerOpts{noCache: opts.noCache, noHistory: !opts.record})
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Analyzing %d expressions...", len(inputs)))
	spinner.Start()
	prog := newProgress(loggerFromContext(ctx))

	items, err := runner.AnalyzeBatch(ctx, inputs, pipeline.Options{
		MaxWorkers: opts.workers,
		Refresh:    opts.refresh,
		Record:     opts.record,
		Logger:     loggerFromContext(ctx),
	})
	spinner.Stop()
	if err != nil {
		return err
	}

	failed := 0
	cached := 0
	for _, it := range items {
		if !it.OK {
			failed++
		}
		if it.Cached {
			cached++
		}
	}
	prog.done("analyzed batch", "inputs", len(items), "failed", failed, "cached", cached)

	if opts.json {
		if err := writeJSON(w, items); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(w, batchTable(items).Render())
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d analyses failed", failed, len(items))
	}
	return nil
}

// batchTable lists batch results in input order.
func batchTable(items []pipeline.BatchItem) *table.Table {
	rows := make([][]string, len(items))
	for i, it := range items {
		result := it.BigO
		if !it.OK {
			result = string(it.Code)
		}
		rows[i] = []string{strconv.Itoa(i + 1), it.Input, result}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Expression", "Result").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return cellStyle.Foreground(colorDim)
			case col == 2 && !items[row].OK:
				return cellStyle.Foreground(colorRed)
			case col == 2:
				return cellStyle.Foreground(colorGreen)
			}
			return cellStyle
		})
}
