package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bigo/pkg/history"
)

// historyCommand creates the history command.
func (c *CLI) historyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse recorded analyses",
		Long: `Browse analyses saved with --record, by the live view, or by the HTTP API.

The backend is selected by history.backend in the config file.`,
	}

	cmd.AddCommand(c.historyListCommand())
	cmd.AddCommand(c.historyShowCommand())

	return cmd
}

// historyListCommand creates the "history list" subcommand.
func (c *CLI) historyListCommand() *cobra.Command {
	var (
		limit  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the most recent analyses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withHistory(cmd.Context(), func(store history.Store) error {
				records, err := store.List(cmd.Context(), limit)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				if asJSON {
					if records == nil {
						records = []history.Record{}
					}
					return writeJSON(w, records)
				}
				if len(records) == 0 {
					printInfo("No recorded analyses")
					printNextStep("Record one with", "bigo analyze --record 'n^2 + n'")
					return nil
				}
				fmt.Fprintln(w, historyTable(records).Render())
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", history.DefaultListLimit, "maximum number of records")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print records as JSON")

	return cmd
}

// historyShowCommand creates the "history show" subcommand.
func (c *CLI) historyShowCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one recorded analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withHistory(cmd.Context(), func(store history.Store) error {
				rec, err := store.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), rec)
				}
				writeRecord(cmd.OutOrStdout(), rec)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the record as JSON")

	return cmd
}

// withHistory opens the configured history store for the duration of fn.
func (c *CLI) withHistory(ctx context.Context, fn func(history.Store) error) error {
	cfg := c.settings()
	store, err := history.Open(ctx, cfg.HistoryOptions())
	if err != nil {
		return fmt.Errorf("open %s history: %w", cfg.History.Backend, err)
	}
	defer store.Close()
	return fn(store)
}

// writeRecord prints a record as labeled lines.
func writeRecord(w io.Writer, rec history.Record) {
	fmt.Fprint(w, keyValue("ID", rec.ID))
	fmt.Fprint(w, keyValue("Recorded", rec.CreatedAt.Local().Format("2006-01-02 15:04:05")))
	fmt.Fprint(w, keyValue("Input", rec.Input))
	if rec.Normalized != "" {
		fmt.Fprint(w, keyValue("Normalized", rec.Normalized))
	}
	if rec.OK {
		fmt.Fprint(w, keyValue("Dominant", rec.Dominant))
		fmt.Fprint(w, keyValue("Result", rec.BigO))
		return
	}
	fmt.Fprint(w, keyValue("Error", rec.Error))
	fmt.Fprint(w, keyValue("Code", rec.Code))
}

// historyTable lists records newest first.
func historyTable(records []history.Record) *table.Table {
	rows := make([][]string, len(records))
	for i, r := range records {
		result := r.BigO
		if !r.OK {
			result = r.Code
		}
		rows[i] = []string{r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04"), truncate(r.Input, 40), result}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Recorded", "Expression", "Result").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0 || col == 1:
				return cellStyle.Foreground(colorDim)
			case col == 3 && !records[row].OK:
				return cellStyle.Foreground(colorRed)
			case col == 3:
				return cellStyle.Foreground(colorGreen)
			}
			return cellStyle
		})
}
