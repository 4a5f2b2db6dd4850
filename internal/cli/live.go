package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bigo/pkg/pipeline"
)

// liveCommand creates the live command.
func (c *CLI) liveCommand() *cobra.Command {
	var record bool

	cmd := &cobra.Command{
		Use:   "live",
		Short: "Analyze expressions interactively as you type",
		Long: `Analyze expressions interactively as you type.

The normalized form and the Big-O class update on every keystroke. Press
enter to keep an expression in the list below the prompt. With --record the
kept expressions are saved to history on exit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLive(cmd.Context(), record)
		},
	}

	cmd.Flags().BoolVar(&record, "record", false, "save kept expressions to history on exit")

	return cmd
}

func (c *CLI) runLive(ctx context.Context, record bool) error {
	final, err := tea.NewProgram(NewLiveModel(), tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("live view: %w", err)
	}
	m, ok := final.(LiveModel)
	if !ok || !record || len(m.Submitted) == 0 {
		return nil
	}

	runner, err := c.newRunner(ctx, runnerOpts{})
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	for _, e := range m.Submitted {
		if _, err := runner.Analyze(ctx, e.Input, pipeline.Options{Record: true, Logger: loggerFromContext(ctx)}); err != nil {
			return err
		}
	}
	printSuccess("Recorded %d expressions", len(m.Submitted))
	return nil
}
