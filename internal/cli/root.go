package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/bigo/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// The root command loads the configuration file before any subcommand runs.
// Callers that add their own PersistentPreRunE must call the original one.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "bigo classifies the asymptotic growth of expressions",
		Long: `bigo reads an expression in n, such as "t(n)=3n^2 + 5n log(n) + 2^n",
and reports its Big-O class together with the steps that led there.

Input is forgiving: implicit multiplication (3n, n(n+1)), superscripts (n²),
"x" or "×" for multiplication and a leading "t(n)=" are all accepted.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/bigo/config.toml)")

	// Register all subcommands
	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.normalizeCommand())
	root.AddCommand(c.tokensCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.batchCommand())
	root.AddCommand(c.liveCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.mcpCommand())
	root.AddCommand(c.historyCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}
