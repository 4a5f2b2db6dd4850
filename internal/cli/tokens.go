package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bigo/pkg/core/syntax"
	errs "github.com/matzehuels/bigo/pkg/errors"
)

// tokensCommand creates the tokens command.
func (c *CLI) tokensCommand() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "tokens <expression...>",
		Short: "Dump the token stream of an expression",
		Long: `Dump the token stream of an expression.

The expression is normalized first unless --raw is given. Implicit
multiplication tokens inserted by the lexer are marked.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := strings.Join(args, " ")
			if err := errs.ValidateInput(input); err != nil {
				return err
			}
			if !raw {
				input = syntax.Normalize(input)
			}
			tokens, err := syntax.Tokenize(input)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), StyleDim.Render(input))
			fmt.Fprintln(cmd.OutOrStdout(), tokenTable(tokens).Render())
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "tokenize the input as given, without normalizing")
	return cmd
}

// tokenTable lists tokens with their kind, text, value and position.
func tokenTable(tokens []syntax.Token) *table.Table {
	rows := make([][]string, 0, len(tokens))
	for i, tok := range tokens {
		if tok.Kind == syntax.EOF {
			continue
		}
		value := ""
		switch tok.Kind {
		case syntax.Number, syntax.Log:
			value = strconv.FormatFloat(tok.Value, 'g', 6, 64)
		}
		pos := strconv.Itoa(tok.Pos)
		text := tok.Text
		if isImplicitMul(tokens, i) {
			text += " " + StyleDim.Render("(implicit)")
		}
		rows = append(rows, []string{pos, tok.Kind.String(), text, value})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Pos", "Kind", "Text", "Value").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 0 || col == 3 {
				return cellStyle.Foreground(colorDim)
			}
			return cellStyle
		})
}

// isImplicitMul reports whether tokens[i] was inserted by the lexer. Inserted
// multiplications share the position of the token that follows them.
func isImplicitMul(tokens []syntax.Token, i int) bool {
	return tokens[i].Kind == syntax.Mul && i+1 < len(tokens) && tokens[i+1].Pos == tokens[i].Pos
}
