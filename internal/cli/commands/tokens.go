package commands

import (
	"encoding/json"
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/sqlparse/sqlparse/compiler/lexer"
	"github.com/sqlparse/sqlparse/internal/cli/config"
	"github.com/sqlparse/sqlparse/internal/cli/ui"
)

type tokenJSON struct {
	Kind   string `json:"kind"`
	Lexeme string `json:"lexeme"`
	Start  int    `json:"start"`
	End    int    `json:"end"`
}

// NewTokensCommand creates the tokens command
func NewTokensCommand(app *App) *cobra.Command {
	var (
		file    string
		showEOF bool
	)

	cmd := &cobra.Command{
		Use:   "tokens [query]",
		Short: "Print the tokens of a query",
		Long: `Tokenize SQL text and print each token with its kind and byte span.

Whitespace, comments and characters outside the language are skipped.`,
		Example: `  sqlparse tokens "SELECT a FROM t -- comment"
  sqlparse tokens --format json -f query.sql`,
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readInput(cmd, args, file)
			if err != nil {
				fmt.Fprint(cmd.ErrOrStderr(), ui.InputError(err, app.colorless()))
				return errReported
			}

			tokens := lexer.Tokenize(source)
			if !showEOF {
				tokens = lo.Filter(tokens, func(t lexer.Token, _ int) bool {
					return t.Type != lexer.TOKEN_EOF
				})
			}
			return writeTokens(cmd, app, tokens)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read the query from a file")
	cmd.Flags().BoolVar(&showEOF, "eof", false, "Include the trailing EOF token")

	return cmd
}

func writeTokens(cmd *cobra.Command, app *App, tokens []lexer.Token) error {
	out := cmd.OutOrStdout()

	if app.outputFormat() == config.FormatJSON {
		rows := lo.Map(tokens, func(t lexer.Token, _ int) tokenJSON {
			return tokenJSON{Kind: t.Type.String(), Lexeme: t.Lexeme, Start: t.Start, End: t.End}
		})
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode tokens: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	table := ui.NewTable(out, []string{"KIND", "LEXEME", "SPAN"}, &ui.TableOptions{NoColor: app.colorless()})
	for _, t := range tokens {
		table.AddRow(t.Type.String(), t.Lexeme, fmt.Sprintf("%d..%d", t.Start, t.End))
	}
	table.Render()
	return nil
}
