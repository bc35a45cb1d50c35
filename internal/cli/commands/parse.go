package commands

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	sqlerrors "github.com/sqlparse/sqlparse/compiler/errors"
	"github.com/sqlparse/sqlparse/compiler/parser"
	"github.com/sqlparse/sqlparse/internal/cli/config"
	"github.com/sqlparse/sqlparse/internal/cli/ui"
)

// parseOutput is the JSON document written by parse --format json
type parseOutput struct {
	Status string                `json:"status"`
	SQL    string                `json:"sql,omitempty"`
	AST    string                `json:"ast,omitempty"`
	Error  *sqlerrors.ParseError `json:"error,omitempty"`
}

// NewParseCommand creates the parse command
func NewParseCommand(app *App) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "parse [query]",
		Short: "Parse a query and print its syntax tree",
		Long: `Parse a single SQL statement and print the result.

The query is read from the arguments, from --file, or from stdin.

Output formats:
  text   the normalized query, fully parenthesized
  debug  the syntax tree with node and field names
  json   a document with the query, the tree or the error`,
		Example: `  # Print the normalized query
  sqlparse parse "SELECT a + b * 2 FROM t WHERE a > 1"

  # Show the syntax tree
  sqlparse parse --format debug "SELECT * FROM users"

  # Machine readable output
  sqlparse parse --format json -f query.sql`,
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readInput(cmd, args, file)
			if err != nil {
				fmt.Fprint(cmd.ErrOrStderr(), ui.InputError(err, app.colorless()))
				return errReported
			}
			return runParse(cmd, app, source)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read the query from a file")

	return cmd
}

func runParse(cmd *cobra.Command, app *App, source string) error {
	stmt, err := app.parse(source)

	var perr *sqlerrors.ParseError
	if err != nil && !errors.As(err, &perr) {
		return err
	}
	if perr != nil {
		app.Logger.Info("parse failed",
			zap.String("code", perr.Code),
			zap.Int("line", perr.Line),
			zap.Int("column", perr.Column))
	}

	out := cmd.OutOrStdout()
	switch app.outputFormat() {
	case config.FormatJSON:
		doc := parseOutput{Status: "success"}
		if perr != nil {
			doc.Status = "error"
			doc.Error = perr
		} else {
			doc.SQL = stmt.String()
			doc.AST = parser.Dump(stmt)
		}
		data, jerr := json.MarshalIndent(doc, "", "  ")
		if jerr != nil {
			return fmt.Errorf("failed to encode result: %w", jerr)
		}
		fmt.Fprintln(out, string(data))
	case config.FormatDebug:
		if perr == nil {
			fmt.Fprintln(out, parser.Dump(stmt))
		}
	default:
		if perr == nil {
			fmt.Fprintln(out, stmt.String())
		}
	}

	if perr != nil {
		if app.outputFormat() != config.FormatJSON {
			fmt.Fprint(cmd.ErrOrStderr(), perr.FormatForTerminal())
		}
		return errReported
	}
	return nil
}
