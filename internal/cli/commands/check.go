package commands

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	sqlerrors "github.com/sqlparse/sqlparse/compiler/errors"
	"github.com/sqlparse/sqlparse/internal/cli/config"
	"github.com/sqlparse/sqlparse/internal/cli/ui"
)

type checkInput struct {
	name   string
	source string
}

// NewCheckCommand creates the check command
func NewCheckCommand(app *App) *cobra.Command {
	var (
		files []string
		quiet bool
	)

	cmd := &cobra.Command{
		Use:   "check [query]",
		Short: "Check that queries parse",
		Long: `Check one or more SQL statements for syntax errors.

Each --file holds one statement. Without files the query is read from the
arguments or stdin. The exit status is non-zero if any input fails.`,
		Example: `  sqlparse check "SELECT * FROM t"
  sqlparse check -f a.sql -f b.sql
  sqlparse check --quiet -f query.sql && echo ok`,
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := checkInputs(cmd, args, files)
			if err != nil {
				fmt.Fprint(cmd.ErrOrStderr(), ui.InputError(err, app.colorless()))
				return errReported
			}
			return runCheck(cmd, app, inputs, quiet)
		},
	}

	cmd.Flags().StringSliceVarP(&files, "file", "f", nil, "Statement file to check (repeatable)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Print nothing, report through the exit status")

	return cmd
}

func checkInputs(cmd *cobra.Command, args []string, files []string) ([]checkInput, error) {
	if len(args) > 0 || len(files) == 0 {
		source, err := readInput(cmd, args, "")
		if err != nil {
			return nil, err
		}
		return []checkInput{{name: "query", source: source}}, nil
	}

	inputs := make([]checkInput, 0, len(files))
	for _, file := range lo.Uniq(files) {
		source, err := readInput(cmd, nil, file)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, checkInput{name: file, source: source})
	}
	return inputs, nil
}

func runCheck(cmd *cobra.Command, app *App, inputs []checkInput, quiet bool) error {
	out := cmd.OutOrStdout()
	collector := sqlerrors.NewCollector(len(inputs))

	for i, in := range inputs {
		_, err := app.parse(in.source)

		var perr *sqlerrors.ParseError
		if err != nil && !errors.As(err, &perr) {
			return err
		}
		collector.Record(i+1, perr)

		if quiet || app.outputFormat() == config.FormatJSON {
			continue
		}
		if perr == nil {
			ui.WriteSuccess(out, in.name+": valid", app.colorless())
			continue
		}
		fmt.Fprintf(out, "%s:\n%s", in.name, perr.FormatForTerminal())
	}

	app.Logger.Info("check finished",
		zap.Int("inputs", collector.StatementCount()),
		zap.Int("errors", collector.ErrorCount()))

	if !quiet && app.outputFormat() == config.FormatJSON {
		data, err := collector.FormatAsJSON()
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		fmt.Fprintln(out, data)
	}

	if collector.HasErrors() {
		return errReported
	}
	return nil
}
