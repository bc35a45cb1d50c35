package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sqlparse/sqlparse/internal/cli/ui"
	"github.com/sqlparse/sqlparse/internal/format"
)

// NewFormatCommand creates the format command
func NewFormatCommand(app *App) *cobra.Command {
	var (
		file  string
		write bool
		check bool
		diff  bool
		style string
	)

	cmd := &cobra.Command{
		Use:   "format [query]",
		Short: "Format SQL statements",
		Long: `Format SQL statements with one clause per line.

Each ';'-separated statement is formatted and terminated with ';'.
Comments are not preserved. Style options are read from the "format"
section of the --style file (indent_size, keyword_case).

Examples:
  sqlparse format "select a,b from t where a>1"
  sqlparse format -f query.sql --diff     # Show what would change
  sqlparse format -f query.sql --write    # Rewrite the file
  sqlparse format -f query.sql --check    # Exit 1 if not formatted`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if write && file == "" {
				return errors.New("--write requires --file")
			}

			config, err := format.LoadConfig(style)
			if err != nil {
				return fmt.Errorf("failed to load style: %w", err)
			}

			source, err := readInput(cmd, args, file)
			if err != nil {
				fmt.Fprint(cmd.ErrOrStderr(), ui.InputError(err, app.colorless()))
				return errReported
			}

			formatted, err := format.New(config).FormatScript(source)
			if err != nil {
				fmt.Fprint(cmd.ErrOrStderr(), ui.FormatError(ui.ErrorOptions{
					Context: "format failed",
					Problem: err.Error(),
					HelpCommands: []string{
						"Locate the error: sqlparse batch " + displayName(file),
					},
					NoColor: app.colorless(),
				}))
				return errReported
			}

			name := displayName(file)
			result := format.Diff(source, formatted)
			app.Logger.Debug("formatted", zap.String("input", name), zap.Bool("changed", result.Changed))

			out := cmd.OutOrStdout()
			switch {
			case check:
				if result.Changed {
					fmt.Fprint(out, ui.Warning(name+" is not formatted ("+result.Stats()+")", app.colorless()))
					return errReported
				}
				ui.WriteSuccess(out, name+" is formatted", app.colorless())
			case diff:
				fmt.Fprint(out, result.UnifiedDiff(name))
			case write:
				if !result.Changed {
					return nil
				}
				if err := os.WriteFile(file, []byte(formatted), 0644); err != nil {
					return fmt.Errorf("failed to write %s: %w", file, err)
				}
				ui.WriteSuccess(out, "formatted "+file, app.colorless())
			default:
				fmt.Fprint(out, formatted)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read statements from a file")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write the result back to --file")
	cmd.Flags().BoolVarP(&check, "check", "c", false, "Exit non-zero if the input is not formatted")
	cmd.Flags().BoolVar(&diff, "diff", false, "Show a diff instead of the formatted text")
	cmd.Flags().StringVar(&style, "style", ".sqlparse-format.yml", "Path to the formatting style file")

	return cmd
}

func displayName(file string) string {
	if file == "" {
		return "<stdin>"
	}
	return file
}
