package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	sqlerrors "github.com/sqlparse/sqlparse/compiler/errors"
	"github.com/sqlparse/sqlparse/compiler/parser"
	"github.com/sqlparse/sqlparse/internal/cli/config"
	"github.com/sqlparse/sqlparse/internal/cli/ui"
)

// NewBatchCommand creates the batch command
func NewBatchCommand(app *App) *cobra.Command {
	var maxErrors int

	cmd := &cobra.Command{
		Use:   "batch [script]",
		Short: "Parse every statement of a SQL script",
		Long: `Split a script into statements at ';' and parse each one.

Semicolons inside string literals and comments do not split. Error
positions are relative to the statement; the statement's starting line is
shown alongside. At most --max-errors errors are reported; the rest are
only counted in the summary.`,
		Example: `  sqlparse batch schema_queries.sql
  cat queries.sql | sqlparse batch --format json
  sqlparse batch --max-errors 5 big.sql`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := ""
			if len(args) == 1 {
				file = args[0]
			}
			source, err := readInput(cmd, nil, file)
			if err != nil {
				fmt.Fprint(cmd.ErrOrStderr(), ui.InputError(err, app.colorless()))
				return errReported
			}

			limit := app.Config.Batch.MaxErrors
			if cmd.Flags().Changed("max-errors") {
				limit = maxErrors
			}
			return runBatch(cmd, app, source, limit)
		},
	}

	cmd.Flags().IntVar(&maxErrors, "max-errors", sqlerrors.MaxErrors, "Show at most this many errors")

	return cmd
}

func runBatch(cmd *cobra.Command, app *App, source string, maxErrors int) error {
	runID := uuid.New().String()
	logger := app.Logger.With(zap.String("run_id", runID))
	started := time.Now()

	segments := parser.SplitStatements(source)
	logger.Info("batch started", zap.Int("statements", len(segments)))

	collector := sqlerrors.NewCollector(maxErrors)
	lines := make(map[int]int, len(segments))
	for i, seg := range segments {
		n := i + 1
		_, err := app.parse(seg.Text)

		var perr *sqlerrors.ParseError
		if err != nil && !errors.As(err, &perr) {
			return err
		}
		if perr != nil {
			lines[n] = seg.Line
			logger.Debug("statement failed",
				zap.Int("statement", n),
				zap.Int("line", seg.Line),
				zap.String("code", perr.Code))
		}
		wasFull := collector.Full()
		collector.Record(n, perr)
		if !wasFull && collector.Full() {
			logger.Warn("error limit reached", zap.Int("max_errors", maxErrors), zap.Int("statement", n))
		}
	}

	fields := []zap.Field{
		zap.Int("statements", collector.StatementCount()),
		zap.Int("errors", collector.TotalErrors()),
		zap.Duration("elapsed", time.Since(started)),
	}
	if app.cache != nil {
		stats := app.cache.Stats()
		fields = append(fields, zap.Uint64("cache_hits", stats.Hits), zap.Uint64("cache_misses", stats.Misses))
	}
	logger.Info("batch finished", fields...)

	out := cmd.OutOrStdout()
	if app.outputFormat() == config.FormatJSON {
		data, err := collector.FormatAsJSON()
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		fmt.Fprintln(out, data)
	} else {
		writeBatchText(cmd, app, collector, lines)
	}

	if collector.HasErrors() {
		return errReported
	}
	return nil
}

func writeBatchText(cmd *cobra.Command, app *App, collector *sqlerrors.Collector, lines map[int]int) {
	out := cmd.OutOrStdout()

	for i, se := range collector.Errors() {
		if i > 0 {
			fmt.Fprintln(out)
		}
		ui.Header(out, fmt.Sprintf("Statement %d (line %d)", se.Statement, lines[se.Statement]), app.colorless())
		fmt.Fprint(out, se.FormatForTerminal())
	}
	if collector.HasErrors() {
		fmt.Fprintln(out)
	}

	summary := ui.NewKeyValueTable(out, app.colorless())
	summary.AddRow("Statements", fmt.Sprint(collector.StatementCount()))
	summary.AddRow("Errors", fmt.Sprint(collector.TotalErrors()))
	summary.Render()

	if collector.Truncated() {
		fmt.Fprint(out, ui.Warning("error limit reached, further errors were not shown", app.colorless()))
	}
}
