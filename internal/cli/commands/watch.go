package commands

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	sqlerrors "github.com/sqlparse/sqlparse/compiler/errors"
	"github.com/sqlparse/sqlparse/internal/cli/ui"
	"github.com/sqlparse/sqlparse/internal/watch"
)

// NewWatchCommand creates the watch command
func NewWatchCommand(app *App) *cobra.Command {
	var (
		patterns []string
		delay    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch [dir...]",
		Short: "Re-check SQL files as they change",
		Long: `Watch directories for changes to SQL files and parse every statement of
each changed file, as the batch command does.

Directories are watched recursively; hidden directories are skipped.
Press Ctrl+C to stop.`,
		Example: `  sqlparse watch
  sqlparse watch queries/ reports/
  sqlparse watch --pattern "*.sql" --pattern "*.ddl"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := watch.New(watch.Config{
				Dirs:     args,
				Patterns: patterns,
				Delay:    delay,
			}, app.Logger.Named("watch"), func(files []string) {
				checkChanged(cmd, app, files)
			})
			if err != nil {
				return err
			}
			if err := w.Start(); err != nil {
				_ = w.Stop()
				return err
			}
			defer w.Stop()

			ui.WriteSuccess(cmd.OutOrStdout(), "Watching for changes (Ctrl+C to stop)", app.colorless())

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigCh)

			select {
			case <-sigCh:
			case <-cmd.Context().Done():
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&patterns, "pattern", "p", []string{"*.sql"}, "File name pattern to watch (repeatable)")
	cmd.Flags().DurationVar(&delay, "delay", watch.DefaultDelay, "Wait this long for writes to settle")

	return cmd
}

// checkChanged parses every statement of each changed file. Failures are
// reported and never stop the watcher.
func checkChanged(cmd *cobra.Command, app *App, files []string) {
	out := cmd.OutOrStdout()

	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			// Removed or renamed before we got to it
			app.Logger.Debug("skipping unreadable file", zap.String("file", file), zap.Error(err))
			continue
		}

		ui.Header(out, file, app.colorless())
		err = runBatch(cmd, app, string(data), sqlerrors.MaxErrors)
		if err != nil && !errors.Is(err, errReported) {
			fmt.Fprint(cmd.ErrOrStderr(), ui.FormatError(ui.ErrorOptions{
				Context: "check failed",
				Problem: err.Error(),
				NoColor: app.colorless(),
			}))
		}
		fmt.Fprintln(out)
	}
}
