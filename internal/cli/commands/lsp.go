package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sqlparse/sqlparse/internal/format"
	"github.com/sqlparse/sqlparse/internal/lsp"
)

// NewLSPCommand creates the lsp command
func NewLSPCommand(app *App) *cobra.Command {
	var style string

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		Long: `Start the sqlparse Language Server Protocol (LSP) server.

The server provides editor integration for .sql files:
  • Parse diagnostics for every statement as you type
  • Keyword completion
  • Document formatting

The LSP server communicates via JSON-RPC over stdin/stdout.
It is typically started automatically by your editor.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := format.LoadConfig(style)
			if err != nil {
				return fmt.Errorf("failed to load style: %w", err)
			}

			server := lsp.NewServer(
				lsp.WithLogger(app.Logger.Named("lsp")),
				lsp.WithParser(app.parse),
				lsp.WithFormatConfig(config),
			)

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			// Handle signals for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigCh)
			go func() {
				select {
				case <-sigCh:
					cancel()
				case <-ctx.Done():
				}
			}()

			return server.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&style, "style", ".sqlparse-format.yml", "Formatting style file")

	return cmd
}
