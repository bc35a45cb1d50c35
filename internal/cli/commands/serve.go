package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sqlparse/sqlparse/internal/api"
	"github.com/sqlparse/sqlparse/internal/cli/ui"
	"github.com/sqlparse/sqlparse/internal/format"
)

// NewServeCommand creates the serve command
func NewServeCommand(app *App) *cobra.Command {
	var (
		addr  string
		style string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the parser over HTTP",
		Long: `Start an HTTP server exposing the parser as a JSON API.

Endpoints (all POST bodies are {"sql": "..."}):
  GET  /healthz      Liveness check
  POST /v1/parse     Parse one statement (422 with the diagnostic on failure)
  POST /v1/check     Parse every statement of a script
  POST /v1/tokens    Tokenize
  POST /v1/format    Format a script

The listen address defaults to server.addr from the config file.`,
		Example: `  sqlparse serve
  sqlparse serve --addr 127.0.0.1:9090
  curl -s -H 'Content-Type: application/json' \
    -d '{"sql":"SELECT * FORM t"}' localhost:8080/v1/parse`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := format.LoadConfig(style)
			if err != nil {
				return fmt.Errorf("failed to load style: %w", err)
			}

			serverConfig := api.ServerConfig{
				Addr:            app.Config.Server.Addr,
				ShutdownTimeout: app.Config.Server.ShutdownTimeout,
			}
			if cmd.Flags().Changed("addr") {
				serverConfig.Addr = addr
			}

			logger := app.Logger.Named("api")
			handler := api.NewHandler(
				api.WithLogger(logger),
				api.WithParser(app.parse),
				api.WithFormatConfig(config),
			)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ui.WriteSuccess(cmd.OutOrStdout(), "Starting server on "+serverConfig.Addr, app.colorless())
			return api.NewServer(serverConfig, handler, logger).ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: server.addr)")
	cmd.Flags().StringVar(&style, "style", ".sqlparse-format.yml", "Formatting style file")

	return cmd
}
