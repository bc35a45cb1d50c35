package commands

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	cmd, _ := newRootCommand(&App{})
	return cmd
}

func newRootCommand(app *App) (*cobra.Command, *App) {
	rootCmd := &cobra.Command{
		Use:   "sqlparse",
		Short: "Parse and check SQL queries",
		Long: color.CyanString(`sqlparse - SQL query parser and checker

Parses a subset of SQL into a syntax tree and explains parse failures
with the position, the expected tokens and a keyword suggestion.

Supported:
  • SELECT projections with FROM and WHERE
  • WITH [RECURSIVE] common table expressions
  • UNION and UNION ALL
  • Arithmetic, comparison and logical expressions`),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&app.configPath, "config", "", "Path to config file (default: ./sqlparse.yml)")
	flags.StringVar(&app.format, "format", "", "Output format: text, json or debug")
	flags.StringVar(&app.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	flags.BoolVar(&app.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(NewParseCommand(app))
	rootCmd.AddCommand(NewCheckCommand(app))
	rootCmd.AddCommand(NewTokensCommand(app))
	rootCmd.AddCommand(NewBatchCommand(app))
	rootCmd.AddCommand(NewFormatCommand(app))
	rootCmd.AddCommand(NewLSPCommand(app))
	rootCmd.AddCommand(NewWatchCommand(app))
	rootCmd.AddCommand(NewServeCommand(app))

	return rootCmd, app
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display the sqlparse version, Git commit, build date, and Go version",
		// The version command needs no configuration
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			goVer := GoVersion
			if goVer == "unknown" {
				goVer = runtime.Version()
			}

			titleColor := color.New(color.FgCyan, color.Bold)
			out := cmd.OutOrStdout()

			titleColor.Fprint(out, "sqlparse version: ")
			fmt.Fprintln(out, Version)
			titleColor.Fprint(out, "Git commit: ")
			fmt.Fprintln(out, GitCommit)
			titleColor.Fprint(out, "Build date: ")
			fmt.Fprintln(out, BuildDate)
			titleColor.Fprint(out, "Go version: ")
			fmt.Fprintln(out, goVer)
		},
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd, app := newRootCommand(&App{})
	defer app.Close()

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			errorColor := color.New(color.FgRed, color.Bold)
			errorColor.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		}
		return err
	}
	return nil
}
