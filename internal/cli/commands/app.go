package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sqlparse/sqlparse/compiler/parser"
	"github.com/sqlparse/sqlparse/internal/cache"
	"github.com/sqlparse/sqlparse/internal/cli/config"
	"github.com/sqlparse/sqlparse/internal/cli/ui"
	"github.com/sqlparse/sqlparse/internal/logging"
)

// errReported is returned by commands that have already written their
// diagnostics. Execute exits non-zero without printing it again.
var errReported = errors.New("failed")

// App holds the state shared by every subcommand of one invocation
type App struct {
	Config *config.Config
	Logger *zap.Logger

	cache *cache.ParseCache

	// persistent flags
	configPath string
	format     string
	logLevel   string
	noColor    bool
}

// setup loads configuration and applies flag overrides. It runs before
// every subcommand.
func (a *App) setup(cmd *cobra.Command) error {
	cfg, err := config.LoadFile(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		format := strings.ToLower(a.format)
		if err := config.ValidateFormat(format); err != nil {
			fmt.Fprint(cmd.ErrOrStderr(),
				ui.InvalidChoiceError("format", a.format, config.Formats, cmd.Name(), a.noColor || !cfg.Output.Color))
			return errReported
		}
		cfg.Output.Format = format
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = strings.ToLower(a.logLevel)
	}
	if a.noColor || !cfg.Output.Color {
		cfg.Output.Color = false
		color.NoColor = true
	}
	a.Config = cfg

	if a.Logger == nil {
		logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
		if err != nil {
			return err
		}
		a.Logger = logger
	}

	if cfg.Cache.Enabled && a.cache == nil {
		pc, err := cache.New(cache.Config{
			MaxCost:     cfg.Cache.MaxCost,
			NumCounters: cfg.Cache.NumCounters,
		}, a.Logger)
		if err != nil {
			return err
		}
		a.cache = pc
	}

	a.Logger.Debug("configuration loaded",
		zap.String("format", cfg.Output.Format),
		zap.Bool("cache", cfg.Cache.Enabled))
	return nil
}

// Close releases the parse cache and flushes the logger
func (a *App) Close() {
	if a.cache != nil {
		a.cache.Close()
		a.cache = nil
	}
	if a.Logger != nil {
		_ = a.Logger.Sync()
	}
}

// parse parses one statement, through the cache when it is enabled
func (a *App) parse(source string) (*parser.Statement, error) {
	if a.cache != nil {
		return a.cache.Parse(source)
	}
	return parser.Parse(source, parser.WithLogger(a.Logger))
}

func (a *App) outputFormat() string {
	if a.Config == nil {
		return config.FormatText
	}
	return a.Config.Output.Format
}

func (a *App) colorless() bool {
	return a.Config == nil || !a.Config.Output.Color
}

// readInput returns the SQL text for a command: the joined arguments, the
// contents of file, or stdin, in that order of preference
func readInput(cmd *cobra.Command, args []string, file string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", file, err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", errors.New("no SQL input")
	}
	return string(data), nil
}
