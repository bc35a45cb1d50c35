package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/sqlparse/sqlparse/internal/cli/ui"
)

// Output formats understood by the parse and batch commands
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatDebug = "debug"
)

// Formats lists the valid output.format values
var Formats = []string{FormatText, FormatJSON, FormatDebug}

// Log levels understood by the logger
var LogLevels = []string{"debug", "info", "warn", "error"}

// Config represents the sqlparse configuration
type Config struct {
	Output OutputConfig `mapstructure:"output"`
	Log    LogConfig    `mapstructure:"log"`
	Cache  CacheConfig  `mapstructure:"cache"`
	Batch  BatchConfig  `mapstructure:"batch"`
	Server ServerConfig `mapstructure:"server"`
}

// OutputConfig controls how results are printed
type OutputConfig struct {
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// LogConfig controls the zap logger
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// CacheConfig sizes the parse-result cache
type CacheConfig struct {
	Enabled     bool  `mapstructure:"enabled"`
	MaxCost     int64 `mapstructure:"max_cost"`
	NumCounters int64 `mapstructure:"num_counters"`
}

// BatchConfig controls script parsing
type BatchConfig struct {
	// Show at most this many errors
	MaxErrors int `mapstructure:"max_errors"`
}

// ServerConfig controls the HTTP API started by the serve command
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Load loads the configuration from sqlparse.yml or sqlparse.yaml in the
// working directory, if present
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile loads the configuration from path. An empty path searches the
// working directory for sqlparse.yml. Environment variables prefixed with
// SQLPARSE_ override file values (SQLPARSE_OUTPUT_FORMAT=json).
func LoadFile(path string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("output.format", FormatText)
	v.SetDefault("output.color", true)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.development", false)
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.max_cost", 64<<20)
	v.SetDefault("cache.num_counters", 100000)
	v.SetDefault("batch.max_errors", 100)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", "30s")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("sqlparse")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	// Enable environment variable support
	v.SetEnvPrefix("sqlparse")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// ValidateFormat checks an output format, suggesting the closest valid one
func ValidateFormat(format string) error {
	return validateChoice("output.format", format, Formats)
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	cfg.Output.Format = strings.ToLower(cfg.Output.Format)
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)

	if err := ValidateFormat(cfg.Output.Format); err != nil {
		return err
	}
	if err := validateChoice("log.level", cfg.Log.Level, LogLevels); err != nil {
		return err
	}
	if cfg.Cache.MaxCost <= 0 {
		return fmt.Errorf("cache.max_cost must be positive, got: %d", cfg.Cache.MaxCost)
	}
	if cfg.Cache.NumCounters <= 0 {
		return fmt.Errorf("cache.num_counters must be positive, got: %d", cfg.Cache.NumCounters)
	}
	if cfg.Batch.MaxErrors < 0 {
		return fmt.Errorf("batch.max_errors must not be negative, got: %d", cfg.Batch.MaxErrors)
	}
	if cfg.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be positive, got: %s", cfg.Server.ShutdownTimeout)
	}
	return nil
}

func validateChoice(key, value string, choices []string) error {
	for _, c := range choices {
		if value == c {
			return nil
		}
	}

	if best := ui.FindBestMatch(value, choices, nil); best != "" {
		return fmt.Errorf("invalid %s %q (did you mean %q?)", key, value, best)
	}
	return fmt.Errorf("invalid %s %q, must be one of: %s", key, value, strings.Join(choices, ", "))
}
