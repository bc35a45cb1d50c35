package format

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Keyword cases
const (
	KeywordUpper = "upper"
	KeywordLower = "lower"
)

// Config represents formatting configuration options
type Config struct {
	IndentSize  int    `yaml:"indent_size"`
	KeywordCase string `yaml:"keyword_case"`
}

// DefaultConfig returns the default formatting configuration
func DefaultConfig() *Config {
	return &Config{
		IndentSize:  2,
		KeywordCase: KeywordUpper,
	}
}

// LoadConfig loads formatting configuration from the "format" section of a
// YAML file. A missing file yields the default configuration.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}

	var wrapper struct {
		Format Config `yaml:"format"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("invalid format config %s: %w", path, err)
	}

	config := &wrapper.Format
	if config.IndentSize == 0 {
		config.IndentSize = 2
	}
	if config.KeywordCase == "" {
		config.KeywordCase = KeywordUpper
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid format config %s: %w", path, err)
	}
	return config, nil
}

// SaveConfig saves the formatting configuration to a file
func SaveConfig(path string, config *Config) error {
	wrapper := struct {
		Format Config `yaml:"format"`
	}{
		Format: *config,
	}

	data, err := yaml.Marshal(wrapper)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the option values
func (c *Config) Validate() error {
	if c.IndentSize < 0 || c.IndentSize > 8 {
		return fmt.Errorf("indent_size must be between 0 and 8, got: %d", c.IndentSize)
	}
	switch strings.ToLower(c.KeywordCase) {
	case KeywordUpper, KeywordLower:
		c.KeywordCase = strings.ToLower(c.KeywordCase)
		return nil
	default:
		return fmt.Errorf("keyword_case must be %q or %q, got: %q", KeywordUpper, KeywordLower, c.KeywordCase)
	}
}
