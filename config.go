package locpattern

import (
	"fmt"
	"os"
	"regexp"
	"strconv"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

// EnvMaxNodes overrides Config.MaxNodes when set.
const EnvMaxNodes = "LOCPATTERN_MAX_NODES"

// Config represents the locpattern configuration
type Config struct {
	MaxNodes       int          `yaml:"max_nodes"`
	NormalizeWidth bool         `yaml:"normalize_width"`
	Output         OutputConfig `yaml:"output"`
	Log            LogConfig    `yaml:"log"`
}

// OutputConfig represents CLI output settings
type OutputConfig struct {
	Format string `yaml:"format"` // tree, json, yaml, xml, csv
	Color  string `yaml:"color"`  // auto, always, never
}

// LogConfig represents diagnostic logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Options converts the configuration into expander options.
func (c *Config) Options() Options {
	return Options{
		MaxNodes:       c.MaxNodes,
		NormalizeWidth: c.NormalizeWidth,
	}
}

// LoadConfig loads configuration from the specified file
func LoadConfig(configPath string) (*Config, error) {
	// Load .env files first
	err := loadEnvFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to load environment files: %w", err)
	}

	// Check if config file exists
	_, err = os.Stat(configPath)
	if os.IsNotExist(err) {
		config := getDefaultConfig()
		expandConfigEnvVars(config)

		if err := applyEnvOverrides(config); err != nil {
			return nil, err
		}

		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return ParseConfig(data)
}

// ParseConfig parses YAML configuration. Unknown keys are rejected.
func ParseConfig(data []byte) (*Config, error) {
	var config Config

	err := yaml.UnmarshalWithOptions(data, &config, yaml.Strict())
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&config)
	expandConfigEnvVars(&config)

	if err := applyEnvOverrides(&config); err != nil {
		return nil, err
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// validateConfig validates the configuration for common errors and inconsistencies
func validateConfig(config *Config) error {
	if config.MaxNodes < 0 {
		return fmt.Errorf("%w: max_nodes must be non-negative, got %d", ErrConfigValidation, config.MaxNodes)
	}

	validFormats := map[string]bool{
		"tree": true,
		"json": true,
		"yaml": true,
		"xml":  true,
		"csv":  true,
	}
	if !validFormats[config.Output.Format] {
		return fmt.Errorf("%w: output.format '%s' is invalid: must be one of tree, json, yaml, xml, csv", ErrConfigValidation, config.Output.Format)
	}

	validColors := map[string]bool{
		"auto":   true,
		"always": true,
		"never":  true,
	}
	if !validColors[config.Output.Color] {
		return fmt.Errorf("%w: output.color '%s' is invalid: must be one of auto, always, never", ErrConfigValidation, config.Output.Color)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[config.Log.Level] {
		return fmt.Errorf("%w: log.level '%s' is invalid: must be one of debug, info, warn, error", ErrConfigValidation, config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("%w: log.format '%s' is invalid: must be text or json", ErrConfigValidation, config.Log.Format)
	}

	return nil
}

// getDefaultConfig returns the default configuration
func getDefaultConfig() *Config {
	return &Config{
		MaxNodes:       DefaultMaxNodes,
		NormalizeWidth: false,
		Output: OutputConfig{
			Format: "tree",
			Color:  "auto",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// applyDefaults applies default values to missing configuration fields
func applyDefaults(config *Config) {
	if config.MaxNodes == 0 {
		config.MaxNodes = DefaultMaxNodes
	}

	if config.Output.Format == "" {
		config.Output.Format = "tree"
	}

	if config.Output.Color == "" {
		config.Output.Color = "auto"
	}

	if config.Log.Level == "" {
		config.Log.Level = "info"
	}

	if config.Log.Format == "" {
		config.Log.Format = "text"
	}
}

func applyEnvOverrides(config *Config) error {
	value, ok := os.LookupEnv(EnvMaxNodes)
	if !ok || value == "" {
		return nil
	}

	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return fmt.Errorf("%w: %s must be a non-negative integer, got %q", ErrConfigValidation, EnvMaxNodes, value)
	}

	if n == 0 {
		n = DefaultMaxNodes
	}

	config.MaxNodes = n

	return nil
}

// loadEnvFiles loads .env files if they exist
func loadEnvFiles() error {
	for _, name := range []string{".env", ".env.local"} {
		if !fileExists(name) {
			continue
		}

		err := godotenv.Load(name)
		if err != nil {
			return fmt.Errorf("failed to load %s file: %w", name, err)
		}
	}

	return nil
}

var (
	bracedEnvVar = regexp.MustCompile(`\$\{([^}]+)\}`)
	bareEnvVar   = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
)

// expandEnvVars expands environment variables in the format ${VAR} or $VAR
func expandEnvVars(s string) string {
	s = bracedEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[2 : len(match)-1])
	})

	return bareEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[1:])
	})
}

// expandConfigEnvVars expands environment variables in string settings
func expandConfigEnvVars(config *Config) {
	config.Output.Format = expandEnvVars(config.Output.Format)
	config.Output.Color = expandEnvVars(config.Output.Color)
	config.Log.Level = expandEnvVars(config.Log.Level)
	config.Log.Format = expandEnvVars(config.Log.Format)
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
