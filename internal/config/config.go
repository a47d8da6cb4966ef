// Package config provides Viper-based configuration loading for levelmetrics.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// AnalysisConfig holds metric engine settings.
type AnalysisConfig struct {
	// DifficultyCurveInterval is the bucket width, in hops, of the difficulty curve.
	DifficultyCurveInterval int `mapstructure:"difficulty_curve_interval"`
	// IconsFile is an optional YAML icon set. Empty means the default icons.
	IconsFile string `mapstructure:"icons_file"`
}

// BatchConfig holds settings for analyzing many levels at once.
type BatchConfig struct {
	// Workers is the maximum number of levels analyzed concurrently.
	Workers int `mapstructure:"workers"`
}

// FilterConfig holds the structural rules applied to each level and the
// optional Lua predicate script.
type FilterConfig struct {
	MinRows       int  `mapstructure:"min_rows"`
	RequireBorder bool `mapstructure:"require_border"`
	RequireEntry  bool `mapstructure:"require_entry"`
	RequireExit   bool `mapstructure:"require_exit"`
	// Script is a path to a Lua file defining accept(level). Empty disables it.
	Script string `mapstructure:"script"`
	// InstructionLimit caps Lua opcodes per predicate call. 0 uses the default.
	InstructionLimit int `mapstructure:"instruction_limit"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging  LoggingConfig  `mapstructure:"logging"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Batch    BatchConfig    `mapstructure:"batch"`
	Filter   FilterConfig   `mapstructure:"filter"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Analysis.DifficultyCurveInterval < 1 {
		errs = append(errs, fmt.Sprintf("analysis.difficulty_curve_interval must be >= 1, got %d", c.Analysis.DifficultyCurveInterval))
	}
	if c.Batch.Workers < 1 {
		errs = append(errs, fmt.Sprintf("batch.workers must be >= 1, got %d", c.Batch.Workers))
	}
	if err := validateFilter(c.Filter); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateFilter(f FilterConfig) error {
	var errs []string
	if f.MinRows < 0 {
		errs = append(errs, fmt.Sprintf("filter.min_rows must be >= 0, got %d", f.MinRows))
	}
	if f.InstructionLimit < 0 {
		errs = append(errs, fmt.Sprintf("filter.instruction_limit must be >= 0, got %d", f.InstructionLimit))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path loads defaults and
// environment overrides only.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with LEVELMETRICS_ prefix
	v.SetEnvPrefix("LEVELMETRICS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Defaults returns the configuration used when no file or environment
// override is present.
func Defaults() Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "console")

	v.SetDefault("analysis.difficulty_curve_interval", 5)
	v.SetDefault("analysis.icons_file", "")

	v.SetDefault("batch.workers", 4)

	v.SetDefault("filter.min_rows", 5)
	v.SetDefault("filter.require_border", true)
	v.SetDefault("filter.require_entry", true)
	v.SetDefault("filter.require_exit", true)
	v.SetDefault("filter.script", "")
	v.SetDefault("filter.instruction_limit", 0)
}
