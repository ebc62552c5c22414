package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config holds settings for both the ids and rif commands.
type Config struct {
	BaseDir     string        `mapstructure:"base_dir"`
	Prefix      string        `mapstructure:"prefix"`
	Path        string        `mapstructure:"path"`
	Concurrency int           `mapstructure:"concurrency"`
	Total       int           `mapstructure:"total"`
	Duration    time.Duration `mapstructure:"duration"`
	Rate        int           `mapstructure:"rate"`
	Format      string        `mapstructure:"format"`
	Print       bool          `mapstructure:"print"`
	JSONOutput  bool          `mapstructure:"json_output"`
	Progress    bool          `mapstructure:"progress"`
	LogLevel    string        `mapstructure:"log_level"`
	ConfigFile  string        `mapstructure:"-"`
	RIF         RIFConfig     `mapstructure:"rif"`
}

// RIFConfig selects a local RIF file to inspect.
type RIFConfig struct {
	File string `mapstructure:"file"`
	Type string `mapstructure:"type"`
	Cat  bool   `mapstructure:"cat"`
}

type ValidationError struct {
	issues []string
}

func (e ValidationError) Error() string {
	if len(e.issues) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(e.issues, "; "))
}

func (e ValidationError) Issues() []string {
	return append([]string(nil), e.issues...)
}

// Validate checks the settings used by the ids command.
func (c Config) Validate() error {
	var issues []string

	if c.Concurrency < 1 {
		issues = append(issues, "concurrency must be >= 1")
	}
	if c.Rate < 0 {
		issues = append(issues, "rate must be >= 0")
	}
	if c.Total < 0 {
		issues = append(issues, "total must be >= 0")
	}
	if c.Duration < 0 {
		issues = append(issues, "duration must be >= 0")
	}
	if c.Print && c.JSONOutput {
		issues = append(issues, "print and json-output are mutually exclusive")
	}
	if strings.TrimSpace(c.Format) != "" && !c.Print {
		issues = append(issues, "format requires print")
	}
	if strings.ContainsAny(c.Prefix, `/\`) {
		issues = append(issues, fmt.Sprintf("prefix %q must not contain path separators", c.Prefix))
	}
	issues = append(issues, validateLogLevel(c.LogLevel)...)

	if len(issues) > 0 {
		return ValidationError{issues: issues}
	}
	return nil
}

// ValidateRIF checks the settings used by the rif command.
func (c Config) ValidateRIF() error {
	var issues []string

	if strings.TrimSpace(c.RIF.File) == "" {
		issues = append(issues, "file is required (use --help for usage information)")
	}
	if strings.TrimSpace(c.RIF.Type) == "" {
		issues = append(issues, "type is required")
	}
	issues = append(issues, validateLogLevel(c.LogLevel)...)

	if len(issues) > 0 {
		return ValidationError{issues: issues}
	}
	return nil
}

// Warnings reports settings that are valid but probably unintended.
func (c Config) Warnings() []string {
	var warnings []string
	if strings.TrimSpace(c.Path) != "" && strings.TrimSpace(c.Prefix) != "" {
		warnings = append(warnings, fmt.Sprintf("both path and prefix set; using path %s", c.Path))
	}
	if c.Concurrency > 500 {
		warnings = append(warnings, fmt.Sprintf("high concurrency configured (%d workers)", c.Concurrency))
	}
	return warnings
}

func validateLogLevel(level string) []string {
	if strings.TrimSpace(level) == "" {
		return nil
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(level)); err != nil {
		return []string{fmt.Sprintf("log level %q is not supported", level)}
	}
	return nil
}
