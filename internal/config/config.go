// Package config loads and validates the patan CLI configuration.
//
// DESIGN: All configuration MUST come from YAML files. No defaults are
// applied in code; the CLI ships an embedded default file instead.
//
// FILES:
//   - config.go:     Root Config struct, LoadFromBytes(), Validate()
//   - monitoring.go: Logging, reporter and alert settings
//   - stress.go:     Load-test harness settings
package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables that override values from the YAML file.
const (
	EnvLogLevel       = "PATAN_LOG_LEVEL"
	EnvReportInterval = "PATAN_REPORT_INTERVAL"
)

// Config is the root configuration for the patan CLI.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging"`  // Operator logging
	Reporter ReporterConfig `yaml:"reporter"` // Periodic snapshot reporting
	Alerts   AlertsConfig   `yaml:"alerts"`   // Threshold alerts on reports
	Stress   StressConfig   `yaml:"stress"`   // Load-test harness
}

var envPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandEnvWithDefaults expands environment variables with support for default values.
// Supports both ${VAR} and ${VAR:-default} syntax.
func expandEnvWithDefaults(s string) string {
	return envPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := envPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		varName := parts[1]
		defaultValue := ""
		if len(parts) > 2 {
			defaultValue = parts[2]
		}

		if value := os.Getenv(varName); value != "" {
			return value
		}
		return defaultValue
	})
}

// LoadFromBytes parses configuration from raw YAML bytes.
// Supports ${VAR:-default} env var expansion, env overrides, and validation.
func LoadFromBytes(data []byte) (*Config, error) {
	expanded := expandEnvWithDefaults(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, fmt.Errorf("invalid environment override: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyEnvOverrides lets operators change the log level and the report
// interval without editing the config file.
func (c *Config) applyEnvOverrides() error {
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.Logging.Level = level
	}

	if raw := os.Getenv(EnvReportInterval); raw != "" {
		interval, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvReportInterval, err)
		}
		c.Reporter.Interval = interval
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	if err := c.Reporter.Validate(); err != nil {
		return err
	}
	if err := c.Alerts.Validate(); err != nil {
		return err
	}
	return c.Stress.Validate()
}
