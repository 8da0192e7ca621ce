// Monitoring configuration - logging, reporting and alert settings.
//
// DESIGN: Separates operator logging (zerolog) from metric reports.
// Reports are snapshots drained on an interval and written through the
// same logger, so one sink carries both.
package config

import (
	"fmt"
	"slices"
	"time"
)

var (
	validLevels  = []string{"debug", "info", "warn", "error"}
	validFormats = []string{"json", "console", "auto"}
	validUnits   = []string{"ms", "ns"}
)

// LoggingConfig contains operator logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console, auto
	Output string `yaml:"output"` // stdout, stderr, or file path
}

// Validate checks the logging settings.
func (l LoggingConfig) Validate() error {
	if l.Level == "" {
		return fmt.Errorf("logging.level is required")
	}
	if !slices.Contains(validLevels, l.Level) {
		return fmt.Errorf("invalid logging.level: %q (must be one of %v)", l.Level, validLevels)
	}
	if l.Format == "" {
		return fmt.Errorf("logging.format is required")
	}
	if !slices.Contains(validFormats, l.Format) {
		return fmt.Errorf("invalid logging.format: %q (must be one of %v)", l.Format, validFormats)
	}
	if l.Output == "" {
		return fmt.Errorf("logging.output is required")
	}
	return nil
}

// ReporterConfig controls the periodic snapshot reporter.
type ReporterConfig struct {
	Interval time.Duration `yaml:"interval"`  // Time between drains
	LogEmpty bool          `yaml:"log_empty"` // Also log reports with nothing recorded
}

// Validate checks the reporter settings.
func (r ReporterConfig) Validate() error {
	if r.Interval == 0 {
		return fmt.Errorf("reporter.interval is required")
	}
	if r.Interval < 0 {
		return fmt.Errorf("invalid reporter.interval: %s (must be positive)", r.Interval)
	}
	return nil
}

// AlertsConfig contains alert thresholds. A zero threshold disables the
// alert.
type AlertsConfig struct {
	SlowDurationMs float64 `yaml:"slow_duration_ms"` // Mean duration that counts as slow
	DurationUnit   string  `yaml:"duration_unit"`    // ms or ns, the unit durations are recorded in
}

// Validate checks the alert thresholds.
func (a AlertsConfig) Validate() error {
	if a.SlowDurationMs < 0 {
		return fmt.Errorf("invalid alerts.slow_duration_ms: %g (must not be negative)", a.SlowDurationMs)
	}
	if a.DurationUnit != "" && !slices.Contains(validUnits, a.DurationUnit) {
		return fmt.Errorf("invalid alerts.duration_unit: %q (must be one of %v)", a.DurationUnit, validUnits)
	}
	return nil
}

// Unit returns the unit recorded durations are read in. Empty means ms.
func (a AlertsConfig) Unit() time.Duration {
	if a.DurationUnit == "ns" {
		return time.Nanosecond
	}
	return time.Millisecond
}

// SlowDuration returns the slow threshold as a duration.
func (a AlertsConfig) SlowDuration() time.Duration {
	return time.Duration(a.SlowDurationMs * float64(time.Millisecond))
}
