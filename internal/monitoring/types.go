// Package monitoring - types.go defines shared types.
//
// DESIGN: Config types are defined here ONCE so the CLI can map its YAML
// config onto them without monitoring importing the config package.
//
// TYPES:
//   - Section:      Which part of a snapshot an entry came from
//   - Report:       Result of one reporter drain
//   - Config types: LoggerConfig, AlertConfig, ReporterConfig
package monitoring

import (
	"time"

	"github.com/toefel18/patan"
)

// =============================================================================
// SECTIONS - Used by reporter and alerts
// =============================================================================

// Section identifies the snapshot section an entry belongs to.
type Section string

const (
	SectionSample     Section = "sample"
	SectionDuration   Section = "duration"
	SectionOccurrence Section = "occurrence"
)

// =============================================================================
// EVENT TYPES
// =============================================================================

// Report is one drained snapshot, tagged with a unique ID so every log
// line written for it can be correlated.
type Report struct {
	ID       string
	Snapshot *patan.Snapshot
	Alerts   int
}

// =============================================================================
// CONFIG TYPES
// =============================================================================

// LoggerConfig contains logging configuration.
type LoggerConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console, auto
	Output string `yaml:"output"` // stdout, stderr, or file path
}

// AlertConfig contains alert thresholds.
type AlertConfig struct {
	SlowDuration time.Duration `yaml:"slow_duration"` // Mean duration considered slow; 0 disables
	DurationUnit time.Duration `yaml:"duration_unit"` // Unit of recorded durations; 0 means milliseconds
}

// ReporterConfig controls the periodic reporter.
type ReporterConfig struct {
	Interval time.Duration `yaml:"interval"`
	LogEmpty bool          `yaml:"log_empty"`
}
