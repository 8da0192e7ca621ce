// Package monitoring - alerts.go flags anomalies in drained snapshots.
//
// DESIGN: AlertManager logs notable entries at appropriate levels:
//   - FlagSlowDuration: Warn when a duration's mean exceeds the threshold
//   - FlagFailedTasks:  Warn when tasks were recorded under ".failed"
//
// Duration values are read in AlertConfig.DurationUnit: milliseconds for
// RecordElapsedTime, nanoseconds for RecordElapsedNanos. One manager
// assumes one unit for every name it checks.
package monitoring

import (
	"strings"
	"time"

	"github.com/toefel18/patan"
	"github.com/toefel18/patan/stats"
)

// AlertManager flags anomalies in snapshots.
type AlertManager struct {
	logger        *Logger
	slowThreshold time.Duration
	unit          time.Duration
}

// NewAlertManager creates a new alert manager. A zero SlowDuration turns
// slow-duration alerts off; a zero DurationUnit means milliseconds.
func NewAlertManager(logger *Logger, cfg AlertConfig) *AlertManager {
	unit := cfg.DurationUnit
	if unit <= 0 {
		unit = time.Millisecond
	}
	return &AlertManager{logger: logger, slowThreshold: cfg.SlowDuration, unit: unit}
}

// Check inspects the durations of snap and returns how many alerts were
// raised.
func (am *AlertManager) Check(reportID string, snap *patan.Snapshot) int {
	raised := 0
	durations := snap.Durations()
	for _, name := range durations.Names() {
		d := durations[name]
		if am.FlagSlowDuration(reportID, name, d) {
			raised++
		}
		if strings.HasSuffix(name, patan.SuffixFailed) && am.FlagFailedTasks(reportID, name, d.Count()) {
			raised++
		}
	}
	return raised
}

// FlagSlowDuration logs when the mean of a duration distribution, scaled
// by the configured unit, exceeds the threshold.
func (am *AlertManager) FlagSlowDuration(reportID, name string, d stats.Distribution) bool {
	if am.slowThreshold <= 0 || d.IsEmpty() {
		return false
	}
	mean := time.Duration(d.Mean() * float64(am.unit))
	if mean <= am.slowThreshold {
		return false
	}
	am.logger.Warn().
		Str("report_id", reportID).
		Str("name", name).
		Dur("mean", mean).
		Dur("threshold", am.slowThreshold).
		Int64("count", d.Count()).
		Msg("slow_duration")
	return true
}

// FlagFailedTasks logs failed task executions.
func (am *AlertManager) FlagFailedTasks(reportID, name string, count int64) bool {
	if count <= 0 {
		return false
	}
	am.logger.Warn().
		Str("report_id", reportID).
		Str("task", strings.TrimSuffix(name, patan.SuffixFailed)).
		Int64("failures", count).
		Msg("task_failures")
	return true
}
