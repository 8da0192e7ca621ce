// Package monitoring - metrics.go counts what the reporter did.
//
// DESIGN: Lightweight in-memory counters for the reporter itself:
//   - reports/empty_reports: Drains performed, and how many had no data
//   - entries:               Log lines written for snapshot entries
//   - alerts:                Alerts raised on drained snapshots
//
// Kept outside the Statistics the reporter drains, so reporting never
// measures itself.
package monitoring

import "sync/atomic"

// MetricsCollector collects reporter metrics.
type MetricsCollector struct {
	reports      atomic.Int64
	emptyReports atomic.Int64
	entries      atomic.Int64
	alerts       atomic.Int64
}

// NewMetricsCollector creates a new metrics collector.
func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{}
}

// RecordReport records one drain.
func (mc *MetricsCollector) RecordReport(entries, alerts int) {
	mc.reports.Add(1)
	if entries == 0 {
		mc.emptyReports.Add(1)
	}
	mc.entries.Add(int64(entries))
	mc.alerts.Add(int64(alerts))
}

// Stats returns current metrics.
func (mc *MetricsCollector) Stats() map[string]int64 {
	return map[string]int64{
		"reports":       mc.reports.Load(),
		"empty_reports": mc.emptyReports.Load(),
		"entries":       mc.entries.Load(),
		"alerts":        mc.alerts.Load(),
	}
}
