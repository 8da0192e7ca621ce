// Package monitoring - reporter.go drains statistics into the log.
//
// DESIGN: Reporter calls SnapshotAndReset on an interval and writes one
// summary line plus one line per entry:
//   - metrics_report: report ID, capture time and section sizes
//   - metrics_entry:  one sample, duration or occurrence
//
// Draining means every recorded value shows up in exactly one report.
// A final report is written when Run stops, so nothing recorded before
// shutdown is dropped.
package monitoring

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/toefel18/patan"
	"github.com/toefel18/patan/stats"
)

// Drainer is the part of patan.Statistics the reporter needs.
type Drainer interface {
	SnapshotAndReset() *patan.Snapshot
}

// Reporter periodically drains a Drainer and logs the result.
type Reporter struct {
	source   Drainer
	logger   *Logger
	alerts   *AlertManager
	metrics  *MetricsCollector
	interval time.Duration
	logEmpty bool
	onReport func(Report)
}

// NewReporter creates a reporter. alerts may be nil.
func NewReporter(source Drainer, logger *Logger, alerts *AlertManager, cfg ReporterConfig) (*Reporter, error) {
	if source == nil {
		return nil, fmt.Errorf("%w: source cannot be nil", patan.ErrInvalidArgument)
	}
	if logger == nil {
		return nil, fmt.Errorf("%w: logger cannot be nil", patan.ErrInvalidArgument)
	}
	if cfg.Interval <= 0 {
		return nil, fmt.Errorf("%w: reporter interval must be positive, got %s", patan.ErrInvalidArgument, cfg.Interval)
	}
	return &Reporter{
		source:   source,
		logger:   logger,
		alerts:   alerts,
		metrics:  NewMetricsCollector(),
		interval: cfg.Interval,
		logEmpty: cfg.LogEmpty,
	}, nil
}

// OnReport registers fn to receive every report, empty ones included. It
// must be called before Run.
func (r *Reporter) OnReport(fn func(Report)) {
	r.onReport = fn
}

// Run reports every interval until ctx is done, then writes a final
// report and returns.
func (r *Reporter) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.Report()
			return
		case <-ticker.C:
			r.Report()
		}
	}
}

// Report drains the source once and logs what it held.
func (r *Reporter) Report() Report {
	report := r.report()
	if r.onReport != nil {
		r.onReport(report)
	}
	return report
}

func (r *Reporter) report() Report {
	report := Report{ID: uuid.NewString(), Snapshot: r.source.SnapshotAndReset()}
	snap := report.Snapshot

	if snap.IsEmpty() {
		r.metrics.RecordReport(0, 0)
		if r.logEmpty {
			r.summary(report, 0, 0, 0).Msg("metrics_report")
		}
		return report
	}

	samples, durations, occurrences := snap.Samples(), snap.Durations(), snap.Occurrences()
	r.summary(report, len(samples), len(durations), len(occurrences)).Msg("metrics_report")

	r.logDistributions(report.ID, SectionSample, samples)
	r.logDistributions(report.ID, SectionDuration, durations)
	for _, name := range occurrences.Names() {
		r.logger.Info().
			Str("report_id", report.ID).
			Str("section", string(SectionOccurrence)).
			Str("name", name).
			Int64("count", occurrences[name]).
			Msg("metrics_entry")
	}

	if r.alerts != nil {
		report.Alerts = r.alerts.Check(report.ID, snap)
	}
	r.metrics.RecordReport(len(samples)+len(durations)+len(occurrences), report.Alerts)
	return report
}

// Stats returns counters describing the reports written so far.
func (r *Reporter) Stats() map[string]int64 {
	return r.metrics.Stats()
}

func (r *Reporter) summary(report Report, samples, durations, occurrences int) *zerolog.Event {
	return r.logger.Info().
		Str("report_id", report.ID).
		Time("taken_at", report.Snapshot.TakenAt()).
		Int("samples", samples).
		Int("durations", durations).
		Int("occurrences", occurrences)
}

func (r *Reporter) logDistributions(reportID string, section Section, ds stats.Distributions) {
	for _, name := range ds.Names() {
		d := ds[name]
		event := r.logger.Info().
			Str("report_id", reportID).
			Str("section", string(section)).
			Str("name", name).
			Int64("count", d.Count()).
			Float64("min", d.Min()).
			Float64("max", d.Max()).
			Float64("mean", d.Mean())
		// stddev is undefined below two samples
		if d.Count() > 1 {
			event = event.Float64("stddev", d.StdDev())
		}
		event.Msg("metrics_entry")
	}
}
