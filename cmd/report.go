package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/tidwall/gjson"

	"github.com/toefel18/patan"
	"github.com/toefel18/patan/internal/monitoring"
	"github.com/toefel18/patan/internal/tui"
	"github.com/toefel18/patan/prom"
)

var errSyntheticFailure = errors.New("synthetic failure")

// snapshotSource serves one fixed snapshot to the Prometheus collector.
type snapshotSource struct {
	snap *patan.Snapshot
}

func (s snapshotSource) Snapshot() *patan.Snapshot { return s.snap }

// runReport drives a synthetic workload while a reporter drains and logs
// the statistics on the configured interval.
func runReport(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	configPath, debug := commonFlags(fs)
	duration := fs.Duration("duration", 10*time.Second, "how long to run the workload")
	workers := fs.Int("workers", 4, "goroutines running synthetic tasks")
	asJSON := fs.Bool("json", false, "print the last report as JSON")
	field := fs.String("field", "", "print one field of the last report (gjson path)")
	promFile := fs.String("prom-file", "", "write the last report in Prometheus text format")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *workers <= 0 {
		return fmt.Errorf("%w: workers must be positive, got %d", patan.ErrInvalidArgument, *workers)
	}

	cfg, logger, err := loadConfig(*configPath, *debug)
	if err != nil {
		return err
	}

	stats := patan.New()
	alerts := monitoring.NewAlertManager(logger, monitoring.AlertConfig{
		SlowDuration: cfg.Alerts.SlowDuration(),
		DurationUnit: cfg.Alerts.Unit(),
	})
	reporter, err := monitoring.NewReporter(stats, logger, alerts, monitoring.ReporterConfig{
		Interval: cfg.Reporter.Interval,
		LogEmpty: cfg.Reporter.LogEmpty,
	})
	if err != nil {
		return err
	}

	var last monitoring.Report
	reporter.OnReport(func(r monitoring.Report) {
		if !r.Snapshot.IsEmpty() {
			last = r
		}
	})

	reportCtx, stopReporter := context.WithCancel(context.Background())
	reporterDone := make(chan struct{})
	go func() {
		defer close(reporterDone)
		reporter.Run(reportCtx)
	}()

	workCtx, cancel := context.WithTimeout(ctx, *duration)
	defer cancel()
	runWorkload(workCtx, stats, *workers, cfg.Alerts.SlowDuration())

	stopReporter()
	<-reporterDone

	logger.Info().
		Int64("reports", reporter.Stats()["reports"]).
		Int64("entries", reporter.Stats()["entries"]).
		Int64("alerts", reporter.Stats()["alerts"]).
		Msg("report run finished")

	if last.Snapshot == nil {
		return nil
	}
	return writeReport(stdout, last, *asJSON, *field, *promFile)
}

// runWorkload records synthetic tasks, payload sizes and iterations until
// ctx is done. Task latency is spread around the slow threshold so that
// both fast and slow durations show up.
func runWorkload(ctx context.Context, stats patan.Statistics, workers int, slow time.Duration) {
	if slow <= 0 {
		slow = 50 * time.Millisecond
	}
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for ctx.Err() == nil {
				latency := time.Duration(rand.Int64N(int64(2 * slow)))
				_ = stats.RecordElapsedTimeOf("synthetic.task", func() error {
					select {
					case <-time.After(latency):
					case <-ctx.Done():
					}
					if rand.IntN(10) == 0 {
						return errSyntheticFailure
					}
					return nil
				})
				_ = stats.AddSample("synthetic.payload_bytes", float64(256+rand.IntN(4096)))
				_ = stats.AddOccurrence("synthetic.iterations")
			}
		}()
	}
	wg.Wait()
}

func writeReport(stdout io.Writer, report monitoring.Report, asJSON bool, field, promFile string) error {
	if asJSON || field != "" {
		raw, err := json.Marshal(report.Snapshot)
		if err != nil {
			return fmt.Errorf("failed to render report %s: %w", report.ID, err)
		}
		if field != "" {
			value := gjson.GetBytes(raw, field)
			if !value.Exists() {
				return fmt.Errorf("field %q not found in report %s", field, report.ID)
			}
			fmt.Fprintln(stdout, value.String())
		} else {
			fmt.Fprintln(stdout, string(raw))
		}
	} else {
		printer := tui.NewPrinter(stdout)
		printer.PrintHeader("Report " + report.ID)
		printer.PrintSnapshot(report.Snapshot)
		if report.Alerts > 0 {
			printer.PrintWarn(fmt.Sprintf("%d alerts raised, see the log", report.Alerts))
		}
	}

	if promFile != "" {
		registry := prometheus.NewRegistry()
		if err := registry.Register(prom.NewCollector(snapshotSource{report.Snapshot}, prom.Options{})); err != nil {
			return fmt.Errorf("failed to register collector: %w", err)
		}
		if err := prometheus.WriteToTextfile(promFile, registry); err != nil {
			return fmt.Errorf("failed to write %s: %w", promFile, err)
		}
	}
	return nil
}
