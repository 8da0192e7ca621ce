// Package loadtest hammers a patan.Statistics from many goroutines and
// checks that no write is lost or counted twice.
//
// DESIGN: Three kinds of workers share one Statistics instance:
//   - writers:   record a sample, an occurrence and a duration per iteration
//   - resetters: drain with SnapshotAndReset, alternating between the
//     combined form and the three per-section forms
//   - readers:   take plain snapshots, optionally rate limited
//
// When the writers are done, drained totals plus the live state must equal
// what was written. The instance is injected, so the harness works on any
// implementation.
package loadtest

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/toefel18/patan"
)

// ErrNotConserved is returned when drained plus live totals differ from
// what the writers recorded.
var ErrNotConserved = errors.New("writes were not conserved")

// Options sizes a run.
type Options struct {
	Writers        int
	Iterations     int
	Resetters      int
	Readers        int
	ReadsPerSecond float64 // 0 means unlimited
	Name           string
	Logger         zerolog.Logger
}

// Validate checks the options.
func (o Options) Validate() error {
	switch {
	case o.Writers <= 0:
		return fmt.Errorf("%w: writers must be positive, got %d", patan.ErrInvalidArgument, o.Writers)
	case o.Iterations <= 0:
		return fmt.Errorf("%w: iterations must be positive, got %d", patan.ErrInvalidArgument, o.Iterations)
	case o.Resetters < 0:
		return fmt.Errorf("%w: resetters must not be negative, got %d", patan.ErrInvalidArgument, o.Resetters)
	case o.Readers < 0:
		return fmt.Errorf("%w: readers must not be negative, got %d", patan.ErrInvalidArgument, o.Readers)
	case o.ReadsPerSecond < 0:
		return fmt.Errorf("%w: reads per second must not be negative, got %g", patan.ErrInvalidArgument, o.ReadsPerSecond)
	case o.Name == "":
		return fmt.Errorf("%w: name cannot be empty", patan.ErrInvalidArgument)
	}
	return nil
}

// Totals counts recorded values per section.
type Totals struct {
	Samples     int64
	Durations   int64
	Occurrences int64
}

func (t Totals) add(o Totals) Totals {
	return Totals{
		Samples:     t.Samples + o.Samples,
		Durations:   t.Durations + o.Durations,
		Occurrences: t.Occurrences + o.Occurrences,
	}
}

// Result describes a finished run.
type Result struct {
	RunID     string
	Written   Totals
	Drained   Totals
	Remaining Totals
	Drains    int64
	Reads     int64
	Elapsed   time.Duration
}

// Conserved reports whether every write ended up in exactly one place.
func (r Result) Conserved() bool {
	return r.Drained.add(r.Remaining) == r.Written
}

type counters struct {
	samples, durations, occurrences atomic.Int64
}

func (c *counters) load() Totals {
	return Totals{Samples: c.samples.Load(), Durations: c.durations.Load(), Occurrences: c.occurrences.Load()}
}

// Run executes one load test against s. Resetters and readers run until
// the writers finish. A cancelled ctx stops the writers early; the partial
// run is still checked and ctx's error is returned.
func Run(ctx context.Context, s patan.Statistics, opts Options) (Result, error) {
	if s == nil {
		return Result{}, fmt.Errorf("%w: statistics cannot be nil", patan.ErrInvalidArgument)
	}
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}

	result := Result{RunID: uuid.NewString()}
	logger := opts.Logger.With().Str("run_id", result.RunID).Str("name", opts.Name).Logger()
	logger.Info().
		Int("writers", opts.Writers).
		Int("iterations", opts.Iterations).
		Int("resetters", opts.Resetters).
		Int("readers", opts.Readers).
		Msg("load test started")

	start := time.Now()
	var written, drained counters
	var drains, reads atomic.Int64

	writersDone := make(chan struct{})
	background, bgCtx := errgroup.WithContext(context.Background())

	for i := 0; i < opts.Resetters; i++ {
		combined := i%2 == 0
		background.Go(func() error {
			for {
				select {
				case <-writersDone:
					return nil
				case <-bgCtx.Done():
					return bgCtx.Err()
				default:
				}
				drain(s, opts.Name, combined, &drained)
				drains.Add(1)
			}
		})
	}

	var limiter *rate.Limiter
	if opts.ReadsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.ReadsPerSecond), 1)
	}
	readCtx, stopReads := context.WithCancel(bgCtx)
	defer stopReads()
	for i := 0; i < opts.Readers; i++ {
		background.Go(func() error {
			for {
				select {
				case <-writersDone:
					return nil
				default:
				}
				if limiter != nil {
					if err := limiter.Wait(readCtx); err != nil {
						return nil
					}
				}
				_ = s.Snapshot()
				if _, err := s.FindOccurrence(opts.Name); err != nil {
					return err
				}
				reads.Add(1)
			}
		})
	}

	writers, writeCtx := errgroup.WithContext(ctx)
	for i := 0; i < opts.Writers; i++ {
		writers.Go(func() error {
			return write(writeCtx, s, opts.Name, opts.Iterations, &written)
		})
	}
	writeErr := writers.Wait()
	close(writersDone)
	stopReads()
	if err := background.Wait(); err != nil && writeErr == nil {
		writeErr = err
	}

	final := s.Snapshot()
	result.Written = written.load()
	result.Drained = drained.load()
	result.Remaining = Totals{
		Samples:     final.FindSample(opts.Name).Count(),
		Durations:   final.FindDuration(opts.Name).Count(),
		Occurrences: final.FindOccurrence(opts.Name),
	}
	result.Drains = drains.Load()
	result.Reads = reads.Load()
	result.Elapsed = time.Since(start)

	event := logger.Info()
	if !result.Conserved() {
		event = logger.Error()
	}
	event.
		Int64("written", result.Written.Occurrences).
		Int64("drained", result.Drained.Occurrences).
		Int64("remaining", result.Remaining.Occurrences).
		Int64("drains", result.Drains).
		Int64("reads", result.Reads).
		Dur("elapsed", result.Elapsed).
		Bool("conserved", result.Conserved()).
		Msg("load test finished")

	if writeErr != nil {
		return result, writeErr
	}
	if !result.Conserved() {
		return result, fmt.Errorf("%w: written %+v, drained %+v, remaining %+v",
			ErrNotConserved, result.Written, result.Drained, result.Remaining)
	}
	return result, nil
}

func write(ctx context.Context, s patan.Statistics, name string, iterations int, written *counters) error {
	for j := 0; j < iterations; j++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		sw := s.StartStopwatch()
		if err := s.AddSample(name, float64(j)); err != nil {
			return err
		}
		written.samples.Add(1)
		if err := s.AddOccurrence(name); err != nil {
			return err
		}
		written.occurrences.Add(1)
		if _, err := s.RecordElapsedNanos(name, sw); err != nil {
			return err
		}
		written.durations.Add(1)
	}
	return nil
}

func drain(s patan.Statistics, name string, combined bool, drained *counters) {
	if combined {
		snap := s.SnapshotAndReset()
		drained.samples.Add(snap.FindSample(name).Count())
		drained.durations.Add(snap.FindDuration(name).Count())
		drained.occurrences.Add(snap.FindOccurrence(name))
		return
	}
	drained.samples.Add(s.SamplesSnapshotAndReset().Find(name).Count())
	drained.durations.Add(s.DurationsSnapshotAndReset().Find(name).Count())
	drained.occurrences.Add(s.OccurrencesSnapshotAndReset().Find(name))
}
