package patan

import (
	"time"

	"github.com/toefel18/patan/internal/store"
	"github.com/toefel18/patan/stats"
)

// Facade wires one store for samples, one for durations and one for
// occurrences behind the Statistics interface.
//
// Facade is NOT safe for concurrent use. Wrap it with NewSynchronized, or
// use New, when more than one goroutine records or reads.
type Facade struct {
	samples     *store.DistributionStore
	durations   *store.DistributionStore
	occurrences *store.CounterStore
	now         func() time.Time
}

// NewFacade creates an empty single-threaded facade.
func NewFacade() *Facade {
	return &Facade{
		samples:     store.NewDistributionStore(),
		durations:   store.NewDistributionStore(),
		occurrences: store.NewCounterStore(),
		now:         time.Now,
	}
}

// StartStopwatch returns a running stopwatch.
func (f *Facade) StartStopwatch() Stopwatch {
	return StartStopwatch()
}

// AddSample merges value into the sample distribution for name.
func (f *Facade) AddSample(name string, value float64) error {
	return f.samples.AddSample(name, value)
}

// AddOccurrence increments the counter for name.
func (f *Facade) AddOccurrence(name string) error {
	return f.occurrences.AddOccurrence(name)
}

// AddOccurrences adds n to the counter for name.
func (f *Facade) AddOccurrences(name string, n int64) error {
	return f.occurrences.AddOccurrences(name, n)
}

// RecordElapsedTime records the stopwatch reading in milliseconds.
func (f *Facade) RecordElapsedTime(name string, sw Stopwatch) (float64, error) {
	if err := store.ValidateName(name); err != nil {
		return 0, err
	}
	elapsed := sw.ElapsedMillis()
	return elapsed, f.durations.AddSample(name, elapsed)
}

// RecordElapsedNanos records the stopwatch reading in nanoseconds.
func (f *Facade) RecordElapsedNanos(name string, sw Stopwatch) (int64, error) {
	if err := store.ValidateName(name); err != nil {
		return 0, err
	}
	elapsed := sw.ElapsedNanos()
	return elapsed, f.durations.AddSample(name, float64(elapsed))
}

// RecordElapsedTimeOf runs task and records its duration in milliseconds.
func (f *Facade) RecordElapsedTimeOf(name string, task func() error) error {
	return timeTask(f, name, false, task)
}

// RecordElapsedNanosOf runs task and records its duration in nanoseconds.
func (f *Facade) RecordElapsedNanosOf(name string, task func() error) error {
	return timeTask(f, name, true, task)
}

// FindSample returns the sample distribution for name.
func (f *Facade) FindSample(name string) (stats.Distribution, error) {
	return f.samples.Find(name)
}

// FindDuration returns the duration distribution for name.
func (f *Facade) FindDuration(name string) (stats.Distribution, error) {
	return f.durations.Find(name)
}

// FindOccurrence returns the counter for name.
func (f *Facade) FindOccurrence(name string) (int64, error) {
	return f.occurrences.Find(name)
}

// SamplesSnapshot returns a copy of all sample distributions.
func (f *Facade) SamplesSnapshot() stats.Distributions {
	return f.samples.Snapshot()
}

// SamplesSnapshotAndReset returns all sample distributions and clears them.
func (f *Facade) SamplesSnapshotAndReset() stats.Distributions {
	return f.samples.SnapshotAndReset()
}

// DurationsSnapshot returns a copy of all duration distributions.
func (f *Facade) DurationsSnapshot() stats.Distributions {
	return f.durations.Snapshot()
}

// DurationsSnapshotAndReset returns all duration distributions and clears
// them.
func (f *Facade) DurationsSnapshotAndReset() stats.Distributions {
	return f.durations.SnapshotAndReset()
}

// OccurrencesSnapshot returns a copy of all counters.
func (f *Facade) OccurrencesSnapshot() stats.Counts {
	return f.occurrences.Snapshot()
}

// OccurrencesSnapshotAndReset returns all counters and clears them.
func (f *Facade) OccurrencesSnapshotAndReset() stats.Counts {
	return f.occurrences.SnapshotAndReset()
}

// Snapshot returns a detached copy of all three stores, stamped once.
func (f *Facade) Snapshot() *Snapshot {
	return newSnapshot(f.samples.Snapshot(), f.occurrences.Snapshot(), f.durations.Snapshot(), f.now())
}

// SnapshotAndReset returns the contents of all three stores and clears them.
func (f *Facade) SnapshotAndReset() *Snapshot {
	return newSnapshot(f.samples.SnapshotAndReset(), f.occurrences.SnapshotAndReset(), f.durations.SnapshotAndReset(), f.now())
}

// Reset clears all three stores.
func (f *Facade) Reset() {
	f.occurrences.Reset()
	f.durations.Reset()
	f.samples.Reset()
}

// Ensure Facade implements Statistics
var _ Statistics = (*Facade)(nil)
