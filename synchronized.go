package patan

import (
	"fmt"
	"sync"

	"github.com/toefel18/patan/stats"
)

// Synchronized makes any Statistics safe for concurrent use with a single
// RWMutex shared by samples, durations and occurrences.
//
// Locking:
//   - exclusive: every write, Reset and every ...AndReset
//   - shared:    every Find and every plain snapshot
//   - none:      StartStopwatch, and the caller's task in RecordElapsed*Of
//
// A ...AndReset copies and clears inside one critical section. Splitting it
// would let a writer land between the two steps and vanish.
type Synchronized struct {
	statistics Statistics
	mu         sync.RWMutex
}

// NewSynchronized wraps statistics.
func NewSynchronized(statistics Statistics) (*Synchronized, error) {
	if statistics == nil {
		return nil, fmt.Errorf("%w: statistics cannot be nil", ErrInvalidArgument)
	}
	return &Synchronized{statistics: statistics}, nil
}

// StartStopwatch returns a running stopwatch without locking.
func (s *Synchronized) StartStopwatch() Stopwatch {
	return s.statistics.StartStopwatch()
}

// AddSample merges value into the sample distribution for name.
func (s *Synchronized) AddSample(name string, value float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statistics.AddSample(name, value)
}

// AddOccurrence increments the counter for name.
func (s *Synchronized) AddOccurrence(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statistics.AddOccurrence(name)
}

// AddOccurrences adds n to the counter for name.
func (s *Synchronized) AddOccurrences(name string, n int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statistics.AddOccurrences(name, n)
}

// RecordElapsedTime records the stopwatch reading in milliseconds.
func (s *Synchronized) RecordElapsedTime(name string, sw Stopwatch) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statistics.RecordElapsedTime(name, sw)
}

// RecordElapsedNanos records the stopwatch reading in nanoseconds.
func (s *Synchronized) RecordElapsedNanos(name string, sw Stopwatch) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statistics.RecordElapsedNanos(name, sw)
}

// RecordElapsedTimeOf runs task without holding the lock, then records its
// duration in milliseconds.
func (s *Synchronized) RecordElapsedTimeOf(name string, task func() error) error {
	return timeTask(s, name, false, task)
}

// RecordElapsedNanosOf runs task without holding the lock, then records its
// duration in nanoseconds.
func (s *Synchronized) RecordElapsedNanosOf(name string, task func() error) error {
	return timeTask(s, name, true, task)
}

// FindSample returns the sample distribution for name.
func (s *Synchronized) FindSample(name string) (stats.Distribution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.statistics.FindSample(name)
}

// FindDuration returns the duration distribution for name.
func (s *Synchronized) FindDuration(name string) (stats.Distribution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.statistics.FindDuration(name)
}

// FindOccurrence returns the counter for name.
func (s *Synchronized) FindOccurrence(name string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.statistics.FindOccurrence(name)
}

// SamplesSnapshot returns a copy of all sample distributions.
func (s *Synchronized) SamplesSnapshot() stats.Distributions {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.statistics.SamplesSnapshot()
}

// SamplesSnapshotAndReset returns all sample distributions and clears them.
func (s *Synchronized) SamplesSnapshotAndReset() stats.Distributions {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statistics.SamplesSnapshotAndReset()
}

// DurationsSnapshot returns a copy of all duration distributions.
func (s *Synchronized) DurationsSnapshot() stats.Distributions {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.statistics.DurationsSnapshot()
}

// DurationsSnapshotAndReset returns all duration distributions and clears
// them.
func (s *Synchronized) DurationsSnapshotAndReset() stats.Distributions {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statistics.DurationsSnapshotAndReset()
}

// OccurrencesSnapshot returns a copy of all counters.
func (s *Synchronized) OccurrencesSnapshot() stats.Counts {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.statistics.OccurrencesSnapshot()
}

// OccurrencesSnapshotAndReset returns all counters and clears them.
func (s *Synchronized) OccurrencesSnapshotAndReset() stats.Counts {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statistics.OccurrencesSnapshotAndReset()
}

// Snapshot returns a detached copy of everything recorded so far.
func (s *Synchronized) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.statistics.Snapshot()
}

// SnapshotAndReset returns everything recorded and clears all state
// atomically.
func (s *Synchronized) SnapshotAndReset() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statistics.SnapshotAndReset()
}

// Reset clears all state.
func (s *Synchronized) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statistics.Reset()
}

// Ensure Synchronized implements Statistics
var _ Statistics = (*Synchronized)(nil)
