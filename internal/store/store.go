// Package store provides the name-keyed stores behind the statistics facade.
//
// DESIGN: Two stores with the same add/find/snapshot/reset shape:
//   - DistributionStore: name -> stats.Distribution (samples, durations)
//   - CounterStore:      name -> int64 (occurrences)
//
// Stores are NOT safe for concurrent use. The facade combines three of them
// and patan.Synchronized guards all three with a single RWMutex, because the
// combined snapshot-and-reset must be atomic across every map at once.
//
// SnapshotAndReset hands the live map to the caller and installs a fresh
// one. Nothing keeps a reference to the old map, so the result is detached
// without copying.
package store

import (
	"errors"
	"fmt"
	"math"

	"github.com/toefel18/patan/stats"
)

// ErrInvalidArgument is returned for empty names and non-finite values.
var ErrInvalidArgument = errors.New("invalid argument")

// ValidateName rejects the empty name.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidArgument)
	}
	return nil
}

// =============================================================================
// DISTRIBUTIONS
// =============================================================================

// DistributionStore keeps a running distribution per name.
type DistributionStore struct {
	distributions stats.Distributions
}

// NewDistributionStore creates an empty store.
func NewDistributionStore() *DistributionStore {
	return &DistributionStore{distributions: make(stats.Distributions)}
}

// AddSample merges value into the distribution for name, creating it on
// first use. NaN and infinite values are rejected and leave the store
// unchanged.
func (s *DistributionStore) AddSample(name string, value float64) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%w: sample for %q must be finite, got %v", ErrInvalidArgument, name, value)
	}
	// a missing name reads as the zero Distribution, which is the empty one
	s.distributions[name] = s.distributions[name].WithSample(value)
	return nil
}

// Find returns the distribution for name, or the empty distribution if the
// name is unknown.
func (s *DistributionStore) Find(name string) (stats.Distribution, error) {
	if err := ValidateName(name); err != nil {
		return stats.Empty(), err
	}
	return s.distributions[name], nil
}

// Snapshot returns an independent copy of all distributions.
func (s *DistributionStore) Snapshot() stats.Distributions {
	return s.distributions.Clone()
}

// SnapshotAndReset returns all distributions and leaves the store empty.
func (s *DistributionStore) SnapshotAndReset() stats.Distributions {
	snapshot := s.distributions
	s.Reset()
	return snapshot
}

// Reset discards all distributions.
func (s *DistributionStore) Reset() {
	s.distributions = make(stats.Distributions)
}

// =============================================================================
// COUNTERS
// =============================================================================

// CounterStore keeps an occurrence count per name.
type CounterStore struct {
	counters stats.Counts
}

// NewCounterStore creates an empty store.
func NewCounterStore() *CounterStore {
	return &CounterStore{counters: make(stats.Counts)}
}

// AddOccurrence increments the counter for name by one.
func (s *CounterStore) AddOccurrence(name string) error {
	return s.AddOccurrences(name, 1)
}

// AddOccurrences adds n to the counter for name. Any n is accepted,
// including zero and negative amounts.
func (s *CounterStore) AddOccurrences(name string, n int64) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	s.counters[name] += n
	return nil
}

// Find returns the count for name, or 0 if the name is unknown.
func (s *CounterStore) Find(name string) (int64, error) {
	if err := ValidateName(name); err != nil {
		return 0, err
	}
	return s.counters[name], nil
}

// Snapshot returns an independent copy of all counters.
func (s *CounterStore) Snapshot() stats.Counts {
	return s.counters.Clone()
}

// SnapshotAndReset returns all counters and leaves the store empty.
func (s *CounterStore) SnapshotAndReset() stats.Counts {
	snapshot := s.counters
	s.Reset()
	return snapshot
}

// Reset discards all counters.
func (s *CounterStore) Reset() {
	s.counters = make(stats.Counts)
}
