package patan

import (
	"github.com/toefel18/patan/internal/store"
	"github.com/toefel18/patan/stats"
)

// Statistics records samples, durations and occurrences by name and
// returns their aggregates. Facade and Synchronized implement it.
type Statistics interface {
	// StartStopwatch returns a running stopwatch. It touches no shared state.
	StartStopwatch() Stopwatch

	// AddSample merges value into the sample distribution for name. NaN and
	// infinite values are rejected with ErrInvalidArgument.
	AddSample(name string, value float64) error

	// AddOccurrence increments the counter for name.
	AddOccurrence(name string) error

	// AddOccurrences adds n to the counter for name. Zero and negative
	// amounts are accepted.
	AddOccurrences(name string, n int64) error

	// RecordElapsedTime records the stopwatch reading in milliseconds into
	// the duration distribution for name and returns the recorded value.
	RecordElapsedTime(name string, sw Stopwatch) (float64, error)

	// RecordElapsedNanos records the stopwatch reading in nanoseconds into
	// the duration distribution for name and returns the recorded value.
	RecordElapsedNanos(name string, sw Stopwatch) (int64, error)

	// RecordElapsedTimeOf runs task and records its duration in milliseconds
	// under name+".ok" when it returns nil, or name+".failed" when it
	// returns an error or panics. The task's error is returned unchanged and
	// a panic is re-raised with its original value.
	RecordElapsedTimeOf(name string, task func() error) error

	// RecordElapsedNanosOf is RecordElapsedTimeOf with nanosecond durations.
	RecordElapsedNanosOf(name string, task func() error) error

	// FindSample returns the sample distribution for name, or the empty
	// distribution.
	FindSample(name string) (stats.Distribution, error)

	// FindDuration returns the duration distribution for name, or the empty
	// distribution.
	FindDuration(name string) (stats.Distribution, error)

	// FindOccurrence returns the counter for name, or 0.
	FindOccurrence(name string) (int64, error)

	SamplesSnapshot() stats.Distributions
	SamplesSnapshotAndReset() stats.Distributions
	DurationsSnapshot() stats.Distributions
	DurationsSnapshotAndReset() stats.Distributions
	OccurrencesSnapshot() stats.Counts
	OccurrencesSnapshotAndReset() stats.Counts

	// Snapshot returns a detached copy of everything recorded so far.
	Snapshot() *Snapshot

	// SnapshotAndReset returns a detached copy of everything recorded and
	// clears all state in the same step.
	SnapshotAndReset() *Snapshot

	// Reset clears samples, durations and occurrences.
	Reset()
}

// timeTask runs task outside any lock held by s and records the elapsed
// time through s, so Synchronized only locks for the final write.
func timeTask(s Statistics, name string, nanos bool, task func() error) (err error) {
	if err := store.ValidateName(name); err != nil {
		return err
	}

	sw := s.StartStopwatch()
	succeeded := false
	defer func() {
		recorded := name + SuffixFailed
		if succeeded {
			recorded = name + SuffixOK
		}
		// name is validated above, recording cannot fail
		if nanos {
			_, _ = s.RecordElapsedNanos(recorded, sw)
		} else {
			_, _ = s.RecordElapsedTime(recorded, sw)
		}
	}()

	err = task()
	succeeded = err == nil
	return err
}
