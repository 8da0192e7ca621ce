package patan

import (
	"fmt"
	"time"

	"github.com/tidwall/sjson"

	"github.com/toefel18/patan/stats"
)

// Snapshot is a detached, point-in-time copy of samples, durations and
// occurrences. Later writes to the statistics never show up in it, and its
// accessors return copies, so a Snapshot cannot be modified after creation.
type Snapshot struct {
	takenAt     time.Time
	samples     stats.Distributions
	durations   stats.Distributions
	occurrences stats.Counts
}

// NewSnapshot creates a snapshot from copies of the given maps. Every map
// must be non-nil; an empty map is fine.
func NewSnapshot(samples stats.Distributions, occurrences stats.Counts, durations stats.Distributions, takenAt time.Time) (*Snapshot, error) {
	switch {
	case samples == nil:
		return nil, fmt.Errorf("%w: samples cannot be nil", ErrInvalidArgument)
	case occurrences == nil:
		return nil, fmt.Errorf("%w: occurrences cannot be nil", ErrInvalidArgument)
	case durations == nil:
		return nil, fmt.Errorf("%w: durations cannot be nil", ErrInvalidArgument)
	}
	return newSnapshot(samples.Clone(), occurrences.Clone(), durations.Clone(), takenAt), nil
}

// newSnapshot takes ownership of maps that nothing else references.
func newSnapshot(samples stats.Distributions, occurrences stats.Counts, durations stats.Distributions, takenAt time.Time) *Snapshot {
	return &Snapshot{
		takenAt:     takenAt,
		samples:     samples,
		durations:   durations,
		occurrences: occurrences,
	}
}

// TakenAt returns the capture time.
func (s *Snapshot) TakenAt() time.Time {
	return s.takenAt
}

// Samples returns a copy of the sample distributions.
func (s *Snapshot) Samples() stats.Distributions {
	return s.samples.Clone()
}

// Durations returns a copy of the duration distributions.
func (s *Snapshot) Durations() stats.Distributions {
	return s.durations.Clone()
}

// Occurrences returns a copy of the counters.
func (s *Snapshot) Occurrences() stats.Counts {
	return s.occurrences.Clone()
}

// FindSample returns the sample distribution for name, or the empty one.
func (s *Snapshot) FindSample(name string) stats.Distribution {
	return s.samples.Find(name)
}

// FindDuration returns the duration distribution for name, or the empty one.
func (s *Snapshot) FindDuration(name string) stats.Distribution {
	return s.durations.Find(name)
}

// FindOccurrence returns the counter for name, or 0.
func (s *Snapshot) FindOccurrence(name string) int64 {
	return s.occurrences.Find(name)
}

// IsEmpty reports whether nothing was recorded.
func (s *Snapshot) IsEmpty() bool {
	return len(s.samples) == 0 && len(s.durations) == 0 && len(s.occurrences) == 0
}

// MarshalJSON implements json.Marshaler. Sections and names are ordered,
// NaN statistics are written as null.
func (s *Snapshot) MarshalJSON() ([]byte, error) {
	doc, err := sjson.SetBytes([]byte("{}"), "taken_at", s.takenAt.Format(time.RFC3339Nano))
	if err != nil {
		return nil, err
	}
	if doc, err = sjson.SetBytes(doc, "version", Version()); err != nil {
		return nil, err
	}

	sections := []struct {
		key  string
		view interface{ MarshalJSON() ([]byte, error) }
	}{
		{"samples", s.samples},
		{"durations", s.durations},
		{"occurrences", s.occurrences},
	}
	for _, section := range sections {
		raw, err := section.view.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("failed to render %s: %w", section.key, err)
		}
		if doc, err = sjson.SetRawBytes(doc, section.key, raw); err != nil {
			return nil, err
		}
	}
	return doc, nil
}
