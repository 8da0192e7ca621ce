// Package patan is an in-process metrics library.
//
// Callers record three kinds of measurements under string names:
//   - samples:     arbitrary numeric observations (AddSample)
//   - durations:   elapsed time measured with a Stopwatch (RecordElapsedTime)
//   - occurrences: plain counters (AddOccurrence, AddOccurrences)
//
// Samples and durations are summarized as running distributions (count, min,
// max, mean, sample standard deviation) computed with the numerically stable
// shifted-data algorithm in package stats. Nothing is buffered per sample.
//
// # Usage
//
//	s := patan.New()
//	sw := s.StartStopwatch()
//	// ... work ...
//	s.RecordElapsedTime("db.query", sw)
//
//	err := s.RecordElapsedTimeOf("checkout", func() error {
//		return checkout(ctx)
//	}) // recorded as "checkout.ok" or "checkout.failed"
//
//	snap := s.SnapshotAndReset()
//	for _, name := range snap.Durations().Names() { ... }
//
// # Concurrency
//
// New returns a Synchronized statistics instance: one RWMutex guards the
// samples, durations and occurrences together, so SnapshotAndReset is atomic
// across all three and never loses or double-counts a concurrent write.
// NewSingleThreaded returns the bare Facade for single-goroutine use.
//
// Lookups are total. Unknown names yield the empty distribution or a zero
// count. Only the empty name is rejected, with ErrInvalidArgument.
package patan
