package patan

import "time"

// Stopwatch measures time elapsed since it was started. Stopwatches are
// never stored by the statistics; callers keep them.
type Stopwatch interface {
	// Elapsed returns the elapsed time.
	Elapsed() time.Duration

	// ElapsedMillis returns the elapsed time in milliseconds with nanosecond
	// precision.
	ElapsedMillis() float64

	// ElapsedNanos returns the elapsed time in nanoseconds.
	ElapsedNanos() int64
}

// StartStopwatch returns a running stopwatch backed by the monotonic clock.
func StartStopwatch() Stopwatch {
	return runningStopwatch{start: time.Now()}
}

type runningStopwatch struct {
	start time.Time
}

func (sw runningStopwatch) Elapsed() time.Duration {
	return time.Since(sw.start)
}

func (sw runningStopwatch) ElapsedMillis() float64 {
	return float64(sw.Elapsed()) / float64(time.Millisecond)
}

func (sw runningStopwatch) ElapsedNanos() int64 {
	return int64(sw.Elapsed())
}
