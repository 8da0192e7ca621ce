package patan_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toefel18/patan"
)

// fixedStopwatch always reports the same elapsed time.
type fixedStopwatch time.Duration

func (f fixedStopwatch) Elapsed() time.Duration { return time.Duration(f) }
func (f fixedStopwatch) ElapsedMillis() float64 { return float64(f) / float64(time.Millisecond) }
func (f fixedStopwatch) ElapsedNanos() int64    { return int64(f) }

// implementations runs each test against both Statistics variants.
func implementations() map[string]func() patan.Statistics {
	return map[string]func() patan.Statistics{
		"single-threaded": patan.NewSingleThreaded,
		"synchronized":    patan.New,
	}
}

func TestStatistics_ScenarioA(t *testing.T) {
	for name, newStats := range implementations() {
		t.Run(name, func(t *testing.T) {
			s := newStats()
			require.NoError(t, s.AddSample("x", 5))
			require.NoError(t, s.AddSample("x", 10))
			require.NoError(t, s.AddSample("x", 15))

			d, err := s.FindSample("x")
			require.NoError(t, err)
			assert.Equal(t, int64(3), d.Count())
			assert.Equal(t, 5.0, d.Min())
			assert.Equal(t, 15.0, d.Max())
			assert.InDelta(t, 10.0, d.Mean(), 1e-12)
			assert.InDelta(t, 5.0, d.StdDev(), 1e-12)
		})
	}
}

func TestStatistics_ScenarioB_FreshSnapshot(t *testing.T) {
	for name, newStats := range implementations() {
		t.Run(name, func(t *testing.T) {
			snap := newStats().Snapshot()

			require.NotNil(t, snap)
			assert.NotNil(t, snap.Samples())
			assert.NotNil(t, snap.Durations())
			assert.NotNil(t, snap.Occurrences())
			assert.Empty(t, snap.Samples())
			assert.Empty(t, snap.Durations())
			assert.Empty(t, snap.Occurrences())
			assert.True(t, snap.IsEmpty())
			assert.WithinDuration(t, time.Now(), snap.TakenAt(), time.Second)
		})
	}
}

func TestStatistics_ScenarioC_FailedTask(t *testing.T) {
	for name, newStats := range implementations() {
		t.Run(name, func(t *testing.T) {
			s := newStats()
			boom := errors.New("boom")

			err := s.RecordElapsedTimeOf("op", func() error { return boom })

			assert.True(t, err == boom, "error must be returned unchanged, got %v", err)
			failed, err := s.FindDuration("op.failed")
			require.NoError(t, err)
			assert.Equal(t, int64(1), failed.Count())
			ok, err := s.FindDuration("op.ok")
			require.NoError(t, err)
			assert.True(t, ok.IsEmpty())
		})
	}
}

func TestStatistics_ScenarioC_SucceedingTask(t *testing.T) {
	for name, newStats := range implementations() {
		t.Run(name, func(t *testing.T) {
			s := newStats()
			ran := false

			err := s.RecordElapsedTimeOf("op", func() error {
				ran = true
				return nil
			})

			require.NoError(t, err)
			assert.True(t, ran)
			ok, _ := s.FindDuration("op.ok")
			assert.Equal(t, int64(1), ok.Count())
			assert.GreaterOrEqual(t, ok.Min(), 0.0)
			failed, _ := s.FindDuration("op.failed")
			assert.True(t, failed.IsEmpty())
		})
	}
}

func TestStatistics_PanickingTaskRecordedAsFailed(t *testing.T) {
	for name, newStats := range implementations() {
		t.Run(name, func(t *testing.T) {
			s := newStats()

			assert.PanicsWithValue(t, "kaboom", func() {
				_ = s.RecordElapsedNanosOf("op", func() error { panic("kaboom") })
			})

			failed, _ := s.FindDuration("op.failed")
			assert.Equal(t, int64(1), failed.Count())
		})
	}
}

func TestStatistics_ScenarioD_Occurrences(t *testing.T) {
	for name, newStats := range implementations() {
		t.Run(name, func(t *testing.T) {
			s := newStats()
			require.NoError(t, s.AddOccurrences("e", 3))
			require.NoError(t, s.AddOccurrences("e", 4))
			require.NoError(t, s.AddOccurrence("f"))

			e, err := s.FindOccurrence("e")
			require.NoError(t, err)
			assert.Equal(t, int64(7), e)
			f, _ := s.FindOccurrence("f")
			assert.Equal(t, int64(1), f)
		})
	}
}

func TestStatistics_UnknownNamesAreEmpty(t *testing.T) {
	for name, newStats := range implementations() {
		t.Run(name, func(t *testing.T) {
			s := newStats()

			sample, err := s.FindSample("never-used")
			require.NoError(t, err)
			assert.Equal(t, int64(0), sample.Count())

			duration, err := s.FindDuration("never-used")
			require.NoError(t, err)
			assert.True(t, duration.IsEmpty())

			n, err := s.FindOccurrence("never-used")
			require.NoError(t, err)
			assert.Equal(t, int64(0), n)
		})
	}
}

func TestStatistics_EmptyNameRejected(t *testing.T) {
	for name, newStats := range implementations() {
		t.Run(name, func(t *testing.T) {
			s := newStats()
			sw := fixedStopwatch(time.Millisecond)
			called := false

			assert.ErrorIs(t, s.AddSample("", 1), patan.ErrInvalidArgument)
			assert.ErrorIs(t, s.AddOccurrence(""), patan.ErrInvalidArgument)
			assert.ErrorIs(t, s.AddOccurrences("", 2), patan.ErrInvalidArgument)
			_, err := s.RecordElapsedTime("", sw)
			assert.ErrorIs(t, err, patan.ErrInvalidArgument)
			_, err = s.RecordElapsedNanos("", sw)
			assert.ErrorIs(t, err, patan.ErrInvalidArgument)
			err = s.RecordElapsedTimeOf("", func() error { called = true; return nil })
			assert.ErrorIs(t, err, patan.ErrInvalidArgument)
			assert.False(t, called, "task must not run for an invalid name")
			_, err = s.FindSample("")
			assert.ErrorIs(t, err, patan.ErrInvalidArgument)
			_, err = s.FindDuration("")
			assert.ErrorIs(t, err, patan.ErrInvalidArgument)
			_, err = s.FindOccurrence("")
			assert.ErrorIs(t, err, patan.ErrInvalidArgument)

			assert.True(t, s.Snapshot().IsEmpty())
		})
	}
}

func TestStatistics_NonFiniteSampleRejected(t *testing.T) {
	for name, newStats := range implementations() {
		t.Run(name, func(t *testing.T) {
			s := newStats()
			require.NoError(t, s.AddSample("latency", 2))

			assert.ErrorIs(t, s.AddSample("latency", math.NaN()), patan.ErrInvalidArgument)
			assert.ErrorIs(t, s.AddSample("latency", math.Inf(1)), patan.ErrInvalidArgument)
			require.NoError(t, s.AddSample("latency", 4))

			d, err := s.FindSample("latency")
			require.NoError(t, err)
			assert.Equal(t, int64(2), d.Count())
			assert.Equal(t, 3.0, d.Mean())
		})
	}
}

func TestStatistics_RecordElapsedWithStopwatch(t *testing.T) {
	for name, newStats := range implementations() {
		t.Run(name, func(t *testing.T) {
			s := newStats()

			ms, err := s.RecordElapsedTime("fetch", fixedStopwatch(1500*time.Microsecond))
			require.NoError(t, err)
			assert.Equal(t, 1.5, ms)

			ns, err := s.RecordElapsedNanos("fetch.nanos", fixedStopwatch(2500))
			require.NoError(t, err)
			assert.Equal(t, int64(2500), ns)

			fetch, _ := s.FindDuration("fetch")
			assert.Equal(t, 1.5, fetch.Mean())
			nanos, _ := s.FindDuration("fetch.nanos")
			assert.Equal(t, 2500.0, nanos.Mean())

			samples := s.SamplesSnapshot()
			assert.Empty(t, samples, "durations must not leak into samples")
		})
	}
}

func TestStatistics_RecordElapsedGeneric(t *testing.T) {
	for name, newStats := range implementations() {
		t.Run(name, func(t *testing.T) {
			s := newStats()

			got, err := patan.RecordElapsed(s, "lookup", func() (string, error) {
				return "value", nil
			})
			require.NoError(t, err)
			assert.Equal(t, "value", got)

			notFound := errors.New("not found")
			n, err := patan.RecordElapsedNanosResult(s, "lookup", func() (int, error) {
				return 0, notFound
			})
			assert.True(t, err == notFound)
			assert.Equal(t, 0, n)

			ok, _ := s.FindDuration("lookup.ok")
			failed, _ := s.FindDuration("lookup.failed")
			assert.Equal(t, int64(1), ok.Count())
			assert.Equal(t, int64(1), failed.Count())
		})
	}
}

func TestStatistics_SnapshotDetachedFromLiveState(t *testing.T) {
	for name, newStats := range implementations() {
		t.Run(name, func(t *testing.T) {
			s := newStats()
			require.NoError(t, s.AddSample("a", 1))
			require.NoError(t, s.AddOccurrence("a"))

			snap := s.Snapshot()
			require.NoError(t, s.AddSample("a", 2))
			require.NoError(t, s.AddOccurrence("a"))
			require.NoError(t, s.AddSample("b", 1))

			assert.Equal(t, int64(1), snap.FindSample("a").Count())
			assert.Equal(t, int64(1), snap.FindOccurrence("a"))
			assert.True(t, snap.FindSample("b").IsEmpty())

			samples := snap.Samples()
			delete(samples, "a")
			assert.Equal(t, int64(1), snap.FindSample("a").Count(), "accessor copies must not alias the snapshot")
		})
	}
}

func TestStatistics_SnapshotAndReset(t *testing.T) {
	for name, newStats := range implementations() {
		t.Run(name, func(t *testing.T) {
			s := newStats()
			require.NoError(t, s.AddSample("s", 1))
			require.NoError(t, s.AddOccurrence("o"))
			_, err := s.RecordElapsedTime("d", fixedStopwatch(time.Millisecond))
			require.NoError(t, err)

			snap := s.SnapshotAndReset()
			assert.Equal(t, int64(1), snap.FindSample("s").Count())
			assert.Equal(t, int64(1), snap.FindOccurrence("o"))
			assert.Equal(t, int64(1), snap.FindDuration("d").Count())

			assert.True(t, s.Snapshot().IsEmpty())

			require.NoError(t, s.AddSample("s", 2))
			assert.Equal(t, int64(1), snap.FindSample("s").Count())
		})
	}
}

func TestStatistics_PerSectionSnapshotAndReset(t *testing.T) {
	for name, newStats := range implementations() {
		t.Run(name, func(t *testing.T) {
			s := newStats()
			require.NoError(t, s.AddSample("s", 1))
			require.NoError(t, s.AddOccurrence("o"))
			_, err := s.RecordElapsedTime("d", fixedStopwatch(time.Millisecond))
			require.NoError(t, err)

			samples := s.SamplesSnapshotAndReset()
			assert.Equal(t, []string{"s"}, samples.Names())
			assert.Empty(t, s.SamplesSnapshot())
			assert.Len(t, s.OccurrencesSnapshot(), 1, "other sections untouched")
			assert.Len(t, s.DurationsSnapshot(), 1, "other sections untouched")

			occurrences := s.OccurrencesSnapshotAndReset()
			assert.Equal(t, int64(1), occurrences["o"])
			assert.Empty(t, s.OccurrencesSnapshot())

			durations := s.DurationsSnapshotAndReset()
			assert.Equal(t, int64(1), durations["d"].Count())
			assert.Empty(t, s.DurationsSnapshot())
		})
	}
}

func TestStatistics_Reset(t *testing.T) {
	for name, newStats := range implementations() {
		t.Run(name, func(t *testing.T) {
			s := newStats()
			require.NoError(t, s.AddSample("s", 1))
			require.NoError(t, s.AddOccurrence("o"))
			_, err := s.RecordElapsedTime("d", fixedStopwatch(time.Millisecond))
			require.NoError(t, err)

			s.Reset()

			assert.True(t, s.Snapshot().IsEmpty())
		})
	}
}

func TestStatistics_SnapshotSortedNames(t *testing.T) {
	s := patan.New()
	for _, name := range []string{"charlie", "alpha", "bravo"} {
		require.NoError(t, s.AddSample(name, 1))
	}

	assert.Equal(t, []string{"alpha", "bravo", "charlie"}, s.Snapshot().Samples().Names())
}

func TestNewSynchronized_NilRejected(t *testing.T) {
	s, err := patan.NewSynchronized(nil)

	assert.Nil(t, s)
	assert.ErrorIs(t, err, patan.ErrInvalidArgument)
}

func TestStartStopwatch_Monotonic(t *testing.T) {
	sw := patan.StartStopwatch()
	time.Sleep(2 * time.Millisecond)

	assert.GreaterOrEqual(t, sw.ElapsedNanos(), int64(2*time.Millisecond))
	assert.GreaterOrEqual(t, sw.ElapsedMillis(), 2.0)
	assert.GreaterOrEqual(t, sw.Elapsed(), 2*time.Millisecond)
}
