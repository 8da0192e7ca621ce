package store_test

// Store Tests - name-keyed distributions and counters
//
// The stores are single-threaded building blocks. These tests cover the
// add/find/snapshot/reset contract; concurrency lives in the root package.

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toefel18/patan/internal/store"
	"github.com/toefel18/patan/stats"
)

// TestDistributionStore_AddAndFind verifies samples accumulate per name.
func TestDistributionStore_AddAndFind(t *testing.T) {
	st := store.NewDistributionStore()

	require.NoError(t, st.AddSample("x", 5))
	require.NoError(t, st.AddSample("x", 10))
	require.NoError(t, st.AddSample("x", 15))
	require.NoError(t, st.AddSample("y", 1))

	x, err := st.Find("x")
	require.NoError(t, err)
	assert.Equal(t, int64(3), x.Count())
	assert.Equal(t, 5.0, x.Min())
	assert.Equal(t, 15.0, x.Max())
	assert.InDelta(t, 10.0, x.Mean(), 1e-12)
	assert.InDelta(t, 5.0, x.StdDev(), 1e-12)

	y, err := st.Find("y")
	require.NoError(t, err)
	assert.Equal(t, int64(1), y.Count())
	assert.Len(t, st.Snapshot(), 2)
}

// TestDistributionStore_FindUnknown verifies unknown names read as empty.
func TestDistributionStore_FindUnknown(t *testing.T) {
	st := store.NewDistributionStore()

	d, err := st.Find("never-used")
	require.NoError(t, err)
	assert.True(t, d.IsEmpty())
	assert.Empty(t, st.Snapshot(), "find must not create entries")
}

// TestDistributionStore_EmptyName verifies the empty name is rejected.
func TestDistributionStore_EmptyName(t *testing.T) {
	st := store.NewDistributionStore()

	err := st.AddSample("", 1)
	require.ErrorIs(t, err, store.ErrInvalidArgument)

	d, err := st.Find("")
	require.ErrorIs(t, err, store.ErrInvalidArgument)
	assert.True(t, d.IsEmpty())
	assert.Empty(t, st.Snapshot())
}

// TestDistributionStore_NonFinite verifies NaN and infinities are rejected
// without touching an existing distribution.
func TestDistributionStore_NonFinite(t *testing.T) {
	st := store.NewDistributionStore()
	require.NoError(t, st.AddSample("x", 4))

	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		assert.ErrorIs(t, st.AddSample("x", v), store.ErrInvalidArgument)
		assert.ErrorIs(t, st.AddSample("fresh", v), store.ErrInvalidArgument)
	}

	x, err := st.Find("x")
	require.NoError(t, err)
	assert.Equal(t, int64(1), x.Count())
	assert.Equal(t, 4.0, x.Mean())
	assert.NotContains(t, st.Snapshot(), "fresh")

	require.NoError(t, st.AddSample("x", 6))
	x, _ = st.Find("x")
	assert.Equal(t, 4.0, x.Min())
	assert.Equal(t, 6.0, x.Max())
	assert.Equal(t, 5.0, x.Mean())
}

// TestDistributionStore_SnapshotDetached verifies the snapshot and the live
// store do not share state in either direction.
func TestDistributionStore_SnapshotDetached(t *testing.T) {
	st := store.NewDistributionStore()
	require.NoError(t, st.AddSample("a", 1))

	snap := st.Snapshot()
	require.NoError(t, st.AddSample("a", 2))
	require.NoError(t, st.AddSample("b", 3))

	assert.Equal(t, int64(1), snap["a"].Count())
	assert.NotContains(t, snap, "b")

	snap["a"] = stats.Of(100, 200, 300)
	snap["c"] = stats.Of(1)
	a, _ := st.Find("a")
	assert.Equal(t, int64(2), a.Count())
	c, _ := st.Find("c")
	assert.True(t, c.IsEmpty())
}

// TestDistributionStore_SnapshotAndReset verifies the handover.
func TestDistributionStore_SnapshotAndReset(t *testing.T) {
	st := store.NewDistributionStore()
	require.NoError(t, st.AddSample("b", 1))
	require.NoError(t, st.AddSample("a", 2))

	snap := st.SnapshotAndReset()
	assert.Equal(t, []string{"a", "b"}, snap.Names())
	assert.Empty(t, st.Snapshot())

	require.NoError(t, st.AddSample("a", 3))
	assert.Equal(t, int64(1), snap["a"].Count(), "writes after reset must not leak into the old snapshot")

	again := st.SnapshotAndReset()
	assert.Equal(t, int64(1), again["a"].Count())
	assert.Equal(t, 3.0, again["a"].Max())
}

// TestDistributionStore_Reset verifies reset clears everything.
func TestDistributionStore_Reset(t *testing.T) {
	st := store.NewDistributionStore()
	require.NoError(t, st.AddSample("a", 1))

	st.Reset()

	assert.Empty(t, st.Snapshot())
	assert.Empty(t, st.Snapshot())
	assert.NotNil(t, st.Snapshot())
}

// TestCounterStore_ScenarioD verifies explicit amounts accumulate.
func TestCounterStore_ScenarioD(t *testing.T) {
	st := store.NewCounterStore()

	require.NoError(t, st.AddOccurrences("e", 3))
	require.NoError(t, st.AddOccurrences("e", 4))

	n, err := st.Find("e")
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
}

// TestCounterStore_Amounts covers +1, zero and negative amounts.
func TestCounterStore_Amounts(t *testing.T) {
	tests := []struct {
		name    string
		amounts []int64
		want    int64
	}{
		{name: "single", amounts: nil, want: 1},
		{name: "zero keeps count", amounts: []int64{0}, want: 1},
		{name: "negative decrements", amounts: []int64{-3}, want: -2},
		{name: "mixed", amounts: []int64{10, -4, 2}, want: 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := store.NewCounterStore()
			require.NoError(t, st.AddOccurrence("c"))
			for _, n := range tt.amounts {
				require.NoError(t, st.AddOccurrences("c", n))
			}
			got, err := st.Find("c")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestCounterStore_FindUnknown verifies unknown names read as zero.
func TestCounterStore_FindUnknown(t *testing.T) {
	st := store.NewCounterStore()

	n, err := st.Find("never-used")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

// TestCounterStore_EmptyName verifies the empty name is rejected.
func TestCounterStore_EmptyName(t *testing.T) {
	st := store.NewCounterStore()

	assert.ErrorIs(t, st.AddOccurrence(""), store.ErrInvalidArgument)
	assert.ErrorIs(t, st.AddOccurrences("", 5), store.ErrInvalidArgument)
	_, err := st.Find("")
	assert.ErrorIs(t, err, store.ErrInvalidArgument)
}

// TestCounterStore_SnapshotAndReset verifies detached snapshots and reset.
func TestCounterStore_SnapshotAndReset(t *testing.T) {
	st := store.NewCounterStore()
	require.NoError(t, st.AddOccurrence("a"))

	snap := st.Snapshot()
	require.NoError(t, st.AddOccurrence("a"))
	assert.Equal(t, int64(1), snap["a"])

	drained := st.SnapshotAndReset()
	assert.Equal(t, int64(2), drained["a"])
	assert.Empty(t, st.Snapshot())

	require.NoError(t, st.AddOccurrence("a"))
	assert.Equal(t, int64(2), drained["a"])

	st.Reset()
	assert.Empty(t, st.Snapshot())
}
