// Package stats - views.go defines the name-keyed views returned by snapshots.
//
// DESIGN: Go maps have no order, so "sorted by name" is provided by Names()
// and by the JSON rendering, both of which walk keys lexicographically.
package stats

import (
	"maps"
	"slices"
)

// Distributions maps a name to its distribution.
type Distributions map[string]Distribution

// Names returns the keys in lexicographic order.
func (ds Distributions) Names() []string {
	return slices.Sorted(maps.Keys(ds))
}

// Find returns the distribution for name, or the empty distribution.
func (ds Distributions) Find(name string) Distribution {
	return ds[name]
}

// Clone returns an independent copy. Distribution values are immutable, so
// a shallow copy is a deep copy. A nil receiver yields an empty map.
func (ds Distributions) Clone() Distributions {
	out := make(Distributions, len(ds))
	maps.Copy(out, ds)
	return out
}

// Counts maps a name to its occurrence count.
type Counts map[string]int64

// Names returns the keys in lexicographic order.
func (cs Counts) Names() []string {
	return slices.Sorted(maps.Keys(cs))
}

// Find returns the count for name, or 0.
func (cs Counts) Find(name string) int64 {
	return cs[name]
}

// Clone returns an independent copy. A nil receiver yields an empty map.
func (cs Counts) Clone() Counts {
	out := make(Counts, len(cs))
	maps.Copy(out, cs)
	return out
}

// Total returns the sum of all counts.
func (cs Counts) Total() int64 {
	var total int64
	for _, n := range cs {
		total += n
	}
	return total
}

// TotalSamples returns the sum of the sample counts of all distributions.
func (ds Distributions) TotalSamples() int64 {
	var total int64
	for _, d := range ds {
		total += d.count
	}
	return total
}
