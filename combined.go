package patan

import (
	"slices"
	"strings"

	"github.com/toefel18/patan/stats"
)

// NamedStatistic is one entry of the combined view.
type NamedStatistic struct {
	Name string

	// Counter is true for entries that come from occurrences. Counter entries
	// only carry Count; Distribution is empty.
	Counter      bool
	Count        int64
	Distribution stats.Distribution
}

// Combined merges samples and occurrences into one list sorted by name.
//
// A counter whose name is already taken by a sample is renamed by prefixing
// '#' until the name is unique, so neither entry is lost. Durations are not
// part of this view. Prefer the separate maps of Samples, Durations and
// Occurrences; this view exists for consumers that expect a single table.
func (s *Snapshot) Combined() []NamedStatistic {
	taken := make(map[string]struct{}, len(s.samples)+len(s.occurrences))
	out := make([]NamedStatistic, 0, len(s.samples)+len(s.occurrences))

	for name, d := range s.samples {
		taken[name] = struct{}{}
		out = append(out, NamedStatistic{Name: name, Count: d.Count(), Distribution: d})
	}
	for _, name := range s.occurrences.Names() {
		unique := name
		for {
			if _, exists := taken[unique]; !exists {
				break
			}
			unique = "#" + unique
		}
		taken[unique] = struct{}{}
		out = append(out, NamedStatistic{Name: unique, Counter: true, Count: s.occurrences[name]})
	}

	slices.SortFunc(out, func(a, b NamedStatistic) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out
}
