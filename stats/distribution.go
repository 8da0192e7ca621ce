// Package stats - distribution.go provides the immutable running distribution.
//
// DESIGN: Distribution is a value type. Every sample produces a new value,
// the receiver is never modified. Variance uses the shifted-data algorithm:
//   - shift:         the first sample ever added (0 for the empty value)
//   - shiftedSum:    Σ(v - shift)
//   - shiftedSumSqr: Σ(v - shift)²
//
// Subtracting the first sample keeps the squared terms small no matter how
// far the samples are from zero, so large timestamps or millisecond
// durations with a small spread do not lose their variance to cancellation.
// See https://en.wikipedia.org/wiki/Algorithms_for_calculating_variance#Computing_shifted_data
package stats

import (
	"fmt"
	"math"
)

// Distribution is a running statistical summary of sampled values.
// The zero value is the canonical empty distribution.
type Distribution struct {
	count         int64
	min           float64
	max           float64
	shift         float64
	shiftedSum    float64
	shiftedSumSqr float64
}

// Empty returns the canonical distribution without samples.
func Empty() Distribution {
	return Distribution{}
}

// Of returns a distribution built from the given values.
func Of(values ...float64) Distribution {
	d := Empty()
	for _, v := range values {
		d = d.WithSample(v)
	}
	return d
}

// WithSample returns a new distribution that includes v. v must be finite:
// a NaN sample makes Min, Max and Mean NaN for good.
func (d Distribution) WithSample(v float64) Distribution {
	if d.count == 0 {
		return Distribution{
			count: 1,
			min:   v,
			max:   v,
			shift: v,
		}
	}

	next := d
	next.count++
	if v < d.min {
		next.min = v
	}
	if v > d.max {
		next.max = v
	}
	delta := v - d.shift
	next.shiftedSum += delta
	next.shiftedSumSqr += delta * delta
	return next
}

// IsEmpty reports whether no samples were recorded.
func (d Distribution) IsEmpty() bool {
	return d.count == 0
}

// Count returns the number of samples.
func (d Distribution) Count() int64 {
	return d.count
}

// Min returns the lowest sample, or NaN when empty.
func (d Distribution) Min() float64 {
	if d.count == 0 {
		return math.NaN()
	}
	return d.min
}

// Max returns the highest sample, or NaN when empty.
func (d Distribution) Max() float64 {
	if d.count == 0 {
		return math.NaN()
	}
	return d.max
}

// Sum returns the sum of all samples.
func (d Distribution) Sum() float64 {
	return d.shift*float64(d.count) + d.shiftedSum
}

// Mean returns the arithmetic mean, or NaN when empty.
func (d Distribution) Mean() float64 {
	if d.count == 0 {
		return math.NaN()
	}
	mean := d.shift + d.shiftedSum/float64(d.count)
	// rounding may push the mean a ulp outside the observed bounds
	return math.Min(math.Max(mean, d.min), d.max)
}

// Variance returns the sample variance (n-1 denominator), or NaN for
// fewer than two samples.
func (d Distribution) Variance() float64 {
	if d.count < 2 {
		return math.NaN()
	}
	n := float64(d.count)
	variance := (d.shiftedSumSqr - d.shiftedSum*d.shiftedSum/n) / (n - 1)
	if variance < 0 {
		return 0
	}
	return variance
}

// StdDev returns the sample standard deviation, or NaN for fewer than two
// samples.
func (d Distribution) StdDev() float64 {
	return math.Sqrt(d.Variance())
}

// String implements fmt.Stringer.
func (d Distribution) String() string {
	return fmt.Sprintf("Distribution[count=%d min=%g max=%g mean=%g stddev=%g]",
		d.count, d.Min(), d.Max(), d.Mean(), d.StdDev())
}
