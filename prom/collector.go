// Package prom exposes patan snapshots to a Prometheus registry.
//
// Collector implements prometheus.Collector in-process. It serves nothing
// over the network; wiring the registry to an HTTP handler is left to the
// application.
//
// Each distribution becomes a set of gauges labelled with the metric name:
//
//	<namespace>_sample_count{name="..."}
//	<namespace>_sample_min / _max / _mean / _stddev
//	<namespace>_duration_count / _min / _max / _mean / _stddev
//	<namespace>_occurrences{name="..."}
//
// Statistics that are undefined (NaN) are left out. A name that is not a
// valid label value is reported to the registry as an invalid metric, so
// Gather returns an error for it instead of panicking.
package prom

import (
	"math"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/toefel18/patan"
	"github.com/toefel18/patan/stats"
)

// DefaultNamespace prefixes every metric when Options.Namespace is empty.
const DefaultNamespace = "patan"

// Source provides snapshots. patan.Statistics satisfies it.
type Source interface {
	Snapshot() *patan.Snapshot
}

// Drainer is a Source that can also drain itself.
type Drainer interface {
	Source
	SnapshotAndReset() *patan.Snapshot
}

// Options configures a Collector.
type Options struct {
	Namespace   string
	ConstLabels prometheus.Labels

	// ResetOnCollect drains the source on every scrape, so each scrape
	// reports what was recorded since the previous one. Only used when the
	// source implements Drainer.
	ResetOnCollect bool
}

type distributionDescs struct {
	count, min, max, mean, stddev *prometheus.Desc
}

func newDistributionDescs(namespace, section string, constLabels prometheus.Labels) distributionDescs {
	desc := func(stat, help string) *prometheus.Desc {
		return prometheus.NewDesc(
			prometheus.BuildFQName(namespace, section, stat),
			help+" of the "+section+" distribution.",
			[]string{"name"}, constLabels,
		)
	}
	return distributionDescs{
		count:  desc("count", "Number of values"),
		min:    desc("min", "Smallest value"),
		max:    desc("max", "Largest value"),
		mean:   desc("mean", "Mean"),
		stddev: desc("stddev", "Sample standard deviation"),
	}
}

func (d distributionDescs) all() []*prometheus.Desc {
	return []*prometheus.Desc{d.count, d.min, d.max, d.mean, d.stddev}
}

// Collector bridges a Source to Prometheus.
type Collector struct {
	src         Source
	drainer     Drainer
	samples     distributionDescs
	durations   distributionDescs
	occurrences *prometheus.Desc
}

// NewCollector creates a collector over src.
func NewCollector(src Source, opts Options) *Collector {
	namespace := opts.Namespace
	if namespace == "" {
		namespace = DefaultNamespace
	}
	c := &Collector{
		src:       src,
		samples:   newDistributionDescs(namespace, "sample", opts.ConstLabels),
		durations: newDistributionDescs(namespace, "duration", opts.ConstLabels),
		occurrences: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "occurrences"),
			"Occurrences counted since the last reset.",
			[]string{"name"}, opts.ConstLabels,
		),
	}
	if d, ok := src.(Drainer); ok && opts.ResetOnCollect {
		c.drainer = d
	}
	return c
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range c.samples.all() {
		ch <- d
	}
	for _, d := range c.durations.all() {
		ch <- d
	}
	ch <- c.occurrences
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	var snap *patan.Snapshot
	if c.drainer != nil {
		snap = c.drainer.SnapshotAndReset()
	} else {
		snap = c.src.Snapshot()
	}

	collectDistributions(ch, c.samples, snap.Samples())
	collectDistributions(ch, c.durations, snap.Durations())

	occurrences := snap.Occurrences()
	for _, name := range occurrences.Names() {
		ch <- gauge(c.occurrences, float64(occurrences[name]), name)
	}
}

func collectDistributions(ch chan<- prometheus.Metric, descs distributionDescs, ds stats.Distributions) {
	for _, name := range ds.Names() {
		d := ds[name]
		ch <- gauge(descs.count, float64(d.Count()), name)
		for _, v := range []struct {
			desc  *prometheus.Desc
			value float64
		}{
			{descs.min, d.Min()},
			{descs.max, d.Max()},
			{descs.mean, d.Mean()},
			{descs.stddev, d.StdDev()},
		} {
			if math.IsNaN(v.value) {
				continue
			}
			ch <- gauge(v.desc, v.value, name)
		}
	}
}

func gauge(desc *prometheus.Desc, value float64, name string) prometheus.Metric {
	m, err := prometheus.NewConstMetric(desc, prometheus.GaugeValue, value, name)
	if err != nil {
		return prometheus.NewInvalidMetric(desc, err)
	}
	return m
}

// Ensure Collector implements prometheus.Collector
var _ prometheus.Collector = (*Collector)(nil)
