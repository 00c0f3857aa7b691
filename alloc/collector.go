package alloc

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector exports the statistics of a StatsSource as Prometheus metrics.
type Collector struct {
	src StatsSource

	allocs     *prometheus.Desc
	resizes    *prometheus.Desc
	frees      *prometheus.Desc
	failures   *prometheus.Desc
	totalBytes *prometheus.Desc
	liveBlocks *prometheus.Desc
	liveBytes  *prometheus.Desc
	peakBytes  *prometheus.Desc
}

// NewCollector creates a collector for src. constLabels are attached to
// every metric, so several allocators can be registered side by side.
func NewCollector(src StatsSource, constLabels prometheus.Labels) *Collector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName("growvec", "allocator", name), help, nil, constLabels)
	}
	return &Collector{
		src:        src,
		allocs:     desc("allocations_total", "Blocks obtained from the allocator."),
		resizes:    desc("resizes_total", "Blocks grown or relocated by the allocator."),
		frees:      desc("frees_total", "Blocks returned to the allocator."),
		failures:   desc("failures_total", "Allocation or resize requests that failed."),
		totalBytes: desc("allocated_bytes_total", "Bytes handed out by the allocator."),
		liveBlocks: desc("live_blocks", "Blocks currently held by containers."),
		liveBytes:  desc("live_bytes", "Bytes currently held by containers."),
		peakBytes:  desc("peak_bytes", "Highest live byte count observed."),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.allocs
	ch <- c.resizes
	ch <- c.frees
	ch <- c.failures
	ch <- c.totalBytes
	ch <- c.liveBlocks
	ch <- c.liveBytes
	ch <- c.peakBytes
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.src.Stats()
	ch <- prometheus.MustNewConstMetric(c.allocs, prometheus.CounterValue, float64(s.Allocs))
	ch <- prometheus.MustNewConstMetric(c.resizes, prometheus.CounterValue, float64(s.Resizes))
	ch <- prometheus.MustNewConstMetric(c.frees, prometheus.CounterValue, float64(s.Frees))
	ch <- prometheus.MustNewConstMetric(c.failures, prometheus.CounterValue, float64(s.Failures))
	ch <- prometheus.MustNewConstMetric(c.totalBytes, prometheus.CounterValue, float64(s.TotalBytes))
	ch <- prometheus.MustNewConstMetric(c.liveBlocks, prometheus.GaugeValue, float64(s.LiveBlocks))
	ch <- prometheus.MustNewConstMetric(c.liveBytes, prometheus.GaugeValue, float64(s.LiveBytes))
	ch <- prometheus.MustNewConstMetric(c.peakBytes, prometheus.GaugeValue, float64(s.PeakBytes))
}

var _ prometheus.Collector = (*Collector)(nil)
