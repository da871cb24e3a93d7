// Tracks per-task outcomes and the fog/cloud split for final reporting.

package sim

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Collector is the append-only statistics sink of one run. Records are kept
// in completion order; fog and cloud counters are maintained on insert.
//
// Thread-safety: NOT thread-safe. One Collector per run; merge after the
// runs have drained.
type Collector struct {
	records    []CompletionRecord
	latencies  []float64
	fogCount   int
	cloudCount int
}

// NewCollector creates an empty Collector.
func NewCollector() *Collector {
	return &Collector{
		records:   make([]CompletionRecord, 0),
		latencies: make([]float64, 0),
	}
}

// Record appends one completion outcome.
func (c *Collector) Record(r CompletionRecord) {
	c.records = append(c.records, r)
	c.latencies = append(c.latencies, r.Latency)
	if r.Location == LocationCloud {
		c.cloudCount++
	} else {
		c.fogCount++
	}
}

// Count returns the number of completed tasks.
func (c *Collector) Count() int { return len(c.records) }

// FogCount returns the number of tasks completed in the fog.
func (c *Collector) FogCount() int { return c.fogCount }

// CloudCount returns the number of tasks completed in the cloud.
func (c *Collector) CloudCount() int { return c.cloudCount }

// MeanLatency returns the mean completion latency, or ErrNoData.
func (c *Collector) MeanLatency() (float64, error) {
	if len(c.latencies) == 0 {
		return 0, fmt.Errorf("mean latency: %w", ErrNoData)
	}
	return stat.Mean(c.latencies, nil), nil
}

// MaxLatency returns the largest completion latency, or ErrNoData.
func (c *Collector) MaxLatency() (float64, error) {
	if len(c.latencies) == 0 {
		return 0, fmt.Errorf("max latency: %w", ErrNoData)
	}
	return floats.Max(c.latencies), nil
}

// MinLatency returns the smallest completion latency, or ErrNoData.
func (c *Collector) MinLatency() (float64, error) {
	if len(c.latencies) == 0 {
		return 0, fmt.Errorf("min latency: %w", ErrNoData)
	}
	return floats.Min(c.latencies), nil
}

// StdDevLatency returns the sample standard deviation of latencies, zero
// for a single task, or ErrNoData.
func (c *Collector) StdDevLatency() (float64, error) {
	switch len(c.latencies) {
	case 0:
		return 0, fmt.Errorf("latency stddev: %w", ErrNoData)
	case 1:
		return 0, nil
	}
	return stat.StdDev(c.latencies, nil), nil
}

// Quantile returns the p-quantile (p in [0, 1]) of latencies using linear
// interpolation, or ErrNoData.
func (c *Collector) Quantile(p float64) (float64, error) {
	if len(c.latencies) == 0 {
		return 0, fmt.Errorf("latency quantile: %w", ErrNoData)
	}
	if p < 0 || p > 1 {
		return 0, fmt.Errorf("latency quantile: p must be in [0, 1], got %v", p)
	}
	sorted := make([]float64, len(c.latencies))
	copy(sorted, c.latencies)
	sort.Float64s(sorted)
	return stat.Quantile(p, stat.LinInterp, sorted, nil), nil
}

// Records returns a copy of the completion records in completion order.
func (c *Collector) Records() []CompletionRecord {
	out := make([]CompletionRecord, len(c.records))
	copy(out, c.records)
	return out
}

// Latencies returns a copy of the latencies in completion order.
func (c *Collector) Latencies() []float64 {
	out := make([]float64, len(c.latencies))
	copy(out, c.latencies)
	return out
}

// Merge appends every record of other, preserving its order.
func (c *Collector) Merge(other *Collector) {
	for _, r := range other.records {
		c.Record(r)
	}
}

// Summary is the aggregate view consumed by reporting.
type Summary struct {
	TotalCompleted int     `json:"total_completed"`
	FogCount       int     `json:"fog_count"`
	CloudCount     int     `json:"cloud_count"`
	MeanLatency    float64 `json:"mean_latency"`
	MaxLatency     float64 `json:"max_latency"`
	MinLatency     float64 `json:"min_latency"`
	StdDevLatency  float64 `json:"stddev_latency"`
	P50Latency     float64 `json:"p50_latency"`
	P95Latency     float64 `json:"p95_latency"`
	P99Latency     float64 `json:"p99_latency"`
}

// Summary returns the aggregate statistics. On an empty collection the
// counts are filled in and ErrNoData is returned.
func (c *Collector) Summary() (Summary, error) {
	s := Summary{
		TotalCompleted: c.Count(),
		FogCount:       c.fogCount,
		CloudCount:     c.cloudCount,
	}
	if c.Count() == 0 {
		return s, fmt.Errorf("summary: %w", ErrNoData)
	}
	// Non-empty from here; the statistic errors cannot occur.
	s.MeanLatency, _ = c.MeanLatency()
	s.MaxLatency, _ = c.MaxLatency()
	s.MinLatency, _ = c.MinLatency()
	s.StdDevLatency, _ = c.StdDevLatency()
	s.P50Latency, _ = c.Quantile(0.50)
	s.P95Latency, _ = c.Quantile(0.95)
	s.P99Latency, _ = c.Quantile(0.99)
	return s, nil
}
