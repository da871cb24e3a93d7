package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(id string, loc Location, latency float64) CompletionRecord {
	return CompletionRecord{TaskID: id, Location: loc, Latency: latency}
}

func TestCollector_Empty_StatisticsSignalNoData(t *testing.T) {
	// GIVEN a collector with no completed tasks
	c := NewCollector()

	// THEN count is zero and every latency statistic signals ErrNoData
	assert.Equal(t, 0, c.Count())
	for name, f := range map[string]func() (float64, error){
		"mean":   c.MeanLatency,
		"max":    c.MaxLatency,
		"min":    c.MinLatency,
		"stddev": c.StdDevLatency,
		"p50":    func() (float64, error) { return c.Quantile(0.5) },
	} {
		_, err := f()
		if !errors.Is(err, ErrNoData) {
			t.Errorf("%s on empty collector: error = %v, want ErrNoData", name, err)
		}
	}

	summary, err := c.Summary()
	assert.ErrorIs(t, err, ErrNoData)
	assert.Equal(t, Summary{}, summary)
}

func TestCollector_Record_CountsAndStatistics(t *testing.T) {
	// GIVEN two fog and two cloud completions
	c := NewCollector()
	c.Record(rec("a", LocationFog, 2))
	c.Record(rec("b", LocationCloud, 9))
	c.Record(rec("c", LocationFog, 2))
	c.Record(rec("d", LocationCloud, 11))

	// THEN counts and statistics reflect all four
	assert.Equal(t, 4, c.Count())
	assert.Equal(t, 2, c.FogCount())
	assert.Equal(t, 2, c.CloudCount())

	mean, err := c.MeanLatency()
	require.NoError(t, err)
	assert.Equal(t, 6.0, mean)

	maxL, err := c.MaxLatency()
	require.NoError(t, err)
	assert.Equal(t, 11.0, maxL)

	minL, err := c.MinLatency()
	require.NoError(t, err)
	assert.Equal(t, 2.0, minL)

	// sample variance of {2,9,2,11} = (16+9+16+25)/3 = 22
	sd, err := c.StdDevLatency()
	require.NoError(t, err)
	assert.InDelta(t, 4.690415759823429, sd, 1e-12)

	q0, err := c.Quantile(0)
	require.NoError(t, err)
	assert.Equal(t, 2.0, q0)
	q1, err := c.Quantile(1)
	require.NoError(t, err)
	assert.Equal(t, 11.0, q1)
	p50, err := c.Quantile(0.5)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, p50, q0)
	assert.LessOrEqual(t, p50, q1)
}

func TestCollector_PreservesCompletionOrder(t *testing.T) {
	c := NewCollector()
	for _, id := range []string{"z", "a", "m"} {
		c.Record(rec(id, LocationFog, 1))
	}
	records := c.Records()
	require.Len(t, records, 3)
	assert.Equal(t, "z", records[0].TaskID)
	assert.Equal(t, "a", records[1].TaskID)
	assert.Equal(t, "m", records[2].TaskID)

	// Records returns a copy
	records[0].TaskID = "mutated"
	assert.Equal(t, "z", c.Records()[0].TaskID)
}

func TestCollector_SingleRecord_StdDevZero(t *testing.T) {
	c := NewCollector()
	c.Record(rec("a", LocationFog, 3))
	sd, err := c.StdDevLatency()
	require.NoError(t, err)
	assert.Equal(t, 0.0, sd)
}

func TestCollector_Quantile_OutOfRange(t *testing.T) {
	c := NewCollector()
	c.Record(rec("a", LocationFog, 3))
	_, err := c.Quantile(1.5)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoData))
}

func TestCollector_Merge(t *testing.T) {
	a := NewCollector()
	a.Record(rec("a1", LocationFog, 2))
	b := NewCollector()
	b.Record(rec("b1", LocationCloud, 9))
	b.Record(rec("b2", LocationFog, 2))

	a.Merge(b)

	assert.Equal(t, 3, a.Count())
	assert.Equal(t, 2, a.FogCount())
	assert.Equal(t, 1, a.CloudCount())
	assert.Equal(t, []float64{2, 9, 2}, a.Latencies())
}

func TestCollector_Summary(t *testing.T) {
	c := NewCollector()
	c.Record(rec("a", LocationFog, 2))
	c.Record(rec("b", LocationCloud, 4))

	s, err := c.Summary()
	require.NoError(t, err)
	assert.Equal(t, 2, s.TotalCompleted)
	assert.Equal(t, 1, s.FogCount)
	assert.Equal(t, 1, s.CloudCount)
	assert.Equal(t, 3.0, s.MeanLatency)
	assert.Equal(t, 4.0, s.MaxLatency)
	assert.Equal(t, 2.0, s.MinLatency)
}
