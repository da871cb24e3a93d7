package cmd

import (
	"bytes"
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sim "github.com/fog-sim/fog-sim/sim"
)

func sweepBaseConfig() sim.Config {
	cfg := sim.DefaultConfig()
	cfg.Horizon = 200
	cfg.Seed = 100
	return cfg
}

func TestRunSweep_SeedsAreConsecutive(t *testing.T) {
	rows, err := runSweep(context.Background(), sweepBaseConfig(), nil, 4, 2)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, 0.3, row.Probability, "empty probability list sweeps the configured one")
	require.Len(t, row.Runs, 4)
	for r, run := range row.Runs {
		assert.Equal(t, int64(100+r), run.Seed)
	}
}

func TestRunSweep_PooledCountsAreSumOfRuns(t *testing.T) {
	rows, err := runSweep(context.Background(), sweepBaseConfig(), []float64{0.5}, 5, 3)
	require.NoError(t, err)

	total := 0
	for _, run := range rows[0].Runs {
		total += run.Completed
	}
	assert.Equal(t, total, rows[0].Completed)
	assert.GreaterOrEqual(t, rows[0].CloudFractionSE, 0.0)
}

func TestRunSweep_MatchesSequentialRuns(t *testing.T) {
	// GIVEN the same sweep executed with one worker and with many
	probs := []float64{0, 0.3, 1}
	serial, err := runSweep(context.Background(), sweepBaseConfig(), probs, 3, 1)
	require.NoError(t, err)
	parallel, err := runSweep(context.Background(), sweepBaseConfig(), probs, 3, 8)
	require.NoError(t, err)

	// THEN concurrency does not change any replication
	assert.Equal(t, serial, parallel)
}

func TestRunSweep_BoundaryProbabilities(t *testing.T) {
	rows, err := runSweep(context.Background(), sweepBaseConfig(), []float64{0, 1}, 2, 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 0.0, rows[0].CloudFraction)
	assert.Equal(t, 1.0, rows[1].CloudFraction)
	assert.Equal(t, 0.0, rows[0].CloudFractionSE)
	assert.InDelta(t, 2.0, rows[0].MeanLatency, 1e-9)
	assert.InDelta(t, 9.0, rows[1].MeanLatency, 1e-9)
}

func TestRunSweep_EmptyRuns_ReportNaN(t *testing.T) {
	cfg := sweepBaseConfig()
	cfg.Horizon = 0
	rows, err := runSweep(context.Background(), cfg, nil, 2, 2)
	require.NoError(t, err)

	assert.Equal(t, 0, rows[0].Completed)
	assert.True(t, math.IsNaN(rows[0].CloudFraction))
	assert.True(t, math.IsNaN(rows[0].MeanLatency))
}

func TestRunSweep_RejectsZeroReplications(t *testing.T) {
	_, err := runSweep(context.Background(), sweepBaseConfig(), nil, 0, 1)
	assert.ErrorIs(t, err, sim.ErrInvalidConfig)
}

func TestRunSweep_InvalidProbabilityAbortsSweep(t *testing.T) {
	_, err := runSweep(context.Background(), sweepBaseConfig(), []float64{0.2, 2}, 2, 2)
	assert.ErrorIs(t, err, sim.ErrInvalidProbability)
}

func TestPrintSweep_TableLayout(t *testing.T) {
	rows := []SweepRow{{
		Probability:     0.25,
		Runs:            []RunRow{{Seed: 1, Completed: 4, CloudFraction: 0.25, MeanLatency: 3.75}},
		Completed:       4,
		CloudFraction:   0.25,
		CloudFractionSE: 0,
		MeanLatency:     3.75,
	}}
	var buf bytes.Buffer
	printSweep(&buf, rows, true)

	out := buf.String()
	assert.Contains(t, out, "--- Offload Sweep ---")
	assert.Contains(t, out, "0.250")
	assert.Contains(t, out, "seed=1")
	assert.Contains(t, out, "mean_latency=3.750")
}
