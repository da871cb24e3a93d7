// Package testutil holds test fixtures shared by the fog-sim packages: the
// hand-computed golden scenarios under testdata/ and a relative float
// comparison for metrics derived from the simulated clock.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenScenario is one hand-computed run. Config is the raw snake_case
// config object; the sim tests decode it into sim.Config themselves so this
// package stays free of a sim import.
type GoldenScenario struct {
	Name    string          `json:"name"`
	Config  json.RawMessage `json:"config"`
	Metrics GoldenMetrics   `json:"metrics"`
}

// GoldenMetrics is the expected outcome of a scenario. Counters must match
// exactly; times compare with a relative tolerance.
type GoldenMetrics struct {
	Spawned    int `json:"spawned"`
	Completed  int `json:"completed"`
	FogCount   int `json:"fog_count"`
	CloudCount int `json:"cloud_count"`
	InFlight   int `json:"in_flight"`

	EndTime     float64 `json:"end_time"`
	MeanLatency float64 `json:"mean_latency"`
	MaxLatency  float64 `json:"max_latency"`
}

// GoldenScenarios reads testdata/golden_scenarios.json at the repo root,
// located from this file's path so any package's tests can call it.
func GoldenScenarios(t *testing.T) []GoldenScenario {
	t.Helper()

	_, here, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot locate testutil source file")
	}
	root := filepath.Join(filepath.Dir(here), "..", "..", "..")
	data, err := os.ReadFile(filepath.Join(root, "testdata", "golden_scenarios.json"))
	if err != nil {
		t.Fatalf("reading golden scenarios: %v", err)
	}

	var doc struct {
		Scenarios []GoldenScenario `json:"scenarios"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("parsing golden scenarios: %v", err)
	}
	if len(doc.Scenarios) == 0 {
		t.Fatal("golden scenarios file is empty")
	}
	return doc.Scenarios
}

// RelEqual fails t when got differs from want by more than relTol of the
// larger magnitude. Two zeros are equal.
func RelEqual(t *testing.T, field string, want, got, relTol float64) {
	t.Helper()
	scale := math.Max(math.Abs(want), math.Abs(got))
	if scale == 0 {
		return
	}
	if rel := math.Abs(want-got) / scale; rel > relTol {
		t.Errorf("%s = %v, want %v (relative error %.3g > %.3g)", field, got, want, rel, relTol)
	}
}
