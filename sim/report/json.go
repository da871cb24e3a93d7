package report

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/fog-sim/fog-sim/sim"
	"github.com/fog-sim/fog-sim/sim/trace"
)

// DefaultHistogramBins matches the reference latency histogram.
const DefaultHistogramBins = 10

// ConfigDoc is sim.Config with an infinite horizon encoded as null,
// since JSON has no representation for +Inf.
type ConfigDoc struct {
	sim.Config
	Horizon *float64 `json:"horizon"`
}

func newConfigDoc(cfg sim.Config) ConfigDoc {
	doc := ConfigDoc{Config: cfg}
	if !math.IsInf(cfg.Horizon, 1) {
		h := cfg.Horizon
		doc.Horizon = &h
	}
	return doc
}

// Document is the JSON form of a run handed to the plotting collaborator.
type Document struct {
	Config    ConfigDoc           `json:"config"`
	Summary   *sim.Summary        `json:"summary"` // nil when no task completed
	Spawned   int                 `json:"spawned"`
	InFlight  int                 `json:"in_flight"`
	EndTime   float64             `json:"end_time"`
	Latencies []float64           `json:"latencies"`
	Locations []sim.Location      `json:"locations"`
	Histogram Histogram           `json:"histogram"`
	Trace     *trace.Summary `json:"trace,omitempty"`
}

// NewDocument builds the JSON document for res.
func NewDocument(res *sim.Result, bins int) Document {
	records := res.Stats.Records()
	doc := Document{
		Config:    newConfigDoc(res.Config),
		Spawned:   res.Spawned,
		InFlight:  res.InFlight,
		EndTime:   res.EndTime,
		Latencies: res.Stats.Latencies(),
		Locations: make([]sim.Location, len(records)),
		Histogram: NewHistogram(res.Stats.Latencies(), bins),
	}
	for i, r := range records {
		doc.Locations[i] = r.Location
	}
	if summary, err := res.Stats.Summary(); err == nil {
		doc.Summary = &summary
	}
	if res.Trace != nil {
		doc.Trace = trace.Summarize(res.Trace)
	}
	return doc
}

// JSONSink writes the Document to Path.
type JSONSink struct {
	Path string
	Bins int
}

func (j JSONSink) Write(res *sim.Result) error {
	bins := j.Bins
	if bins <= 0 {
		bins = DefaultHistogramBins
	}
	data, err := json.MarshalIndent(NewDocument(res, bins), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	if err := os.WriteFile(j.Path, data, 0644); err != nil {
		return fmt.Errorf("writing results %s: %w", j.Path, err)
	}
	logrus.Infof("Results written to %s", j.Path)
	return nil
}
