// Package report writes the outcome of a run to the collaborators that
// consume it: a console summary, a JSON document for plotting and a CSV of
// raw completion records. Each sink is written once, after the run.
package report

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/fog-sim/fog-sim/sim"
)

// Sink receives a finished run.
type Sink interface {
	Write(res *sim.Result) error
}

// WriteAll writes res to every sink in order and stops at the first error.
func WriteAll(res *sim.Result, sinks ...Sink) error {
	for _, s := range sinks {
		if err := s.Write(res); err != nil {
			return err
		}
	}
	return nil
}

// TextSink prints the human-readable results block.
type TextSink struct {
	W io.Writer
}

func (t TextSink) Write(res *sim.Result) error {
	summary, err := res.Stats.Summary()
	if _, werr := fmt.Fprintf(t.W, "--- Simulation Results ---\n"+
		"Total tasks processed: %d\n"+
		"Processed in Fog: %d\n"+
		"Processed in Cloud: %d\n",
		summary.TotalCompleted, summary.FogCount, summary.CloudCount); werr != nil {
		return werr
	}
	if err != nil {
		logrus.Warnf("no completed tasks: %v", err)
		_, werr := fmt.Fprintf(t.W, "No tasks completed before t=%.2f (%d in flight)\n", res.EndTime, res.InFlight)
		return werr
	}
	_, werr := fmt.Fprintf(t.W, "Average completion time: %.2f\n"+
		"Max completion time: %.2f\n"+
		"Min completion time: %.2f\n"+
		"Tasks in flight at end: %d (t=%.2f)\n",
		summary.MeanLatency, summary.MaxLatency, summary.MinLatency, res.InFlight, res.EndTime)
	return werr
}
