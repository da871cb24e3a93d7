package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/fog-sim/fog-sim/sim"
)

var csvHeader = []string{"task_id", "sensor_id", "fog_node", "location", "arrival_time", "completion_time", "latency"}

// CSVSink writes one row per completion record, in completion order.
type CSVSink struct {
	Path string
}

func (c CSVSink) Write(res *sim.Result) (err error) {
	file, err := os.Create(c.Path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", c.Path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", c.Path, closeErr)
		}
	}()

	w := csv.NewWriter(file)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("writing %s: %w", c.Path, err)
	}
	for _, r := range res.Stats.Records() {
		row := []string{
			r.TaskID,
			strconv.Itoa(r.SensorID),
			r.FogNode,
			string(r.Location),
			strconv.FormatFloat(r.ArrivalTime, 'g', -1, 64),
			strconv.FormatFloat(r.CompletionTime, 'g', -1, 64),
			strconv.FormatFloat(r.Latency, 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing %s: %w", c.Path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", c.Path, err)
	}
	logrus.Debugf("Successfully wrote %d records to '%s'", res.Stats.Count(), c.Path)
	return nil
}
