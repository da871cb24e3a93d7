package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDelay is returned when a process asks to suspend for a
	// negative (or NaN) amount of simulated time. It aborts the run.
	ErrInvalidDelay = errors.New("invalid delay")

	// ErrInvalidProbability is returned by Config.Validate when the offload
	// probability lies outside [0, 1].
	ErrInvalidProbability = errors.New("invalid probability")

	// ErrInvalidConfig is returned by Config.Validate for any other
	// out-of-range or unrecognized configuration value.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNoData is returned by latency statistics over zero completed tasks.
	// Callers are expected to check Count() > 0 first.
	ErrNoData = errors.New("no completed tasks")
)

// ProcessError identifies the process whose continuation failed and the
// simulated time at which it failed. Simulator.Run returns it and stops.
type ProcessError struct {
	Process string
	Time    float64
	Err     error
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("process %s failed at t=%.3f: %v", e.Process, e.Time, e.Err)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}
