// sim/simulator.go
package sim

import (
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// HorizonMode controls what happens to simulation activity at the horizon.
type HorizonMode string

const (
	// HorizonCutoff stops the run before the first event whose fire time
	// exceeds the horizon. Work still in flight produces no outcome.
	HorizonCutoff HorizonMode = "cutoff"
	// HorizonDrain stops admitting top-level activity past the horizon and
	// lets everything already in flight run to completion.
	HorizonDrain HorizonMode = "drain"
)

var validHorizonModes = map[HorizonMode]bool{
	HorizonCutoff: true,
	HorizonDrain:  true,
}

// IsValidHorizonMode returns true if the given string names a horizon mode.
func IsValidHorizonMode(mode string) bool {
	return validHorizonModes[HorizonMode(mode)]
}

// Simulator is the process scheduler. It owns the event queue, runs one
// continuation at a time and is the only component that advances the clock.
type Simulator struct {
	Horizon float64
	Mode    HorizonMode

	queue  *EventQueue
	nextID uint64
	halted bool

	// EventsExecuted counts resumptions performed by Run.
	EventsExecuted int
	// ProcessesStarted counts processes created by Start.
	ProcessesStarted int
	// EndTime is the simulated time at which the run ended.
	EndTime float64
}

// NewSimulator creates a Simulator with the clock at zero. A horizon of
// +Inf means the run continues until the queue is empty.
func NewSimulator(horizon float64, mode HorizonMode) *Simulator {
	if mode == "" {
		mode = HorizonCutoff
	}
	return &Simulator{
		Horizon: horizon,
		Mode:    mode,
		queue:   NewEventQueue(),
	}
}

// Now returns the current simulated time.
func (sim *Simulator) Now() float64 {
	return sim.queue.Now()
}

// Pending returns the number of queued resumptions.
func (sim *Simulator) Pending() int {
	return sim.queue.Len()
}

// Start creates a process and schedules its body to run at the current time.
func (sim *Simulator) Start(name string, kind ProcessKind, body ProcessBody) (*Process, error) {
	sim.nextID++
	p := &Process{
		ID:   sim.nextID,
		Name: name,
		Kind: kind,
		sim:  sim,
	}
	sim.ProcessesStarted++
	if err := sim.schedule(p, 0, func() error { return body(p) }); err != nil {
		return nil, err
	}
	return p, nil
}

// Halt stops the run after the continuation currently executing returns.
func (sim *Simulator) Halt() {
	sim.halted = true
}

// schedule is the single admission point for resumptions. In HorizonDrain
// mode a top-level process asking to resume past the horizon is stopped
// instead of admitted.
func (sim *Simulator) schedule(p *Process, delay float64, next Continuation) error {
	if sim.Mode == HorizonDrain && p.Kind == KindTopLevel && sim.Now()+delay > sim.Horizon {
		if delay < 0 || math.IsNaN(delay) {
			return fmt.Errorf("%w: %v", ErrInvalidDelay, delay)
		}
		logrus.Debugf("[t=%010.3f] %s not admitted past horizon %.3f", sim.Now(), p.Name, sim.Horizon)
		p.stopped = true
		return nil
	}
	return sim.queue.Schedule(delay, p, next)
}

// Run drives the simulation loop until the queue is empty, the horizon is
// reached (HorizonCutoff) or Halt is called. The first continuation that
// fails aborts the run with a *ProcessError.
func (sim *Simulator) Run() error {
	reachedHorizon := false
	for !sim.halted {
		next := sim.queue.Peek()
		if next == nil {
			break
		}
		if sim.Mode == HorizonCutoff && next.Timestamp() > sim.Horizon {
			logrus.Debugf("[t=%010.3f] next event at %.3f is past horizon", sim.Now(), next.Timestamp())
			reachedHorizon = true
			break
		}
		ev, _ := sim.queue.Advance()
		sim.EventsExecuted++
		logrus.Debugf("[t=%010.3f] Resuming %s", ev.Timestamp(), ev.Process.Name)
		if err := ev.Resume(); err != nil {
			sim.EndTime = sim.Now()
			var perr *ProcessError
			if errors.As(err, &perr) {
				return err
			}
			return &ProcessError{Process: ev.Process.Name, Time: ev.Timestamp(), Err: err}
		}
	}
	if reachedHorizon {
		sim.EndTime = sim.Horizon
	} else {
		sim.EndTime = sim.Now()
	}
	logrus.Infof("[t=%010.3f] Simulation ended after %d events (%d pending)", sim.EndTime, sim.EventsExecuted, sim.queue.Len())
	return nil
}
