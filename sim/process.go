package sim

import "fmt"

// ProcessKind distinguishes long-lived top-level activity (sensors) from
// transient work (task lifecycles, cloud stages). Only top-level processes
// are subject to the horizon admission check in HorizonDrain mode.
type ProcessKind int

const (
	KindTransient ProcessKind = iota
	KindTopLevel
)

func (k ProcessKind) String() string {
	if k == KindTopLevel {
		return "top-level"
	}
	return "transient"
}

// ProcessBody is the first step of a process. Later steps are continuations
// handed to Timeout or Await.
type ProcessBody func(p *Process) error

type waiter struct {
	proc *Process
	next Continuation
}

// Process is a suspended-and-resumed activity driven by the Simulator.
// A process runs one continuation at a time and asks for its next
// resumption through Timeout or Await; Exit marks it finished and wakes
// every process awaiting it.
type Process struct {
	ID   uint64
	Name string
	Kind ProcessKind

	sim      *Simulator
	finished bool
	stopped  bool // refused admission past the horizon
	waiters  []waiter
}

// Finished reports whether the process has exited.
func (p *Process) Finished() bool {
	return p.finished
}

// Stopped reports whether the process was halted at the horizon.
func (p *Process) Stopped() bool {
	return p.stopped
}

// Now returns the simulated time as seen by the process.
func (p *Process) Now() float64 {
	return p.sim.Now()
}

// Timeout suspends the process for delay time units, then resumes next.
func (p *Process) Timeout(delay float64, next Continuation) error {
	if p.finished {
		return fmt.Errorf("process %s: timeout after exit", p.Name)
	}
	return p.sim.schedule(p, delay, next)
}

// Await suspends the process until child exits, then resumes next at the
// child's completion time. Awaiting an already finished child resumes next
// immediately (zero delay).
func (p *Process) Await(child *Process, next Continuation) error {
	if p.finished {
		return fmt.Errorf("process %s: await after exit", p.Name)
	}
	if child == p {
		return fmt.Errorf("process %s: cannot await itself", p.Name)
	}
	if child.finished {
		return p.sim.schedule(p, 0, next)
	}
	child.waiters = append(child.waiters, waiter{proc: p, next: next})
	return nil
}

// Exit finishes the process and schedules the resumption of its waiters,
// in the order they started waiting.
func (p *Process) Exit() error {
	if p.finished {
		return fmt.Errorf("process %s: exited twice", p.Name)
	}
	p.finished = true
	waiters := p.waiters
	p.waiters = nil
	for _, w := range waiters {
		if err := p.sim.schedule(w.proc, 0, w.next); err != nil {
			return err
		}
	}
	return nil
}
