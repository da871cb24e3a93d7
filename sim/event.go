package sim

import (
	"container/heap"
	"fmt"
	"math"
)

// Continuation is the resumption point of a suspended process. It runs
// synchronously until the process requests its next suspension (or exits)
// and returns a non-nil error only when the run cannot safely continue.
type Continuation func() error

// Event is one pending resumption: the continuation to run, the process it
// belongs to, its absolute fire time and its insertion sequence number.
// The EventQueue owns an Event until Advance hands it back.
type Event struct {
	time    float64
	seq     uint64
	Process *Process
	Resume  Continuation
}

// Timestamp returns the simulated time the event fires at.
func (e *Event) Timestamp() float64 {
	return e.time
}

// Seq returns the insertion sequence number used to break ties.
func (e *Event) Seq() uint64 {
	return e.seq
}

// eventHeap implements heap.Interface with deterministic ordering.
// Order by: fire time → insertion sequence.
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type eventHeap []*Event

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	if h[i].time != h[j].time {
		return h[i].time < h[j].time
	}
	return h[i].seq < h[j].seq
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(*Event))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[0 : n-1]
	return item
}

// EventQueue holds the authoritative simulated clock and the time-ordered
// set of pending resumptions. Events at equal fire time come back in the
// order they were scheduled.
//
// Thread-safety: NOT thread-safe. One queue per run, driven from one goroutine.
type EventQueue struct {
	now    float64
	seq    uint64
	events eventHeap
}

// NewEventQueue returns an empty queue with the clock at zero.
func NewEventQueue() *EventQueue {
	q := &EventQueue{events: make(eventHeap, 0)}
	heap.Init(&q.events)
	return q
}

// Now returns the current simulated time.
func (q *EventQueue) Now() float64 {
	return q.now
}

// Len returns the number of pending events.
func (q *EventQueue) Len() int {
	return q.events.Len()
}

// Schedule admits a resumption to fire delay time units from now.
// Negative, NaN and infinite delays are rejected with ErrInvalidDelay and
// nothing is admitted.
func (q *EventQueue) Schedule(delay float64, p *Process, resume Continuation) error {
	if math.IsNaN(delay) || math.IsInf(delay, 0) || delay < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidDelay, delay)
	}
	q.seq++
	heap.Push(&q.events, &Event{
		time:    q.now + delay,
		seq:     q.seq,
		Process: p,
		Resume:  resume,
	})
	return nil
}

// Peek returns the next event without removing it, or nil when empty.
func (q *EventQueue) Peek() *Event {
	if q.events.Len() == 0 {
		return nil
	}
	return q.events[0]
}

// Advance pops the earliest event, moves the clock to its fire time and
// returns it. The boolean is false when the queue is empty.
func (q *EventQueue) Advance() (*Event, bool) {
	if q.events.Len() == 0 {
		return nil, false
	}
	ev := heap.Pop(&q.events).(*Event)
	if ev.time > q.now {
		q.now = ev.time
	}
	return ev, true
}
