// Package trace records the offload decision made for every task so that a
// run can be audited after the fact: which draw was compared against which
// threshold, and where the task went.
package trace

import "fmt"

// Level selects how much a Log records.
type Level string

const (
	// LevelNone records nothing. New returns a nil Log.
	LevelNone Level = "none"
	// LevelDecisions records one RoutingRecord per task.
	LevelDecisions Level = "decisions"
)

// ParseLevel maps a config or flag value to a Level. The empty string
// means LevelNone.
func ParseLevel(s string) (Level, error) {
	switch Level(s) {
	case "", LevelNone:
		return LevelNone, nil
	case LevelDecisions:
		return LevelDecisions, nil
	}
	return "", fmt.Errorf("unknown trace level %q; valid: none, decisions", s)
}

// Log is the decision log of one run. A nil *Log is valid and discards
// everything recorded into it.
type Log struct {
	Level    Level
	Routings []RoutingRecord
}

// New returns a Log for level, or nil when level records nothing.
func New(level Level) *Log {
	if level == "" || level == LevelNone {
		return nil
	}
	return &Log{Level: level, Routings: make([]RoutingRecord, 0)}
}

// RecordRouting appends one decision.
func (l *Log) RecordRouting(record RoutingRecord) {
	if l == nil {
		return
	}
	l.Routings = append(l.Routings, record)
}

// Len returns the number of recorded decisions; zero for a nil Log.
func (l *Log) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Routings)
}
