// Defines the Task struct that models one unit of sensor work in the simulation.
// Tracks origin, arrival time, routing state and the single completion outcome.

package sim

import (
	"fmt"
)

// Location is where a task was processed.
type Location string

const (
	LocationFog   Location = "fog"
	LocationCloud Location = "cloud"
)

// TaskState represents the lifecycle state of a task.
// Created → Routed{Fog|Cloud} → Completed, no other transitions.
type TaskState string

const (
	StateCreated     TaskState = "created"
	StateRoutedFog   TaskState = "routed-fog"
	StateRoutedCloud TaskState = "routed-cloud"
	StateCompleted   TaskState = "completed"
)

// Task is created by a sensor, routed once and completed at most once.
type Task struct {
	ID          string  // Unique identifier, "sensor<s>-task<n>"
	SensorID    int     // Originating sensor
	FogNode     string  // Fog node the sensor handed the task to
	ArrivalTime float64 // Simulated time of creation

	State TaskState
}

// NewTask creates a task in the Created state.
func NewTask(sensorID, seq int, fogNode string, arrival float64) *Task {
	return &Task{
		ID:          fmt.Sprintf("sensor%d-task%d", sensorID, seq),
		SensorID:    sensorID,
		FogNode:     fogNode,
		ArrivalTime: arrival,
		State:       StateCreated,
	}
}

// Route moves a Created task to the routed state for loc.
func (t *Task) Route(loc Location) error {
	if t.State != StateCreated {
		return fmt.Errorf("task %s: cannot route from state %s", t.ID, t.State)
	}
	if loc == LocationCloud {
		t.State = StateRoutedCloud
	} else {
		t.State = StateRoutedFog
	}
	return nil
}

// Complete moves a routed task to Completed and returns its outcome.
// Completing twice, or before routing, is an error.
func (t *Task) Complete(now float64) (CompletionRecord, error) {
	var loc Location
	switch t.State {
	case StateRoutedFog:
		loc = LocationFog
	case StateRoutedCloud:
		loc = LocationCloud
	default:
		return CompletionRecord{}, fmt.Errorf("task %s: cannot complete from state %s", t.ID, t.State)
	}
	t.State = StateCompleted
	return CompletionRecord{
		TaskID:         t.ID,
		SensorID:       t.SensorID,
		FogNode:        t.FogNode,
		Location:       loc,
		ArrivalTime:    t.ArrivalTime,
		CompletionTime: now,
		Latency:        now - t.ArrivalTime,
	}, nil
}

// This method returns a human-readable string representation of a Task.
func (t Task) String() string {
	return fmt.Sprintf("Task: (ID: %s, State: %s, FogNode: %s, ArrivalTime: %.3f)", t.ID, t.State, t.FogNode, t.ArrivalTime)
}

// CompletionRecord is the outcome of one finished task.
type CompletionRecord struct {
	TaskID         string   `json:"task_id"`
	SensorID       int      `json:"sensor_id"`
	FogNode        string   `json:"fog_node"`
	Location       Location `json:"location"`
	ArrivalTime    float64  `json:"arrival_time"`
	CompletionTime float64  `json:"completion_time"`
	Latency        float64  `json:"latency"`
}
