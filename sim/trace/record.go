package trace

// RoutingRecord captures a single offload decision made for a task.
type RoutingRecord struct {
	TaskID    string
	SensorID  int
	Clock     float64
	Draw      float64 // uniform draw compared against the offload probability
	Threshold float64 // offload probability in effect
	Location  string  // "fog" or "cloud"
	FogNode   string  // fog node that received the task
}

// Offloaded reports whether the decision sent the task to the cloud.
func (r RoutingRecord) Offloaded() bool {
	return r.Draw < r.Threshold
}
