package sim

import "fmt"

// Router makes the per-task offload decision.
type Router struct {
	OffloadProbability float64
}

// Route maps one uniform draw in [0, 1) to a location: cloud when the draw
// is below the offload probability, fog otherwise. Probabilities 0 and 1
// degenerate to always-fog and always-cloud through the same comparison.
func (r Router) Route(draw float64) Location {
	if draw < r.OffloadProbability {
		return LocationCloud
	}
	return LocationFog
}

// FogNode processes tasks locally. It holds no queue: any number of tasks
// may be in service at once.
type FogNode struct {
	ID             string
	ProcessingTime float64
}

// NewFogNodes returns n fog nodes named fog_0 … fog_{n-1}.
func NewFogNodes(n int, processingTime float64) []*FogNode {
	nodes := make([]*FogNode, n)
	for i := range nodes {
		nodes[i] = &FogNode{ID: fmt.Sprintf("fog_%d", i), ProcessingTime: processingTime}
	}
	return nodes
}

// Serve suspends p for the fog processing time, then resumes next.
func (n *FogNode) Serve(p *Process, next Continuation) error {
	return p.Timeout(n.ProcessingTime, next)
}

// CloudNode is the remote processing stage reached over the network.
// Like FogNode it is infinite-server.
type CloudNode struct {
	ID             string
	ProcessingTime float64
	NetworkDelay   float64
}

// Serve starts the cloud stage for task as its own process. The caller
// awaits the returned process to learn when processing is done.
func (c *CloudNode) Serve(sim *Simulator, task *Task) (*Process, error) {
	return sim.Start(c.ID+"/"+task.ID, KindTransient, func(p *Process) error {
		return p.Timeout(c.ProcessingTime, p.Exit)
	})
}
