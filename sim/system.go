package sim

import (
	"github.com/sirupsen/logrus"

	"github.com/fog-sim/fog-sim/sim/trace"
)

// System wires sensors, fog nodes, the cloud node and one Collector onto a
// Simulator. Every run gets its own System; nothing is shared between runs.
type System struct {
	Config   Config
	Sim      *Simulator
	Stats    *Collector
	Trace    *trace.Log
	Sensors  []*Sensor
	FogNodes []*FogNode
	Cloud    *CloudNode

	router    Router
	routerSrc Source
	spawned   int
}

// Result is the outcome of one completed run.
type Result struct {
	Config         Config
	Stats          *Collector
	Trace          *trace.Log
	Spawned        int     // tasks created by all sensors
	InFlight       int     // tasks created but not completed when the run ended
	EndTime        float64 // simulated time at which the run ended
	EventsExecuted int
}

// NewSystem validates cfg and builds a System ready to Run.
func NewSystem(cfg Config) (*System, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	streams := NewStreams(cfg.Seed)
	s := &System{
		Config:   cfg,
		Sim:      NewSimulator(cfg.Horizon, cfg.HorizonMode),
		Stats:    NewCollector(),
		Trace:    trace.New(cfg.TraceLevel),
		FogNodes: NewFogNodes(cfg.NumFogNodes, cfg.FogProcessingTime),
		Cloud: &CloudNode{
			ID:             "cloud",
			ProcessingTime: cfg.CloudProcessingTime,
			NetworkDelay:   cfg.NetworkDelay,
		},
		router:    Router{OffloadProbability: cfg.OffloadProbability},
		routerSrc: streams.Get(RouterStream),
	}

	sampler := NewArrivalSampler(cfg.ArrivalProcess, cfg.ArrivalRate)
	s.Sensors = make([]*Sensor, cfg.NumSensors)
	for i := range s.Sensors {
		s.Sensors[i] = NewSensor(i, sampler, streams.Get(SensorStream(i)), cfg.TasksPerSensor, s.spawnTask)
	}
	return s, nil
}

// Run starts every sensor and drives the simulation to its end. A failed
// continuation aborts the run; no partial result is returned.
func (s *System) Run() (*Result, error) {
	logrus.Infof("Starting simulation: sensors=%d, fogNodes=%d, horizon=%v (%s), offload=%.3f, seed=%d",
		len(s.Sensors), len(s.FogNodes), s.Config.Horizon, s.Config.HorizonMode, s.Config.OffloadProbability, s.Config.Seed)

	for _, sn := range s.Sensors {
		if _, err := s.Sim.Start(sn.Name(), KindTopLevel, sn.Run); err != nil {
			return nil, err
		}
	}
	if err := s.Sim.Run(); err != nil {
		return nil, err
	}

	res := &Result{
		Config:         s.Config,
		Stats:          s.Stats,
		Trace:          s.Trace,
		Spawned:        s.spawned,
		InFlight:       s.spawned - s.Stats.Count(),
		EndTime:        s.Sim.EndTime,
		EventsExecuted: s.Sim.EventsExecuted,
	}
	if res.InFlight > 0 {
		logrus.Infof("%d tasks still in flight at t=%.3f excluded from statistics", res.InFlight, res.EndTime)
	}
	return res, nil
}

// RunSimulation builds a System from cfg and runs it.
func RunSimulation(cfg Config) (*Result, error) {
	s, err := NewSystem(cfg)
	if err != nil {
		return nil, err
	}
	return s.Run()
}

// spawnTask hands a new task to a uniformly chosen fog node and starts its
// lifecycle at the current time.
func (s *System) spawnTask(sensorID, seq int) error {
	node := s.FogNodes[s.routerSrc.Intn(len(s.FogNodes))]
	task := NewTask(sensorID, seq, node.ID, s.Sim.Now())
	s.spawned++
	logrus.Debugf("[t=%010.3f] << Arrival: %s at %s", task.ArrivalTime, task.ID, node.ID)
	_, err := s.Sim.Start(task.ID, KindTransient, func(p *Process) error {
		return s.lifecycle(p, task, node)
	})
	return err
}

// lifecycle routes the task and suspends it along the chosen path:
// fog processing, or network delay followed by the cloud stage.
func (s *System) lifecycle(p *Process, task *Task, node *FogNode) error {
	draw := s.routerSrc.Float64()
	loc := s.router.Route(draw)
	if err := task.Route(loc); err != nil {
		return err
	}
	s.Trace.RecordRouting(trace.RoutingRecord{
		TaskID:    task.ID,
		SensorID:  task.SensorID,
		Clock:     p.Now(),
		Draw:      draw,
		Threshold: s.router.OffloadProbability,
		Location:  string(loc),
		FogNode:   node.ID,
	})

	finish := func() error { return s.complete(p, task) }
	if loc == LocationCloud {
		return p.Timeout(s.Cloud.NetworkDelay, func() error {
			stage, err := s.Cloud.Serve(s.Sim, task)
			if err != nil {
				return err
			}
			return p.Await(stage, finish)
		})
	}
	return node.Serve(p, finish)
}

func (s *System) complete(p *Process, task *Task) error {
	rec, err := task.Complete(p.Now())
	if err != nil {
		return err
	}
	s.Stats.Record(rec)
	logrus.Debugf("[t=%010.3f] >> Completed: %s in %s after %.3f", rec.CompletionTime, rec.TaskID, rec.Location, rec.Latency)
	return p.Exit()
}
