package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// SpawnFunc creates and starts one task lifecycle for a sensor tick.
// seq is the sensor-local task index.
type SpawnFunc func(sensorID, seq int) error

// Sensor is the perpetual task generator. Each loop iteration draws an
// inter-arrival time, suspends for it and spawns one task without waiting
// for it to finish. The loop ends after MaxTasks spawns (0 = unlimited) or
// when the scheduler stops admitting it at the horizon.
type Sensor struct {
	ID       int
	MaxTasks int

	sampler ArrivalSampler
	src     Source
	spawn   SpawnFunc
	spawned int
}

// NewSensor creates a sensor drawing inter-arrival times from src.
func NewSensor(id int, sampler ArrivalSampler, src Source, maxTasks int, spawn SpawnFunc) *Sensor {
	return &Sensor{
		ID:       id,
		MaxTasks: maxTasks,
		sampler:  sampler,
		src:      src,
		spawn:    spawn,
	}
}

// Spawned returns the number of tasks this sensor has created.
func (s *Sensor) Spawned() int {
	return s.spawned
}

// Name is the process name used in logs and errors.
func (s *Sensor) Name() string {
	return fmt.Sprintf("sensor_%d", s.ID)
}

// Run is the sensor's process body.
func (s *Sensor) Run(p *Process) error {
	return s.wait(p)
}

func (s *Sensor) wait(p *Process) error {
	if s.MaxTasks > 0 && s.spawned >= s.MaxTasks {
		logrus.Debugf("[t=%010.3f] %s finished after %d tasks", p.Now(), s.Name(), s.spawned)
		return p.Exit()
	}
	iat := s.sampler.SampleIAT(s.src)
	return p.Timeout(iat, func() error {
		seq := s.spawned
		s.spawned++
		if err := s.spawn(s.ID, seq); err != nil {
			return err
		}
		return s.wait(p)
	})
}
