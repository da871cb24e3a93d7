package sim

import (
	"fmt"
	"math"

	"github.com/fog-sim/fog-sim/sim/trace"
)

// Config is the static input consumed at run start. All time values share
// one simulated time unit. Horizon may be +Inf (YAML `.inf`, TOML `inf`).
type Config struct {
	NumSensors          int     `yaml:"num_sensors" toml:"num_sensors" json:"num_sensors"`
	NumFogNodes         int     `yaml:"num_fog_nodes" toml:"num_fog_nodes" json:"num_fog_nodes"`
	FogProcessingTime   float64 `yaml:"fog_processing_time" toml:"fog_processing_time" json:"fog_processing_time"`
	CloudProcessingTime float64 `yaml:"cloud_processing_time" toml:"cloud_processing_time" json:"cloud_processing_time"`
	NetworkDelay        float64 `yaml:"network_delay" toml:"network_delay" json:"network_delay"`
	Horizon             float64 `yaml:"horizon" toml:"horizon" json:"horizon"`
	OffloadProbability  float64 `yaml:"offload_probability" toml:"offload_probability" json:"offload_probability"`
	Seed                int64   `yaml:"seed" toml:"seed" json:"seed"`

	// ArrivalRate is tasks per time unit per sensor. ArrivalProcess is
	// "poisson" (default) or "constant". TasksPerSensor of 0 means unlimited.
	// HorizonMode is "cutoff" (default) or "drain".
	ArrivalRate    float64        `yaml:"arrival_rate" toml:"arrival_rate" json:"arrival_rate"`
	ArrivalProcess ArrivalProcess `yaml:"arrival_process" toml:"arrival_process" json:"arrival_process"`
	TasksPerSensor int            `yaml:"tasks_per_sensor" toml:"tasks_per_sensor" json:"tasks_per_sensor"`
	HorizonMode    HorizonMode    `yaml:"horizon_mode" toml:"horizon_mode" json:"horizon_mode"`
	TraceLevel     trace.Level    `yaml:"trace_level" toml:"trace_level" json:"trace_level"`
}

// DefaultConfig returns the baseline fog/cloud scenario: ten sensors with a
// mean inter-arrival of 5, two fog nodes, 30% offload.
func DefaultConfig() Config {
	return Config{
		NumSensors:          10,
		NumFogNodes:         2,
		FogProcessingTime:   2,
		CloudProcessingTime: 6,
		NetworkDelay:        3,
		Horizon:             100,
		OffloadProbability:  0.3,
		Seed:                42,
		ArrivalRate:         0.2,
		ArrivalProcess:      ArrivalPoisson,
		HorizonMode:         HorizonCutoff,
		TraceLevel:          trace.LevelNone,
	}
}

// withDefaults fills zero-valued enum fields.
func (c Config) withDefaults() Config {
	if c.ArrivalProcess == "" {
		c.ArrivalProcess = ArrivalPoisson
	}
	if c.HorizonMode == "" {
		c.HorizonMode = HorizonCutoff
	}
	if c.TraceLevel == "" {
		c.TraceLevel = trace.LevelNone
	}
	return c
}

// Validate checks that every field is in range. It is called before any
// simulated time advances.
func (c *Config) Validate() error {
	if c.NumSensors < 1 {
		return fmt.Errorf("%w: num_sensors must be at least 1, got %d", ErrInvalidConfig, c.NumSensors)
	}
	if c.NumFogNodes < 1 {
		return fmt.Errorf("%w: num_fog_nodes must be at least 1, got %d", ErrInvalidConfig, c.NumFogNodes)
	}
	for _, f := range []struct {
		name string
		val  float64
	}{
		{"fog_processing_time", c.FogProcessingTime},
		{"cloud_processing_time", c.CloudProcessingTime},
		{"network_delay", c.NetworkDelay},
	} {
		if err := validateFiniteNonNegative(f.name, f.val); err != nil {
			return err
		}
	}
	if math.IsNaN(c.Horizon) || c.Horizon < 0 {
		return fmt.Errorf("%w: horizon must be non-negative, got %v", ErrInvalidConfig, c.Horizon)
	}
	if math.IsNaN(c.OffloadProbability) || c.OffloadProbability < 0 || c.OffloadProbability > 1 {
		return fmt.Errorf("%w: offload_probability must be in [0, 1], got %v", ErrInvalidProbability, c.OffloadProbability)
	}
	if math.IsNaN(c.ArrivalRate) || math.IsInf(c.ArrivalRate, 0) || c.ArrivalRate <= 0 {
		return fmt.Errorf("%w: arrival_rate must be a positive finite number, got %v", ErrInvalidConfig, c.ArrivalRate)
	}
	if c.TasksPerSensor < 0 {
		return fmt.Errorf("%w: tasks_per_sensor must be non-negative, got %d", ErrInvalidConfig, c.TasksPerSensor)
	}
	if c.ArrivalProcess != "" && !IsValidArrivalProcess(string(c.ArrivalProcess)) {
		return fmt.Errorf("%w: unknown arrival_process %q; valid: poisson, constant", ErrInvalidConfig, c.ArrivalProcess)
	}
	if c.HorizonMode != "" && !IsValidHorizonMode(string(c.HorizonMode)) {
		return fmt.Errorf("%w: unknown horizon_mode %q; valid: cutoff, drain", ErrInvalidConfig, c.HorizonMode)
	}
	if _, err := trace.ParseLevel(string(c.TraceLevel)); err != nil {
		return fmt.Errorf("%w: trace_level: %v", ErrInvalidConfig, err)
	}
	if math.IsInf(c.Horizon, 1) && c.TasksPerSensor == 0 {
		return fmt.Errorf("%w: infinite horizon requires tasks_per_sensor > 0", ErrInvalidConfig)
	}
	return nil
}

func validateFiniteNonNegative(name string, val float64) error {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return fmt.Errorf("%w: %s must be a finite number, got %v", ErrInvalidConfig, name, val)
	}
	if val < 0 {
		return fmt.Errorf("%w: %s must be non-negative, got %v", ErrInvalidConfig, name, val)
	}
	return nil
}
