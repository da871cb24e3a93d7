package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	sim "github.com/fog-sim/fog-sim/sim"
	"github.com/fog-sim/fog-sim/sim/trace"
)

// LoadConfig reads a simulation config file on top of base. Keys absent
// from the file keep their base value. The format follows the extension:
// .toml is TOML, anything else YAML. Both use strict parsing: unrecognized
// keys (typos) are rejected.
func LoadConfig(path string, base sim.Config) (sim.Config, error) {
	cfg := base
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return base, fmt.Errorf("parsing config %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return base, fmt.Errorf("parsing config %s: unknown keys %v", path, undecoded)
		}
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return base, fmt.Errorf("reading config: %w", err)
		}
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil {
			return base, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}
	logrus.Debugf("Loaded config from %s: %+v", path, cfg)
	return cfg, nil
}

// resolveConfig builds the run configuration: defaults, then the config
// file, then any flag the user set explicitly. The result is validated.
func resolveConfig(cmd *cobra.Command) (sim.Config, error) {
	cfg := sim.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = LoadConfig(configPath, cfg); err != nil {
			return cfg, err
		}
	}

	f := cmd.Flags()
	if f.Changed("seed") {
		cfg.Seed = seed
	}
	if f.Changed("horizon") {
		cfg.Horizon = horizon
	}
	if f.Changed("horizon-mode") {
		cfg.HorizonMode = sim.HorizonMode(horizonMode)
	}
	if f.Changed("sensors") {
		cfg.NumSensors = numSensors
	}
	if f.Changed("fog-nodes") {
		cfg.NumFogNodes = numFogNodes
	}
	if f.Changed("fog-time") {
		cfg.FogProcessingTime = fogTime
	}
	if f.Changed("cloud-time") {
		cfg.CloudProcessingTime = cloudTime
	}
	if f.Changed("network-delay") {
		cfg.NetworkDelay = networkDelay
	}
	if f.Changed("offload-prob") {
		cfg.OffloadProbability = offloadProb
	}
	if f.Changed("arrival-rate") {
		cfg.ArrivalRate = arrivalRate
	}
	if f.Changed("arrival-process") {
		cfg.ArrivalProcess = sim.ArrivalProcess(arrivalProcess)
	}
	if f.Changed("tasks-per-sensor") {
		cfg.TasksPerSensor = tasksPerSensor
	}
	if f.Changed("trace-level") {
		cfg.TraceLevel = trace.Level(traceLevel)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
