package cmd

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sim "github.com/fog-sim/fog-sim/sim"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_YAML_OverlaysBase(t *testing.T) {
	path := writeFile(t, "fog.yaml", `
num_sensors: 4
offload_probability: 0.75
arrival_process: constant
`)
	cfg, err := LoadConfig(path, sim.DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.NumSensors)
	assert.Equal(t, 0.75, cfg.OffloadProbability)
	assert.Equal(t, sim.ArrivalConstant, cfg.ArrivalProcess)
	// keys absent from the file keep the base value
	assert.Equal(t, 2, cfg.NumFogNodes)
	assert.Equal(t, 100.0, cfg.Horizon)
}

func TestLoadConfig_YAML_InfiniteHorizon(t *testing.T) {
	path := writeFile(t, "fog.yml", "horizon: .inf\ntasks_per_sensor: 5\n")
	cfg, err := LoadConfig(path, sim.DefaultConfig())
	require.NoError(t, err)
	assert.True(t, math.IsInf(cfg.Horizon, 1))
	assert.Equal(t, 5, cfg.TasksPerSensor)
}

func TestLoadConfig_YAML_UnknownKeyRejected(t *testing.T) {
	path := writeFile(t, "fog.yaml", "num_sensor: 4\n")
	_, err := LoadConfig(path, sim.DefaultConfig())
	assert.Error(t, err)
}

func TestLoadConfig_TOML_OverlaysBase(t *testing.T) {
	path := writeFile(t, "fog.toml", `
num_fog_nodes = 3
network_delay = 1.5
horizon_mode = "drain"
seed = 7
`)
	cfg, err := LoadConfig(path, sim.DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.NumFogNodes)
	assert.Equal(t, 1.5, cfg.NetworkDelay)
	assert.Equal(t, sim.HorizonDrain, cfg.HorizonMode)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, 10, cfg.NumSensors)
}

func TestLoadConfig_TOML_UnknownKeyRejected(t *testing.T) {
	path := writeFile(t, "fog.toml", "fog_time = 2.0\n")
	_, err := LoadConfig(path, sim.DefaultConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown keys")
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"), sim.DefaultConfig())
	assert.Error(t, err)
}

// newFlagCommand returns a throwaway command carrying the simulation flags.
func newFlagCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "test"}
	registerSimFlags(c)
	require.NoError(t, c.Flags().Parse(args))
	return c
}

func TestResolveConfig_DefaultsWhenNothingSet(t *testing.T) {
	c := newFlagCommand(t)
	cfg, err := resolveConfig(c)
	require.NoError(t, err)
	assert.Equal(t, sim.DefaultConfig(), cfg)
}

func TestResolveConfig_ExplicitFlagOverridesFile(t *testing.T) {
	path := writeFile(t, "fog.yaml", "num_sensors: 4\noffload_probability: 0.75\n")
	c := newFlagCommand(t, "--config", path, "--offload-prob", "0.1")

	cfg, err := resolveConfig(c)
	require.NoError(t, err)
	assert.Equal(t, 0.1, cfg.OffloadProbability, "explicit flag wins")
	assert.Equal(t, 4, cfg.NumSensors, "file value kept when flag not set")
}

func TestResolveConfig_InvalidValueRejected(t *testing.T) {
	c := newFlagCommand(t, "--offload-prob", "1.5")
	_, err := resolveConfig(c)
	assert.ErrorIs(t, err, sim.ErrInvalidProbability)
}

func TestResolveConfig_UnknownHorizonModeRejected(t *testing.T) {
	c := newFlagCommand(t, "--horizon-mode", "forever")
	_, err := resolveConfig(c)
	assert.ErrorIs(t, err, sim.ErrInvalidConfig)
}

func TestLoadConfig_ShippedConfigsAreValid(t *testing.T) {
	for _, name := range []string{"default.yaml", "bounded.toml"} {
		t.Run(name, func(t *testing.T) {
			cfg, err := LoadConfig(filepath.Join("..", "configs", name), sim.DefaultConfig())
			require.NoError(t, err)
			assert.NoError(t, cfg.Validate())
		})
	}
}

func TestLoadConfig_DefaultYAMLMatchesDefaultConfig(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("..", "configs", "default.yaml"), sim.Config{})
	require.NoError(t, err)
	assert.Equal(t, sim.DefaultConfig(), cfg)
}
