package cmd

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/fog-sim/fog-sim/sim"
	"github.com/fog-sim/fog-sim/sim/report"
)

var (
	// CLI flags shared by run and sweep
	configPath     string  // YAML or TOML config file
	seed           int64   // Master seed for all RNG subsystems
	horizon        float64 // Simulation horizon (simulated time units, "inf" allowed)
	horizonMode    string  // cutoff or drain
	logLevel       string  // Log verbosity level
	numSensors     int     // Number of sensors
	numFogNodes    int     // Number of fog nodes
	fogTime        float64 // Fog processing time per task
	cloudTime      float64 // Cloud processing time per task
	networkDelay   float64 // Network delay from fog to cloud
	offloadProb    float64 // Per-task probability of offloading to the cloud
	arrivalRate    float64 // Tasks per time unit per sensor
	arrivalProcess string  // poisson or constant
	tasksPerSensor int     // Task budget per sensor (0 = unlimited)
	traceLevel     string  // none or decisions

	// run-only output flags
	resultsPath   string // JSON results document
	recordsPath   string // CSV of completion records
	histogramBins int    // Bins in the JSON latency histogram
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "fog-sim",
	Short: "Discrete-event simulator for fog/cloud task offloading",
}

// runCmd executes one simulation using parameters from the config file and CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the fog/cloud simulation",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		cfg, err := resolveConfig(cmd)
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}

		startTime := time.Now()
		res, err := sim.RunSimulation(cfg)
		if err != nil {
			logrus.Fatalf("Simulation aborted: %v", err)
		}
		logrus.Infof("Simulated %d events in %v", res.EventsExecuted, time.Since(startTime))

		sinks := []report.Sink{report.TextSink{W: cmd.OutOrStdout()}}
		if resultsPath != "" {
			sinks = append(sinks, report.JSONSink{Path: resultsPath, Bins: histogramBins})
		}
		if recordsPath != "" {
			sinks = append(sinks, report.CSVSink{Path: recordsPath})
		}
		if err := report.WriteAll(res, sinks...); err != nil {
			logrus.Fatalf("Writing results: %v", err)
		}

		logrus.Info("Simulation complete.")
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// registerSimFlags binds the simulation parameter flags of cmd. Defaults
// mirror sim.DefaultConfig; only flags set explicitly override a config file.
func registerSimFlags(cmd *cobra.Command) {
	d := sim.DefaultConfig()
	cmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML (.yaml/.yml) or TOML (.toml) config file")
	cmd.Flags().Int64Var(&seed, "seed", d.Seed, "Seed for all random draws")
	cmd.Flags().Float64Var(&horizon, "horizon", d.Horizon, "Simulation horizon in time units (inf for none)")
	cmd.Flags().StringVar(&horizonMode, "horizon-mode", string(d.HorizonMode), "Horizon handling: cutoff, drain")
	cmd.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")

	cmd.Flags().IntVar(&numSensors, "sensors", d.NumSensors, "Number of sensors")
	cmd.Flags().IntVar(&numFogNodes, "fog-nodes", d.NumFogNodes, "Number of fog nodes")
	cmd.Flags().Float64Var(&fogTime, "fog-time", d.FogProcessingTime, "Fog processing time per task")
	cmd.Flags().Float64Var(&cloudTime, "cloud-time", d.CloudProcessingTime, "Cloud processing time per task")
	cmd.Flags().Float64Var(&networkDelay, "network-delay", d.NetworkDelay, "Network delay from fog to cloud")
	cmd.Flags().Float64Var(&offloadProb, "offload-prob", d.OffloadProbability, "Probability a task is offloaded to the cloud")

	cmd.Flags().Float64Var(&arrivalRate, "arrival-rate", d.ArrivalRate, "Tasks per time unit per sensor")
	cmd.Flags().StringVar(&arrivalProcess, "arrival-process", string(d.ArrivalProcess), "Inter-arrival process: poisson, constant")
	cmd.Flags().IntVar(&tasksPerSensor, "tasks-per-sensor", d.TasksPerSensor, "Tasks each sensor emits (0 = until horizon)")
	cmd.Flags().StringVar(&traceLevel, "trace-level", string(d.TraceLevel), "Routing trace: none, decisions")
}

// init sets up CLI flags and subcommands
func init() {
	registerSimFlags(runCmd)
	runCmd.Flags().StringVar(&resultsPath, "results", "", "Write the JSON results document to this path")
	runCmd.Flags().StringVar(&recordsPath, "records", "", "Write completion records as CSV to this path")
	runCmd.Flags().IntVar(&histogramBins, "bins", report.DefaultHistogramBins, "Latency histogram bins in the JSON results")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
