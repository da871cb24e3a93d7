package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"runtime"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	sim "github.com/fog-sim/fog-sim/sim"
)

var (
	replications  int       // Replications per offload probability
	parallelism   int       // Concurrent runs
	probabilities []float64 // Offload probabilities to sweep (empty = the configured one)
)

// RunRow is the outcome of one replication.
type RunRow struct {
	Seed          int64
	Completed     int
	CloudFraction float64
	MeanLatency   float64 // NaN when nothing completed
}

// SweepRow pools the replications of one offload probability.
type SweepRow struct {
	Probability     float64
	Runs            []RunRow
	Completed       int
	CloudFraction   float64 // pooled over all completed tasks
	CloudFractionSE float64 // standard error of the per-run cloud fraction
	MeanLatency     float64 // pooled; NaN when nothing completed
}

// runSweep executes reps independent replications for each probability,
// seeding replication r with base.Seed+r. Runs execute concurrently, at most
// parallel at a time; each owns its System and Collector, and the collectors
// are merged only after every run has finished. Rows come back in the order
// of probs regardless of scheduling.
func runSweep(ctx context.Context, base sim.Config, probs []float64, reps, parallel int) ([]SweepRow, error) {
	if reps < 1 {
		return nil, fmt.Errorf("replications must be >= 1, got %d: %w", reps, sim.ErrInvalidConfig)
	}
	if len(probs) == 0 {
		probs = []float64{base.OffloadProbability}
	}
	if parallel < 1 {
		parallel = runtime.GOMAXPROCS(0)
	}

	results := make([][]*sim.Result, len(probs))
	for i := range results {
		results[i] = make([]*sim.Result, reps)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i, p := range probs {
		for r := 0; r < reps; r++ {
			cfg := base
			cfg.OffloadProbability = p
			cfg.Seed = base.Seed + int64(r)
			i, r := i, r
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				res, err := sim.RunSimulation(cfg)
				if err != nil {
					return fmt.Errorf("offload=%v seed=%d: %w", cfg.OffloadProbability, cfg.Seed, err)
				}
				logrus.Debugf("Replication offload=%v seed=%d done: %d completed", cfg.OffloadProbability, cfg.Seed, res.Stats.Count())
				results[i][r] = res
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rows := make([]SweepRow, len(probs))
	for i, p := range probs {
		rows[i] = poolReplications(p, results[i])
	}
	return rows, nil
}

func poolReplications(p float64, runs []*sim.Result) SweepRow {
	row := SweepRow{Probability: p, Runs: make([]RunRow, len(runs))}
	pooled := sim.NewCollector()
	fractions := make([]float64, 0, len(runs))
	for r, res := range runs {
		run := RunRow{
			Seed:          res.Config.Seed,
			Completed:     res.Stats.Count(),
			CloudFraction: math.NaN(),
			MeanLatency:   math.NaN(),
		}
		if run.Completed > 0 {
			run.CloudFraction = float64(res.Stats.CloudCount()) / float64(run.Completed)
			run.MeanLatency, _ = res.Stats.MeanLatency()
			fractions = append(fractions, run.CloudFraction)
		}
		row.Runs[r] = run
		pooled.Merge(res.Stats)
	}

	row.Completed = pooled.Count()
	row.CloudFraction = math.NaN()
	row.MeanLatency = math.NaN()
	if row.Completed > 0 {
		row.CloudFraction = float64(pooled.CloudCount()) / float64(row.Completed)
		row.MeanLatency, _ = pooled.MeanLatency()
	}
	if len(fractions) > 1 {
		row.CloudFractionSE = stat.StdDev(fractions, nil) / math.Sqrt(float64(len(fractions)))
	}
	return row
}

func printSweep(w io.Writer, rows []SweepRow, perRun bool) {
	fmt.Fprintln(w, "--- Offload Sweep ---")
	fmt.Fprintf(w, "%-10s %-6s %-10s %-10s %-10s %-12s\n", "offload", "runs", "completed", "cloud", "cloud_se", "mean_latency")
	for _, row := range rows {
		fmt.Fprintf(w, "%-10.3f %-6d %-10d %-10.4f %-10.4f %-12.3f\n",
			row.Probability, len(row.Runs), row.Completed, row.CloudFraction, row.CloudFractionSE, row.MeanLatency)
		if !perRun {
			continue
		}
		for _, run := range row.Runs {
			fmt.Fprintf(w, "  seed=%-8d completed=%-8d cloud=%-8.4f mean_latency=%.3f\n",
				run.Seed, run.Completed, run.CloudFraction, run.MeanLatency)
		}
	}
}

var showRuns bool

// sweepCmd runs independent replications across offload probabilities
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run independent replications across offload probabilities",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		cfg, err := resolveConfig(cmd)
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}
		for _, p := range probabilities {
			if p < 0 || p > 1 || math.IsNaN(p) {
				logrus.Fatalf("Invalid --probabilities entry %v: %v", p, sim.ErrInvalidProbability)
			}
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		rows, err := runSweep(ctx, cfg, probabilities, replications, parallelism)
		if err != nil {
			if errors.Is(err, sim.ErrInvalidConfig) {
				logrus.Fatalf("Invalid sweep: %v", err)
			}
			logrus.Fatalf("Sweep aborted: %v", err)
		}
		printSweep(cmd.OutOrStdout(), rows, showRuns)
	},
}

func init() {
	registerSimFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&replications, "replications", 10, "Replications per offload probability (seeds seed..seed+N-1)")
	sweepCmd.Flags().IntVar(&parallelism, "parallel", 0, "Concurrent runs (0 = GOMAXPROCS)")
	sweepCmd.Flags().Float64SliceVar(&probabilities, "probabilities", nil, "Offload probabilities to sweep (default: --offload-prob)")
	sweepCmd.Flags().BoolVar(&showRuns, "show-runs", false, "Print every replication, not only the pooled rows")

	rootCmd.AddCommand(sweepCmd)
}
