package cmd

import (
	"os"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/boson13579/Parallel-VLSI-Floorplanner/floorplan"
	"github.com/boson13579/Parallel-VLSI-Floorplanner/floorplan/trace"
)

var (
	// CLI flags for the search control surface
	inputFile       string  // .block input path
	outputFile      string  // placement output path
	strategyName    string  // multistart | tempering | parallelmoves
	timeLimitSecs   float64 // wall-clock budget in seconds
	threads         int     // worker count; defaults to logical cores
	logLevel        string  // log verbosity level
	convergencePath string  // convergence CSV path
	summaryPath     string  // run summary CSV to append to (optional)
	paramsPath      string  // YAML hyperparameter overrides (optional)
	seed            int64   // master RNG seed; 0 = wall clock
	metricsAddr     string  // Prometheus listen address (optional)
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "floorplanner",
	Short: "Parallel simulated-annealing floorplanner for analog placement",
}

// runCmd executes one floorplan search using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the floorplan search",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		strategy, err := floorplan.ParseStrategy(strategyName)
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		model, err := floorplan.ReadBlocks(inputFile)
		if err != nil {
			logrus.Fatalf("Cannot read input file %s: %v", inputFile, err)
		}
		if model.NumBlocks() == 0 {
			logrus.Fatalf("Input file %s holds no blocks", inputFile)
		}

		params, err := LoadHyperparameters(paramsPath, strategy)
		if err != nil {
			logrus.Fatalf("Hyperparameters: %v", err)
		}

		convergence, err := trace.NewConvergenceLog(convergencePath)
		if err != nil {
			logrus.Fatalf("Convergence log: %v", err)
		}
		defer func() {
			if err := convergence.Close(); err != nil {
				logrus.Warnf("closing convergence log: %v", err)
			}
		}()

		timeLimit := time.Duration(timeLimitSecs * float64(time.Second))
		searcher, err := floorplan.NewSearcher(model, floorplan.SearchConfig{
			Workers:     threads,
			TimeLimit:   timeLimit,
			Params:      params,
			Seed:        seed,
			Convergence: convergence,
		})
		if err != nil {
			logrus.Fatalf("Search setup: %v", err)
		}

		if metricsAddr != "" {
			floorplan.ServeMetrics(metricsAddr, floorplan.NewMetricsRegistry(searcher))
		}

		runID := uuid.NewString()
		logrus.Infof("Starting floorplan search: %d blocks, %d workers, strategy=%s, time limit=%.0fs",
			model.NumBlocks(), threads, strategy, timeLimit.Seconds())
		logrus.Infof("Hyperparameters: t_start=%g t_min=%g cooling_rate=%g steps_per_temp_factor=%g",
			params.TStart, params.TMin, params.CoolingRate, params.StepsPerTempFactor)
		logrus.Infof("Convergence log: %s (run %s)", convergencePath, runID)

		startTime := time.Now()
		best, err := searcher.Run(strategy)
		if err != nil {
			logrus.Fatalf("Search failed: %v", err)
		}
		wall := time.Since(startTime)

		stats := searcher.Stats()
		logrus.Infof("Search complete in %.2fs: cost=%.6f area=%.4f chip=%.2fx%.2f inl=%.2f",
			wall.Seconds(), best.Cost, best.ChipArea, best.ChipWidth, best.ChipHeight, best.INL)
		logrus.Infof("Moves: %d attempted, %d accepted (ratio %.4f), %d SA runs",
			stats.MovesTotal(), stats.MovesAccepted(), stats.AcceptRatio(), stats.SARuns())

		if err := floorplan.WriteOutput(best, outputFile); err != nil {
			logrus.Fatalf("Cannot write output file %s: %v", outputFile, err)
		}
		logrus.Infof("Placement written to %s", outputFile)

		if summaryPath != "" {
			rec := trace.SummaryRecord{
				Strategy:      strategy.String(),
				Threads:       threads,
				WallSeconds:   wall.Seconds(),
				BestCost:      best.Cost,
				ChipArea:      best.ChipArea,
				ChipWidth:     best.ChipWidth,
				ChipHeight:    best.ChipHeight,
				INL:           best.INL,
				MovesTotal:    stats.MovesTotal(),
				MovesAccepted: stats.MovesAccepted(),
				AcceptRatio:   stats.AcceptRatio(),
				SARuns:        stats.SARuns(),
				RunID:         runID,
			}
			if err := trace.AppendSummary(summaryPath, rec); err != nil {
				logrus.Warnf("Summary CSV: %v", err)
			}
		}
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input .block file")
	runCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output placement file")
	runCmd.Flags().StringVar(&strategyName, "strategy", "multistart", "Search strategy (multistart, tempering, parallelmoves)")
	runCmd.Flags().Float64Var(&timeLimitSecs, "time-limit", 595, "Wall-clock time limit in seconds")
	runCmd.Flags().IntVar(&threads, "threads", runtime.NumCPU(), "Number of search workers")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&convergencePath, "convergence-log", "convergence_log.csv", "Convergence CSV path")
	runCmd.Flags().StringVar(&summaryPath, "summary", "", "Run summary CSV to append to")
	runCmd.Flags().StringVar(&paramsPath, "params", "", "YAML file with hyperparameter overrides")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "Master RNG seed (0 = time-based)")
	runCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Address to serve Prometheus metrics on (empty = disabled)")

	if err := runCmd.MarkFlagRequired("input"); err != nil {
		panic(err)
	}
	if err := runCmd.MarkFlagRequired("output"); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(runCmd)
}
