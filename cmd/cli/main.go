package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/limaJavier/fairtable/internal/config"
	"github.com/limaJavier/fairtable/internal/logger"
	"github.com/limaJavier/fairtable/internal/metrics"
	"github.com/limaJavier/fairtable/pkg/export"
	"github.com/limaJavier/fairtable/pkg/mip"
	"github.com/limaJavier/fairtable/pkg/model"
	"github.com/limaJavier/fairtable/pkg/timetable"
)

const (
	exitSolved       = 10
	exitInfeasible   = 20
	exitUnverifiable = 15
	exitFailure      = 1
)

var exitCode = exitFailure

func main() {
	if err := newCommand().Execute(); err != nil {
		os.Exit(exitFailure)
	}
	os.Exit(exitCode)
}

func newCommand() *cobra.Command {
	var (
		configPath  string
		backend     string
		timeLimit   time.Duration
		denominator string
		lpPath      string
	)

	cmd := &cobra.Command{
		Use:   "fairtable <input> <output>",
		Short: "Fair classroom timetable planner",
		Long: "Assigns departments to classrooms and weekly time blocks, maximizing their preference\n" +
			"scores while keeping the best- and worst-served departments close together.\n" +
			"The output format (.csv, .json or .pdf) is taken from the output file's extension.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			// Flags override the configuration
			if cmd.Flags().Changed("solver") {
				cfg.Solver.Backend = backend
			}
			if cmd.Flags().Changed("time-limit") {
				cfg.Solver.TimeLimit = timeLimit
			}
			if cmd.Flags().Changed("denominator") {
				cfg.Model.Denominator = denominator
			}
			if err := cfg.Solver.Validate(); err != nil {
				return err
			}

			cmd.SilenceUsage = true
			exitCode, err = plan(cfg, args[0], args[1], lpPath)
			return err
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "configuration file (yaml, json or toml)")
	cmd.Flags().StringVarP(&backend, "solver", "s", "cbc", `MIP backend: "cbc", "highs", "scip" or "exhaustive"`)
	cmd.Flags().DurationVarP(&timeLimit, "time-limit", "t", 0, "solver time limit with a unit, e.g. 90s or 5m, at least 1s; the incumbent is used when it is reached (0 means no limit)")
	cmd.Flags().StringVarP(&denominator, "denominator", "d", "weekday", `reference total of the preference ratio: "weekday" or "full"`)
	cmd.Flags().StringVar(&lpPath, "lp", "", "also write the MIP in CPLEX-LP format to this file")

	return cmd
}

func plan(cfg *config.Config, inputPath, outputPath, lpPath string) (int, error) {
	//** Validate arguments
	if _, err := os.Stat(inputPath); errors.Is(err, os.ErrNotExist) {
		return exitFailure, fmt.Errorf("input file %v does not exist", inputPath)
	}
	if _, err := export.RendererFor(outputPath); err != nil {
		return exitFailure, err
	}
	denominator, err := model.ParseDenominator(cfg.Model.Denominator)
	if err != nil {
		return exitFailure, err
	}
	newSolver, ok := mip.Solvers[cfg.Solver.Backend]
	if !ok {
		return exitFailure, fmt.Errorf("%v is not a valid solver", cfg.Solver.Backend)
	}

	log, err := logger.New(cfg)
	if err != nil {
		return exitFailure, fmt.Errorf("initialize logger: %w", err)
	}
	defer log.Sync()

	runId := uuid.NewString()
	log = log.With(zap.String("run_id", runId))

	runMetrics := metrics.New()
	if cfg.Metrics.Textfile != "" {
		defer func() {
			if err := runMetrics.WriteToTextfile(cfg.Metrics.Textfile); err != nil {
				log.Warn("metrics_not_written", zap.Error(err))
			}
		}()
	}

	//** Extract input
	input, err := model.InputFromJson(inputPath)
	if err != nil {
		return exitFailure, fmt.Errorf("cannot parse input file: %w", err)
	}
	log.Info("input_loaded",
		zap.String("file", inputPath),
		zap.Int("departments", len(input.Departments)),
		zap.Int("classrooms", len(input.Classrooms)),
		zap.Int("timeslots", len(input.Timeslots)),
	)

	if lpPath != "" {
		if err := os.WriteFile(lpPath, []byte(model.NewMIP(input, denominator).ToLP()), 0666); err != nil {
			return exitFailure, fmt.Errorf("cannot write LP file: %w", err)
		}
		log.Info("lp_written", zap.String("file", lpPath))
	}

	//** Initialize engines
	solver := newSolver(mip.SolverOptions{
		Path:        cfg.Solver.Paths[cfg.Solver.Backend],
		TimeLimit:   cfg.Solver.TimeLimit,
		MaxBinaries: cfg.Solver.ExhaustiveLimit,
	})
	timetabler := model.NewFairTimetabler(solver, denominator)

	//** Build plan
	start := time.Now()
	result, variables, constraints, err := timetabler.Build(input)
	duration := time.Since(start)
	runMetrics.ObserveModel(variables, constraints)

	fields := []zap.Field{
		zap.String("solver", cfg.Solver.Backend),
		zap.Stringer("denominator", denominator),
		zap.Uint64("variables", variables),
		zap.Uint64("constraints", constraints),
		zap.Duration("duration", duration),
	}
	if err != nil {
		runMetrics.ObserveRun(cfg.Solver.Backend, metrics.OutcomeFailed, duration)
		log.Error("solve_failed", append(fields, zap.Error(err))...)
		return exitFailure, fmt.Errorf("an error occurred during timetable construction: %w", err)
	} else if result == nil {
		runMetrics.ObserveRun(cfg.Solver.Backend, metrics.OutcomeInfeasible, duration)
		log.Info("infeasible", fields...)
		fmt.Println("No timetable satisfies every constraint for the given input")
		return exitInfeasible, nil
	}

	// Verify plan correctness
	if !timetabler.Verify(result, input) {
		runMetrics.ObserveRun(cfg.Solver.Backend, metrics.OutcomeRejected, duration)
		log.Error("verification_failed", fields...)
		fmt.Println("The solver returned a plan that violates the model's constraints")
		return exitUnverifiable, nil
	}
	runMetrics.ObserveRun(cfg.Solver.Backend, metrics.OutcomeSolved, duration)
	runMetrics.ObservePlan(result.Objective, result.Lower, result.Upper)
	log.Info("solved", append(fields,
		zap.Float64("objective", result.Objective),
		zap.Float64("lower", result.Lower),
		zap.Float64("upper", result.Upper),
		zap.Bool("optimal", result.Optimal),
	)...)

	summaries := model.Summarize(result, input, denominator)
	for _, summary := range summaries {
		log.Info("department",
			zap.String("name", summary.Department),
			zap.Float64("achieved", summary.Achieved),
			zap.Float64("ratio", summary.Ratio),
			zap.Float64("scheduled_hours", summary.ScheduledHours),
			zap.Float64("required_hours", summary.RequiredHours),
			zap.Uint64("big_room_sessions", summary.BigRoomSessions),
		)
	}

	//** Write output
	table, err := timetable.Assemble(result, input)
	if err != nil {
		return exitFailure, err
	}
	err = export.Write(outputPath, export.Document{
		RunId:     runId,
		Objective: result.Objective,
		Lower:     result.Lower,
		Upper:     result.Upper,
		Optimal:   result.Optimal,
		Table:     table,
		Summaries: summaries,
	})
	if err != nil {
		return exitFailure, err
	}

	fmt.Printf("Objective: %v\n", result.Objective)
	fmt.Printf("Timetable written to %v\n", outputPath)
	return exitSolved, nil
}
