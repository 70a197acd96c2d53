package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/limaJavier/fairtable/internal/config"
	"github.com/limaJavier/fairtable/internal/logger"
	"github.com/limaJavier/fairtable/internal/metrics"
	"github.com/limaJavier/fairtable/pkg/mip"
	"github.com/limaJavier/fairtable/pkg/model"
)

const defaultTestDirectory = "../../pkg/model/testdata/"

type ResultType int

const (
	solved ResultType = iota
	incumbent
	infeasible
	rejected
	failed
)

var resultTypes = map[ResultType]string{
	solved:     "solved",
	incumbent:  "incumbent",
	infeasible: "infeasible",
	rejected:   "rejected",
	failed:     "failed",
}

type TestMetadata struct {
	Name        string
	Input       model.ModelInput
	Departments int
	Classrooms  int
	Timeslots   int
}

type BenchmarkResult struct {
	Solver      string
	Denominator model.Denominator
	Test        TestMetadata
	Variables   uint64
	Constraints uint64
	Duration    time.Duration
	Objective   float64
	Gap         float64
	Result      ResultType
}

func main() {
	var (
		configPath string
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "benchmark [directory]",
		Short: "Runs every available solver and denominator mode over a directory of inputs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			directory := defaultTestDirectory
			if len(args) == 1 {
				directory = args[0]
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			log, err := logger.New(cfg)
			if err != nil {
				return err
			}
			defer log.Sync()

			tests, err := getTests(directory)
			if err != nil {
				return err
			}
			runMetrics := metrics.New()
			results := benchmark(tests, getSolvers(cfg), runMetrics, log)

			file, err := os.Create(outputPath)
			if err != nil {
				return fmt.Errorf("cannot create CSV file: %w", err)
			}
			defer file.Close()
			if err := toCsv(file, results); err != nil {
				return err
			}

			if cfg.Metrics.Textfile != "" {
				return runMetrics.WriteToTextfile(cfg.Metrics.Textfile)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "configuration file (yaml, json or toml)")
	cmd.Flags().StringVarP(&outputPath, "out", "o", "benchmark_results.csv", "CSV file the results are written to")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func getTests(directory string) ([]TestMetadata, error) {
	testFiles, err := os.ReadDir(directory)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory: %w", err)
	}

	tests := make([]TestMetadata, 0, len(testFiles))
	for _, file := range testFiles {
		if file.IsDir() || filepath.Ext(file.Name()) != ".json" {
			continue
		}
		filename := filepath.Join(directory, file.Name())
		input, err := model.InputFromJson(filename)
		if err != nil {
			return nil, fmt.Errorf("cannot parse input file: %w", err)
		}

		tests = append(tests, TestMetadata{
			Name:        filename,
			Input:       input,
			Departments: len(input.Departments),
			Classrooms:  len(input.Classrooms),
			Timeslots:   len(input.Timeslots),
		})
	}
	return tests, nil
}

// Returns the backends whose executable can be found, plus the exhaustive one, keyed by name
func getSolvers(cfg *config.Config) map[string]mip.MIPSolver {
	solvers := make(map[string]mip.MIPSolver)
	for name, newSolver := range mip.Solvers {
		options := mip.SolverOptions{
			Path:        lo.CoalesceOrEmpty(cfg.Solver.Paths[name], name),
			TimeLimit:   cfg.Solver.TimeLimit,
			MaxBinaries: cfg.Solver.ExhaustiveLimit,
		}
		if name != "exhaustive" {
			if _, err := exec.LookPath(options.Path); err != nil {
				continue
			}
		}
		solvers[name] = newSolver(options)
	}
	return solvers
}

func benchmark(tests []TestMetadata, solvers map[string]mip.MIPSolver, runMetrics *metrics.Metrics, log *zap.Logger) []BenchmarkResult {
	names := lo.Keys(solvers)
	slices.Sort(names)
	denominators := []model.Denominator{model.WeekdayDenominator, model.FullDenominator}
	results := make([]BenchmarkResult, 0, len(tests)*len(names)*len(denominators))

	for _, test := range tests {
		for _, name := range names {
			for _, denominator := range denominators {
				log.Info("benchmarking", zap.String("test", test.Name), zap.String("solver", name), zap.Stringer("denominator", denominator))

				result := measure(model.NewFairTimetabler(solvers[name], denominator), test)
				result.Solver, result.Denominator = name, denominator
				runMetrics.ObserveRun(name, resultTypes[result.Result], result.Duration)

				if result.Result == failed {
					log.Warn("benchmark_failed", zap.String("test", test.Name), zap.String("solver", name))
				}
				results = append(results, result)
			}
		}
	}
	return results
}

func measure(timetabler model.Timetabler, test TestMetadata) BenchmarkResult {
	start := time.Now()
	plan, variables, constraints, err := timetabler.Build(test.Input)
	result := BenchmarkResult{
		Test:        test,
		Variables:   variables,
		Constraints: constraints,
		Duration:    time.Since(start),
	}

	switch {
	case err != nil:
		result.Result = failed
	case plan == nil:
		result.Result = infeasible
	case !timetabler.Verify(plan, test.Input):
		result.Result = rejected
	default:
		result.Result = solved
		if !plan.Optimal {
			result.Result = incumbent
		}
		result.Objective = plan.Objective
		result.Gap = plan.Upper - plan.Lower
	}
	return result
}

func toCsv(out io.Writer, results []BenchmarkResult) error {
	writer := csv.NewWriter(out)

	header := []string{"Solver", "Denominator", "Test", "Departments", "Classrooms", "Timeslots", "Variables", "Constraints", "Duration(ms)", "Objective", "Gap", "Result"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("cannot write CSV header: %w", err)
	}

	for _, result := range results {
		record := []string{
			result.Solver,
			result.Denominator.String(),
			result.Test.Name,
			fmt.Sprintf("%d", result.Test.Departments),
			fmt.Sprintf("%d", result.Test.Classrooms),
			fmt.Sprintf("%d", result.Test.Timeslots),
			fmt.Sprintf("%d", result.Variables),
			fmt.Sprintf("%d", result.Constraints),
			fmt.Sprintf("%d", result.Duration.Milliseconds()),
			strconv.FormatFloat(result.Objective, 'f', -1, 64),
			fmt.Sprintf("%.4f", result.Gap),
			resultTypes[result.Result],
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("cannot write CSV record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
