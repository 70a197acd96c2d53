package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/limaJavier/fairtable/internal/config"
	"github.com/limaJavier/fairtable/internal/metrics"
	"github.com/limaJavier/fairtable/pkg/mip"
	"github.com/limaJavier/fairtable/pkg/model"
)

func TestGetTests(t *testing.T) {
	tests, err := getTests(defaultTestDirectory)

	require.NoError(t, err)
	names := make([]string, 0, len(tests))
	for _, test := range tests {
		names = append(names, test.Name)
	}
	assert.Contains(t, names, defaultTestDirectory+"tiny.json")
	assert.Contains(t, names, defaultTestDirectory+"campus.json")
}

func TestGetSolversAlwaysIncludesExhaustive(t *testing.T) {
	solvers := getSolvers(&config.Config{Solver: config.SolverConfig{Paths: map[string]string{"cbc": "/nonexistent/cbc"}}})

	assert.Contains(t, solvers, "exhaustive")
	assert.NotContains(t, solvers, "cbc")
}

func TestBenchmark(t *testing.T) {
	//** Arrange
	tests, err := getTests(defaultTestDirectory)
	require.NoError(t, err)
	solvers := map[string]mip.MIPSolver{"exhaustive": mip.NewExhaustiveSolver(mip.SolverOptions{})}

	//** Act
	results := benchmark(tests, solvers, metrics.New(), zap.NewNop())

	//** Assert
	require.Len(t, results, len(tests)*2)
	for _, result := range results {
		switch result.Test.Name {
		case defaultTestDirectory + "tiny.json":
			assert.Equal(t, solved, result.Result)
			assert.Equal(t, uint64(22), result.Variables)
		case defaultTestDirectory + "campus.json":
			// Too many binaries for exhaustive enumeration
			assert.Equal(t, failed, result.Result)
		}
	}
	assert.Equal(t, model.WeekdayDenominator, results[0].Denominator)
	assert.Equal(t, model.FullDenominator, results[1].Denominator)
}

func TestToCsv(t *testing.T) {
	//** Arrange
	results := []BenchmarkResult{{
		Solver:      "highs",
		Denominator: model.FullDenominator,
		Test:        TestMetadata{Name: "campus.json", Departments: 4, Classrooms: 8, Timeslots: 4},
		Variables:   642,
		Constraints: 300,
		Duration:    1500 * time.Millisecond,
		Objective:   120.5,
		Gap:         0.25,
		Result:      incumbent,
	}}
	var out strings.Builder

	//** Act
	err := toCsv(&out, results)

	//** Assert
	require.NoError(t, err)
	assert.Equal(t,
		"Solver,Denominator,Test,Departments,Classrooms,Timeslots,Variables,Constraints,Duration(ms),Objective,Gap,Result\n"+
			"highs,full,campus.json,4,8,4,642,300,1500,120.5,0.2500,incumbent\n",
		out.String())
}
