package mip

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"
)

var (
	ErrUnbounded  = errors.New("mip is unbounded")
	ErrNoSolution = errors.New("solver stopped before finding a feasible solution")
)

type SolverOptions struct {
	Path        string        // Executable path; the backend's default binary name is used when empty
	TimeLimit   time.Duration // Zero means no limit
	MaxBinaries int           // Only used by the exhaustive solver
}

func (options SolverOptions) executable(fallback string) string {
	if options.Path != "" {
		return options.Path
	}
	return fallback
}

func (options SolverOptions) timeLimitSeconds() string {
	return strconv.FormatFloat(math.Ceil(options.TimeLimit.Seconds()), 'f', 0, 64)
}

// Writes the LP rendering of the MIP into a temporary file and returns its name
func writeTempModel(mip MIP) (string, error) {
	tmpFile, err := os.CreateTemp("", "mip-*.lp")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}
	if _, err := tmpFile.WriteString(mip.ToLP()); err != nil {
		tmpFile.Close()
		os.Remove(tmpFile.Name())
		return "", fmt.Errorf("failed to write LP model to temporary file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpFile.Name())
		return "", fmt.Errorf("failed to close temporary file: %w", err)
	}
	return tmpFile.Name(), nil
}

// Reserves a temporary path for the solver to write its solution into
func tempSolutionPath(pattern string) (string, error) {
	tmpFile, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpFile.Close()
	return tmpFile.Name(), nil
}

// Builds the dense values vector from named values, rounding binaries to the closest integer
func assembleValues(mip MIP, named map[string]float64) ([]float64, error) {
	index := mip.VariableIndex()
	values := make([]float64, len(mip.Variables))
	for name, value := range named {
		variable, ok := index[name]
		if !ok {
			return nil, fmt.Errorf("unknown variable in solver output: %v", name)
		}
		if mip.Variables[variable].Kind == Binary {
			value = math.Round(value)
		}
		values[variable] = value
	}
	return values, nil
}

func parseValue(valueStr string) (float64, error) {
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value in solver output: %w", err)
	}
	return value, nil
}
