package mip

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

const cbcPath = "cbc"

type cbcSolver struct {
	options SolverOptions
}

func NewCbcSolver(options SolverOptions) MIPSolver {
	return &cbcSolver{options: options}
}

func (solver *cbcSolver) Solve(mip MIP) (*MIPSolution, error) {
	modelFile, err := writeTempModel(mip)
	if err != nil {
		return nil, err
	}
	defer os.Remove(modelFile)

	solutionFile, err := tempSolutionPath("cbc_solution-*.txt")
	if err != nil {
		return nil, err
	}
	defer os.Remove(solutionFile)

	args := []string{modelFile}
	if solver.options.TimeLimit > 0 {
		args = append(args, "sec", solver.options.timeLimitSeconds())
	}
	args = append(args, "solve", "solu", solutionFile)
	cmd := exec.Command(solver.options.executable(cbcPath), args...)

	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("an error occurred during cbc execution: %w : %v", err, stderr.String())
	}

	output, err := os.ReadFile(solutionFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read output file: %w", err)
	}
	return parseCbcSolution(mip, string(output))
}

// The first line holds the status (e.g. "Optimal - objective value 12.0"), then one line per non-zero column: index, name, value, reduced cost
func parseCbcSolution(mip MIP, output string) (*MIPSolution, error) {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) == 0 || lines[0] == "" {
		return nil, fmt.Errorf("empty cbc solution file")
	}

	status := strings.ToLower(lines[0])
	optimal := false
	switch {
	case strings.HasPrefix(status, "optimal"):
		optimal = true
	case strings.Contains(status, "infeasible"):
		return nil, nil
	case strings.Contains(status, "unbounded"):
		return nil, ErrUnbounded
	case strings.Contains(status, "no integer solution"):
		return nil, ErrNoSolution
	case strings.HasPrefix(status, "stopped"):
		// Incumbent found before hitting a limit
	default:
		return nil, fmt.Errorf("unexpected cbc status: %v", lines[0])
	}

	named := make(map[string]float64)
	for _, line := range lines[1:] {
		fields := strings.Fields(line)
		if len(fields) > 0 && fields[0] == "**" { // Marks values violating a bound
			fields = fields[1:]
		}
		if len(fields) < 3 {
			continue
		}
		value, err := parseValue(fields[2])
		if err != nil {
			return nil, err
		}
		named[fields[1]] = value
	}

	values, err := assembleValues(mip, named)
	if err != nil {
		return nil, err
	}
	return &MIPSolution{
		Values:    values,
		Objective: mip.Evaluate(values),
		Optimal:   optimal,
	}, nil
}
