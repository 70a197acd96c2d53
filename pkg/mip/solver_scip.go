package mip

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

const scipPath = "scip"

type scipSolver struct {
	options SolverOptions
}

func NewScipSolver(options SolverOptions) MIPSolver {
	return &scipSolver{options: options}
}

func (solver *scipSolver) Solve(mip MIP) (*MIPSolution, error) {
	modelFile, err := writeTempModel(mip)
	if err != nil {
		return nil, err
	}
	defer os.Remove(modelFile)

	solutionFile, err := tempSolutionPath("scip_solution-*.sol")
	if err != nil {
		return nil, err
	}
	defer os.Remove(solutionFile)

	var script strings.Builder
	if solver.options.TimeLimit > 0 {
		fmt.Fprintf(&script, "set limits time %v ", solver.options.timeLimitSeconds())
	}
	fmt.Fprintf(&script, "read %v optimize write solution %v quit", modelFile, solutionFile)
	cmd := exec.Command(solver.options.executable(scipPath), "-q", "-c", script.String())

	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("an error occurred during scip execution: %w : %v", err, stderr.String())
	}

	output, err := os.ReadFile(solutionFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read output file: %w", err)
	}
	return parseScipSolution(mip, string(output))
}

// SCIP writes "solution status: ...", "objective value: ..." and then one "name value (obj:c)" line per non-zero variable
func parseScipSolution(mip MIP, output string) (*MIPSolution, error) {
	status := ""
	noSolution := false
	named := make(map[string]float64)

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "solution status:"):
			status = strings.TrimSpace(strings.TrimPrefix(line, "solution status:"))
		case strings.HasPrefix(line, "objective value:"):
			continue
		case strings.HasPrefix(line, "no solution available"):
			noSolution = true
		default:
			fields := strings.Fields(line)
			if len(fields) < 2 {
				return nil, fmt.Errorf("invalid scip solution line: %v", line)
			}
			value, err := parseValue(fields[1])
			if err != nil {
				return nil, err
			}
			named[fields[0]] = value
		}
	}

	switch {
	case status == "":
		return nil, fmt.Errorf("scip solution file has no status")
	case status == "infeasible":
		return nil, nil
	case strings.Contains(status, "unbounded"):
		return nil, ErrUnbounded
	case noSolution:
		return nil, fmt.Errorf("%w: %v", ErrNoSolution, status)
	}

	values, err := assembleValues(mip, named)
	if err != nil {
		return nil, err
	}
	return &MIPSolution{
		Values:    values,
		Objective: mip.Evaluate(values),
		Optimal:   status == "optimal solution found",
	}, nil
}
