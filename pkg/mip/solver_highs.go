package mip

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

const highsPath = "highs"

type highsSolver struct {
	options SolverOptions
}

func NewHighsSolver(options SolverOptions) MIPSolver {
	return &highsSolver{options: options}
}

func (solver *highsSolver) Solve(mip MIP) (*MIPSolution, error) {
	modelFile, err := writeTempModel(mip)
	if err != nil {
		return nil, err
	}
	defer os.Remove(modelFile)

	solutionFile, err := tempSolutionPath("highs_solution-*.sol")
	if err != nil {
		return nil, err
	}
	defer os.Remove(solutionFile)

	args := []string{"--model_file", modelFile, "--solution_file", solutionFile}
	if solver.options.TimeLimit > 0 {
		args = append(args, "--time_limit", solver.options.timeLimitSeconds())
	}
	cmd := exec.Command(solver.options.executable(highsPath), args...)

	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("an error occurred during highs execution: %w : %v", err, stderr.String())
	}

	output, err := os.ReadFile(solutionFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read output file: %w", err)
	}
	return parseHighsSolution(mip, string(output))
}

// Parses HiGHS' raw solution file: a "Model status" block followed by "# Primal solution values" with a "# Columns n" list of name-value pairs
func parseHighsSolution(mip MIP, output string) (*MIPSolution, error) {
	lines := strings.Split(output, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}

	status, primal := "", ""
	named := make(map[string]float64)
	for i := 0; i < len(lines); i++ {
		switch {
		case lines[i] == "Model status" && i+1 < len(lines):
			status = lines[i+1]
			i++
		case lines[i] == "# Primal solution values" && i+1 < len(lines):
			primal = lines[i+1]
			i++
		case strings.HasPrefix(lines[i], "# Columns") && primal == "Feasible":
			var columns int
			if _, err := fmt.Sscanf(lines[i], "# Columns %d", &columns); err != nil {
				return nil, fmt.Errorf("invalid highs column header: %v", lines[i])
			}
			for j := i + 1; j <= i+columns && j < len(lines); j++ {
				fields := strings.Fields(lines[j])
				if len(fields) < 2 {
					return nil, fmt.Errorf("invalid highs column line: %v", lines[j])
				}
				value, err := parseValue(fields[1])
				if err != nil {
					return nil, err
				}
				named[fields[0]] = value
			}
			i += columns
		}
	}

	switch {
	case status == "Infeasible":
		return nil, nil
	case strings.Contains(status, "nbounded"): // "Unbounded" and "Primal infeasible or unbounded"
		return nil, ErrUnbounded
	case status == "":
		return nil, fmt.Errorf("highs solution file has no model status")
	case primal != "Feasible":
		if status == "Optimal" {
			return nil, fmt.Errorf("highs reported an optimal status without a primal solution")
		}
		return nil, fmt.Errorf("%w: %v", ErrNoSolution, status)
	}

	values, err := assembleValues(mip, named)
	if err != nil {
		return nil, err
	}
	return &MIPSolution{
		Values:    values,
		Objective: mip.Evaluate(values),
		Optimal:   status == "Optimal",
	}, nil
}
