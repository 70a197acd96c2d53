package mip

import (
	"fmt"
	"math"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCbcSolution(t *testing.T) {
	instance := smallMip()

	t.Run("Optimal", func(t *testing.T) {
		output := "Optimal - objective value 1.00000000\n" +
			"      0 a                      1                       3\n" +
			"      2 U                      2                       0\n"

		solution, err := parseCbcSolution(instance, output)

		require.NoError(t, err)
		require.NotNil(t, solution)
		assert.Equal(t, []float64{1, 0, 2}, solution.Values)
		assert.Equal(t, 1.0, solution.Objective)
		assert.True(t, solution.Optimal)
	})

	t.Run("Stopped on time limit", func(t *testing.T) {
		output := "Stopped on time - objective value 2.00000000\n" +
			"** 1 b                   0.9999999                       2\n"

		solution, err := parseCbcSolution(instance, output)

		require.NoError(t, err)
		require.NotNil(t, solution)
		assert.Equal(t, []float64{0, 1, 0}, solution.Values)
		assert.False(t, solution.Optimal)
	})

	t.Run("Infeasible", func(t *testing.T) {
		solution, err := parseCbcSolution(instance, "Infeasible - objective value 0.00000000\n")
		assert.NoError(t, err)
		assert.Nil(t, solution)
	})

	t.Run("Unbounded", func(t *testing.T) {
		_, err := parseCbcSolution(instance, "Unbounded - objective value 0.00000000\n")
		assert.ErrorIs(t, err, ErrUnbounded)
	})

	t.Run("Stopped without integer solution", func(t *testing.T) {
		_, err := parseCbcSolution(instance, "Stopped on time (no integer solution - continuous used) - objective value 3.0\n")
		assert.ErrorIs(t, err, ErrNoSolution)
	})

	t.Run("Unknown variable", func(t *testing.T) {
		_, err := parseCbcSolution(instance, "Optimal - objective value 1.0\n      0 z     1     0\n")
		assert.ErrorContains(t, err, "unknown variable in solver output: z")
	})

	t.Run("Empty file", func(t *testing.T) {
		_, err := parseCbcSolution(instance, "\n")
		assert.Error(t, err)
	})
}

func TestParseHighsSolution(t *testing.T) {
	instance := smallMip()

	t.Run("Optimal", func(t *testing.T) {
		output := "Model status\n" +
			"Optimal\n" +
			"\n" +
			"# Primal solution values\n" +
			"Feasible\n" +
			"Objective 1\n" +
			"# Columns 3\n" +
			"a 1\n" +
			"b 0\n" +
			"U 2\n" +
			"# Rows 2\n" +
			"pick 1\n" +
			"bound 0\n" +
			"\n" +
			"# Dual solution values\n" +
			"None\n"

		solution, err := parseHighsSolution(instance, output)

		require.NoError(t, err)
		require.NotNil(t, solution)
		assert.Equal(t, []float64{1, 0, 2}, solution.Values)
		assert.Equal(t, 1.0, solution.Objective)
		assert.True(t, solution.Optimal)
	})

	t.Run("Time limit with incumbent", func(t *testing.T) {
		output := "Model status\nTime limit reached\n\n# Primal solution values\nFeasible\nObjective 2\n# Columns 3\na 0\nb 1\nU 0\n"

		solution, err := parseHighsSolution(instance, output)

		require.NoError(t, err)
		require.NotNil(t, solution)
		assert.False(t, solution.Optimal)
	})

	t.Run("Time limit without incumbent", func(t *testing.T) {
		_, err := parseHighsSolution(instance, "Model status\nTime limit reached\n\n# Primal solution values\nNone\n")
		assert.ErrorIs(t, err, ErrNoSolution)
	})

	t.Run("Infeasible", func(t *testing.T) {
		solution, err := parseHighsSolution(instance, "Model status\nInfeasible\n\n# Primal solution values\nNone\n")
		assert.NoError(t, err)
		assert.Nil(t, solution)
	})

	t.Run("Unbounded", func(t *testing.T) {
		_, err := parseHighsSolution(instance, "Model status\nPrimal infeasible or unbounded\n")
		assert.ErrorIs(t, err, ErrUnbounded)
	})

	t.Run("Missing status", func(t *testing.T) {
		_, err := parseHighsSolution(instance, "# Primal solution values\nNone\n")
		assert.Error(t, err)
	})
}

func TestParseScipSolution(t *testing.T) {
	instance := smallMip()

	t.Run("Optimal", func(t *testing.T) {
		output := "solution status: optimal solution found\n" +
			"objective value:                                    1\n" +
			"a                                                   1 \t(obj:3)\n" +
			"U                                                   2 \t(obj:-1)\n"

		solution, err := parseScipSolution(instance, output)

		require.NoError(t, err)
		require.NotNil(t, solution)
		assert.Equal(t, []float64{1, 0, 2}, solution.Values)
		assert.True(t, solution.Optimal)
	})

	t.Run("Infeasible", func(t *testing.T) {
		solution, err := parseScipSolution(instance, "solution status: infeasible\nno solution available\n")
		assert.NoError(t, err)
		assert.Nil(t, solution)
	})

	t.Run("Time limit without solution", func(t *testing.T) {
		_, err := parseScipSolution(instance, "solution status: time limit reached\nno solution available\n")
		assert.ErrorIs(t, err, ErrNoSolution)
	})

	t.Run("Unbounded", func(t *testing.T) {
		_, err := parseScipSolution(instance, "solution status: unbounded\n")
		assert.ErrorIs(t, err, ErrUnbounded)
	})

	t.Run("Missing status", func(t *testing.T) {
		_, err := parseScipSolution(instance, "a 1\n")
		assert.Error(t, err)
	})
}

func TestExhaustiveSolver(t *testing.T) {
	t.Run("Optimal", func(t *testing.T) {
		//** Arrange
		solver := NewExhaustiveSolver(SolverOptions{})

		//** Act
		solution, err := solver.Solve(smallMip())

		//** Assert
		require.NoError(t, err)
		require.NotNil(t, solution)
		assert.Equal(t, []float64{0, 1, 0}, solution.Values)
		assert.Equal(t, 2.0, solution.Objective)
		assert.True(t, solution.Optimal)
	})

	t.Run("Infeasible", func(t *testing.T) {
		instance := smallMip()
		instance.Constraints = append(instance.Constraints, Constraint{
			Terms: []Term{{Variable: 0, Coefficient: 1}, {Variable: 1, Coefficient: 1}},
			Sense: GreaterEqual,
			Rhs:   2,
		})

		solution, err := NewExhaustiveSolver(SolverOptions{}).Solve(instance)

		assert.NoError(t, err)
		assert.Nil(t, solution)
	})

	t.Run("Unbounded", func(t *testing.T) {
		instance := smallMip()
		instance.Objective[2].Coefficient = 1

		_, err := NewExhaustiveSolver(SolverOptions{}).Solve(instance)

		assert.ErrorIs(t, err, ErrUnbounded)
	})

	t.Run("Minimization", func(t *testing.T) {
		instance := smallMip()
		instance.Objective[2].Coefficient = 1
		instance.Maximize = false

		solution, err := NewExhaustiveSolver(SolverOptions{}).Solve(instance)

		require.NoError(t, err)
		require.NotNil(t, solution)
		assert.Equal(t, 0.0, solution.Objective)
	})

	t.Run("Too many binaries", func(t *testing.T) {
		_, err := NewExhaustiveSolver(SolverOptions{MaxBinaries: 1}).Solve(smallMip())
		assert.ErrorContains(t, err, "at most 1 binary variables")
	})

	t.Run("Limit above the mask width is capped", func(t *testing.T) {
		//** Arrange
		instance := MIP{Maximize: true, Objective: []Term{{Variable: 0, Coefficient: 1}}}
		for i := range 64 {
			instance.Variables = append(instance.Variables, Variable{Name: fmt.Sprintf("x%v", i), Kind: Binary, Upper: 1})
		}

		//** Act
		solution, err := NewExhaustiveSolver(SolverOptions{MaxBinaries: 64}).Solve(instance)

		//** Assert
		assert.Nil(t, solution)
		assert.ErrorContains(t, err, "at most 62 binary variables: got 64")
	})

	t.Run("Two continuous variables in one constraint", func(t *testing.T) {
		instance := smallMip()
		instance.Variables = append(instance.Variables, Variable{Name: "L", Kind: Continuous, Upper: math.Inf(1)})
		instance.Constraints = append(instance.Constraints, Constraint{
			Name:  "gap",
			Terms: []Term{{Variable: 2, Coefficient: 1}, {Variable: 3, Coefficient: -1}},
			Sense: GreaterEqual,
		})

		_, err := NewExhaustiveSolver(SolverOptions{}).Solve(instance)

		assert.ErrorContains(t, err, `constraint "gap"`)
	})
}

// Backends driven through their executables are only exercised when the executable is installed
func TestExternalSolvers(t *testing.T) {
	for name, newSolver := range Solvers {
		if name == "exhaustive" {
			continue
		}
		t.Run(name, func(t *testing.T) {
			if _, err := exec.LookPath(name); err != nil {
				t.Skipf("%v executable not found", name)
			}
			solver := newSolver(SolverOptions{})

			solution, err := solver.Solve(smallMip())

			require.NoError(t, err)
			require.NotNil(t, solution)
			assert.Equal(t, []float64{0, 1, 0}, solution.Values)
			assert.InDelta(t, 2.0, solution.Objective, 1e-6)
		})
	}
}
