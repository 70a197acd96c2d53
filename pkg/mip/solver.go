package mip

type MIPSolver interface {
	// Returns a nil solution (and a nil error) when the MIP is infeasible
	Solve(mip MIP) (*MIPSolution, error)
}

var Solvers = map[string]func(SolverOptions) MIPSolver{
	"cbc":        NewCbcSolver,
	"highs":      NewHighsSolver,
	"scip":       NewScipSolver,
	"exhaustive": NewExhaustiveSolver,
}
