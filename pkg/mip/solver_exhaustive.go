package mip

import (
	"fmt"
	"math"

	"github.com/samber/lo"
)

const (
	DefaultExhaustiveLimit = 22
	// The enumeration counts assignments in a uint64 mask
	MaxExhaustiveLimit = 62
	tolerance          = 1e-9
)

// exhaustiveSolver enumerates every binary assignment. Continuous variables are resolved analytically, which requires each
// constraint to involve at most one continuous variable. Meant for tiny instances and tests.
type exhaustiveSolver struct {
	maxBinaries int
}

func NewExhaustiveSolver(options SolverOptions) MIPSolver {
	maxBinaries := options.MaxBinaries
	if maxBinaries <= 0 {
		maxBinaries = DefaultExhaustiveLimit
	}
	maxBinaries = min(maxBinaries, MaxExhaustiveLimit)
	return &exhaustiveSolver{maxBinaries: maxBinaries}
}

type splitConstraint struct {
	binaryTerms []Term
	continuous  int64 // -1 when the constraint involves no continuous variable
	coefficient float64
	sense       Sense
	rhs         float64
}

func (solver *exhaustiveSolver) Solve(mip MIP) (*MIPSolution, error) {
	binaries := make([]uint64, 0, len(mip.Variables))
	continuous := make([]uint64, 0)
	for i, variable := range mip.Variables {
		if variable.Kind == Binary {
			binaries = append(binaries, uint64(i))
		} else {
			continuous = append(continuous, uint64(i))
		}
	}
	if len(binaries) > solver.maxBinaries {
		return nil, fmt.Errorf("exhaustive solver supports at most %v binary variables: got %v", solver.maxBinaries, len(binaries))
	}

	constraints, err := splitConstraints(mip)
	if err != nil {
		return nil, err
	}

	objective := make([]float64, len(mip.Variables))
	for _, term := range mip.Objective {
		if mip.Maximize {
			objective[term.Variable] += term.Coefficient
		} else {
			objective[term.Variable] -= term.Coefficient
		}
	}

	var best []float64
	bestValue := math.Inf(-1)
	values := make([]float64, len(mip.Variables))
	lower, upper := make(map[uint64]float64), make(map[uint64]float64)

	for mask := uint64(0); mask < uint64(1)<<len(binaries); mask++ {
		for i, variable := range binaries {
			values[variable] = float64((mask >> i) & 1)
		}
		for _, variable := range continuous {
			lower[variable], upper[variable] = mip.Variables[variable].Lower, mip.Variables[variable].Upper
		}

		if !propagate(constraints, values, lower, upper) {
			continue
		}

		feasible := lo.EveryBy(continuous, func(variable uint64) bool {
			return lower[variable] <= upper[variable]+tolerance
		})
		if !feasible {
			continue
		}

		for _, variable := range continuous {
			value, err := pick(objective[variable], lower[variable], upper[variable])
			if err != nil {
				return nil, err
			}
			values[variable] = value
		}

		value := lo.Sum(lo.Map(values, func(value float64, i int) float64 { return value * objective[i] }))
		if best == nil || value > bestValue+tolerance {
			best = append(make([]float64, 0, len(values)), values...)
			bestValue = value
		}
	}

	if best == nil {
		return nil, nil
	}
	return &MIPSolution{
		Values:    best,
		Objective: mip.Evaluate(best),
		Optimal:   true,
	}, nil
}

func splitConstraints(mip MIP) ([]splitConstraint, error) {
	constraints := make([]splitConstraint, 0, len(mip.Constraints))
	for _, constraint := range mip.Constraints {
		split := splitConstraint{continuous: -1, sense: constraint.Sense, rhs: constraint.Rhs}
		for _, term := range constraint.Terms {
			if term.Coefficient == 0 {
				continue
			}
			if mip.Variables[term.Variable].Kind == Binary {
				split.binaryTerms = append(split.binaryTerms, term)
				continue
			}
			if split.continuous >= 0 && uint64(split.continuous) != term.Variable {
				return nil, fmt.Errorf("exhaustive solver cannot handle constraint %q: more than one continuous variable", constraint.Name)
			}
			split.continuous = int64(term.Variable)
			split.coefficient += term.Coefficient
		}
		constraints = append(constraints, split)
	}
	return constraints, nil
}

// Checks pure-binary constraints and narrows the bounds of continuous variables; returns false on a violated constraint
func propagate(constraints []splitConstraint, values []float64, lower, upper map[uint64]float64) bool {
	for _, constraint := range constraints {
		activity := lo.SumBy(constraint.binaryTerms, func(term Term) float64 {
			return term.Coefficient * values[term.Variable]
		})

		if constraint.continuous < 0 || constraint.coefficient == 0 {
			if !satisfies(activity, constraint.sense, constraint.rhs) {
				return false
			}
			continue
		}

		variable := uint64(constraint.continuous)
		bound := (constraint.rhs - activity) / constraint.coefficient
		positive := constraint.coefficient > 0
		switch {
		case constraint.sense == Equal:
			lower[variable] = math.Max(lower[variable], bound)
			upper[variable] = math.Min(upper[variable], bound)
		case (constraint.sense == LessEqual) == positive:
			upper[variable] = math.Min(upper[variable], bound)
		default:
			lower[variable] = math.Max(lower[variable], bound)
		}
	}
	return true
}

func satisfies(activity float64, sense Sense, rhs float64) bool {
	switch sense {
	case LessEqual:
		return activity <= rhs+tolerance
	case GreaterEqual:
		return activity >= rhs-tolerance
	default:
		return math.Abs(activity-rhs) <= tolerance
	}
}

// Picks the bound favoured by the (maximization) objective coefficient
func pick(coefficient, lower, upper float64) (float64, error) {
	switch {
	case coefficient > 0:
		if math.IsInf(upper, 1) {
			return 0, ErrUnbounded
		}
		return upper, nil
	case coefficient < 0:
		if math.IsInf(lower, -1) {
			return 0, ErrUnbounded
		}
		return lower, nil
	case !math.IsInf(lower, -1):
		return lower, nil
	case !math.IsInf(upper, 1):
		return upper, nil
	}
	return 0, nil
}
