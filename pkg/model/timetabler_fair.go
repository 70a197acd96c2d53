package model

import "github.com/limaJavier/fairtable/pkg/mip"

type fairTimetabler struct {
	solver      mip.MIPSolver
	denominator Denominator
}

func NewFairTimetabler(solver mip.MIPSolver, denominator Denominator) Timetabler {
	return &fairTimetabler{
		solver:      solver,
		denominator: denominator,
	}
}

func (timetabler *fairTimetabler) Build(modelInput ModelInput) (plan *Plan, variables uint64, constraints uint64, err error) {
	//** Initialize dependencies
	state := newConstraintState(modelInput, timetabler.denominator)

	//** Build MIP instance
	instance := buildMip(state, constraintFamilies)
	variables, constraints = uint64(len(instance.Variables)), uint64(len(instance.Constraints))

	//** Solve MIP instance
	solution, err := timetabler.solver.Solve(instance)
	if err != nil {
		return nil, 0, 0, err
	} else if solution == nil { // Return nil if the MIP instance is infeasible
		return nil, variables, constraints, nil
	}

	return decode(*solution, state), variables, constraints, nil
}

func (timetabler *fairTimetabler) Verify(plan *Plan, modelInput ModelInput) bool {
	return verify(plan, modelInput, timetabler.denominator)
}
