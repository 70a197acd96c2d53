package model

import (
	"fmt"
	"math"

	"github.com/limaJavier/fairtable/pkg/mip"
)

type constraintState struct {
	evaluator predicateEvaluator
	indexer   indexer
	generator permutationGenerator

	departments,
	timeslots,
	rooms,
	weekdays uint64

	// Positions of the fairness bounds in the variable vector
	upper,
	lower uint64
}

// X(d,t,r,c) - X(d,t,r,c+2) = 0 for every paired weekday c and every timeslot t but the last one
func symmetryConstraints(state constraintState) []mip.Constraint {
	permutations := state.generator.ConstrainedPermutations([]func(permutation []uint64) bool{
		// Last(t) = 0
		func(permutation []uint64) bool {
			timeslot := permutation[1]
			return timeslot == math.MaxUint64 || !state.evaluator.Last(timeslot)
		},
		// Paired(c) = 1
		func(permutation []uint64) bool {
			weekday := permutation[3]
			return weekday == math.MaxUint64 || state.evaluator.Paired(Weekday(weekday))
		},
	})

	constraints := make([]mip.Constraint, 0, len(permutations))
	for _, permutation := range permutations {
		department, timeslot, room, weekday := permutation[0], permutation[1], permutation[2], Weekday(permutation[3])
		pair, _ := weekday.Pair()

		constraints = append(constraints, mip.Constraint{
			Name: fmt.Sprintf("MWTH_%v_%v_%v_%v", department, timeslot, room, weekday),
			Terms: []mip.Term{
				{Variable: state.indexer.Index(department, timeslot, room, weekday), Coefficient: 1},
				{Variable: state.indexer.Index(department, timeslot, room, pair), Coefficient: -1},
			},
			Sense: mip.Equal,
			Rhs:   0,
		})
	}
	return constraints
}

// Sum_d X(d,t,r,c) <= 1 for every (t,r,c)
func exclusivityConstraints(state constraintState) []mip.Constraint {
	// Fixing the department to the first one yields every (t,r,c) exactly once
	cells := state.generator.ConstrainedPermutations([]func(permutation []uint64) bool{
		func(permutation []uint64) bool {
			return permutation[0] == math.MaxUint64 || permutation[0] == 0
		},
	})

	constraints := make([]mip.Constraint, 0, len(cells))
	for _, cell := range cells {
		timeslot, room, weekday := cell[1], cell[2], Weekday(cell[3])

		terms := make([]mip.Term, 0, state.departments)
		for department := range state.departments {
			terms = append(terms, mip.Term{Variable: state.indexer.Index(department, timeslot, room, weekday), Coefficient: 1})
		}

		constraints = append(constraints, mip.Constraint{
			Name:  fmt.Sprintf("room_%v_%v_%v", timeslot, room, weekday),
			Terms: terms,
			Sense: mip.LessEqual,
			Rhs:   1,
		})
	}
	return constraints
}

// Sum_{t,r,c} X(d,t,r,c) * Big(r) >= 1 for every department
func bigRoomConstraints(state constraintState) []mip.Constraint {
	constraints := make([]mip.Constraint, 0, state.departments)
	for department := range state.departments {
		terms := departmentTerms(state, department, func(_, room uint64, _ Weekday) float64 {
			if state.evaluator.Big(room) {
				return 1
			}
			return 0
		})

		constraints = append(constraints, mip.Constraint{
			Name:  fmt.Sprintf("big_%v", department),
			Terms: terms,
			Sense: mip.GreaterEqual,
			Rhs:   1,
		})
	}
	return constraints
}

// Sum_{t,r,c} X(d,t,r,c) * Pref(d,t,c) / Reference(d) - L >= 0 for every department
func fairnessLowerConstraints(state constraintState) []mip.Constraint {
	constraints := make([]mip.Constraint, 0, state.departments)
	for department := range state.departments {
		constraints = append(constraints, mip.Constraint{
			Name:  fmt.Sprintf("lower_%v", department),
			Terms: append(ratioTerms(state, department), mip.Term{Variable: state.lower, Coefficient: -1}),
			Sense: mip.GreaterEqual,
			Rhs:   0,
		})
	}
	return constraints
}

// Sum_{t,r,c} X(d,t,r,c) * Pref(d,t,c) / Reference(d) - U <= 0 for every department
func fairnessUpperConstraints(state constraintState) []mip.Constraint {
	constraints := make([]mip.Constraint, 0, state.departments)
	for department := range state.departments {
		constraints = append(constraints, mip.Constraint{
			Name:  fmt.Sprintf("upper_%v", department),
			Terms: append(ratioTerms(state, department), mip.Term{Variable: state.upper, Coefficient: -1}),
			Sense: mip.LessEqual,
			Rhs:   0,
		})
	}
	return constraints
}

// Sum_{t,r,c} X(d,t,r,c) * Hours(t,c) >= HoursRequired(d) for every department
func hourDemandConstraints(state constraintState) []mip.Constraint {
	constraints := make([]mip.Constraint, 0, state.departments)
	for department := range state.departments {
		terms := departmentTerms(state, department, func(timeslot, _ uint64, weekday Weekday) float64 {
			return state.evaluator.Hours(timeslot, weekday)
		})

		constraints = append(constraints, mip.Constraint{
			Name:  fmt.Sprintf("hours_%v", department),
			Terms: terms,
			Sense: mip.GreaterEqual,
			Rhs:   state.evaluator.Required(department),
		})
	}
	return constraints
}

// Sum_{d,t,r,c} X(d,t,r,c) * Pref(d,t,c) - U + L
func objective(state constraintState) []mip.Term {
	terms := make([]mip.Term, 0, state.indexer.Size()+2)
	for department := range state.departments {
		terms = append(terms, departmentTerms(state, department, func(timeslot, _ uint64, weekday Weekday) float64 {
			return state.evaluator.Preference(department, timeslot, weekday)
		})...)
	}
	return append(terms,
		mip.Term{Variable: state.upper, Coefficient: -1},
		mip.Term{Variable: state.lower, Coefficient: 1},
	)
}

// A department whose reference total is zero has a ratio of zero, so it contributes no terms
func ratioTerms(state constraintState, department uint64) []mip.Term {
	reference := state.evaluator.Reference(department)
	if reference == 0 {
		return []mip.Term{}
	}
	return departmentTerms(state, department, func(timeslot, _ uint64, weekday Weekday) float64 {
		return state.evaluator.Preference(department, timeslot, weekday) / reference
	})
}

// Returns one term per assignment variable of the department, skipping the ones whose coefficient is zero
func departmentTerms(state constraintState, department uint64, coefficient func(timeslot, room uint64, weekday Weekday) float64) []mip.Term {
	permutations := state.generator.ConstrainedPermutations([]func(permutation []uint64) bool{
		func(permutation []uint64) bool {
			return permutation[0] == math.MaxUint64 || permutation[0] == department
		},
	})

	terms := make([]mip.Term, 0, len(permutations))
	for _, permutation := range permutations {
		timeslot, room, weekday := permutation[1], permutation[2], Weekday(permutation[3])
		value := coefficient(timeslot, room, weekday)
		if value == 0 {
			continue
		}
		terms = append(terms, mip.Term{
			Variable:    state.indexer.Index(department, timeslot, room, weekday),
			Coefficient: value,
		})
	}
	return terms
}
