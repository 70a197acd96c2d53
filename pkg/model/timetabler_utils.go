package model

import (
	"fmt"
	"math"
	"sync"

	"github.com/limaJavier/fairtable/pkg/mip"

	"github.com/samber/lo"
)

const verifyTolerance = 1e-6

// Constraint families in the order they appear in the MIP
var constraintFamilies = []func(state constraintState) []mip.Constraint{
	symmetryConstraints,
	exclusivityConstraints,
	bigRoomConstraints,
	fairnessLowerConstraints,
	fairnessUpperConstraints,
	hourDemandConstraints,
}

// NewMIP returns the MIP instance solved by the fair timetabler for the given input
func NewMIP(modelInput ModelInput, denominator Denominator) mip.MIP {
	return buildMip(newConstraintState(modelInput, denominator), constraintFamilies)
}

func getAttributes(modelInput ModelInput) (departments, timeslots, rooms, weekdays uint64) {
	departments = uint64(len(modelInput.Departments))
	timeslots = uint64(len(modelInput.Timeslots))
	rooms = uint64(len(modelInput.Classrooms))
	weekdays = uint64(len(Weekdays))
	return departments, timeslots, rooms, weekdays
}

func newConstraintState(modelInput ModelInput, denominator Denominator) constraintState {
	//** Extract attributes's domains
	totalDepartments, totalTimeslots, totalRooms, totalWeekdays := getAttributes(modelInput)

	indexer := newIndexer(totalDepartments, totalTimeslots, totalRooms, totalWeekdays)

	// The fairness bounds follow the assignment variables
	return constraintState{
		evaluator:   newPredicateEvaluator(modelInput, denominator),
		indexer:     indexer,
		generator:   newPermutationGenerator(totalDepartments, totalTimeslots, totalRooms, totalWeekdays),
		departments: totalDepartments,
		timeslots:   totalTimeslots,
		rooms:       totalRooms,
		weekdays:    totalWeekdays,
		upper:       indexer.Size(),
		lower:       indexer.Size() + 1,
	}
}

func buildMip(state constraintState, constraints []func(state constraintState) []mip.Constraint) mip.MIP {
	instance := mip.MIP{
		Variables:   make([]mip.Variable, 0, state.indexer.Size()+2),
		Maximize:    true,
		Constraints: []mip.Constraint{},
	}

	for index := range state.indexer.Size() {
		department, timeslot, room, weekday := state.indexer.Attributes(index)
		instance.Variables = append(instance.Variables, mip.Variable{
			Name:  fmt.Sprintf("x_%v_%v_%v_%v", department, timeslot, room, weekday),
			Kind:  mip.Binary,
			Lower: 0,
			Upper: 1,
		})
	}
	instance.Variables = append(instance.Variables,
		mip.Variable{Name: "U", Kind: mip.Continuous, Lower: 0, Upper: math.Inf(1)},
		mip.Variable{Name: "L", Kind: mip.Continuous, Lower: 0, Upper: math.Inf(1)},
	)

	// Execute constraints functions on different goroutines; each one owns its result slot so the order stays fixed
	results := make([][]mip.Constraint, len(constraints))
	var wg sync.WaitGroup
	for i, constraint := range constraints {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = constraint(state)
		}()
	}
	wg.Wait()

	for _, result := range results {
		instance.Constraints = append(instance.Constraints, result...)
	}
	instance.Objective = objective(state)

	return instance
}

func decode(solution mip.MIPSolution, state constraintState) *Plan {
	plan := &Plan{
		Placements: []Placement{},
		Objective:  solution.Objective,
		Upper:      solution.Values[state.upper],
		Lower:      solution.Values[state.lower],
		Optimal:    solution.Optimal,
	}

	for index := range state.indexer.Size() {
		if solution.Values[index] < 0.5 {
			continue
		}
		department, timeslot, room, weekday := state.indexer.Attributes(index)
		plan.Placements = append(plan.Placements, Placement{
			Department: department,
			Timeslot:   timeslot,
			Room:       room,
			Weekday:    weekday,
		})
	}
	return plan
}

func verify(plan *Plan, modelInput ModelInput, denominator Denominator) bool {
	if plan == nil {
		return false
	}

	//** Initialize dependencies
	evaluator := newPredicateEvaluator(modelInput, denominator)
	totalDepartments, totalTimeslots, totalRooms, totalWeekdays := getAttributes(modelInput)
	indexer := newIndexer(totalDepartments, totalTimeslots, totalRooms, totalWeekdays)

	assigned := make(map[uint64]bool)
	occupied := make(map[[3]uint64]bool)
	for _, placement := range plan.Placements {
		// Check that:
		// - Every attribute lies within its domain
		// - The placement is not repeated
		// - The room is not already occupied at the timeslot and weekday
		if placement.Department >= totalDepartments ||
			placement.Timeslot >= totalTimeslots ||
			placement.Room >= totalRooms ||
			uint64(placement.Weekday) >= totalWeekdays {
			return false
		}
		index := indexer.Index(placement.Department, placement.Timeslot, placement.Room, placement.Weekday)
		cell := [3]uint64{placement.Timeslot, placement.Room, uint64(placement.Weekday)}
		if assigned[index] || occupied[cell] {
			return false
		}
		assigned[index] = true // Store assignment
		occupied[cell] = true  // Store room occupancy
	}

	// Check day-pair symmetry on every timeslot but the last one
	for index := range indexer.Size() {
		department, timeslot, room, weekday := indexer.Attributes(index)
		pair, paired := weekday.Pair()
		if !paired || evaluator.Last(timeslot) {
			continue
		}
		if assigned[index] != assigned[indexer.Index(department, timeslot, room, pair)] {
			return false
		}
	}

	// Check big-room minimum, hour demand and fairness bounds for every department
	summaries := summarize(plan, modelInput, evaluator)
	fair := lo.EveryBy(summaries, func(summary DepartmentSummary) bool {
		return summary.BigRoomSessions >= 1 &&
			summary.ScheduledHours >= summary.RequiredHours-verifyTolerance &&
			summary.Ratio >= plan.Lower-verifyTolerance &&
			summary.Ratio <= plan.Upper+verifyTolerance
	})

	return fair && plan.Lower <= plan.Upper+verifyTolerance
}
