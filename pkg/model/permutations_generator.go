package model

type permutationGenerator interface {
	// Attributes' order in the permutation parameter is the following: Department, Timeslot, Room, Weekday.
	// All the constraints must take into account that if the value of permutation[i] (for all feasible i's) is math.MaxUint64 then the permutation is not ready to be evaluated if this evaluation involves permutation[i]
	//
	// Example:
	//
	//	generator := newPermutationGenerator(Departments, Timeslots, Rooms, Weekdays)
	//
	//	permutations := generator.ConstrainedPermutations([]func(permutation []uint64) bool{
	//				func(permutation []uint64) bool {
	//	       		// Verify "permutation[3] == math.MaxUint64", since the predicate "permutation[3] == 4" relies in this index
	//					return permutation[3] == math.MaxUint64 || permutation[3] == 4
	//				},
	//			})
	ConstrainedPermutations(constraints []func(permutation []uint64) bool) [][]uint64
}

func newPermutationGenerator(departments, timeslots, rooms, weekdays uint64) permutationGenerator {
	return &permutationGeneratorImplementation{departments, timeslots, rooms, weekdays}
}
