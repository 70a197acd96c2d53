package model

// Placement is an assignment variable set to one: the department holds the room at the timeslot on the weekday
type Placement struct {
	Department uint64
	Timeslot   uint64
	Room       uint64
	Weekday    Weekday
}

type Plan struct {
	Placements []Placement
	Objective  float64
	Lower      float64 // L: no department's preference ratio falls below it
	Upper      float64 // U: no department's preference ratio exceeds it
	Optimal    bool    // False when the solver stopped on a limit and returned its incumbent
}

type Timetabler interface {
	// Returns a nil plan (and a nil error) when the instance is infeasible
	Build(
		modelInput ModelInput,
	) (plan *Plan, variables uint64, constraints uint64, err error)

	Verify(
		plan *Plan,
		modelInput ModelInput,
	) bool
}
