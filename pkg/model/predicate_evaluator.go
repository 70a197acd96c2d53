package model

type predicateEvaluator interface {
	// Returns the department's preference score for the timeslot and weekday
	Preference(department, timeslot uint64, weekday Weekday) float64

	// Returns the clock-hours represented by the timeslot on the weekday
	Hours(timeslot uint64, weekday Weekday) float64

	// Returns the teaching hours the department must be given
	Required(department uint64) float64

	// Checks whether the room is a big one
	Big(room uint64) bool

	// Checks whether the timeslot is the last one of the day (i.e. it's exempt from day-pair symmetry)
	Last(timeslot uint64) bool

	// Checks whether the weekday opens a symmetric pair (Monday and Tuesday)
	Paired(weekday Weekday) bool

	// Returns the reference total the department's achieved preference is divided by
	Reference(department uint64) float64
}
