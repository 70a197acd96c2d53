package model

// indexer interface is design to give a unique position to a combination of assignment variable's attributes and vice versa
type indexer interface {
	// Returns a unique position (starting at zero) to a combination of assignment variable's attributes
	Index(department, timeslot, room uint64, weekday Weekday) uint64
	// Returns a combination of assignment variable's attributes from a unique position
	Attributes(index uint64) (department, timeslot, room uint64, weekday Weekday)
	// Total amount of assignment variables
	Size() uint64
}

func newIndexer(departments, timeslots, rooms, weekdays uint64) indexer {
	return &indexerImplementation{
		departments: departments,
		timeslots:   timeslots,
		rooms:       rooms,
		weekdays:    weekdays,
	}
}
