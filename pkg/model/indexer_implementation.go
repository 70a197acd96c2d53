package model

type indexerImplementation struct {
	departments uint64
	timeslots   uint64
	rooms       uint64
	weekdays    uint64
}

func (indexer *indexerImplementation) Index(department, timeslot, room uint64, weekday Weekday) uint64 {
	return department + indexer.departments*timeslot + indexer.departments*indexer.timeslots*room + indexer.departments*indexer.timeslots*indexer.rooms*uint64(weekday)
}

func (indexer *indexerImplementation) Attributes(index uint64) (department, timeslot, room uint64, weekday Weekday) {
	department = index % indexer.departments
	index = index / indexer.departments

	timeslot = index % indexer.timeslots
	index = index / indexer.timeslots

	room = index % indexer.rooms
	index = index / indexer.rooms

	weekday = Weekday(index % indexer.weekdays)

	return department, timeslot, room, weekday
}

func (indexer *indexerImplementation) Size() uint64 {
	return indexer.departments * indexer.timeslots * indexer.rooms * indexer.weekdays
}
