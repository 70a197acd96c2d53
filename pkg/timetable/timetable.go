package timetable

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/limaJavier/fairtable/pkg/model"

	"github.com/samber/lo"
)

// Display order of the row labels
var Labels = []string{"Mon & Wed", "Mon", "Wed", "Tue & Thur", "Tue", "Thur", "Fri"}

var (
	singleLabels = map[model.Weekday]string{
		model.Monday:    "Mon",
		model.Tuesday:   "Tue",
		model.Wednesday: "Wed",
		model.Thursday:  "Thur",
		model.Friday:    "Fri",
	}
	mergedLabels = map[model.Weekday]string{
		model.Monday:  "Mon & Wed",
		model.Tuesday: "Tue & Thur",
	}
)

var ErrNoPlan = errors.New("cannot assemble a timetable without a plan")

type Row struct {
	Label    string
	Timeslot string
	Cells    []string // Department name per column; empty when the room is free
}

type Table struct {
	Columns []string // Classroom names in input order
	Rows    []Row
}

type rawCell struct {
	weekday  model.Weekday
	timeslot uint64
	room     uint64
}

// Assemble lays the plan out as a weekly table. Symmetric weekdays share a merged row on every timeslot but the last one.
func Assemble(plan *model.Plan, modelInput model.ModelInput) (Table, error) {
	if plan == nil {
		return Table{}, ErrNoPlan
	}

	//** Build raw table
	raw := make(map[rawCell]string)
	for _, placement := range plan.Placements {
		if placement.Department >= uint64(len(modelInput.Departments)) ||
			placement.Timeslot >= uint64(len(modelInput.Timeslots)) ||
			placement.Room >= uint64(len(modelInput.Classrooms)) ||
			uint64(placement.Weekday) >= uint64(len(model.Weekdays)) {
			return Table{}, fmt.Errorf("placement %+v lies outside the input's domains", placement)
		}
		// The later placement wins when two departments share a cell
		raw[rawCell{placement.Weekday, placement.Timeslot, placement.Room}] = modelInput.Departments[placement.Department].Name
	}

	table := Table{
		Columns: lo.Map(modelInput.Classrooms, func(classroom model.Classroom, _ int) string { return classroom.Name }),
		Rows:    []Row{},
	}

	row := func(label string, weekday model.Weekday, timeslot uint64) Row {
		cells := make([]string, len(modelInput.Classrooms))
		for room := range cells {
			cells[room] = raw[rawCell{weekday, timeslot, uint64(room)}]
		}
		return Row{Label: label, Timeslot: modelInput.Timeslots[timeslot], Cells: cells}
	}

	//** Build displayed rows
	last := uint64(len(modelInput.Timeslots) - 1)
	for _, weekday := range model.Weekdays {
		_, paired := weekday.Pair()
		for timeslot := range uint64(len(modelInput.Timeslots)) {
			switch {
			case weekday == model.Friday:
				table.Rows = append(table.Rows, row(singleLabels[weekday], weekday, timeslot))
			case timeslot == last:
				table.Rows = append(table.Rows, row(singleLabels[weekday], weekday, timeslot))
			case paired:
				table.Rows = append(table.Rows, row(mergedLabels[weekday], weekday, timeslot))
			}
		}
	}

	//** Sort by label and then by timeslot
	timeslotOrder := make(map[string]int, len(modelInput.Timeslots))
	for i, timeslot := range modelInput.Timeslots {
		timeslotOrder[timeslot] = i
	}
	slices.SortStableFunc(table.Rows, func(a, b Row) int {
		if order := cmp.Compare(slices.Index(Labels, a.Label), slices.Index(Labels, b.Label)); order != 0 {
			return order
		}
		return cmp.Compare(timeslotOrder[a.Timeslot], timeslotOrder[b.Timeslot])
	})

	return table, nil
}

// Cell returns the department holding the room in the displayed row, or false when the row or room does not exist
func (table Table) Cell(label, timeslot, room string) (string, bool) {
	column := slices.Index(table.Columns, room)
	if column < 0 {
		return "", false
	}
	row, ok := lo.Find(table.Rows, func(row Row) bool {
		return row.Label == label && row.Timeslot == timeslot
	})
	if !ok {
		return "", false
	}
	return row.Cells[column], true
}

// Records flattens the table into a header followed by one record per row
func (table Table) Records() [][]string {
	records := make([][]string, 0, len(table.Rows)+1)
	records = append(records, append([]string{"Weekday", "Timeslot"}, table.Columns...))
	for _, row := range table.Rows {
		records = append(records, append([]string{row.Label, row.Timeslot}, row.Cells...))
	}
	return records
}
