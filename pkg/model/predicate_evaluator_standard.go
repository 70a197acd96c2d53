package model

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Denominator selects how a department's reference total (the denominator of its preference ratio) is computed
type Denominator int

const (
	// Sums the department's scores over every timeslot and room for the last weekday only (Friday). This is how the
	// formulation has always been solved: the weekday index is not ranged over.
	WeekdayDenominator Denominator = iota
	// Sums the department's scores over every timeslot, room and weekday
	FullDenominator
)

var denominatorNames = map[Denominator]string{
	WeekdayDenominator: "weekday",
	FullDenominator:    "full",
}

func (denominator Denominator) String() string {
	return denominatorNames[denominator]
}

func ParseDenominator(name string) (Denominator, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	denominator, ok := lo.FindKey(denominatorNames, name)
	if !ok {
		return 0, fmt.Errorf("%v is not a valid denominator: allowed values are %v", name, []Denominator{WeekdayDenominator, FullDenominator})
	}
	return denominator, nil
}

type predicateEvaluatorStandard struct {
	modelInput ModelInput
	references []float64 // Reference total per department
}

func newPredicateEvaluator(modelInput ModelInput, denominator Denominator) predicateEvaluator {
	rooms := float64(len(modelInput.Classrooms))
	lastWeekday := Weekdays[len(Weekdays)-1]

	references := lo.Map(modelInput.Departments, func(department Department, _ int) float64 {
		return lo.SumBy(department.Preferences, func(row []float64) float64 {
			if denominator == FullDenominator {
				return rooms * lo.Sum(row)
			}
			return rooms * row[lastWeekday]
		})
	})

	return &predicateEvaluatorStandard{
		modelInput: modelInput,
		references: references,
	}
}

func (evaluator *predicateEvaluatorStandard) Preference(department, timeslot uint64, weekday Weekday) float64 {
	return evaluator.modelInput.Departments[department].Preferences[timeslot][weekday]
}

func (evaluator *predicateEvaluatorStandard) Hours(timeslot uint64, weekday Weekday) float64 {
	return evaluator.modelInput.Hours[timeslot][weekday]
}

func (evaluator *predicateEvaluatorStandard) Required(department uint64) float64 {
	return evaluator.modelInput.Departments[department].HoursRequired
}

func (evaluator *predicateEvaluatorStandard) Big(room uint64) bool {
	return evaluator.modelInput.Classrooms[room].Big
}

func (evaluator *predicateEvaluatorStandard) Last(timeslot uint64) bool {
	return timeslot == uint64(len(evaluator.modelInput.Timeslots)-1)
}

func (evaluator *predicateEvaluatorStandard) Paired(weekday Weekday) bool {
	_, ok := weekday.Pair()
	return ok
}

func (evaluator *predicateEvaluatorStandard) Reference(department uint64) float64 {
	return evaluator.references[department]
}
