package model

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func fullWeek(value float64) map[string]float64 {
	week := make(map[string]float64, len(Weekdays))
	for _, weekday := range Weekdays {
		week[weekday.String()] = value
	}
	return week
}

// Builds a raw input with timeslots T0..Tn-1 and departments named BUCO, ECON, HIST... sharing the same preference score
func rawScenario(departments, timeslots int, big []bool, preference, hours, required float64) RawModelInput {
	names := []string{"BUCO", "ECON", "HIST", "MATH"}
	raw := RawModelInput{
		Hours: make(map[string]map[string]float64),
	}
	for timeslot := range timeslots {
		name := fmt.Sprintf("T%v", timeslot)
		raw.Timeslots = append(raw.Timeslots, name)
		raw.Hours[name] = fullWeek(hours)
	}
	for room, isBig := range big {
		raw.Classrooms = append(raw.Classrooms, RawClassroom{Name: fmt.Sprintf("%v", 102+room), Big: isBig})
	}
	for department := range departments {
		preferences := make(map[string]map[string]float64)
		for _, timeslot := range raw.Timeslots {
			preferences[timeslot] = fullWeek(preference)
		}
		raw.Departments = append(raw.Departments, RawDepartment{
			Name:          names[department],
			HoursRequired: required,
			Preferences:   preferences,
		})
	}
	return raw
}

func scenarioInput(t *testing.T, raw RawModelInput) ModelInput {
	input, err := ProcessRawInput(raw)
	require.NoError(t, err)
	return input
}
