package model

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"slices"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

type Weekday uint64

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
)

var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}

var weekdayKeys = map[Weekday]string{
	Monday:    "Mon",
	Tuesday:   "Tue",
	Wednesday: "Wed",
	Thursday:  "Thu",
	Friday:    "Fri",
}

func (weekday Weekday) String() string {
	if key, ok := weekdayKeys[weekday]; ok {
		return key
	}
	return fmt.Sprintf("Weekday(%d)", uint64(weekday))
}

// Returns the weekday that must mirror this one (Monday -> Wednesday, Tuesday -> Thursday)
func (weekday Weekday) Pair() (Weekday, bool) {
	switch weekday {
	case Monday:
		return Wednesday, true
	case Tuesday:
		return Thursday, true
	}
	return 0, false
}

type RawClassroom struct {
	Name string `mapstructure:"name" validate:"required"`
	Big  bool   `mapstructure:"big"`
}

type RawDepartment struct {
	Name          string                        `mapstructure:"name" validate:"required"`
	HoursRequired float64                       `mapstructure:"hoursRequired" validate:"gte=0"`
	Preferences   map[string]map[string]float64 `mapstructure:"preferences" validate:"required"`
}

type RawModelInput struct {
	Timeslots   []string                      `mapstructure:"timeslots" validate:"required,min=1,unique,dive,required"`
	Classrooms  []RawClassroom                `mapstructure:"classrooms" validate:"required,min=1,unique=Name,dive"`
	Hours       map[string]map[string]float64 `mapstructure:"hours" validate:"required"`
	Departments []RawDepartment               `mapstructure:"departments" validate:"required,min=1,unique=Name,dive"`
}

type Classroom struct {
	Id   uint64
	Name string
	Big  bool
}

type Department struct {
	Id            uint64
	Name          string
	HoursRequired float64
	Preferences   [][]float64 // Preferences[timeslot][weekday]
}

type ModelInput struct {
	Timeslots   []string // Ordered; the last one is exempt from day-pair symmetry
	Classrooms  []Classroom
	Departments []Department
	Hours       [][]float64 // Hours[timeslot][weekday] are the clock-hours represented by that cell
}

// InputError reports malformed or inconsistent input data
type InputError struct {
	Field  string
	Reason string
	Err    error
}

func (err *InputError) Error() string {
	if err.Err != nil {
		return fmt.Sprintf("invalid input at %v: %v: %v", err.Field, err.Reason, err.Err)
	}
	return fmt.Sprintf("invalid input at %v: %v", err.Field, err.Reason)
}

func (err *InputError) Unwrap() error {
	return err.Err
}

var validate = validator.New()

func InputFromJson(file string) (ModelInput, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return ModelInput{}, err
	}

	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return ModelInput{}, &InputError{Field: file, Reason: "malformed json", Err: err}
	}

	var rawInput RawModelInput
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &rawInput,
		ErrorUnused: true,
	})
	if err != nil {
		return ModelInput{}, err
	}
	if err := decoder.Decode(inputJson); err != nil {
		return ModelInput{}, &InputError{Field: file, Reason: "unexpected document shape", Err: err}
	}
	return ProcessRawInput(rawInput)
}

func ProcessRawInput(rawInput RawModelInput) (ModelInput, error) {
	if err := validate.Struct(rawInput); err != nil {
		return ModelInput{}, &InputError{Field: "input", Reason: "validation failed", Err: err}
	}

	input := ModelInput{
		Timeslots: rawInput.Timeslots,
		Classrooms: lo.Map(rawInput.Classrooms, func(classroom RawClassroom, i int) Classroom {
			return Classroom{Id: uint64(i), Name: classroom.Name, Big: classroom.Big}
		}),
	}

	//** Manage hour table
	hours, err := denseMatrix("hours", rawInput.Hours, rawInput.Timeslots)
	if err != nil {
		return ModelInput{}, err
	}
	input.Hours = hours

	//** Manage departments
	input.Departments = make([]Department, 0, len(rawInput.Departments))
	for i, rawDepartment := range rawInput.Departments {
		preferences, err := denseMatrix(fmt.Sprintf("departments[%v].preferences", rawDepartment.Name), rawDepartment.Preferences, rawInput.Timeslots)
		if err != nil {
			return ModelInput{}, err
		}
		if math.IsInf(rawDepartment.HoursRequired, 0) || math.IsNaN(rawDepartment.HoursRequired) {
			return ModelInput{}, &InputError{Field: fmt.Sprintf("departments[%v].hoursRequired", rawDepartment.Name), Reason: "must be a finite number"}
		}

		input.Departments = append(input.Departments, Department{
			Id:            uint64(i),
			Name:          rawDepartment.Name,
			HoursRequired: rawDepartment.HoursRequired,
			Preferences:   preferences,
		})
	}

	return input, nil
}

// Converts a (timeslot, weekday)-keyed table into a dense [timeslot][weekday] matrix, making sure both key sets match exactly
func denseMatrix(field string, keyed map[string]map[string]float64, timeslots []string) ([][]float64, error) {
	if extra, _ := lo.Difference(lo.Keys(keyed), timeslots); len(extra) > 0 {
		slices.Sort(extra)
		return nil, &InputError{Field: field, Reason: fmt.Sprintf("unknown timeslots %v", extra)}
	}

	matrix := make([][]float64, len(timeslots))
	for i, timeslot := range timeslots {
		row, ok := keyed[timeslot]
		if !ok {
			return nil, &InputError{Field: field, Reason: fmt.Sprintf("missing timeslot %q", timeslot)}
		}
		if len(row) != len(Weekdays) {
			keys := lo.Keys(row)
			slices.Sort(keys)
			return nil, &InputError{Field: fmt.Sprintf("%v[%v]", field, timeslot), Reason: fmt.Sprintf("expected weekdays %v, got %v", Weekdays, keys)}
		}

		matrix[i] = make([]float64, len(Weekdays))
		for _, weekday := range Weekdays {
			value, ok := row[weekday.String()]
			if !ok {
				return nil, &InputError{Field: fmt.Sprintf("%v[%v]", field, timeslot), Reason: fmt.Sprintf("missing weekday %q", weekday)}
			}
			if value < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
				return nil, &InputError{Field: fmt.Sprintf("%v[%v][%v]", field, timeslot, weekday), Reason: "must be a finite non-negative number"}
			}
			matrix[i][weekday] = value
		}
	}
	return matrix, nil
}
