package export

import (
	"encoding/json"
	"fmt"

	"github.com/limaJavier/fairtable/pkg/model"
	"github.com/limaJavier/fairtable/pkg/timetable"

	"github.com/samber/lo"
)

type jsonRow struct {
	Weekday  string            `json:"weekday"`
	Timeslot string            `json:"timeslot"`
	Rooms    map[string]string `json:"rooms"`
}

type jsonDepartment struct {
	Name            string  `json:"name"`
	Achieved        float64 `json:"achieved"`
	Reference       float64 `json:"reference"`
	Ratio           float64 `json:"ratio"`
	ScheduledHours  float64 `json:"scheduledHours"`
	RequiredHours   float64 `json:"requiredHours"`
	BigRoomSessions uint64  `json:"bigRoomSessions"`
}

type jsonDocument struct {
	RunId       string           `json:"runId,omitempty"`
	Objective   float64          `json:"objective"`
	Lower       float64          `json:"lower"`
	Upper       float64          `json:"upper"`
	Optimal     bool             `json:"optimal"`
	Classrooms  []string         `json:"classrooms"`
	Timetable   []jsonRow        `json:"timetable"`
	Departments []jsonDepartment `json:"departments"`
}

// JSONRenderer writes the timetable together with the fairness bounds and the per-department summary
type JSONRenderer struct{}

func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

func (renderer *JSONRenderer) Render(document Document) ([]byte, error) {
	output := jsonDocument{
		RunId:      document.RunId,
		Objective:  document.Objective,
		Lower:      document.Lower,
		Upper:      document.Upper,
		Optimal:    document.Optimal,
		Classrooms: document.Table.Columns,
		Timetable: lo.Map(document.Table.Rows, func(row timetable.Row, _ int) jsonRow {
			// Free rooms are left out
			rooms := make(map[string]string)
			for i, cell := range row.Cells {
				if cell != "" {
					rooms[document.Table.Columns[i]] = cell
				}
			}
			return jsonRow{Weekday: row.Label, Timeslot: row.Timeslot, Rooms: rooms}
		}),
		Departments: lo.Map(document.Summaries, func(summary model.DepartmentSummary, _ int) jsonDepartment {
			return jsonDepartment{
				Name:            summary.Department,
				Achieved:        summary.Achieved,
				Reference:       summary.Reference,
				Ratio:           summary.Ratio,
				ScheduledHours:  summary.ScheduledHours,
				RequiredHours:   summary.RequiredHours,
				BigRoomSessions: summary.BigRoomSessions,
			}
		}),
	}

	content, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal json output: %w", err)
	}
	return content, nil
}
