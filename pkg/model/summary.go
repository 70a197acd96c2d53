package model

import "github.com/samber/lo"

type DepartmentSummary struct {
	Department      string
	Achieved        float64 // Sum of the preference scores of the department's placements
	Reference       float64
	Ratio           float64 // Achieved / Reference, or zero when the reference is zero
	ScheduledHours  float64
	RequiredHours   float64
	BigRoomSessions uint64
}

// Summarize reports how well each department was served by the plan, in input order
func Summarize(plan *Plan, modelInput ModelInput, denominator Denominator) []DepartmentSummary {
	return summarize(plan, modelInput, newPredicateEvaluator(modelInput, denominator))
}

func summarize(plan *Plan, modelInput ModelInput, evaluator predicateEvaluator) []DepartmentSummary {
	summaries := lo.Map(modelInput.Departments, func(department Department, i int) DepartmentSummary {
		return DepartmentSummary{
			Department:    department.Name,
			Reference:     evaluator.Reference(uint64(i)),
			RequiredHours: evaluator.Required(uint64(i)),
		}
	})
	if plan == nil {
		return summaries
	}

	for _, placement := range plan.Placements {
		summary := &summaries[placement.Department]
		summary.Achieved += evaluator.Preference(placement.Department, placement.Timeslot, placement.Weekday)
		summary.ScheduledHours += evaluator.Hours(placement.Timeslot, placement.Weekday)
		if evaluator.Big(placement.Room) {
			summary.BigRoomSessions++
		}
	}

	for i := range summaries {
		if summaries[i].Reference != 0 {
			summaries[i].Ratio = summaries[i].Achieved / summaries[i].Reference
		}
	}
	return summaries
}
