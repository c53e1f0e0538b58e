// Package planner builds personalized workout plans from an exercise catalog.
//
// Generation is a pipeline: Filter removes exercises the user cannot or will
// not do, Score ranks the survivors for a given day type, SelectDay picks a
// role-tagged list for the day and Prescribe attaches sets, reps or seconds,
// and rest with week-over-week progression.
package planner

import (
	"alcyxob/workout-planner/internal/domain"
)

// RankedExercise is a filtered exercise with its relevance score.
type RankedExercise struct {
	domain.Exercise
	Score int
}

// RoledExercise is an exercise selected for a day, tagged with its role.
type RoledExercise struct {
	RankedExercise
	Role domain.Role
}

// CarryState is threaded from one day's selection into the next.
type CarryState struct {
	// LowerPattern is the main lower-body pattern of the last Lower Focus day.
	LowerPattern domain.MovementPattern
}

// Prescription is the target work for one exercise. Exactly one of Reps and
// Seconds is set.
type Prescription struct {
	Sets    int
	Reps    *int
	Seconds *int
	Rest    int
}

// PlannedExercise is a selected and prescribed exercise, not yet persisted.
type PlannedExercise struct {
	Exercise     domain.Exercise
	Role         domain.Role
	Prescription Prescription
	SortOrder    int
}

// PlannedDay is one day of a schedule, not yet persisted.
type PlannedDay struct {
	DayNumber        int
	WeekNumber       int
	DayType          domain.DayType
	EstimatedMinutes int
	IsOptional       bool
	Exercises        []PlannedExercise
}

func intPtr(v int) *int {
	return &v
}
