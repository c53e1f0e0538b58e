package domain

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DayType is the structural template of a day.
type DayType string

const (
	DayStrengthLower   DayType = "Strength Lower Focus"
	DayStrengthUpper   DayType = "Strength Upper Focus"
	DayConditioning    DayType = "Conditioning Core Mobility"
	DayStrengthPosture DayType = "Strength Balanced Posture"
	DayRest            DayType = "Rest"
)

// IsStrength reports whether the day follows the strength slot template.
func (d DayType) IsStrength() bool {
	return d == DayStrengthLower || d == DayStrengthUpper || d == DayStrengthPosture
}

// WorkoutDay is one calendar day of a plan.
type WorkoutDay struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PlanID           primitive.ObjectID `bson:"planId" json:"planId"`
	DayNumber        int                `bson:"dayNumber" json:"dayNumber"` // 1..30, unique within the plan
	WeekNumber       int                `bson:"weekNumber" json:"weekNumber"`
	DayType          DayType            `bson:"dayType" json:"dayType"`
	EstimatedMinutes int                `bson:"estimatedMinutes" json:"estimatedMinutes"`
	IsOptional       bool               `bson:"isOptional" json:"isOptional"`
	IsCompleted      bool               `bson:"isCompleted" json:"isCompleted"`
	CompletedAt      *time.Time         `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
}

// Title is the calendar label of the day.
func (d *WorkoutDay) Title() string {
	if d.DayType == DayRest {
		return "Rest Day"
	}
	return fmt.Sprintf("%s (%d min)", d.DayType, d.EstimatedMinutes)
}

// DetailTitle is the heading used on the day detail view.
func (d *WorkoutDay) DetailTitle() string {
	return fmt.Sprintf("Day %d: %s", d.DayNumber, d.DayType)
}
