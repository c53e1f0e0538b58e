package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanStatus tracks the lifecycle of a plan.
type PlanStatus string

const (
	// PlanStatusPending marks a plan whose days are still being written.
	PlanStatusPending  PlanStatus = "pending"
	PlanStatusActive   PlanStatus = "active"
	PlanStatusReplaced PlanStatus = "replaced"
)

// Plan is a generated schedule owned by a user. At most one plan per user
// is active; older plans are kept with status replaced.
type Plan struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	StartDate time.Time          `bson:"startDate" json:"startDate"`
	Status    PlanStatus         `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PlanWithDays is a plan with its days ordered by day number.
type PlanWithDays struct {
	Plan `bson:",inline"`
	Days []WorkoutDay `bson:"days" json:"days"`
}
