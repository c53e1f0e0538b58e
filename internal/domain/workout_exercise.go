package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is the function of an exercise within a day.
type Role string

const (
	RoleWarmUp       Role = "warm-up"
	RoleMain         Role = "main"
	RoleAccessory    Role = "accessory"
	RoleConditioning Role = "conditioning"
	RoleMobility     Role = "mobility"
	RoleCoolOff      Role = "cool-off"
)

// WorkoutExercise is a prescribed exercise within a workout day. Exactly one
// of TargetReps and TargetSeconds is set.
type WorkoutExercise struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	WorkoutDayID      primitive.ObjectID `bson:"workoutDayId" json:"workoutDayId"`
	ExerciseID        primitive.ObjectID `bson:"exerciseId" json:"exerciseId"`
	Role              Role               `bson:"role" json:"role"`
	TargetSets        int                `bson:"targetSets" json:"targetSets"`
	TargetReps        *int               `bson:"targetReps,omitempty" json:"targetReps"`
	TargetSeconds     *int               `bson:"targetSeconds,omitempty" json:"targetSeconds"`
	TargetRestSeconds int                `bson:"targetRestSeconds" json:"targetRestSeconds"`
	SortOrder         int                `bson:"sortOrder" json:"sortOrder"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
}

// ExerciseLog records one performed set of a workout exercise.
type ExerciseLog struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	WorkoutExerciseID primitive.ObjectID `bson:"workoutExerciseId" json:"workoutExerciseId"`
	SetNumber         int                `bson:"setNumber" json:"setNumber"` // 1-based, unique per workout exercise
	Reps              int                `bson:"reps" json:"reps"`
	Weight            *float64           `bson:"weight,omitempty" json:"weight"`
	IsDone            bool               `bson:"isDone" json:"isDone"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}
