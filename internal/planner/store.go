package planner

import (
	"context"
	"time"

	"alcyxob/workout-planner/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store is the persistence the generator needs.
type Store interface {
	FindAllExercises(ctx context.Context) ([]domain.Exercise, error)
	CreatePlan(ctx context.Context, userID primitive.ObjectID, startDate time.Time, status domain.PlanStatus) (*domain.Plan, error)
	// ReplaceActivePlans marks every active plan of the user as replaced,
	// except keepPlanID.
	ReplaceActivePlans(ctx context.Context, userID, keepPlanID primitive.ObjectID) error
	SetPlanStatus(ctx context.Context, planID primitive.ObjectID, status domain.PlanStatus) error
	CreateWorkoutDay(ctx context.Context, day *domain.WorkoutDay) (*domain.WorkoutDay, error)
	CreateWorkoutExercise(ctx context.Context, we *domain.WorkoutExercise) (*domain.WorkoutExercise, error)
	GetPlanWithDays(ctx context.Context, planID primitive.ObjectID) (*domain.PlanWithDays, error)
}
