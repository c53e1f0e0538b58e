package repository

import (
	"context"
	"time"

	"alcyxob/workout-planner/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDuplicate    = RepositoryError("duplicate key")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// ExerciseRepository gives access to the exercise catalog.
type ExerciseRepository interface {
	// FindAll returns the whole catalog in a stable order.
	FindAll(ctx context.Context) ([]domain.Exercise, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Exercise, error)
	// UpsertByExternalID inserts or replaces the exercise with the same
	// external id and reports whether it was inserted.
	UpsertByExternalID(ctx context.Context, exercise *domain.Exercise) (created bool, err error)
}

// ProfileRepository stores one onboarding profile per user.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Profile, error)
	// Upsert replaces the user's profile wholesale.
	Upsert(ctx context.Context, profile *domain.Profile) error
}

// PlanRepository defines the interface for interacting with plan data.
type PlanRepository interface {
	Create(ctx context.Context, plan *domain.Plan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Plan, error)
	GetActiveByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Plan, error)
	ReplaceActiveForUser(ctx context.Context, userID, keepPlanID primitive.ObjectID) error
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.PlanStatus) error
}

// WorkoutDayRepository defines the interface for interacting with workout days.
type WorkoutDayRepository interface {
	Create(ctx context.Context, day *domain.WorkoutDay) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutDay, error)
	// GetByPlanID returns the days of a plan ordered by day number.
	GetByPlanID(ctx context.Context, planID primitive.ObjectID) ([]domain.WorkoutDay, error)
	MarkCompleted(ctx context.Context, id primitive.ObjectID, at time.Time) error
}

// WorkoutExerciseRepository defines the interface for prescribed exercises.
type WorkoutExerciseRepository interface {
	Create(ctx context.Context, we *domain.WorkoutExercise) (primitive.ObjectID, error)
	// GetByDayID returns the exercises of a day ordered by sort order.
	GetByDayID(ctx context.Context, dayID primitive.ObjectID) ([]domain.WorkoutExercise, error)
	GetByDayAndExercise(ctx context.Context, dayID, exerciseID primitive.ObjectID) (*domain.WorkoutExercise, error)
}

// ExerciseLogRepository defines the interface for logged sets.
type ExerciseLogRepository interface {
	// UpsertBySet creates or overwrites the log of one set.
	UpsertBySet(ctx context.Context, entry *domain.ExerciseLog) (*domain.ExerciseLog, error)
	// GetByWorkoutExerciseIDs returns logs ordered by set number.
	GetByWorkoutExerciseIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.ExerciseLog, error)
}
