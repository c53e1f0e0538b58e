package repository

import (
	"context"
	"time"

	"alcyxob/workout-planner/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanStore composes the repositories the plan generator writes to.
type PlanStore struct {
	exercises ExerciseRepository
	plans     PlanRepository
	days      WorkoutDayRepository
	items     WorkoutExerciseRepository
}

func NewPlanStore(exercises ExerciseRepository, plans PlanRepository, days WorkoutDayRepository, items WorkoutExerciseRepository) *PlanStore {
	return &PlanStore{
		exercises: exercises,
		plans:     plans,
		days:      days,
		items:     items,
	}
}

func (s *PlanStore) FindAllExercises(ctx context.Context) ([]domain.Exercise, error) {
	return s.exercises.FindAll(ctx)
}

func (s *PlanStore) CreatePlan(ctx context.Context, userID primitive.ObjectID, startDate time.Time, status domain.PlanStatus) (*domain.Plan, error) {
	plan := &domain.Plan{
		UserID:    userID,
		StartDate: startDate,
		Status:    status,
	}
	id, err := s.plans.Create(ctx, plan)
	if err != nil {
		return nil, err
	}
	plan.ID = id
	return plan, nil
}

func (s *PlanStore) ReplaceActivePlans(ctx context.Context, userID, keepPlanID primitive.ObjectID) error {
	return s.plans.ReplaceActiveForUser(ctx, userID, keepPlanID)
}

func (s *PlanStore) SetPlanStatus(ctx context.Context, planID primitive.ObjectID, status domain.PlanStatus) error {
	return s.plans.UpdateStatus(ctx, planID, status)
}

func (s *PlanStore) CreateWorkoutDay(ctx context.Context, day *domain.WorkoutDay) (*domain.WorkoutDay, error) {
	id, err := s.days.Create(ctx, day)
	if err != nil {
		return nil, err
	}
	day.ID = id
	return day, nil
}

func (s *PlanStore) CreateWorkoutExercise(ctx context.Context, we *domain.WorkoutExercise) (*domain.WorkoutExercise, error) {
	id, err := s.items.Create(ctx, we)
	if err != nil {
		return nil, err
	}
	we.ID = id
	return we, nil
}

func (s *PlanStore) GetPlanWithDays(ctx context.Context, planID primitive.ObjectID) (*domain.PlanWithDays, error) {
	plan, err := s.plans.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	days, err := s.days.GetByPlanID(ctx, planID)
	if err != nil {
		return nil, err
	}
	return &domain.PlanWithDays{Plan: *plan, Days: days}, nil
}
