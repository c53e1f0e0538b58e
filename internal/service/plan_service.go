package service

import (
	"context"
	"errors"

	"alcyxob/workout-planner/internal/domain"
	"alcyxob/workout-planner/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrNoActivePlan = errors.New("no active plan")

type PlanService interface {
	// CurrentPlan returns the active plan of the user with its days ordered
	// by day number.
	CurrentPlan(ctx context.Context, userID primitive.ObjectID) (*domain.PlanWithDays, error)
}

type planService struct {
	planRepo repository.PlanRepository
	dayRepo  repository.WorkoutDayRepository
}

func NewPlanService(planRepo repository.PlanRepository, dayRepo repository.WorkoutDayRepository) PlanService {
	return &planService{
		planRepo: planRepo,
		dayRepo:  dayRepo,
	}
}

func (s *planService) CurrentPlan(ctx context.Context, userID primitive.ObjectID) (*domain.PlanWithDays, error) {
	plan, err := s.planRepo.GetActiveByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoActivePlan
		}
		return nil, err
	}
	days, err := s.dayRepo.GetByPlanID(ctx, plan.ID)
	if err != nil {
		return nil, err
	}
	return &domain.PlanWithDays{Plan: *plan, Days: days}, nil
}
