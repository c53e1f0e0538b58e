package service

import (
	"context"
	"errors"
	"fmt"

	"alcyxob/workout-planner/internal/domain"
	"alcyxob/workout-planner/internal/planner"
	"alcyxob/workout-planner/internal/repository"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrProfileNotFound  = errors.New("profile not found")
	ErrValidationFailed = errors.New("profile validation failed")
	// ErrConcurrentSubmission is returned when another submission of the same
	// user activated its plan first.
	ErrConcurrentSubmission = errors.New("another plan was generated concurrently")
)

// PlanGenerator builds and stores a plan for a profile.
type PlanGenerator interface {
	Generate(ctx context.Context, userID primitive.ObjectID, profile domain.Profile) (*planner.Result, error)
}

type ProfileService interface {
	GetProfile(ctx context.Context, userID primitive.ObjectID) (*domain.Profile, error)
	// SubmitProfile stores the onboarding answers, replacing earlier ones,
	// and generates a new plan from them.
	SubmitProfile(ctx context.Context, userID primitive.ObjectID, profile domain.Profile) (*planner.Result, error)
}

type profileService struct {
	profileRepo repository.ProfileRepository
	generator   PlanGenerator
}

func NewProfileService(profileRepo repository.ProfileRepository, generator PlanGenerator) ProfileService {
	return &profileService{
		profileRepo: profileRepo,
		generator:   generator,
	}
}

func (s *profileService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*domain.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (s *profileService) SubmitProfile(ctx context.Context, userID primitive.ObjectID, profile domain.Profile) (*planner.Result, error) {
	profile.UserID = userID
	profile.Normalize()
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	if err := s.profileRepo.Upsert(ctx, &profile); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}

	result, err := s.generator.Generate(ctx, userID, profile)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %w", ErrConcurrentSubmission, err)
		}
		return nil, err
	}
	log.WithFields(log.Fields{
		"user_id":  userID.Hex(),
		"plan_id":  result.Plan.ID.Hex(),
		"warnings": len(result.Warnings),
	}).Info("profile submitted")
	return result, nil
}
