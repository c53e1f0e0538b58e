package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"alcyxob/workout-planner/internal/domain"
	"alcyxob/workout-planner/internal/planner"
	"alcyxob/workout-planner/internal/repository/memory"
	"alcyxob/workout-planner/internal/storage"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeStorage signs every key with a fixed host and records the expiry it was asked for.
type fakeStorage struct {
	expires time.Duration
	fail    bool
}

func (f *fakeStorage) GeneratePresignedDownloadURL(_ context.Context, objectKey string, expires time.Duration) (string, error) {
	f.expires = expires
	if f.fail {
		return "", fmt.Errorf("signing disabled")
	}
	return "https://media.test/" + objectKey, nil
}

func (f *fakeStorage) GetObject(_ context.Context, _ string) (io.ReadCloser, error) {
	return nil, storage.ErrObjectNotFound
}

func seedCatalog(t *testing.T, db *memory.DB) {
	t.Helper()
	records := []struct {
		name   string
		wt     domain.WorkoutType
		mp     domain.MovementPattern
		phases []string
		focus  []string
		media  string
	}{
		{"Arm circles", domain.WorkoutTypeMobility, domain.PatternGeneral, []string{domain.PhaseStretching}, nil, ""},
		{"Cat cow", domain.WorkoutTypeMobility, domain.PatternGeneral, []string{domain.PhaseStretching}, []string{domain.FocusBackAndPosture}, ""},
		{"Hip openers", domain.WorkoutTypeMobility, domain.PatternGeneral, []string{domain.PhaseStretching}, nil, ""},
		{"Bodyweight squat", domain.WorkoutTypeStrength, domain.PatternSquat, []string{domain.PhaseMain}, nil, "videos/squat.mp4"},
		{"Glute bridge", domain.WorkoutTypeStrength, domain.PatternHinge, []string{domain.PhaseMain}, nil, ""},
		{"Reverse lunge", domain.WorkoutTypeStrength, domain.PatternLunge, []string{domain.PhaseMain}, nil, ""},
		{"Incline push-up", domain.WorkoutTypeStrength, domain.PatternPush, []string{domain.PhaseMain}, nil, ""},
		{"Push-up", domain.WorkoutTypeStrength, domain.PatternPush, []string{domain.PhaseMain}, nil, ""},
		{"Towel row", domain.WorkoutTypeStrength, domain.PatternPull, []string{domain.PhaseMain}, []string{domain.FocusBackAndPosture}, ""},
		{"Superman pull", domain.WorkoutTypeStrength, domain.PatternPull, []string{domain.PhaseMain}, []string{domain.FocusBackAndPosture}, ""},
		{"Front plank", domain.WorkoutTypeStrength, domain.PatternCore, []string{domain.PhaseMain}, nil, ""},
		{"Dead bug", domain.WorkoutTypeStrength, domain.PatternCore, []string{domain.PhaseMain}, nil, ""},
		{"Marching in place", domain.WorkoutTypeConditioning, domain.PatternGeneral, []string{domain.PhaseMain}, nil, ""},
		{"Step jacks", domain.WorkoutTypeConditioning, domain.PatternGeneral, []string{domain.PhaseMain}, nil, ""},
		{"Hamstring stretch", domain.WorkoutTypeMobility, domain.PatternGeneral, []string{domain.PhaseCoolOff, domain.PhaseStretching}, nil, ""},
		{"Child's pose", domain.WorkoutTypeMobility, domain.PatternGeneral, []string{domain.PhaseCoolOff}, nil, ""},
	}

	repo := db.Exercises()
	for _, r := range records {
		ex := &domain.Exercise{
			ExternalID:      strings.ReplaceAll(strings.ToLower(r.name), " ", "-"),
			Name:            r.name,
			WorkoutType:     r.wt,
			MovementPattern: r.mp,
			PhaseTags:       r.phases,
			FocusAreaTags:   r.focus,
			MediaKey:        r.media,
		}
		ex.ApplyIngestDefaults()
		_, err := repo.UpsertByExternalID(context.Background(), ex)
		require.NoError(t, err)
	}
}

func validProfile() domain.Profile {
	return domain.Profile{
		Goal:                   domain.GoalGeneralFitness,
		Equipment:              domain.TagList{domain.EquipmentNone},
		TimePerWorkout:         30,
		ExperienceLevel:        domain.ExperienceBeginner,
		WorkoutStylePreference: domain.StyleMix,
		IntensityPreference:    domain.IntensityModerate,
		PainAreas:              domain.TagList{domain.NoneSentinel},
		SleepBucket:            "7-8 hours",
	}
}

// generatePlan seeds the catalog and generates a plan for a new user.
func generatePlan(t *testing.T, db *memory.DB) (primitive.ObjectID, *domain.PlanWithDays) {
	t.Helper()
	seedCatalog(t, db)
	userID := primitive.NewObjectID()
	result, err := planner.NewGenerator(db.PlanStore()).Generate(context.Background(), userID, validProfile())
	require.NoError(t, err)
	return userID, result.Plan
}
