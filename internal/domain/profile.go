package domain

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Goals.
const (
	GoalLoseBodyFat     = "Lose body fat"
	GoalBuildMuscle     = "Build muscle"
	GoalGetStronger     = "Get stronger"
	GoalImproveStamina  = "Improve stamina"
	GoalImproveMobility = "Improve mobility"
	GoalGeneralFitness  = "General fitness"
)

// Workout style preferences.
const (
	StyleMix              = "Mix of both"
	StyleMostlyStrength   = "Mostly strength training"
	StyleMostlyStrengthV1 = "Mostly strength"
	StyleMostlyCardio     = "Mostly cardio"
	StyleDecideForMe      = "Decide for me"
)

// Intensity preferences.
const (
	IntensityEasy     = "Easy"
	IntensityModerate = "Moderate"
	IntensityHard     = "Hard"
)

// SleepUnderSix is the sleep bucket that dampens progression.
const SleepUnderSix = "Under 6 hours"

// Movement restrictions understood by the filter.
const (
	RestrictionSquatting = "Squatting down is difficult"
	RestrictionLunges    = "Lunges are difficult"
	RestrictionPushUps   = "Push-ups are difficult"
	RestrictionPullUps   = "Pull-ups are difficult"
	RestrictionJumping   = "Jumping is difficult"
	RestrictionRunning   = "Running is difficult"
)

// Preference exclusions with a keyword rule in the filter.
const (
	ExclusionRunning = "Running"
	ExclusionJumping = "Jumping"
	ExclusionBurpees = "Burpees"
)

// Accepted workout length range in minutes.
const (
	MinWorkoutMinutes = 15
	MaxWorkoutMinutes = 60
	maxFocusAreas     = 2
)

// Profile holds the onboarding answers of one user. It is replaced wholesale
// when the user onboards again.
type Profile struct {
	ID                     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID                 primitive.ObjectID `bson:"userId" json:"userId"`
	Goal                   string             `bson:"goal" json:"goal"`
	Equipment              TagList            `bson:"equipment" json:"equipment"`
	TimePerWorkout         int                `bson:"timePerWorkout" json:"timePerWorkout"`
	ExperienceLevel        string             `bson:"experienceLevel" json:"experienceLevel"`
	RecentConsistency      string             `bson:"recentConsistency" json:"recentConsistency"`
	PainAreas              TagList            `bson:"painAreas" json:"painAreas"`
	MovementRestrictions   TagList            `bson:"movementRestrictions" json:"movementRestrictions"`
	WorkoutStylePreference string             `bson:"workoutStylePreference" json:"workoutStylePreference"`
	FocusAreas             TagList            `bson:"focusAreas" json:"focusAreas"`
	IntensityPreference    string             `bson:"intensityPreference" json:"intensityPreference"`
	StartingAbilityPushups string             `bson:"startingAbilityPushups,omitempty" json:"startingAbilityPushups,omitempty"`
	StartingAbilitySquats  string             `bson:"startingAbilitySquats,omitempty" json:"startingAbilitySquats,omitempty"`
	StartingAbilityPlank   string             `bson:"startingAbilityPlank,omitempty" json:"startingAbilityPlank,omitempty"`
	SleepBucket            string             `bson:"sleepBucket" json:"sleepBucket"`
	PreferenceExclusions   TagList            `bson:"preferenceExclusions" json:"preferenceExclusions"`
	CreatedAt              time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt              time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Normalize trims scalar answers and cleans every set-valued field.
func (p *Profile) Normalize() {
	p.Goal = strings.TrimSpace(p.Goal)
	p.ExperienceLevel = strings.TrimSpace(p.ExperienceLevel)
	p.RecentConsistency = strings.TrimSpace(p.RecentConsistency)
	p.WorkoutStylePreference = strings.TrimSpace(p.WorkoutStylePreference)
	p.IntensityPreference = strings.TrimSpace(p.IntensityPreference)
	p.SleepBucket = strings.TrimSpace(p.SleepBucket)
	p.StartingAbilityPushups = strings.TrimSpace(p.StartingAbilityPushups)
	p.StartingAbilitySquats = strings.TrimSpace(p.StartingAbilitySquats)
	p.StartingAbilityPlank = strings.TrimSpace(p.StartingAbilityPlank)

	p.Equipment = p.Equipment.Normalize()
	p.PainAreas = p.PainAreas.Normalize()
	p.MovementRestrictions = p.MovementRestrictions.Normalize()
	p.FocusAreas = p.FocusAreas.Normalize()
	p.PreferenceExclusions = p.PreferenceExclusions.Normalize()
}

// Validate checks the profile invariants and returns a *ValidationError
// describing the first violation.
func (p *Profile) Validate() error {
	if p.Goal == "" {
		return newValidationError("goal", "is required")
	}
	if p.TimePerWorkout < MinWorkoutMinutes || p.TimePerWorkout > MaxWorkoutMinutes {
		return newValidationError("timePerWorkout", "must be between %d and %d minutes, got %d",
			MinWorkoutMinutes, MaxWorkoutMinutes, p.TimePerWorkout)
	}
	if p.ExperienceLevel == "" {
		return newValidationError("experienceLevel", "is required")
	}
	switch p.IntensityPreference {
	case IntensityEasy, IntensityModerate, IntensityHard:
	default:
		return newValidationError("intensityPreference", "must be one of Easy, Moderate, Hard")
	}
	if len(p.FocusAreas) > maxFocusAreas {
		return newValidationError("focusAreas", "at most %d focus areas allowed", maxFocusAreas)
	}

	sentinelFields := []struct {
		name string
		tags TagList
	}{
		{"painAreas", p.PainAreas},
		{"movementRestrictions", p.MovementRestrictions},
		{"preferenceExclusions", p.PreferenceExclusions},
	}
	for _, f := range sentinelFields {
		if f.tags.HasNone() && len(f.tags) > 1 {
			return newValidationError(f.name, "%q cannot be combined with other values", NoneSentinel)
		}
	}
	return nil
}

// ShortSleep reports whether the user sleeps under six hours.
func (p *Profile) ShortSleep() bool {
	return p.SleepBucket == SleepUnderSix
}
