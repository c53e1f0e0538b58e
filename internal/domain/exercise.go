package domain

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutType is the broad training category of an exercise.
type WorkoutType string

const (
	WorkoutTypeStrength     WorkoutType = "Strength training"
	WorkoutTypeConditioning WorkoutType = "Conditioning"
	WorkoutTypeMobility     WorkoutType = "Mobility and recovery"
)

// MovementPattern classifies the primary movement of an exercise.
type MovementPattern string

const (
	PatternSquat   MovementPattern = "Squat"
	PatternHinge   MovementPattern = "Hinge"
	PatternLunge   MovementPattern = "Lunge"
	PatternPush    MovementPattern = "Push"
	PatternPull    MovementPattern = "Pull"
	PatternCore    MovementPattern = "Core"
	PatternGeneral MovementPattern = "General"
)

// IsLowerBody reports whether the pattern is a Squat, Hinge or Lunge.
func (p MovementPattern) IsLowerBody() bool {
	return p == PatternSquat || p == PatternHinge || p == PatternLunge
}

// ImpactLevel is low or high.
type ImpactLevel string

const (
	ImpactLow  ImpactLevel = "low"
	ImpactHigh ImpactLevel = "high"
)

// Phase tags.
const (
	PhaseStretching = "Stretching"
	PhaseMain       = "Main exercise"
	PhaseCoolOff    = "Cool off"
)

// Equipment and focus values with special meaning to the planner.
const (
	EquipmentNone       = "No equipment"
	FocusBackAndPosture = "Back and posture"
)

// Experience levels, lowest first.
const (
	ExperienceBeginner     = "beginner"
	ExperienceSome         = "some experience"
	ExperienceIntermediate = "intermediate"
	ExperienceAdvanced     = "advanced"
)

var experienceOrder = []string{
	ExperienceBeginner,
	ExperienceSome,
	ExperienceIntermediate,
	ExperienceAdvanced,
}

// ExperienceRank returns the ordinal of an experience level (0 = beginner)
// and false when the value is not a known level.
func ExperienceRank(level string) (int, bool) {
	level = strings.ToLower(strings.TrimSpace(level))
	for i, l := range experienceOrder {
		if l == level {
			return i, true
		}
	}
	return -1, false
}

// Exercise is a read-only row of the exercise catalog.
type Exercise struct {
	ID                       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ExternalID               string             `bson:"externalId" json:"externalId"` // stable key from the seed file
	Name                     string             `bson:"name" json:"name"`
	Description              string             `bson:"description,omitempty" json:"description,omitempty"`
	DifficultyMin            string             `bson:"difficultyMin" json:"difficultyMin"`
	DifficultyMax            string             `bson:"difficultyMax" json:"difficultyMax"`
	EquipmentTags            TagList            `bson:"equipmentTags" json:"equipmentTags"`
	WorkoutType              WorkoutType        `bson:"workoutType" json:"workoutType"`
	MovementPattern          MovementPattern    `bson:"movementPattern" json:"movementPattern"`
	FocusAreaTags            TagList            `bson:"focusAreaTags" json:"focusAreaTags"`
	ImpactLevel              ImpactLevel        `bson:"impactLevel" json:"impactLevel"`
	AvoidModifyFlags         TagList            `bson:"avoidModifyFlags" json:"avoidModifyFlags"`
	PreferenceExclusionFlags TagList            `bson:"preferenceExclusionFlags" json:"preferenceExclusionFlags"`
	PhaseTags                TagList            `bson:"phaseTags" json:"phaseTags"`
	EasierVariationID        string             `bson:"easierVariationId,omitempty" json:"easierVariationId,omitempty"`
	HarderVariationID        string             `bson:"harderVariationId,omitempty" json:"harderVariationId,omitempty"`
	MediaKey                 string             `bson:"mediaKey,omitempty" json:"-"` // object key of the demo video
	CreatedAt                time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt                time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// NameContains reports whether the lowercased name contains sub (given in lowercase).
func (e *Exercise) NameContains(sub string) bool {
	return strings.Contains(strings.ToLower(e.Name), sub)
}

// IsCoreHold reports whether the exercise is a timed core hold.
func (e *Exercise) IsCoreHold() bool {
	return e.MovementPattern == PatternCore &&
		(e.NameContains("plank") || e.NameContains("hold") || e.NameContains("dead bug"))
}

// ApplyIngestDefaults fills unset catalog fields with their documented defaults.
func (e *Exercise) ApplyIngestDefaults() {
	if e.DifficultyMin == "" {
		e.DifficultyMin = ExperienceBeginner
	}
	if e.DifficultyMax == "" {
		e.DifficultyMax = ExperienceAdvanced
	}
	if e.WorkoutType == "" {
		e.WorkoutType = WorkoutTypeStrength
	}
	if e.MovementPattern == "" {
		e.MovementPattern = PatternGeneral
	}
	if e.ImpactLevel == "" {
		e.ImpactLevel = ImpactLow
	}
	e.EquipmentTags = e.EquipmentTags.Normalize()
	if len(e.EquipmentTags) == 0 {
		e.EquipmentTags = TagList{EquipmentNone}
	}
	e.FocusAreaTags = e.FocusAreaTags.Normalize()
	e.AvoidModifyFlags = e.AvoidModifyFlags.Normalize()
	e.PreferenceExclusionFlags = e.PreferenceExclusionFlags.Normalize()
	e.PhaseTags = e.PhaseTags.Normalize()
}
