package planner

import (
	"strings"

	"alcyxob/workout-planner/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type exerciseOption func(ex *domain.Exercise)

func phases(tags ...string) exerciseOption {
	return func(ex *domain.Exercise) { ex.PhaseTags = tags }
}

func equipment(tags ...string) exerciseOption {
	return func(ex *domain.Exercise) { ex.EquipmentTags = tags }
}

func focus(tags ...string) exerciseOption {
	return func(ex *domain.Exercise) { ex.FocusAreaTags = tags }
}

func avoid(tags ...string) exerciseOption {
	return func(ex *domain.Exercise) { ex.AvoidModifyFlags = tags }
}

func excludedBy(tags ...string) exerciseOption {
	return func(ex *domain.Exercise) { ex.PreferenceExclusionFlags = tags }
}

func highImpact() exerciseOption {
	return func(ex *domain.Exercise) { ex.ImpactLevel = domain.ImpactHigh }
}

func difficulty(lo, hi string) exerciseOption {
	return func(ex *domain.Exercise) {
		ex.DifficultyMin = lo
		ex.DifficultyMax = hi
	}
}

func newExercise(name string, wt domain.WorkoutType, mp domain.MovementPattern, opts ...exerciseOption) domain.Exercise {
	ex := domain.Exercise{
		ID:              primitive.NewObjectID(),
		ExternalID:      strings.ReplaceAll(strings.ToLower(name), " ", "-"),
		Name:            name,
		WorkoutType:     wt,
		MovementPattern: mp,
	}
	for _, opt := range opts {
		opt(&ex)
	}
	ex.ApplyIngestDefaults()
	return ex
}

const (
	strength     = domain.WorkoutTypeStrength
	conditioning = domain.WorkoutTypeConditioning
	mobility     = domain.WorkoutTypeMobility
)

// standardCatalog covers every slot of every day type.
func standardCatalog() []domain.Exercise {
	return []domain.Exercise{
		// warm-up and recovery work
		newExercise("Cat-cow", mobility, domain.PatternGeneral, phases(domain.PhaseStretching), focus(domain.FocusBackAndPosture)),
		newExercise("Hip circles", mobility, domain.PatternGeneral, phases(domain.PhaseStretching)),
		newExercise("Arm circles", mobility, domain.PatternGeneral, phases(domain.PhaseStretching)),
		newExercise("World's greatest stretch", mobility, domain.PatternGeneral, phases(domain.PhaseStretching)),
		newExercise("Leg swings", mobility, domain.PatternGeneral, phases(domain.PhaseStretching)),
		newExercise("Thoracic rotations", mobility, domain.PatternGeneral, phases(domain.PhaseStretching)),
		newExercise("Child's pose", mobility, domain.PatternGeneral, phases(domain.PhaseCoolOff)),
		newExercise("Hamstring stretch", mobility, domain.PatternGeneral, phases(domain.PhaseCoolOff)),
		newExercise("Quad stretch", mobility, domain.PatternGeneral, phases(domain.PhaseCoolOff)),
		newExercise("Doorway chest stretch", strength, domain.PatternGeneral, phases(domain.PhaseCoolOff)),

		// lower body
		newExercise("Bodyweight squat", strength, domain.PatternSquat, phases(domain.PhaseMain), avoid("Knees")),
		newExercise("Goblet squat", strength, domain.PatternSquat, phases(domain.PhaseMain), equipment("Dumbbells"), difficulty(domain.ExperienceSome, domain.ExperienceAdvanced)),
		newExercise("Chair sit-to-stand", strength, domain.PatternSquat, phases(domain.PhaseMain)),
		newExercise("Reverse lunge", strength, domain.PatternLunge, phases(domain.PhaseMain), avoid("Knees")),
		newExercise("Glute bridge", strength, domain.PatternHinge, phases(domain.PhaseMain)),
		newExercise("Romanian deadlift", strength, domain.PatternHinge, phases(domain.PhaseMain), equipment("Dumbbells"), focus(domain.FocusBackAndPosture)),

		// push
		newExercise("Wall push-up", strength, domain.PatternPush, phases(domain.PhaseMain)),
		newExercise("Incline push-up", strength, domain.PatternPush, phases(domain.PhaseMain)),
		newExercise("Knee push-up", strength, domain.PatternPush, phases(domain.PhaseMain)),
		newExercise("Standard push-up", strength, domain.PatternPush, phases(domain.PhaseMain), avoid("Wrists")),
		newExercise("Decline push-up", strength, domain.PatternPush, phases(domain.PhaseMain), difficulty(domain.ExperienceIntermediate, domain.ExperienceAdvanced)),

		// pull
		newExercise("Dumbbell row", strength, domain.PatternPull, phases(domain.PhaseMain), equipment("Dumbbells"), focus(domain.FocusBackAndPosture)),
		newExercise("Prone Y raise", strength, domain.PatternPull, phases(domain.PhaseMain), focus(domain.FocusBackAndPosture)),
		newExercise("Band pull-apart", strength, domain.PatternPull, phases(domain.PhaseMain), equipment("Resistance bands"), focus(domain.FocusBackAndPosture)),

		// core
		newExercise("Front plank", strength, domain.PatternCore, phases(domain.PhaseMain), focus("Core")),
		newExercise("Plank on knees", strength, domain.PatternCore, phases(domain.PhaseMain), focus("Core")),
		newExercise("Side plank", strength, domain.PatternCore, phases(domain.PhaseMain), focus("Core")),
		newExercise("Dead bug", strength, domain.PatternCore, phases(domain.PhaseMain), focus("Core")),
		newExercise("Bird dog", strength, domain.PatternCore, phases(domain.PhaseMain), focus("Core", domain.FocusBackAndPosture)),

		// conditioning
		newExercise("Jumping jacks", conditioning, domain.PatternGeneral, phases(domain.PhaseMain), highImpact(), excludedBy(domain.ExclusionJumping)),
		newExercise("Burpees", conditioning, domain.PatternGeneral, phases(domain.PhaseMain), highImpact()),
		newExercise("Run in place", conditioning, domain.PatternGeneral, phases(domain.PhaseMain)),
		newExercise("Marching in place", conditioning, domain.PatternGeneral, phases(domain.PhaseMain)),
		newExercise("Shadow boxing", conditioning, domain.PatternGeneral, phases(domain.PhaseMain)),
		newExercise("Mountain climbers", conditioning, domain.PatternCore, phases(domain.PhaseMain)),
	}
}

func baseProfile() domain.Profile {
	return domain.Profile{
		UserID:                 primitive.NewObjectID(),
		Goal:                   domain.GoalGeneralFitness,
		Equipment:              domain.TagList{domain.EquipmentNone, "Dumbbells"},
		TimePerWorkout:         25,
		ExperienceLevel:        "Beginner",
		PainAreas:              domain.TagList{domain.NoneSentinel},
		MovementRestrictions:   domain.TagList{domain.NoneSentinel},
		WorkoutStylePreference: domain.StyleMix,
		IntensityPreference:    domain.IntensityModerate,
		SleepBucket:            "7-8 hours",
		PreferenceExclusions:   domain.TagList{domain.NoneSentinel},
	}
}

func names(exercises []domain.Exercise) []string {
	out := make([]string, len(exercises))
	for i := range exercises {
		out[i] = exercises[i].Name
	}
	return out
}

func byName(catalog []domain.Exercise, name string) domain.Exercise {
	for _, ex := range catalog {
		if ex.Name == name {
			return ex
		}
	}
	panic("no exercise named " + name)
}

func ranked(exercises ...domain.Exercise) []RankedExercise {
	out := make([]RankedExercise, len(exercises))
	for i := range exercises {
		out[i] = RankedExercise{Exercise: exercises[i], Score: BaseScore}
	}
	return out
}
