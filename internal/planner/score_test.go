package planner

import (
	"testing"

	"alcyxob/workout-planner/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// neutralProfile earns no bonus apart from the experience match.
func neutralProfile() domain.Profile {
	p := baseProfile()
	p.Goal = domain.GoalGeneralFitness
	p.WorkoutStylePreference = domain.StyleMix
	p.IntensityPreference = domain.IntensityModerate
	return p
}

func TestScore_Adjustments(t *testing.T) {
	squat := newExercise("Bodyweight squat", strength, domain.PatternSquat)
	jacks := newExercise("Jumping jacks", conditioning, domain.PatternGeneral, highImpact())
	stretch := newExercise("Cat-cow", mobility, domain.PatternGeneral, focus(domain.FocusBackAndPosture))
	row := newExercise("Dumbbell row", strength, domain.PatternPull)
	plank := newExercise("Front plank", strength, domain.PatternCore, focus("Core"))
	hard := newExercise("Pistol squat", strength, domain.PatternSquat, difficulty(domain.ExperienceAdvanced, domain.ExperienceAdvanced))
	easy := newExercise("Wall sit", strength, domain.PatternSquat, difficulty(domain.ExperienceBeginner, domain.ExperienceBeginner))

	matched := BaseScore + 10

	tests := []struct {
		name    string
		ex      domain.Exercise
		mutate  func(p *domain.Profile)
		dayType domain.DayType
		want    int
	}{
		{"neutral", squat, nil, domain.DayRest, matched},
		{"build muscle on strength", squat, func(p *domain.Profile) { p.Goal = domain.GoalBuildMuscle }, domain.DayRest, matched + 20},
		{"get stronger on conditioning", jacks, func(p *domain.Profile) { p.Goal = domain.GoalGetStronger }, domain.DayRest, matched},
		{"lose fat on conditioning", jacks, func(p *domain.Profile) { p.Goal = domain.GoalLoseBodyFat }, domain.DayRest, matched + 20},
		{"stamina on conditioning", jacks, func(p *domain.Profile) { p.Goal = domain.GoalImproveStamina }, domain.DayRest, matched + 20},
		{"mobility goal", stretch, func(p *domain.Profile) { p.Goal = domain.GoalImproveMobility }, domain.DayRest, matched + 20},
		{"mostly strength", squat, func(p *domain.Profile) { p.WorkoutStylePreference = domain.StyleMostlyStrength }, domain.DayRest, matched + 15},
		{"mostly strength short label", squat, func(p *domain.Profile) { p.WorkoutStylePreference = domain.StyleMostlyStrengthV1 }, domain.DayRest, matched + 15},
		{"mostly cardio", jacks, func(p *domain.Profile) { p.WorkoutStylePreference = domain.StyleMostlyCardio }, domain.DayRest, matched + 15},
		{"one focus area", plank, func(p *domain.Profile) { p.FocusAreas = domain.TagList{"Core", "Glutes"} }, domain.DayRest, matched + 15},
		{"focus on posture day", stretch, func(p *domain.Profile) {
			p.FocusAreas = domain.TagList{domain.FocusBackAndPosture}
		}, domain.DayStrengthPosture, matched + 15 + 15},
		{"too hard", hard, nil, domain.DayRest, BaseScore - 30},
		{"slightly too easy", easy, func(p *domain.Profile) { p.ExperienceLevel = "Some experience" }, domain.DayRest, BaseScore},
		{"far too easy", easy, func(p *domain.Profile) { p.ExperienceLevel = "Advanced" }, domain.DayRest, BaseScore - 15},
		{"unknown experience", hard, func(p *domain.Profile) { p.ExperienceLevel = "Returning athlete" }, domain.DayRest, BaseScore},
		{"easy and low impact", squat, func(p *domain.Profile) { p.IntensityPreference = domain.IntensityEasy }, domain.DayRest, matched + 10},
		{"hard and high impact", jacks, func(p *domain.Profile) { p.IntensityPreference = domain.IntensityHard }, domain.DayRest, matched + 10},
		{"hard and low impact", squat, func(p *domain.Profile) { p.IntensityPreference = domain.IntensityHard }, domain.DayRest, matched},
		{"short sleep", squat, func(p *domain.Profile) { p.SleepBucket = domain.SleepUnderSix }, domain.DayRest, matched - 5},
		{"lower day", squat, nil, domain.DayStrengthLower, matched + 10},
		{"upper day pull", row, nil, domain.DayStrengthUpper, matched + 10},
		{"upper day squat", squat, nil, domain.DayStrengthUpper, matched},
		{"conditioning day core", plank, nil, domain.DayConditioning, matched + 10},
		{"conditioning day cardio", jacks, nil, domain.DayConditioning, matched + 10},
		{"posture day", stretch, nil, domain.DayStrengthPosture, matched + 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := neutralProfile()
			if tt.mutate != nil {
				tt.mutate(&p)
			}
			got := Score([]domain.Exercise{tt.ex}, p, tt.dayType)
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0].Score)
		})
	}
}

func TestScore_OrderIsStable(t *testing.T) {
	pool := []domain.Exercise{
		newExercise("A", strength, domain.PatternGeneral),
		newExercise("B", strength, domain.PatternSquat),
		newExercise("C", strength, domain.PatternGeneral),
		newExercise("D", strength, domain.PatternLunge),
	}
	got := Score(pool, neutralProfile(), domain.DayStrengthLower)

	gotNames := make([]string, len(got))
	for i := range got {
		gotNames[i] = got[i].Name
	}
	assert.Equal(t, []string{"B", "D", "A", "C"}, gotNames)

	again := Score(pool, neutralProfile(), domain.DayStrengthLower)
	assert.Equal(t, got, again)
}

func TestScore_DoesNotModifyPool(t *testing.T) {
	pool := standardCatalog()
	before := names(pool)
	Score(pool, neutralProfile(), domain.DayConditioning)
	assert.Equal(t, before, names(pool))
}
