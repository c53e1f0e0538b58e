package planner

import (
	"sort"

	"alcyxob/workout-planner/internal/domain"
)

// BaseScore is the score every exercise starts from before adjustments.
const BaseScore = 50

// Score ranks the pool for the given profile and day type, highest score
// first. Equal scores keep their input order.
func Score(pool []domain.Exercise, profile domain.Profile, dayType domain.DayType) []RankedExercise {
	ranked := make([]RankedExercise, len(pool))
	for i := range pool {
		ranked[i] = RankedExercise{
			Exercise: pool[i],
			Score:    scoreExercise(&pool[i], &profile, dayType),
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

func scoreExercise(ex *domain.Exercise, p *domain.Profile, dayType domain.DayType) int {
	score := BaseScore

	// goal
	switch p.Goal {
	case domain.GoalBuildMuscle, domain.GoalGetStronger:
		if ex.WorkoutType == domain.WorkoutTypeStrength {
			score += 20
		}
	case domain.GoalLoseBodyFat, domain.GoalImproveStamina:
		if ex.WorkoutType == domain.WorkoutTypeConditioning {
			score += 20
		}
	case domain.GoalImproveMobility:
		if ex.WorkoutType == domain.WorkoutTypeMobility {
			score += 20
		}
	}

	// style
	switch p.WorkoutStylePreference {
	case domain.StyleMostlyStrength, domain.StyleMostlyStrengthV1:
		if ex.WorkoutType == domain.WorkoutTypeStrength {
			score += 15
		}
	case domain.StyleMostlyCardio:
		if ex.WorkoutType == domain.WorkoutTypeConditioning {
			score += 15
		}
	}

	for _, focus := range p.FocusAreas {
		if ex.FocusAreaTags.Contains(focus) {
			score += 15
		}
	}

	score += experienceDelta(p.ExperienceLevel, ex.DifficultyMin, ex.DifficultyMax)

	if (p.IntensityPreference == domain.IntensityEasy && ex.ImpactLevel == domain.ImpactLow) ||
		(p.IntensityPreference == domain.IntensityHard && ex.ImpactLevel == domain.ImpactHigh) {
		score += 10
	}

	if p.ShortSleep() {
		score -= 5
	}

	switch dayType {
	case domain.DayStrengthLower:
		if ex.MovementPattern.IsLowerBody() {
			score += 10
		}
	case domain.DayStrengthUpper:
		if ex.MovementPattern == domain.PatternPush || ex.MovementPattern == domain.PatternPull {
			score += 10
		}
	case domain.DayConditioning:
		if ex.WorkoutType == domain.WorkoutTypeConditioning || ex.MovementPattern == domain.PatternCore {
			score += 10
		}
	case domain.DayStrengthPosture:
		if ex.FocusAreaTags.Contains(domain.FocusBackAndPosture) {
			score += 15
		}
	}

	return score
}

// experienceDelta is neutral when any of the three levels is unknown.
func experienceDelta(user, minLevel, maxLevel string) int {
	u, okU := domain.ExperienceRank(user)
	lo, okLo := domain.ExperienceRank(minLevel)
	hi, okHi := domain.ExperienceRank(maxLevel)
	if !okU || !okLo || !okHi {
		return 0
	}
	switch {
	case u >= lo && u <= hi:
		return 10
	case u < lo:
		return -30
	case u > hi+1:
		return -15
	}
	return 0
}
