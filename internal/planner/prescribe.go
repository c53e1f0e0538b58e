package planner

import (
	"strings"

	"alcyxob/workout-planner/internal/domain"
)

// Prescribe returns the target sets, reps or seconds and rest for an
// exercise in the given week (1..4).
func Prescribe(ex RoledExercise, profile domain.Profile, week int) Prescription {
	exp := strings.ToLower(profile.ExperienceLevel)

	sets, reps, rest := 3, 10, 60
	switch {
	case strings.Contains(exp, "beginner"):
		sets, reps, rest = 2, 8, 60
	case strings.Contains(exp, "some"):
		sets, reps, rest = 3, 10, 60
	case strings.Contains(exp, "interm"):
		sets, reps, rest = 3, 8, 90
	case strings.Contains(exp, "advanc"):
		sets, reps, rest = 4, 8, 120
	}
	p := Prescription{Sets: sets, Reps: intPtr(reps), Rest: rest}

	if ex.IsCoreHold() {
		p.Reps = nil
		switch {
		case strings.Contains(exp, "beginner"):
			p.Sets, p.Seconds, p.Rest = 2, intPtr(20), 45
		case strings.Contains(exp, "some"):
			p.Sets, p.Seconds, p.Rest = 3, intPtr(30), 45
		case strings.Contains(exp, "interm"):
			p.Sets, p.Seconds, p.Rest = 3, intPtr(45), 60
		default:
			p.Sets, p.Seconds, p.Rest = 4, intPtr(60), 60
		}
	}

	if isMobilityWork(&ex) {
		p.Sets, p.Reps, p.Seconds, p.Rest = 1, nil, intPtr(45), 0
	}

	if ex.WorkoutType == domain.WorkoutTypeConditioning || ex.Role == domain.RoleConditioning {
		p.Sets, p.Reps = 4, nil
		switch profile.IntensityPreference {
		case domain.IntensityEasy:
			p.Seconds, p.Rest = intPtr(20), 40
		case domain.IntensityModerate:
			p.Seconds, p.Rest = intPtr(30), 30
		default:
			p.Seconds, p.Rest = intPtr(40), 20
		}
	}

	switch week {
	case 2:
		if ex.Role == domain.RoleMain && !profile.ShortSleep() {
			p.Sets++
		}
	case 3:
		if p.Reps != nil {
			*p.Reps += 2
		}
		if p.Seconds != nil {
			*p.Seconds += 10
		}
	case 4:
		// deload
		if (profile.IntensityPreference == domain.IntensityEasy || profile.ShortSleep()) && p.Sets > 2 {
			p.Sets--
		}
	}
	return p
}

func isMobilityWork(ex *RoledExercise) bool {
	if ex.WorkoutType == domain.WorkoutTypeMobility {
		return true
	}
	switch ex.Role {
	case domain.RoleWarmUp, domain.RoleCoolOff, domain.RoleMobility:
		return true
	}
	return false
}
