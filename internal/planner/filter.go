package planner

import (
	"alcyxob/workout-planner/internal/domain"
)

type rejectRule func(ex *domain.Exercise) bool

// restrictionRules maps a movement restriction to the exercises it rules out.
var restrictionRules = map[string]rejectRule{
	domain.RestrictionSquatting: func(ex *domain.Exercise) bool {
		return ex.MovementPattern == domain.PatternSquat &&
			!ex.NameContains("chair") && !ex.NameContains("sit-to-stand")
	},
	domain.RestrictionLunges: func(ex *domain.Exercise) bool {
		return ex.MovementPattern == domain.PatternLunge
	},
	domain.RestrictionPushUps: func(ex *domain.Exercise) bool {
		return ex.NameContains("push-up") && !ex.NameContains("wall") && !ex.NameContains("incline")
	},
	domain.RestrictionPullUps: func(ex *domain.Exercise) bool {
		return ex.NameContains("pull-up") && !ex.NameContains("dead hang")
	},
	domain.RestrictionJumping: isHighImpact,
	domain.RestrictionRunning: isHighImpact,
}

// exclusionKeywordRules catch disliked exercises that are not flagged in the catalog.
var exclusionKeywordRules = map[string]rejectRule{
	domain.ExclusionRunning: func(ex *domain.Exercise) bool {
		return ex.NameContains("run")
	},
	domain.ExclusionJumping: func(ex *domain.Exercise) bool {
		return isHighImpact(ex) || ex.NameContains("jump")
	},
	domain.ExclusionBurpees: func(ex *domain.Exercise) bool {
		return ex.NameContains("burpee")
	},
}

func isHighImpact(ex *domain.Exercise) bool {
	return ex.ImpactLevel == domain.ImpactHigh
}

// Filter returns the catalog exercises compatible with the profile, in
// catalog order. It never modifies the catalog.
func Filter(catalog []domain.Exercise, profile domain.Profile) []domain.Exercise {
	allowed := make([]domain.Exercise, 0, len(catalog))
	for i := range catalog {
		ex := &catalog[i]
		if !equipmentAllowed(ex, &profile) ||
			!painAllowed(ex, &profile) ||
			!restrictionsAllowed(ex, &profile) ||
			!preferencesAllowed(ex, &profile) {
			continue
		}
		allowed = append(allowed, *ex)
	}
	return allowed
}

func equipmentAllowed(ex *domain.Exercise, p *domain.Profile) bool {
	if len(ex.EquipmentTags) == 0 {
		return true
	}
	return ex.EquipmentTags.Contains(domain.EquipmentNone) || ex.EquipmentTags.Intersects(p.Equipment)
}

func painAllowed(ex *domain.Exercise, p *domain.Profile) bool {
	if p.PainAreas.HasNone() {
		return true
	}
	return !ex.AvoidModifyFlags.Intersects(p.PainAreas)
}

func restrictionsAllowed(ex *domain.Exercise, p *domain.Profile) bool {
	for _, restriction := range p.MovementRestrictions {
		if reject, ok := restrictionRules[restriction]; ok && reject(ex) {
			return false
		}
	}
	return true
}

func preferencesAllowed(ex *domain.Exercise, p *domain.Profile) bool {
	if p.PreferenceExclusions.HasNone() {
		return true
	}
	if ex.PreferenceExclusionFlags.Intersects(p.PreferenceExclusions) {
		return false
	}
	for _, exclusion := range p.PreferenceExclusions {
		if reject, ok := exclusionKeywordRules[exclusion]; ok && reject(ex) {
			return false
		}
	}
	return true
}
