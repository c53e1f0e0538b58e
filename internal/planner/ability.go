package planner

import (
	"strings"
)

// AbilityKind selects which starting-ability table to consult.
type AbilityKind int

const (
	AbilityPush AbilityKind = iota
	AbilitySquat
	AbilityPlank
)

// nameMatch matches lowercase exercise names containing contains and,
// when set, not containing without.
type nameMatch struct {
	contains string
	without  string
}

func (m nameMatch) matches(ex *RankedExercise) bool {
	if !ex.NameContains(m.contains) {
		return false
	}
	return m.without == "" || !ex.NameContains(m.without)
}

// abilityRules lists, per ability bucket, name matches in order of preference.
var abilityRules = map[AbilityKind]map[string][]nameMatch{
	AbilityPush: {
		"0":    {{contains: "wall push-up"}, {contains: "incline push-up"}},
		"1-5":  {{contains: "incline push-up"}, {contains: "knee push-up"}},
		"6-15": {{contains: "standard push-up"}, {contains: "push-up", without: "decline"}},
		"16+":  {{contains: "decline push-up"}, {contains: "standard push-up"}},
	},
	AbilitySquat: {
		"0-10":  {{contains: "sit-to-stand"}, {contains: "chair"}},
		"11-25": {{contains: "bodyweight squat"}, {contains: "squat", without: "goblet"}},
		"26-50": {{contains: "goblet squat"}, {contains: "squat"}},
		"50+":   {{contains: "goblet squat"}, {contains: "split"}},
	},
	AbilityPlank: {
		"under 20 seconds": {{contains: "knees"}, {contains: "dead bug"}},
		"20-45":            {{contains: "front plank"}, {contains: "plank", without: "side"}},
		"45-90":            {{contains: "side plank"}, {contains: "plank"}},
		"90+":              {{contains: "side plank"}, {contains: "plank"}},
	},
}

// AbilityVariant returns the pool member preferred for a self-reported
// ability bucket, or nil when the bucket is unknown or nothing matches.
func AbilityVariant(kind AbilityKind, bucket string, pool []RankedExercise) *RankedExercise {
	rules, ok := abilityRules[kind][strings.ToLower(strings.TrimSpace(bucket))]
	if !ok {
		return nil
	}
	for _, rule := range rules {
		for i := range pool {
			if rule.matches(&pool[i]) {
				return &pool[i]
			}
		}
	}
	return nil
}
