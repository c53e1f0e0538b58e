package planner

import (
	"alcyxob/workout-planner/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SelectDay picks the exercises of one day from a ranked pool. It returns the
// exercises in execution order and the carry state for the following days.
// Rest days select nothing and leave the carry state unchanged.
func SelectDay(ranked []RankedExercise, profile domain.Profile, dayType domain.DayType, carry CarryState) ([]RoledExercise, CarryState) {
	s := &daySelector{
		pool:   ranked,
		budget: BudgetFor(profile.TimePerWorkout),
		used:   make(map[primitive.ObjectID]struct{}),
	}
	switch {
	case dayType == domain.DayConditioning:
		s.conditioningDay()
		return s.selected, carry
	case dayType.IsStrength():
		next := s.strengthDay(&profile, dayType, carry)
		return s.selected, next
	default:
		return nil, carry
	}
}

func isWarmUpCandidate(ex *RankedExercise) bool {
	return ex.PhaseTags.Contains(domain.PhaseStretching) || ex.WorkoutType == domain.WorkoutTypeMobility
}

func isCoolOffCandidate(ex *RankedExercise) bool {
	return ex.PhaseTags.Contains(domain.PhaseCoolOff) || ex.PhaseTags.Contains(domain.PhaseStretching)
}

func isMainFillCandidate(ex *RankedExercise) bool {
	return !isWarmUpCandidate(ex) && !isCoolOffCandidate(ex) && ex.WorkoutType != domain.WorkoutTypeMobility
}

// daySelector holds the per-day state: no exercise id is selected twice.
type daySelector struct {
	pool     []RankedExercise
	budget   Budget
	used     map[primitive.ObjectID]struct{}
	selected []RoledExercise
}

func (s *daySelector) isUsed(ex *RankedExercise) bool {
	_, ok := s.used[ex.ID]
	return ok
}

func (s *daySelector) add(ex *RankedExercise, role domain.Role) {
	s.used[ex.ID] = struct{}{}
	s.selected = append(s.selected, RoledExercise{RankedExercise: *ex, Role: role})
}

// where returns the pool members matching pred, in ranked order.
func (s *daySelector) where(pred func(ex *RankedExercise) bool) []RankedExercise {
	var out []RankedExercise
	for i := range s.pool {
		if pred(&s.pool[i]) {
			out = append(out, s.pool[i])
		}
	}
	return out
}

// takeUnique adds up to count unused exercises of pool matching pred and
// returns how many were added.
func (s *daySelector) takeUnique(pool []RankedExercise, count int, role domain.Role, pred func(ex *RankedExercise) bool) int {
	taken := 0
	for i := range pool {
		if taken >= count {
			break
		}
		ex := &pool[i]
		if s.isUsed(ex) || (pred != nil && !pred(ex)) {
			continue
		}
		s.add(ex, role)
		taken++
	}
	return taken
}

func (s *daySelector) firstUnused(pool []RankedExercise, pred func(ex *RankedExercise) bool) *RankedExercise {
	for i := range pool {
		if s.isUsed(&pool[i]) {
			continue
		}
		if pred == nil || pred(&pool[i]) {
			return &pool[i]
		}
	}
	return nil
}

// preferred returns the default pick of a slot: the ability variant when the
// user reported a bucket, else the first member of the pool.
func preferred(pool []RankedExercise, kind AbilityKind, bucket string) *RankedExercise {
	var pick *RankedExercise
	if len(pool) > 0 {
		pick = &pool[0]
	}
	if bucket != "" {
		if variant := AbilityVariant(kind, bucket, pool); variant != nil {
			pick = variant
		}
	}
	return pick
}

func (s *daySelector) strengthDay(p *domain.Profile, dayType domain.DayType, carry CarryState) CarryState {
	s.takeUnique(s.pool, s.budget.WarmUp, domain.RoleWarmUp, isWarmUpCandidate)
	mainStart := len(s.selected)
	next := carry

	// slot 1: lower body, avoiding the pattern of the previous lower day
	lowerPool := s.where(func(ex *RankedExercise) bool { return ex.MovementPattern.IsLowerBody() })
	differentPattern := func(ex *RankedExercise) bool { return ex.MovementPattern != carry.LowerPattern }
	var lower *RankedExercise
	for i := range lowerPool {
		if differentPattern(&lowerPool[i]) {
			lower = &lowerPool[i]
			break
		}
	}
	if lower == nil && len(lowerPool) > 0 {
		lower = &lowerPool[0]
	}
	if p.StartingAbilitySquats != "" {
		if variant := AbilityVariant(AbilitySquat, p.StartingAbilitySquats, lowerPool); variant != nil {
			lower = variant
		}
	}
	if lower != nil && s.isUsed(lower) {
		lower = s.firstUnused(lowerPool, differentPattern)
		if lower == nil {
			lower = s.firstUnused(lowerPool, nil)
		}
	}
	if lower != nil {
		s.add(lower, domain.RoleMain)
		if dayType == domain.DayStrengthLower {
			next.LowerPattern = lower.MovementPattern
		}
	}

	// slot 2: push
	pushPool := s.where(func(ex *RankedExercise) bool { return ex.MovementPattern == domain.PatternPush })
	s.fillSlot(pushPool, preferred(pushPool, AbilityPush, p.StartingAbilityPushups))

	// slot 3: pull
	pullPool := s.where(func(ex *RankedExercise) bool { return ex.MovementPattern == domain.PatternPull })
	if pull := s.firstUnused(pullPool, nil); pull != nil {
		s.add(pull, domain.RoleMain)
	}

	// slot 4: core
	corePool := s.where(func(ex *RankedExercise) bool { return ex.MovementPattern == domain.PatternCore })
	s.fillSlot(corePool, preferred(corePool, AbilityPlank, p.StartingAbilityPlank))

	// slot 5: posture accessory
	if dayType == domain.DayStrengthPosture {
		posture := s.firstUnused(s.pool, func(ex *RankedExercise) bool {
			return ex.FocusAreaTags.Contains(domain.FocusBackAndPosture)
		})
		if posture != nil {
			s.add(posture, domain.RoleAccessory)
		}
	}

	if remaining := s.budget.Main - (len(s.selected) - mainStart); remaining > 0 {
		s.takeUnique(s.pool, remaining, domain.RoleMain, isMainFillCandidate)
	}

	s.takeUnique(s.pool, s.budget.Stretch, domain.RoleCoolOff, isCoolOffCandidate)
	return next
}

// fillSlot adds pick, or the first unused member of pool when pick is taken.
func (s *daySelector) fillSlot(pool []RankedExercise, pick *RankedExercise) {
	if pick != nil && s.isUsed(pick) {
		pick = s.firstUnused(pool, nil)
	}
	if pick != nil {
		s.add(pick, domain.RoleMain)
	}
}

func (s *daySelector) conditioningDay() {
	b := s.budget
	s.takeUnique(s.pool, b.WarmUp, domain.RoleWarmUp, isWarmUpCandidate)

	corePool := s.where(func(ex *RankedExercise) bool { return ex.MovementPattern == domain.PatternCore })
	mainCount := s.takeUnique(corePool, min(b.Core, b.Main), domain.RoleMain, nil)

	condPool := s.where(func(ex *RankedExercise) bool { return ex.WorkoutType == domain.WorkoutTypeConditioning })
	mainCount += s.takeUnique(condPool, max(0, b.Main-mainCount), domain.RoleConditioning, nil)

	if remaining := b.Main - mainCount; remaining > 0 {
		s.takeUnique(s.pool, remaining, domain.RoleMain, isMainFillCandidate)
	}

	mobilityPool := s.where(func(ex *RankedExercise) bool { return ex.WorkoutType == domain.WorkoutTypeMobility })
	mobilityCount := s.takeUnique(mobilityPool, b.Mobility, domain.RoleMobility, nil)

	s.takeUnique(s.pool, max(0, b.Stretch-mobilityCount), domain.RoleCoolOff, isCoolOffCandidate)
}
