package planner

import (
	"context"
	"hash/fnv"
	"math/rand"
	"time"

	"alcyxob/workout-planner/internal/domain"
	"alcyxob/workout-planner/internal/metrics"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/multierr"
)

const (
	// DefaultMinPoolSize is the filtered pool size below which a warning is raised.
	DefaultMinPoolSize = 10

	scheduledWeeks      = 4
	optionalWeek        = 5
	optionalDays        = 2
	recoveryDayMinutes  = 15
	recoveryBlockSize   = 5
	recoveryHoldSeconds = 45
	recoveryRestSeconds = 15

	cleanupTimeout = 5 * time.Second
)

// weeklyTemplate is the day type of each day of a scheduled week.
var weeklyTemplate = [7]domain.DayType{
	domain.DayStrengthLower,
	domain.DayStrengthUpper,
	domain.DayRest,
	domain.DayConditioning,
	domain.DayStrengthPosture,
	domain.DayRest,
	domain.DayRest,
}

// Result is the outcome of a generation.
type Result struct {
	Plan     *domain.PlanWithDays
	PoolSize int
	Warnings []string
}

// Generator creates and persists plans.
type Generator struct {
	store       Store
	minPoolSize int
	seed        int64
	metrics     *metrics.Metrics
	now         func() time.Time
}

type Option func(g *Generator)

// WithMinPoolSize overrides DefaultMinPoolSize.
func WithMinPoolSize(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.minPoolSize = n
		}
	}
}

// WithVariety shuffles equally scored exercises before ranking. Each run
// gets its own source derived from seed and the user id, so a user's plan
// does not depend on other generations. A zero seed keeps ordering
// deterministic.
func WithVariety(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(g *Generator) {
		g.metrics = m
	}
}

func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

func NewGenerator(store Store, opts ...Option) *Generator {
	g := &Generator{
		store:       store,
		minPoolSize: DefaultMinPoolSize,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate builds a plan for the user and persists it as the user's only
// active plan. The plan is written as pending and activated once all of its
// days exist. A *domain.ValidationError is returned for a malformed profile,
// a *StorageError when the store fails; in the latter case the new plan, if
// created, is left as replaced. Activation fails with an error wrapping
// repository.ErrDuplicate when a concurrent generation for the same user
// activated its plan first.
func (g *Generator) Generate(ctx context.Context, userID primitive.ObjectID, profile domain.Profile) (*Result, error) {
	started := time.Now()
	profile.Normalize()
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	catalog, err := g.store.FindAllExercises(ctx)
	if err != nil {
		return nil, g.fail(&StorageError{Op: "find exercises", Err: err})
	}

	pool := Filter(catalog, profile)
	logger := log.WithFields(log.Fields{
		"user_id": userID.Hex(),
		"catalog": len(catalog),
		"pool":    len(pool),
	})
	logger.Debug("exercise catalog filtered")

	result := &Result{PoolSize: len(pool)}
	if len(pool) < g.minPoolSize {
		warning := &PoolExhaustion{Available: len(pool), Minimum: g.minPoolSize}
		logger.Warn(warning.Error())
		result.Warnings = append(result.Warnings, warning.Error())
		if g.metrics != nil {
			g.metrics.CounterPoolExhaustion.Inc()
		}
	}

	days := BuildSchedule(pool, profile, g.sourceFor(userID))

	plan, err := g.store.CreatePlan(ctx, userID, g.now().UTC(), domain.PlanStatusPending)
	if err != nil {
		return nil, g.fail(&StorageError{Op: "create plan", Err: err})
	}
	if err := g.persist(ctx, plan, days); err != nil {
		return nil, g.fail(g.abandon(ctx, plan.ID, err))
	}

	full, err := g.store.GetPlanWithDays(ctx, plan.ID)
	if err != nil {
		return nil, g.fail(g.abandon(ctx, plan.ID, &StorageError{Op: "get plan", Err: err}))
	}
	result.Plan = full

	if g.metrics != nil {
		g.metrics.CounterPlansGenerated.Inc()
		g.metrics.GaugeFilteredPool.Set(float64(len(pool)))
		g.metrics.HistGenerationDuration.Observe(time.Since(started).Seconds())
	}
	logger.WithFields(log.Fields{
		"plan_id": plan.ID.Hex(),
		"days":    len(full.Days),
		"took":    time.Since(started).String(),
	}).Info("plan generated")
	return result, nil
}

func (g *Generator) persist(ctx context.Context, plan *domain.Plan, days []PlannedDay) error {
	if err := g.store.ReplaceActivePlans(ctx, plan.UserID, plan.ID); err != nil {
		return &StorageError{Op: "replace active plans", Err: err}
	}
	for _, d := range days {
		if err := ctx.Err(); err != nil {
			return &StorageError{Op: "create workout day", Err: err}
		}
		day, err := g.store.CreateWorkoutDay(ctx, &domain.WorkoutDay{
			PlanID:           plan.ID,
			DayNumber:        d.DayNumber,
			WeekNumber:       d.WeekNumber,
			DayType:          d.DayType,
			EstimatedMinutes: d.EstimatedMinutes,
			IsOptional:       d.IsOptional,
		})
		if err != nil {
			return &StorageError{Op: "create workout day", Err: err}
		}
		for _, pe := range d.Exercises {
			_, err := g.store.CreateWorkoutExercise(ctx, &domain.WorkoutExercise{
				WorkoutDayID:      day.ID,
				ExerciseID:        pe.Exercise.ID,
				Role:              pe.Role,
				TargetSets:        pe.Prescription.Sets,
				TargetReps:        pe.Prescription.Reps,
				TargetSeconds:     pe.Prescription.Seconds,
				TargetRestSeconds: pe.Prescription.Rest,
				SortOrder:         pe.SortOrder,
			})
			if err != nil {
				return &StorageError{Op: "create workout exercise", Err: err}
			}
		}
	}
	if err := g.store.SetPlanStatus(ctx, plan.ID, domain.PlanStatusActive); err != nil {
		return &StorageError{Op: "activate plan", Err: err}
	}
	return nil
}

// abandon marks a partially written plan as replaced so it is never left
// active. It runs even when ctx is already cancelled.
func (g *Generator) abandon(ctx context.Context, planID primitive.ObjectID, cause error) error {
	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
	defer cancel()
	if err := g.store.SetPlanStatus(cleanupCtx, planID, domain.PlanStatusReplaced); err != nil {
		return multierr.Append(cause, &StorageError{Op: "abandon plan", Err: err})
	}
	return cause
}

func (g *Generator) fail(err error) error {
	if g.metrics != nil {
		g.metrics.CounterPlanFailures.Inc()
	}
	log.WithError(err).Error("plan generation failed")
	return err
}

// BuildSchedule lays out four scheduled weeks followed by two optional
// recovery days, 30 days in total. rng may be nil for deterministic output.
func BuildSchedule(pool []domain.Exercise, profile domain.Profile, rng *rand.Rand) []PlannedDay {
	days := make([]PlannedDay, 0, scheduledWeeks*len(weeklyTemplate)+optionalDays)
	carry := CarryState{}

	for week := 1; week <= scheduledWeeks; week++ {
		for i, dayType := range weeklyTemplate {
			day := PlannedDay{
				DayNumber:  (week-1)*len(weeklyTemplate) + i + 1,
				WeekNumber: week,
				DayType:    dayType,
			}
			if dayType != domain.DayRest {
				day.EstimatedMinutes = profile.TimePerWorkout
				var selected []RoledExercise
				selected, carry = SelectDay(rank(pool, profile, dayType, rng), profile, dayType, carry)
				for order, ex := range selected {
					day.Exercises = append(day.Exercises, PlannedExercise{
						Exercise:     ex.Exercise,
						Role:         ex.Role,
						Prescription: Prescribe(ex, profile, week),
						SortOrder:    order,
					})
				}
			}
			days = append(days, day)
		}
	}

	return append(days, recoveryDays(pool, len(days)+1)...)
}

// sourceFor returns a source owned by a single run, or nil without variety.
func (g *Generator) sourceFor(userID primitive.ObjectID) *rand.Rand {
	if g.seed == 0 {
		return nil
	}
	h := fnv.New64a()
	_, _ = h.Write(userID[:])
	return rand.New(rand.NewSource(g.seed ^ int64(h.Sum64())))
}

func rank(pool []domain.Exercise, profile domain.Profile, dayType domain.DayType, rng *rand.Rand) []RankedExercise {
	if rng == nil {
		return Score(pool, profile, dayType)
	}
	shuffled := make([]domain.Exercise, len(pool))
	copy(shuffled, pool)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return Score(shuffled, profile, dayType)
}

// recoveryDays builds the optional days from mobility and stretching work,
// handing out the sub-pool in consecutive blocks that wrap around.
func recoveryDays(pool []domain.Exercise, firstDay int) []PlannedDay {
	var recovery []domain.Exercise
	for i := range pool {
		if pool[i].WorkoutType == domain.WorkoutTypeMobility || pool[i].PhaseTags.Contains(domain.PhaseStretching) {
			recovery = append(recovery, pool[i])
		}
	}

	days := make([]PlannedDay, 0, optionalDays)
	perDay := min(recoveryBlockSize, len(recovery))
	for i := 0; i < optionalDays; i++ {
		day := PlannedDay{
			DayNumber:        firstDay + i,
			WeekNumber:       optionalWeek,
			DayType:          domain.DayConditioning,
			EstimatedMinutes: recoveryDayMinutes,
			IsOptional:       true,
		}
		for j := 0; j < perDay; j++ {
			day.Exercises = append(day.Exercises, PlannedExercise{
				Exercise: recovery[(i*recoveryBlockSize+j)%len(recovery)],
				Role:     domain.RoleMobility,
				Prescription: Prescription{
					Sets:    1,
					Seconds: intPtr(recoveryHoldSeconds),
					Rest:    recoveryRestSeconds,
				},
				SortOrder: j,
			})
		}
		days = append(days, day)
	}
	return days
}
