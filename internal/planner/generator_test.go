package planner

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"alcyxob/workout-planner/internal/domain"
	"alcyxob/workout-planner/internal/metrics"
	"alcyxob/workout-planner/internal/repository"
	"alcyxob/workout-planner/internal/repository/memory"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func seededDB(t *testing.T, catalog []domain.Exercise) *memory.DB {
	t.Helper()
	db := memory.NewDB()
	for i := range catalog {
		_, err := db.Exercises().UpsertByExternalID(context.Background(), &catalog[i])
		require.NoError(t, err)
	}
	return db
}

func TestGenerate_Schedule(t *testing.T) {
	db := seededDB(t, standardCatalog())
	m := metrics.NewTestMetrics()
	start := time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC)
	gen := NewGenerator(db.PlanStore(), WithMetrics(m), WithClock(func() time.Time { return start }))

	p := baseProfile()
	res, err := gen.Generate(context.Background(), p.UserID, p)
	require.NoError(t, err)
	require.NotNil(t, res.Plan)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, domain.PlanStatusActive, res.Plan.Status)
	assert.Equal(t, start, res.Plan.StartDate)
	assert.Equal(t, p.UserID, res.Plan.UserID)

	days := res.Plan.Days
	require.Len(t, days, 30)
	restOffsets := map[int]bool{2: true, 5: true, 6: true}
	for i, day := range days {
		assert.Equal(t, i+1, day.DayNumber)
		items, err := db.WorkoutExercises().GetByDayID(context.Background(), day.ID)
		require.NoError(t, err)

		if day.DayNumber > 28 {
			assert.Equal(t, 5, day.WeekNumber)
			assert.True(t, day.IsOptional)
			assert.Equal(t, 15, day.EstimatedMinutes)
			assert.NotEmpty(t, items)
			continue
		}
		assert.Equal(t, i/7+1, day.WeekNumber)
		assert.False(t, day.IsOptional)
		if restOffsets[i%7] {
			assert.Equal(t, domain.DayRest, day.DayType)
			assert.Zero(t, day.EstimatedMinutes)
			assert.Empty(t, items)
			continue
		}
		assert.NotEqual(t, domain.DayRest, day.DayType)
		assert.Equal(t, p.TimePerWorkout, day.EstimatedMinutes)
		require.NotEmpty(t, items)
		for order, item := range items {
			assert.Equal(t, order, item.SortOrder)
		}
	}

	assert.Equal(t, domain.DayStrengthLower, days[0].DayType)
	assert.Equal(t, domain.DayStrengthUpper, days[1].DayType)
	assert.Equal(t, domain.DayConditioning, days[3].DayType)
	assert.Equal(t, domain.DayStrengthPosture, days[4].DayType)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.CounterPlansGenerated))
	assert.Equal(t, float64(res.PoolSize), testutil.ToFloat64(m.GaugeFilteredPool))
}

func TestGenerate_ReplacesActivePlan(t *testing.T) {
	db := seededDB(t, standardCatalog())
	gen := NewGenerator(db.PlanStore())
	p := baseProfile()

	first, err := gen.Generate(context.Background(), p.UserID, p)
	require.NoError(t, err)
	second, err := gen.Generate(context.Background(), p.UserID, p)
	require.NoError(t, err)

	old, err := db.Plans().GetByID(context.Background(), first.Plan.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PlanStatusReplaced, old.Status)

	active, err := db.Plans().GetActiveByUserID(context.Background(), p.UserID)
	require.NoError(t, err)
	assert.Equal(t, second.Plan.ID, active.ID)

	// another user's plan is untouched
	other := baseProfile()
	third, err := gen.Generate(context.Background(), other.UserID, other)
	require.NoError(t, err)
	active, err = db.Plans().GetActiveByUserID(context.Background(), p.UserID)
	require.NoError(t, err)
	assert.Equal(t, second.Plan.ID, active.ID)
	assert.NotEqual(t, third.Plan.ID, active.ID)
}

// statusRecordingStore records the plan status seen while days are written.
type statusRecordingStore struct {
	Store
	plans    repository.PlanRepository
	statuses []domain.PlanStatus
}

func (s *statusRecordingStore) CreateWorkoutDay(ctx context.Context, day *domain.WorkoutDay) (*domain.WorkoutDay, error) {
	if plan, err := s.plans.GetByID(ctx, day.PlanID); err == nil {
		s.statuses = append(s.statuses, plan.Status)
	}
	return s.Store.CreateWorkoutDay(ctx, day)
}

func TestGenerate_PendingUntilWritten(t *testing.T) {
	db := seededDB(t, standardCatalog())
	store := &statusRecordingStore{Store: db.PlanStore(), plans: db.Plans()}
	p := baseProfile()

	res, err := NewGenerator(store).Generate(context.Background(), p.UserID, p)
	require.NoError(t, err)
	require.Len(t, store.statuses, 30)
	for _, status := range store.statuses {
		assert.Equal(t, domain.PlanStatusPending, status)
	}
	assert.Equal(t, domain.PlanStatusActive, res.Plan.Status)
}

func TestGenerate_ConcurrentSameUser(t *testing.T) {
	db := seededDB(t, standardCatalog())
	gen := NewGenerator(db.PlanStore())
	p := baseProfile()

	const runs = 6
	var wg sync.WaitGroup
	results := make([]*Result, runs)
	errs := make([]error, runs)
	for i := 0; i < runs; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = gen.Generate(context.Background(), p.UserID, p)
		}(i)
	}
	wg.Wait()

	active, err := db.Plans().GetActiveByUserID(context.Background(), p.UserID)
	require.NoError(t, err, "one submission always wins")

	activeCount := 0
	for i := range results {
		if errs[i] != nil {
			assert.ErrorIs(t, errs[i], repository.ErrDuplicate)
			continue
		}
		plan, err := db.Plans().GetByID(context.Background(), results[i].Plan.ID)
		require.NoError(t, err)
		if plan.Status == domain.PlanStatusActive {
			activeCount++
			assert.Equal(t, active.ID, plan.ID)
		}
	}
	assert.Equal(t, 1, activeCount)
}

func TestGenerate_InvalidProfile(t *testing.T) {
	db := seededDB(t, standardCatalog())
	m := metrics.NewTestMetrics()
	gen := NewGenerator(db.PlanStore(), WithMetrics(m))

	p := baseProfile()
	p.PainAreas = domain.TagList{domain.NoneSentinel, "Knees"}
	_, err := gen.Generate(context.Background(), p.UserID, p)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "painAreas", verr.Field)

	_, err = db.Plans().GetActiveByUserID(context.Background(), p.UserID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Zero(t, testutil.ToFloat64(m.CounterPlanFailures))
}

func TestGenerate_PoolExhaustion(t *testing.T) {
	catalog := []domain.Exercise{
		newExercise("Bodyweight squat", strength, domain.PatternSquat),
		newExercise("Wall push-up", strength, domain.PatternPush),
		newExercise("Hip circles", mobility, domain.PatternGeneral, phases(domain.PhaseStretching)),
	}
	db := seededDB(t, catalog)
	m := metrics.NewTestMetrics()
	gen := NewGenerator(db.PlanStore(), WithMetrics(m))

	p := baseProfile()
	res, err := gen.Generate(context.Background(), p.UserID, p)
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "only 3 exercises")
	assert.Len(t, res.Plan.Days, 30)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CounterPoolExhaustion))
}

func TestGenerate_EmptyCatalog(t *testing.T) {
	db := memory.NewDB()
	gen := NewGenerator(db.PlanStore(), WithMinPoolSize(1))
	p := baseProfile()

	res, err := gen.Generate(context.Background(), p.UserID, p)
	require.NoError(t, err)
	assert.Len(t, res.Plan.Days, 30)
	assert.Equal(t, 0, res.PoolSize)
	require.Len(t, res.Warnings, 1)
}

// failingStore fails the nth call to CreateWorkoutExercise.
type failingStore struct {
	Store
	failAt int
	calls  int
}

func (s *failingStore) CreateWorkoutExercise(ctx context.Context, we *domain.WorkoutExercise) (*domain.WorkoutExercise, error) {
	s.calls++
	if s.calls == s.failAt {
		return nil, errors.New("connection reset")
	}
	return s.Store.CreateWorkoutExercise(ctx, we)
}

func TestGenerate_StorageFailureAbandonsPlan(t *testing.T) {
	db := seededDB(t, standardCatalog())
	m := metrics.NewTestMetrics()
	store := &failingStore{Store: db.PlanStore(), failAt: 12}
	gen := NewGenerator(store, WithMetrics(m))
	p := baseProfile()

	_, err := gen.Generate(context.Background(), p.UserID, p)
	var serr *StorageError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "create workout exercise", serr.Op)
	assert.EqualError(t, errors.Unwrap(serr), "connection reset")

	_, err = db.Plans().GetActiveByUserID(context.Background(), p.UserID)
	assert.ErrorIs(t, err, repository.ErrNotFound, "a partial plan must not stay active")
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CounterPlanFailures))
}

func TestGenerate_CancelledContext(t *testing.T) {
	db := seededDB(t, standardCatalog())
	gen := NewGenerator(db.PlanStore())
	p := baseProfile()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := gen.Generate(ctx, p.UserID, p)
	require.ErrorIs(t, err, context.Canceled)

	_, err = db.Plans().GetActiveByUserID(context.Background(), p.UserID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestBuildSchedule_Deterministic(t *testing.T) {
	pool := standardCatalog()
	p := baseProfile()

	first := BuildSchedule(pool, p, nil)
	second := BuildSchedule(pool, p, nil)
	assert.Equal(t, first, second)

	seeded := BuildSchedule(pool, p, rand.New(rand.NewSource(42)))
	again := BuildSchedule(pool, p, rand.New(rand.NewSource(42)))
	assert.Equal(t, seeded, again)
}

func TestRecoveryDays_Rotation(t *testing.T) {
	var pool []domain.Exercise
	for i := 0; i < 7; i++ {
		pool = append(pool, newExercise(fmt.Sprintf("Stretch %d", i), mobility, domain.PatternGeneral))
	}
	pool = append(pool, newExercise("Bodyweight squat", strength, domain.PatternSquat))

	days := recoveryDays(pool, 29)
	require.Len(t, days, 2)
	assert.Equal(t, 29, days[0].DayNumber)
	assert.Equal(t, 30, days[1].DayNumber)

	var got [][]string
	for _, d := range days {
		var dayNames []string
		for _, ex := range d.Exercises {
			dayNames = append(dayNames, ex.Exercise.Name)
			assert.Equal(t, domain.RoleMobility, ex.Role)
			assert.Equal(t, 1, ex.Prescription.Sets)
			assert.Equal(t, 45, *ex.Prescription.Seconds)
			assert.Equal(t, 15, ex.Prescription.Rest)
		}
		got = append(got, dayNames)
	}
	assert.Equal(t, []string{"Stretch 0", "Stretch 1", "Stretch 2", "Stretch 3", "Stretch 4"}, got[0])
	assert.Equal(t, []string{"Stretch 5", "Stretch 6", "Stretch 0", "Stretch 1", "Stretch 2"}, got[1])

	empty := recoveryDays(pool[7:], 29)
	require.Len(t, empty, 2)
	assert.Empty(t, empty[0].Exercises)
}

// randomCatalog builds a catalog from random picks of every tag vocabulary.
func randomCatalog(f *gofakeit.Faker, n int) []domain.Exercise {
	types := []domain.WorkoutType{strength, conditioning, mobility}
	patterns := []domain.MovementPattern{
		domain.PatternSquat, domain.PatternHinge, domain.PatternLunge, domain.PatternPush,
		domain.PatternPull, domain.PatternCore, domain.PatternGeneral,
	}
	levels := []string{domain.ExperienceBeginner, domain.ExperienceSome, domain.ExperienceIntermediate, domain.ExperienceAdvanced}
	equipmentTags := []string{domain.EquipmentNone, "Dumbbells", "Kettlebell", "Resistance bands"}
	painTags := []string{"Knees", "Lower back", "Shoulders", "Wrists"}
	phaseTags := []string{domain.PhaseStretching, domain.PhaseMain, domain.PhaseCoolOff}
	nameParts := []string{"squat", "push-up", "pull-up", "plank", "lunge", "run", "jump", "burpee", "row", "stretch", "hold", "bridge"}

	catalog := make([]domain.Exercise, n)
	for i := range catalog {
		lo := f.Number(0, len(levels)-1)
		hi := f.Number(lo, len(levels)-1)
		ex := domain.Exercise{
			ID:              primitive.NewObjectID(),
			ExternalID:      f.UUID(),
			Name:            fmt.Sprintf("%s %s", f.Adjective(), f.RandomString(nameParts)),
			DifficultyMin:   levels[lo],
			DifficultyMax:   levels[hi],
			EquipmentTags:   domain.TagList{f.RandomString(equipmentTags)},
			WorkoutType:     types[f.Number(0, len(types)-1)],
			MovementPattern: patterns[f.Number(0, len(patterns)-1)],
			PhaseTags:       domain.TagList{f.RandomString(phaseTags)},
		}
		if f.Bool() {
			ex.AvoidModifyFlags = domain.TagList{f.RandomString(painTags)}
		}
		if f.Bool() {
			ex.ImpactLevel = domain.ImpactHigh
		}
		ex.ApplyIngestDefaults()
		catalog[i] = ex
	}
	return catalog
}

func randomProfile(f *gofakeit.Faker) domain.Profile {
	p := baseProfile()
	p.Goal = f.RandomString([]string{domain.GoalLoseBodyFat, domain.GoalBuildMuscle, domain.GoalGetStronger, domain.GoalImproveStamina, domain.GoalImproveMobility, domain.GoalGeneralFitness})
	p.TimePerWorkout = []int{15, 25, 40, 60}[f.Number(0, 3)]
	p.ExperienceLevel = f.RandomString([]string{"Beginner", "Some experience", "Intermediate", "Advanced"})
	p.IntensityPreference = f.RandomString([]string{domain.IntensityEasy, domain.IntensityModerate, domain.IntensityHard})
	p.Equipment = domain.TagList{domain.EquipmentNone, f.RandomString([]string{"Dumbbells", "Kettlebell"})}
	if f.Bool() {
		p.PainAreas = domain.TagList{f.RandomString([]string{"Knees", "Lower back", "Shoulders"})}
	}
	if f.Bool() {
		restrictions := []string{
			domain.RestrictionSquatting, domain.RestrictionLunges, domain.RestrictionPushUps,
			domain.RestrictionPullUps, domain.RestrictionJumping, domain.RestrictionRunning,
		}
		f.ShuffleStrings(restrictions)
		p.MovementRestrictions = domain.TagList(restrictions[:f.Number(1, 3)])
	}
	if f.Bool() {
		p.PreferenceExclusions = domain.TagList{f.RandomString([]string{domain.ExclusionRunning, domain.ExclusionJumping, domain.ExclusionBurpees})}
	}
	if f.Bool() {
		p.SleepBucket = domain.SleepUnderSix
	}
	return p
}

func TestBuildSchedule_Properties(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		t.Run(fmt.Sprintf("seed_%d", seed), func(t *testing.T) {
			f := gofakeit.New(seed)
			catalog := randomCatalog(f, f.Number(0, 80))
			p := randomProfile(f)

			pool := Filter(catalog, p)
			allowed := make(map[primitive.ObjectID]bool, len(pool))
			for _, ex := range pool {
				allowed[ex.ID] = true
			}

			days := BuildSchedule(pool, p, nil)
			require.Len(t, days, 30)

			noLunges := p.MovementRestrictions.Contains(domain.RestrictionLunges)
			b := BudgetFor(p.TimePerWorkout)
			conditioningOrMobility := 0
			for _, ex := range pool {
				if ex.WorkoutType == conditioning || ex.WorkoutType == mobility {
					conditioningOrMobility++
				}
			}
			// warm-up and core slots can use at most this many of them
			expectRecoveryRole := conditioningOrMobility > b.WarmUp+b.Core

			for _, day := range days {
				if day.DayType == domain.DayRest {
					assert.Empty(t, day.Exercises)
					continue
				}
				if day.DayType == domain.DayConditioning && !day.IsOptional && expectRecoveryRole {
					hasRole := false
					for _, pe := range day.Exercises {
						if pe.Role == domain.RoleConditioning || pe.Role == domain.RoleMobility {
							hasRole = true
						}
					}
					assert.True(t, hasRole, "day %d has no conditioning or mobility work", day.DayNumber)
				}
				seen := make(map[primitive.ObjectID]bool)
				for _, pe := range day.Exercises {
					assert.True(t, allowed[pe.Exercise.ID], "%s was filtered out", pe.Exercise.Name)
					if noLunges {
						assert.NotEqual(t, domain.PatternLunge, pe.Exercise.MovementPattern, "lunge on day %d", day.DayNumber)
					}
					assert.False(t, seen[pe.Exercise.ID], "%s repeated on day %d", pe.Exercise.Name, day.DayNumber)
					seen[pe.Exercise.ID] = true

					rx := pe.Prescription
					assert.Positive(t, rx.Sets)
					assert.True(t, (rx.Reps == nil) != (rx.Seconds == nil), "reps xor seconds on day %d", day.DayNumber)
					assert.GreaterOrEqual(t, rx.Rest, 0)
				}
			}
		})
	}
}

func TestGenerate_ConcurrentWithVariety(t *testing.T) {
	db := seededDB(t, standardCatalog())
	gen := NewGenerator(db.PlanStore(), WithVariety(42))

	const users = 8
	var wg sync.WaitGroup
	errs := make([]error, users)
	for i := 0; i < users; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p := baseProfile()
			p.UserID = primitive.NewObjectID()
			_, errs[i] = gen.Generate(context.Background(), p.UserID, p)
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		assert.NoError(t, err)
	}
}

func TestGenerate_VarietyIsPerUser(t *testing.T) {
	p := baseProfile()
	schedule := func(gen *Generator) []PlannedDay {
		return BuildSchedule(standardCatalog(), p, gen.sourceFor(p.UserID))
	}

	gen := NewGenerator(memory.NewDB().PlanStore(), WithVariety(42))
	first := schedule(gen)

	// other users' generations must not advance this user's source
	for i := 0; i < 3; i++ {
		_ = gen.sourceFor(primitive.NewObjectID()).Int63()
	}
	assert.Equal(t, dayExerciseNames(first), dayExerciseNames(schedule(gen)))

	assert.Nil(t, NewGenerator(memory.NewDB().PlanStore()).sourceFor(p.UserID))
}

func dayExerciseNames(days []PlannedDay) [][]string {
	out := make([][]string, len(days))
	for i, d := range days {
		for _, pe := range d.Exercises {
			out[i] = append(out[i], pe.Exercise.Name)
		}
	}
	return out
}
