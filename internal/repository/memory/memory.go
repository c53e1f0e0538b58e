// Package memory implements the repositories in process memory. It backs the
// offline plan preview of the CLI and serves as the fake store in tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"alcyxob/workout-planner/internal/domain"
	"alcyxob/workout-planner/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DB holds every collection behind one lock.
type DB struct {
	mu        sync.RWMutex
	users     map[primitive.ObjectID]domain.User
	exercises []domain.Exercise
	profiles  map[primitive.ObjectID]domain.Profile // by user id
	plans     map[primitive.ObjectID]domain.Plan
	days      map[primitive.ObjectID]domain.WorkoutDay
	items     map[primitive.ObjectID]domain.WorkoutExercise
	logs      map[primitive.ObjectID]domain.ExerciseLog
	now       func() time.Time
}

func NewDB() *DB {
	return &DB{
		users:    make(map[primitive.ObjectID]domain.User),
		profiles: make(map[primitive.ObjectID]domain.Profile),
		plans:    make(map[primitive.ObjectID]domain.Plan),
		days:     make(map[primitive.ObjectID]domain.WorkoutDay),
		items:    make(map[primitive.ObjectID]domain.WorkoutExercise),
		logs:     make(map[primitive.ObjectID]domain.ExerciseLog),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (db *DB) Users() repository.UserRepository                       { return &userRepo{db} }
func (db *DB) Exercises() repository.ExerciseRepository               { return &exerciseRepo{db} }
func (db *DB) Profiles() repository.ProfileRepository                 { return &profileRepo{db} }
func (db *DB) Plans() repository.PlanRepository                       { return &planRepo{db} }
func (db *DB) WorkoutDays() repository.WorkoutDayRepository           { return &dayRepo{db} }
func (db *DB) WorkoutExercises() repository.WorkoutExerciseRepository { return &itemRepo{db} }
func (db *DB) ExerciseLogs() repository.ExerciseLogRepository         { return &logRepo{db} }

// PlanStore wires the in-memory repositories for the plan generator.
func (db *DB) PlanStore() *repository.PlanStore {
	return repository.NewPlanStore(db.Exercises(), db.Plans(), db.WorkoutDays(), db.WorkoutExercises())
}

// --- users ---

type userRepo struct{ db *DB }

func (r *userRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if strings.EqualFold(u.Email, user.Email) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = r.db.now()
	user.UpdatedAt = user.CreatedAt
	r.db.users[user.ID] = *user
	return user.ID, nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	for _, u := range r.db.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	u, ok := r.db.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

// --- exercises ---

type exerciseRepo struct{ db *DB }

func (r *exerciseRepo) FindAll(_ context.Context) ([]domain.Exercise, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	out := make([]domain.Exercise, len(r.db.exercises))
	copy(out, r.db.exercises)
	return out, nil
}

func (r *exerciseRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	for _, ex := range r.db.exercises {
		if ex.ID == id {
			return &ex, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *exerciseRepo) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]domain.Exercise, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	wanted := make(map[primitive.ObjectID]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	var out []domain.Exercise
	for _, ex := range r.db.exercises {
		if _, ok := wanted[ex.ID]; ok {
			out = append(out, ex)
		}
	}
	return out, nil
}

func (r *exerciseRepo) UpsertByExternalID(_ context.Context, exercise *domain.Exercise) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	now := r.db.now()
	exercise.UpdatedAt = now
	if exercise.ExternalID != "" {
		for i, ex := range r.db.exercises {
			if ex.ExternalID == exercise.ExternalID {
				exercise.ID = ex.ID
				exercise.CreatedAt = ex.CreatedAt
				r.db.exercises[i] = *exercise
				return false, nil
			}
		}
	}
	if exercise.ID.IsZero() {
		exercise.ID = primitive.NewObjectID()
	}
	exercise.CreatedAt = now
	r.db.exercises = append(r.db.exercises, *exercise)
	return true, nil
}

// --- profiles ---

type profileRepo struct{ db *DB }

func (r *profileRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) (*domain.Profile, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	p, ok := r.db.profiles[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *profileRepo) Upsert(_ context.Context, profile *domain.Profile) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	now := r.db.now()
	if prev, ok := r.db.profiles[profile.UserID]; ok {
		profile.ID = prev.ID
		profile.CreatedAt = prev.CreatedAt
	} else {
		profile.ID = primitive.NewObjectID()
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now
	r.db.profiles[profile.UserID] = *profile
	return nil
}

// --- plans ---

type planRepo struct{ db *DB }

func (r *planRepo) Create(_ context.Context, plan *domain.Plan) (primitive.ObjectID, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if plan.Status == domain.PlanStatusActive && r.hasOtherActive(plan.UserID, primitive.NilObjectID) {
		return primitive.NilObjectID, repository.ErrDuplicate
	}
	plan.ID = primitive.NewObjectID()
	plan.CreatedAt = r.db.now()
	plan.UpdatedAt = plan.CreatedAt
	r.db.plans[plan.ID] = *plan
	return plan.ID, nil
}

func (r *planRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Plan, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	p, ok := r.db.plans[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *planRepo) GetActiveByUserID(_ context.Context, userID primitive.ObjectID) (*domain.Plan, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	var latest *domain.Plan
	for _, p := range r.db.plans {
		if p.UserID != userID || p.Status != domain.PlanStatusActive {
			continue
		}
		if latest == nil || p.CreatedAt.After(latest.CreatedAt) {
			p := p
			latest = &p
		}
	}
	if latest == nil {
		return nil, repository.ErrNotFound
	}
	return latest, nil
}

func (r *planRepo) ReplaceActiveForUser(_ context.Context, userID, keepPlanID primitive.ObjectID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for id, p := range r.db.plans {
		if p.UserID == userID && p.Status == domain.PlanStatusActive && id != keepPlanID {
			p.Status = domain.PlanStatusReplaced
			p.UpdatedAt = r.db.now()
			r.db.plans[id] = p
		}
	}
	return nil
}

func (r *planRepo) UpdateStatus(_ context.Context, id primitive.ObjectID, status domain.PlanStatus) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p, ok := r.db.plans[id]
	if !ok {
		return repository.ErrNotFound
	}
	if status == domain.PlanStatusActive && r.hasOtherActive(p.UserID, id) {
		return repository.ErrDuplicate
	}
	p.Status = status
	p.UpdatedAt = r.db.now()
	r.db.plans[id] = p
	return nil
}

// hasOtherActive mirrors the partial unique index on active plans.
// Callers hold the lock.
func (r *planRepo) hasOtherActive(userID, exceptID primitive.ObjectID) bool {
	for id, p := range r.db.plans {
		if id != exceptID && p.UserID == userID && p.Status == domain.PlanStatusActive {
			return true
		}
	}
	return false
}

// --- workout days ---

type dayRepo struct{ db *DB }

func (r *dayRepo) Create(_ context.Context, day *domain.WorkoutDay) (primitive.ObjectID, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, d := range r.db.days {
		if d.PlanID == day.PlanID && d.DayNumber == day.DayNumber {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	day.ID = primitive.NewObjectID()
	day.CreatedAt = r.db.now()
	r.db.days[day.ID] = *day
	return day.ID, nil
}

func (r *dayRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.WorkoutDay, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	d, ok := r.db.days[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &d, nil
}

func (r *dayRepo) GetByPlanID(_ context.Context, planID primitive.ObjectID) ([]domain.WorkoutDay, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	out := []domain.WorkoutDay{}
	for _, d := range r.db.days {
		if d.PlanID == planID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DayNumber < out[j].DayNumber })
	return out, nil
}

func (r *dayRepo) MarkCompleted(_ context.Context, id primitive.ObjectID, at time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	d, ok := r.db.days[id]
	if !ok {
		return repository.ErrNotFound
	}
	d.IsCompleted = true
	d.CompletedAt = &at
	r.db.days[id] = d
	return nil
}

// --- workout exercises ---

type itemRepo struct{ db *DB }

func (r *itemRepo) Create(_ context.Context, we *domain.WorkoutExercise) (primitive.ObjectID, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	we.ID = primitive.NewObjectID()
	we.CreatedAt = r.db.now()
	r.db.items[we.ID] = *we
	return we.ID, nil
}

func (r *itemRepo) GetByDayID(_ context.Context, dayID primitive.ObjectID) ([]domain.WorkoutExercise, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	out := []domain.WorkoutExercise{}
	for _, we := range r.db.items {
		if we.WorkoutDayID == dayID {
			out = append(out, we)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (r *itemRepo) GetByDayAndExercise(_ context.Context, dayID, exerciseID primitive.ObjectID) (*domain.WorkoutExercise, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	for _, we := range r.db.items {
		if we.WorkoutDayID == dayID && we.ExerciseID == exerciseID {
			return &we, nil
		}
	}
	return nil, repository.ErrNotFound
}

// --- exercise logs ---

type logRepo struct{ db *DB }

func (r *logRepo) UpsertBySet(_ context.Context, entry *domain.ExerciseLog) (*domain.ExerciseLog, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	now := r.db.now()
	for id, l := range r.db.logs {
		if l.WorkoutExerciseID == entry.WorkoutExerciseID && l.SetNumber == entry.SetNumber {
			entry.ID = id
			entry.CreatedAt = l.CreatedAt
			entry.UpdatedAt = now
			r.db.logs[id] = *entry
			out := *entry
			return &out, nil
		}
	}
	entry.ID = primitive.NewObjectID()
	entry.CreatedAt = now
	entry.UpdatedAt = now
	r.db.logs[entry.ID] = *entry
	out := *entry
	return &out, nil
}

func (r *logRepo) GetByWorkoutExerciseIDs(_ context.Context, ids []primitive.ObjectID) ([]domain.ExerciseLog, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	wanted := make(map[primitive.ObjectID]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	out := []domain.ExerciseLog{}
	for _, l := range r.db.logs {
		if _, ok := wanted[l.WorkoutExerciseID]; ok {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].WorkoutExerciseID != out[j].WorkoutExerciseID {
			return out[i].WorkoutExerciseID.Hex() < out[j].WorkoutExerciseID.Hex()
		}
		return out[i].SetNumber < out[j].SetNumber
	})
	return out, nil
}
