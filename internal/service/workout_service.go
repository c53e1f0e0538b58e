package service

import (
	"context"
	"errors"
	"time"

	"alcyxob/workout-planner/internal/domain"
	"alcyxob/workout-planner/internal/metrics"
	"alcyxob/workout-planner/internal/repository"
	"alcyxob/workout-planner/internal/storage"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrWorkoutDayNotFound = errors.New("workout day not found")
	ErrForbidden          = errors.New("access denied to this workout day")
	ErrExerciseNotInDay   = errors.New("exercise is not part of this workout day")
	ErrInvalidSet         = errors.New("set number must be positive and reps not negative")
)

// WorkoutExerciseDetail is a prescribed exercise with its catalog entry and
// the sets logged so far.
type WorkoutExerciseDetail struct {
	domain.WorkoutExercise
	Exercise *domain.Exercise
	MediaURL string
	Logs     []domain.ExerciseLog
}

// WorkoutDayDetail is the day view of the mobile client.
type WorkoutDayDetail struct {
	Day       domain.WorkoutDay
	Title     string
	Exercises []WorkoutExerciseDetail
}

// LogSetInput identifies the set by the catalog exercise id within the day.
type LogSetInput struct {
	ExerciseID primitive.ObjectID
	SetNumber  int
	Reps       int
	Weight     *float64
}

type WorkoutService interface {
	GetDay(ctx context.Context, userID, dayID primitive.ObjectID) (*WorkoutDayDetail, error)
	LogSet(ctx context.Context, userID, dayID primitive.ObjectID, in LogSetInput) (*domain.ExerciseLog, error)
	CompleteDay(ctx context.Context, userID, dayID primitive.ObjectID) (*domain.WorkoutDay, error)
}

type workoutService struct {
	planRepo     repository.PlanRepository
	dayRepo      repository.WorkoutDayRepository
	itemRepo     repository.WorkoutExerciseRepository
	logRepo      repository.ExerciseLogRepository
	exerciseRepo repository.ExerciseRepository
	fileStorage  storage.FileStorage
	mediaExpiry  time.Duration
	metrics      *metrics.Metrics
	now          func() time.Time
}

// NewWorkoutService creates a new instance of workoutService. fileStorage and
// m may be nil; days are then returned without media URLs.
func NewWorkoutService(
	planRepo repository.PlanRepository,
	dayRepo repository.WorkoutDayRepository,
	itemRepo repository.WorkoutExerciseRepository,
	logRepo repository.ExerciseLogRepository,
	exerciseRepo repository.ExerciseRepository,
	fileStorage storage.FileStorage,
	mediaExpiry time.Duration,
	m *metrics.Metrics,
) WorkoutService {
	if mediaExpiry <= 0 {
		mediaExpiry = storage.DefaultPresignedURLExpiry
	}
	return &workoutService{
		planRepo:     planRepo,
		dayRepo:      dayRepo,
		itemRepo:     itemRepo,
		logRepo:      logRepo,
		exerciseRepo: exerciseRepo,
		fileStorage:  fileStorage,
		mediaExpiry:  mediaExpiry,
		metrics:      m,
		now:          time.Now,
	}
}

// ownedDay loads the day and checks that its plan belongs to userID.
func (s *workoutService) ownedDay(ctx context.Context, userID, dayID primitive.ObjectID) (*domain.WorkoutDay, error) {
	day, err := s.dayRepo.GetByID(ctx, dayID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutDayNotFound
		}
		return nil, err
	}
	plan, err := s.planRepo.GetByID(ctx, day.PlanID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutDayNotFound
		}
		return nil, err
	}
	if plan.UserID != userID {
		log.WithFields(log.Fields{
			"user_id": userID.Hex(),
			"day_id":  dayID.Hex(),
		}).Warn("workout day requested by another user")
		return nil, ErrForbidden
	}
	return day, nil
}

func (s *workoutService) GetDay(ctx context.Context, userID, dayID primitive.ObjectID) (*WorkoutDayDetail, error) {
	day, err := s.ownedDay(ctx, userID, dayID)
	if err != nil {
		return nil, err
	}

	items, err := s.itemRepo.GetByDayID(ctx, day.ID)
	if err != nil {
		return nil, err
	}

	detail := &WorkoutDayDetail{
		Day:       *day,
		Title:     day.DetailTitle(),
		Exercises: make([]WorkoutExerciseDetail, 0, len(items)),
	}
	if len(items) == 0 {
		return detail, nil
	}

	exerciseIDs := make([]primitive.ObjectID, 0, len(items))
	itemIDs := make([]primitive.ObjectID, 0, len(items))
	for _, item := range items {
		exerciseIDs = append(exerciseIDs, item.ExerciseID)
		itemIDs = append(itemIDs, item.ID)
	}

	exercises, err := s.exerciseRepo.GetByIDs(ctx, exerciseIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]*domain.Exercise, len(exercises))
	for i := range exercises {
		byID[exercises[i].ID] = &exercises[i]
	}

	logs, err := s.logRepo.GetByWorkoutExerciseIDs(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	logsByItem := make(map[primitive.ObjectID][]domain.ExerciseLog)
	for _, l := range logs {
		logsByItem[l.WorkoutExerciseID] = append(logsByItem[l.WorkoutExerciseID], l)
	}

	for _, item := range items {
		d := WorkoutExerciseDetail{
			WorkoutExercise: item,
			Exercise:        byID[item.ExerciseID],
			Logs:            logsByItem[item.ID],
		}
		if d.Logs == nil {
			d.Logs = []domain.ExerciseLog{}
		}
		if d.Exercise != nil {
			d.MediaURL = s.mediaURL(ctx, d.Exercise)
		}
		detail.Exercises = append(detail.Exercises, d)
	}
	return detail, nil
}

// mediaURL returns an empty string when the exercise has no media or signing
// fails; a missing video never fails the day view.
func (s *workoutService) mediaURL(ctx context.Context, ex *domain.Exercise) string {
	if s.fileStorage == nil || ex.MediaKey == "" {
		return ""
	}
	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, ex.MediaKey, s.mediaExpiry)
	if err != nil {
		log.WithError(err).WithField("media_key", ex.MediaKey).Warn("failed to sign exercise media url")
		return ""
	}
	return url
}

func (s *workoutService) LogSet(ctx context.Context, userID, dayID primitive.ObjectID, in LogSetInput) (*domain.ExerciseLog, error) {
	if in.SetNumber < 1 || in.Reps < 0 {
		return nil, ErrInvalidSet
	}
	day, err := s.ownedDay(ctx, userID, dayID)
	if err != nil {
		return nil, err
	}

	item, err := s.itemRepo.GetByDayAndExercise(ctx, day.ID, in.ExerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotInDay
		}
		return nil, err
	}

	entry, err := s.logRepo.UpsertBySet(ctx, &domain.ExerciseLog{
		WorkoutExerciseID: item.ID,
		SetNumber:         in.SetNumber,
		Reps:              in.Reps,
		Weight:            in.Weight,
		IsDone:            true,
	})
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.CounterSetsLogged.Inc()
	}
	return entry, nil
}

// CompleteDay marks the day done. Completing it again refreshes completedAt.
func (s *workoutService) CompleteDay(ctx context.Context, userID, dayID primitive.ObjectID) (*domain.WorkoutDay, error) {
	day, err := s.ownedDay(ctx, userID, dayID)
	if err != nil {
		return nil, err
	}
	at := s.now().UTC()
	if err := s.dayRepo.MarkCompleted(ctx, day.ID, at); err != nil {
		return nil, err
	}
	day.IsCompleted = true
	day.CompletedAt = &at
	if s.metrics != nil {
		s.metrics.CounterDaysCompleted.Inc()
	}
	log.WithFields(log.Fields{
		"user_id":    userID.Hex(),
		"day_number": day.DayNumber,
	}).Info("workout day completed")
	return day, nil
}
