package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"alcyxob/workout-planner/internal/domain"
	"alcyxob/workout-planner/internal/service"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutHandler serves a single workout day and its set logging.
type WorkoutHandler struct {
	workoutService service.WorkoutService
}

func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

type LogSetRequest struct {
	ExerciseID string   `json:"exerciseId" binding:"required"`
	SetNumber  int      `json:"setNumber" binding:"required,min=1"`
	Reps       *int     `json:"reps" binding:"required,min=0"`
	Weight     *float64 `json:"weight" binding:"omitempty,min=0"`
}

type ExerciseLogResponse struct {
	ID        string    `json:"id"`
	SetNumber int       `json:"setNumber"`
	Reps      int       `json:"reps"`
	Weight    *float64  `json:"weight"`
	IsDone    bool      `json:"isDone"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type WorkoutExerciseResponse struct {
	ID                string                `json:"id"`
	Role              string                `json:"role"`
	SortOrder         int                   `json:"sortOrder"`
	TargetSets        int                   `json:"targetSets"`
	TargetReps        *int                  `json:"targetReps"`
	TargetSeconds     *int                  `json:"targetSeconds"`
	TargetRestSeconds int                   `json:"targetRestSeconds"`
	Exercise          *ExerciseResponse     `json:"exercise"`
	MediaURL          string                `json:"mediaUrl,omitempty"`
	Logs              []ExerciseLogResponse `json:"logs"`
}

type WorkoutDayDetailResponse struct {
	WorkoutDayResponse
	Exercises []WorkoutExerciseResponse `json:"exercises"`
}

func MapExerciseLogToResponse(l *domain.ExerciseLog) ExerciseLogResponse {
	return ExerciseLogResponse{
		ID:        l.ID.Hex(),
		SetNumber: l.SetNumber,
		Reps:      l.Reps,
		Weight:    l.Weight,
		IsDone:    l.IsDone,
		UpdatedAt: l.UpdatedAt,
	}
}

// MapWorkoutDayDetailToResponse uses the detail heading as the day title.
func MapWorkoutDayDetailToResponse(d *service.WorkoutDayDetail) WorkoutDayDetailResponse {
	resp := WorkoutDayDetailResponse{
		WorkoutDayResponse: MapWorkoutDayToResponse(&d.Day),
		Exercises:          make([]WorkoutExerciseResponse, 0, len(d.Exercises)),
	}
	resp.Title = d.Title
	for _, item := range d.Exercises {
		we := WorkoutExerciseResponse{
			ID:                item.ID.Hex(),
			Role:              string(item.Role),
			SortOrder:         item.SortOrder,
			TargetSets:        item.TargetSets,
			TargetReps:        item.TargetReps,
			TargetSeconds:     item.TargetSeconds,
			TargetRestSeconds: item.TargetRestSeconds,
			MediaURL:          item.MediaURL,
			Logs:              make([]ExerciseLogResponse, len(item.Logs)),
		}
		if item.Exercise != nil {
			ex := MapExerciseToResponse(item.Exercise)
			we.Exercise = &ex
		}
		for i := range item.Logs {
			we.Logs[i] = MapExerciseLogToResponse(&item.Logs[i])
		}
		resp.Exercises = append(resp.Exercises, we)
	}
	return resp
}

// abortWithWorkoutError maps workout service errors to status codes.
func abortWithWorkoutError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, service.ErrWorkoutDayNotFound), errors.Is(err, service.ErrExerciseNotInDay):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrForbidden):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrInvalidSet):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		log.WithError(err).Error(action + " failed")
		abortWithError(c, http.StatusInternalServerError, fmt.Sprintf("Failed to %s.", action))
	}
}

// GetWorkoutDay godoc
// @Summary Get a workout day
// @Description Returns the day with its exercises in order, demo media links and logged sets.
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Param dayId path string true "Workout day ID"
// @Success 200 {object} WorkoutDayDetailResponse
// @Failure 400 {object} gin.H "Invalid ID"
// @Failure 403 {object} gin.H "Day belongs to another user"
// @Failure 404 {object} gin.H "Not found"
// @Router /workouts/{dayId} [get]
func (h *WorkoutHandler) GetWorkoutDay(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	dayID, ok := pathObjectID(c, "dayId")
	if !ok {
		return
	}

	detail, err := h.workoutService.GetDay(c.Request.Context(), userID, dayID)
	if err != nil {
		abortWithWorkoutError(c, err, "load workout day")
		return
	}
	c.JSON(http.StatusOK, MapWorkoutDayDetailToResponse(detail))
}

// LogSet godoc
// @Summary Log a performed set
// @Description Creates or overwrites the log of one set and marks it done.
// @Tags Workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param dayId path string true "Workout day ID"
// @Param set body LogSetRequest true "Set result"
// @Success 200 {object} ExerciseLogResponse
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 403 {object} gin.H "Day belongs to another user"
// @Failure 404 {object} gin.H "Day not found or exercise not part of the day"
// @Router /workouts/{dayId}/log [post]
func (h *WorkoutHandler) LogSet(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	dayID, ok := pathObjectID(c, "dayId")
	if !ok {
		return
	}

	var req LogSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	exerciseID, err := primitive.ObjectIDFromHex(req.ExerciseID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exerciseId format.")
		return
	}

	entry, err := h.workoutService.LogSet(c.Request.Context(), userID, dayID, service.LogSetInput{
		ExerciseID: exerciseID,
		SetNumber:  req.SetNumber,
		Reps:       *req.Reps,
		Weight:     req.Weight,
	})
	if err != nil {
		abortWithWorkoutError(c, err, "log set")
		return
	}
	c.JSON(http.StatusOK, MapExerciseLogToResponse(entry))
}

// CompleteWorkoutDay godoc
// @Summary Mark a workout day complete
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Param dayId path string true "Workout day ID"
// @Success 200 {object} WorkoutDayResponse
// @Failure 403 {object} gin.H "Day belongs to another user"
// @Failure 404 {object} gin.H "Not found"
// @Router /workouts/{dayId}/complete [post]
func (h *WorkoutHandler) CompleteWorkoutDay(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	dayID, ok := pathObjectID(c, "dayId")
	if !ok {
		return
	}

	day, err := h.workoutService.CompleteDay(c.Request.Context(), userID, dayID)
	if err != nil {
		abortWithWorkoutError(c, err, "complete workout day")
		return
	}
	c.JSON(http.StatusOK, MapWorkoutDayToResponse(day))
}
