package api

import (
	"errors"
	"net/http"

	"alcyxob/workout-planner/internal/domain"
	"alcyxob/workout-planner/internal/service"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// ExerciseResponse is the DTO for returning catalog entries.
type ExerciseResponse struct {
	ID                string   `json:"id"`
	ExternalID        string   `json:"externalId"`
	Name              string   `json:"name"`
	Description       string   `json:"description,omitempty"`
	DifficultyMin     string   `json:"difficultyMin"`
	DifficultyMax     string   `json:"difficultyMax"`
	Equipment         []string `json:"equipment"`
	WorkoutType       string   `json:"workoutType"`
	MovementPattern   string   `json:"movementPattern"`
	FocusAreas        []string `json:"focusAreas"`
	ImpactLevel       string   `json:"impactLevel"`
	Phases            []string `json:"phases"`
	EasierVariationID string   `json:"easierVariationId,omitempty"`
	HarderVariationID string   `json:"harderVariationId,omitempty"`
	HasMedia          bool     `json:"hasMedia"`
}

// MapExerciseToResponse converts a domain.Exercise to ExerciseResponse DTO.
func MapExerciseToResponse(ex *domain.Exercise) ExerciseResponse {
	if ex == nil {
		return ExerciseResponse{}
	}
	return ExerciseResponse{
		ID:                ex.ID.Hex(),
		ExternalID:        ex.ExternalID,
		Name:              ex.Name,
		Description:       ex.Description,
		DifficultyMin:     ex.DifficultyMin,
		DifficultyMax:     ex.DifficultyMax,
		Equipment:         nonNil(ex.EquipmentTags),
		WorkoutType:       string(ex.WorkoutType),
		MovementPattern:   string(ex.MovementPattern),
		FocusAreas:        nonNil(ex.FocusAreaTags),
		ImpactLevel:       string(ex.ImpactLevel),
		Phases:            nonNil(ex.PhaseTags),
		EasierVariationID: ex.EasierVariationID,
		HarderVariationID: ex.HarderVariationID,
		HasMedia:          ex.MediaKey != "",
	}
}

// MapExercisesToResponse converts a slice of domain.Exercise to a slice of ExerciseResponse DTO.
func MapExercisesToResponse(exercises []domain.Exercise) []ExerciseResponse {
	responses := make([]ExerciseResponse, len(exercises))
	for i := range exercises {
		responses[i] = MapExerciseToResponse(&exercises[i])
	}
	return responses
}

func nonNil(tags domain.TagList) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

// ListExercises godoc
// @Summary List the exercise catalog
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Success 200 {array} ExerciseResponse "Catalog"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /exercises [get]
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	exercises, err := h.exerciseService.ListExercises(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("failed to list exercises")
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve exercises.")
		return
	}
	c.JSON(http.StatusOK, MapExercisesToResponse(exercises))
}

// GetExercise godoc
// @Summary Get one catalog exercise
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Param exerciseId path string true "Exercise ID"
// @Success 200 {object} ExerciseResponse
// @Failure 400 {object} gin.H "Invalid ID"
// @Failure 404 {object} gin.H "Not found"
// @Router /exercises/{exerciseId} [get]
func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	exerciseID, ok := pathObjectID(c, "exerciseId")
	if !ok {
		return
	}
	exercise, err := h.exerciseService.GetExerciseByID(c.Request.Context(), exerciseID)
	if err != nil {
		if errors.Is(err, service.ErrExerciseNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		log.WithError(err).Error("failed to get exercise")
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve exercise.")
		return
	}
	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}
