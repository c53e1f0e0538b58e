package api

import (
	"errors"
	"net/http"
	"time"

	"alcyxob/workout-planner/internal/domain"
	"alcyxob/workout-planner/internal/service"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// PlanHandler serves the calendar of the active plan.
type PlanHandler struct {
	planService service.PlanService
}

func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// WorkoutDayResponse is one calendar entry.
type WorkoutDayResponse struct {
	ID               string     `json:"id"`
	DayNumber        int        `json:"dayNumber"`
	WeekNumber       int        `json:"weekNumber"`
	DayType          string     `json:"dayType"`
	Title            string     `json:"title"`
	EstimatedMinutes int        `json:"estimatedMinutes"`
	IsOptional       bool       `json:"isOptional"`
	IsCompleted      bool       `json:"isCompleted"`
	CompletedAt      *time.Time `json:"completedAt,omitempty"`
}

type PlanResponse struct {
	ID        string               `json:"id"`
	UserID    string               `json:"userId"`
	StartDate time.Time            `json:"startDate"`
	Status    string               `json:"status"`
	Days      []WorkoutDayResponse `json:"days"`
}

func MapWorkoutDayToResponse(d *domain.WorkoutDay) WorkoutDayResponse {
	return WorkoutDayResponse{
		ID:               d.ID.Hex(),
		DayNumber:        d.DayNumber,
		WeekNumber:       d.WeekNumber,
		DayType:          string(d.DayType),
		Title:            d.Title(),
		EstimatedMinutes: d.EstimatedMinutes,
		IsOptional:       d.IsOptional,
		IsCompleted:      d.IsCompleted,
		CompletedAt:      d.CompletedAt,
	}
}

func MapPlanToResponse(plan *domain.PlanWithDays) PlanResponse {
	if plan == nil {
		return PlanResponse{}
	}
	resp := PlanResponse{
		ID:        plan.ID.Hex(),
		UserID:    plan.UserID.Hex(),
		StartDate: plan.StartDate,
		Status:    string(plan.Status),
		Days:      make([]WorkoutDayResponse, len(plan.Days)),
	}
	for i := range plan.Days {
		resp.Days[i] = MapWorkoutDayToResponse(&plan.Days[i])
	}
	return resp
}

// GetCurrentPlan godoc
// @Summary Get the active plan
// @Description Returns the active plan of the authenticated user with its 30 days ordered by day number.
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Success 200 {object} PlanResponse
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 404 {object} gin.H "No active plan"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /plan/current [get]
func (h *PlanHandler) GetCurrentPlan(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	plan, err := h.planService.CurrentPlan(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNoActivePlan) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		log.WithError(err).Error("failed to load current plan")
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve plan.")
		return
	}
	c.JSON(http.StatusOK, MapPlanToResponse(plan))
}
