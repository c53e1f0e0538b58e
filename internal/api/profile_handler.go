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

// ProfileHandler serves onboarding.
type ProfileHandler struct {
	profileService service.ProfileService
}

func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// ProfileRequest carries the onboarding answers. Values are checked by the
// service so that every field error has the same shape.
type ProfileRequest struct {
	Goal                   string   `json:"goal"`
	Equipment              []string `json:"equipment"`
	TimePerWorkout         int      `json:"timePerWorkout"`
	ExperienceLevel        string   `json:"experienceLevel"`
	RecentConsistency      string   `json:"recentConsistency"`
	PainAreas              []string `json:"painAreas"`
	MovementRestrictions   []string `json:"movementRestrictions"`
	WorkoutStylePreference string   `json:"workoutStylePreference"`
	FocusAreas             []string `json:"focusAreas"`
	IntensityPreference    string   `json:"intensityPreference"`
	StartingAbilityPushups string   `json:"startingAbilityPushups"`
	StartingAbilitySquats  string   `json:"startingAbilitySquats"`
	StartingAbilityPlank   string   `json:"startingAbilityPlank"`
	SleepBucket            string   `json:"sleepBucket"`
	PreferenceExclusions   []string `json:"preferenceExclusions"`
}

func (r *ProfileRequest) toDomain() domain.Profile {
	return domain.Profile{
		Goal:                   r.Goal,
		Equipment:              r.Equipment,
		TimePerWorkout:         r.TimePerWorkout,
		ExperienceLevel:        r.ExperienceLevel,
		RecentConsistency:      r.RecentConsistency,
		PainAreas:              r.PainAreas,
		MovementRestrictions:   r.MovementRestrictions,
		WorkoutStylePreference: r.WorkoutStylePreference,
		FocusAreas:             r.FocusAreas,
		IntensityPreference:    r.IntensityPreference,
		StartingAbilityPushups: r.StartingAbilityPushups,
		StartingAbilitySquats:  r.StartingAbilitySquats,
		StartingAbilityPlank:   r.StartingAbilityPlank,
		SleepBucket:            r.SleepBucket,
		PreferenceExclusions:   r.PreferenceExclusions,
	}
}

type ProfileResponse struct {
	ProfileRequest
	UpdatedAt time.Time `json:"updatedAt"`
}

func MapProfileToResponse(p *domain.Profile) ProfileResponse {
	return ProfileResponse{
		ProfileRequest: ProfileRequest{
			Goal:                   p.Goal,
			Equipment:              nonNil(p.Equipment),
			TimePerWorkout:         p.TimePerWorkout,
			ExperienceLevel:        p.ExperienceLevel,
			RecentConsistency:      p.RecentConsistency,
			PainAreas:              nonNil(p.PainAreas),
			MovementRestrictions:   nonNil(p.MovementRestrictions),
			WorkoutStylePreference: p.WorkoutStylePreference,
			FocusAreas:             nonNil(p.FocusAreas),
			IntensityPreference:    p.IntensityPreference,
			StartingAbilityPushups: p.StartingAbilityPushups,
			StartingAbilitySquats:  p.StartingAbilitySquats,
			StartingAbilityPlank:   p.StartingAbilityPlank,
			SleepBucket:            p.SleepBucket,
			PreferenceExclusions:   nonNil(p.PreferenceExclusions),
		},
		UpdatedAt: p.UpdatedAt,
	}
}

// GeneratedPlanResponse is returned after onboarding.
type GeneratedPlanResponse struct {
	Plan     PlanResponse `json:"plan"`
	PoolSize int          `json:"poolSize"`
	Warnings []string     `json:"warnings"`
}

// GetProfile godoc
// @Summary Get the onboarding profile
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ProfileResponse
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 404 {object} gin.H "Profile not found"
// @Router /profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		log.WithError(err).Error("failed to load profile")
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve profile.")
		return
	}
	c.JSON(http.StatusOK, MapProfileToResponse(profile))
}

// SubmitProfile godoc
// @Summary Submit onboarding answers
// @Description Stores the profile and generates a new 30 day plan, replacing the active one.
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body ProfileRequest true "Onboarding answers"
// @Success 201 {object} GeneratedPlanResponse
// @Failure 400 {object} gin.H "Invalid profile"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 409 {object} gin.H "Concurrent submission"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /profile [post]
func (h *ProfileHandler) SubmitProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	result, err := h.profileService.SubmitProfile(c.Request.Context(), userID, req.toDomain())
	if err != nil {
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": vErr.Error(), "field": vErr.Field})
			return
		}
		if errors.Is(err, service.ErrConcurrentSubmission) {
			abortWithError(c, http.StatusConflict, "A plan is already being generated, try again.")
			return
		}
		log.WithError(err).WithField("user_id", userID.Hex()).Error("failed to generate plan")
		abortWithError(c, http.StatusInternalServerError, "Failed to generate plan.")
		return
	}

	warnings := result.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	c.JSON(http.StatusCreated, GeneratedPlanResponse{
		Plan:     MapPlanToResponse(result.Plan),
		PoolSize: result.PoolSize,
		Warnings: warnings,
	})
}
