package api

import (
	"net/http"
	"slices"

	"alcyxob/workout-planner/internal/metrics"
	"alcyxob/workout-planner/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter builds the engine with recovery, request logging, metrics and
// CORS for the given origins. m may be nil. An empty origin list or "*"
// allows any origin.
func NewRouter(corsOrigins []string, m *metrics.Metrics) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger())
	if m != nil {
		router.Use(RequestMetrics(m))
	}

	corsConfig := cors.DefaultConfig()
	if len(corsOrigins) == 0 || slices.Contains(corsOrigins, "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = corsOrigins
	}
	corsConfig.AddAllowHeaders("Authorization", RequestIDHeader)
	corsConfig.AddExposeHeaders(RequestIDHeader)
	router.Use(cors.New(corsConfig))
	return router
}

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	metricsPath string,
	metricsHandler http.Handler, // nil disables the metrics route
	authService service.AuthService,
	profileService service.ProfileService,
	planService service.PlanService,
	workoutService service.WorkoutService,
	exerciseService service.ExerciseService,
) {
	authHandler := NewAuthHandler(authService)
	profileHandler := NewProfileHandler(profileService)
	planHandler := NewPlanHandler(planService)
	workoutHandler := NewWorkoutHandler(workoutService)
	exerciseHandler := NewExerciseHandler(exerciseService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	if metricsHandler != nil && metricsPath != "" {
		router.GET(metricsPath, gin.WrapH(metricsHandler))
	}

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userIDStr, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			c.JSON(http.StatusOK, gin.H{"userId": userIDStr})
		})

		// --- Onboarding ---
		protected.GET("/profile", profileHandler.GetProfile)
		protected.POST("/profile", profileHandler.SubmitProfile)

		// --- Calendar ---
		protected.GET("/plan/current", planHandler.GetCurrentPlan)

		// --- Workout days ---
		workoutGroup := protected.Group("/workouts/:dayId")
		{
			workoutGroup.GET("", workoutHandler.GetWorkoutDay)
			workoutGroup.POST("/log", workoutHandler.LogSet)
			workoutGroup.POST("/complete", workoutHandler.CompleteWorkoutDay)
		}

		// --- Exercise catalog ---
		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.GET("", exerciseHandler.ListExercises)
			exerciseGroup.GET("/:exerciseId", exerciseHandler.GetExercise)
		}
	}
}
