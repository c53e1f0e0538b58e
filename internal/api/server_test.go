package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"alcyxob/workout-planner/internal/catalog"
	"alcyxob/workout-planner/internal/metrics"
	"alcyxob/workout-planner/internal/planner"
	"alcyxob/workout-planner/internal/repository/memory"
	"alcyxob/workout-planner/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/require"
)

const (
	testJWTSecret = "api-test-secret"
	testPassword  = "correct-horse"
)

const seedCatalog = `
exercises:
  - {name: Arm circles, workoutType: Mobility and recovery, phases: [Stretching]}
  - {name: Cat cow, workoutType: Mobility and recovery, phases: [Stretching], focusAreas: [Back and posture]}
  - {name: Hip openers, workoutType: Mobility and recovery, phases: [Stretching]}
  - {name: Bodyweight squat, movementPattern: Squat, phases: [Main exercise], mediaKey: videos/squat.mp4}
  - {name: Glute bridge, movementPattern: Hinge, phases: [Main exercise]}
  - {name: Reverse lunge, movementPattern: Lunge, phases: [Main exercise]}
  - {name: Incline push-up, movementPattern: Push, phases: [Main exercise]}
  - {name: Push-up, movementPattern: Push, phases: [Main exercise]}
  - {name: Towel row, movementPattern: Pull, phases: [Main exercise], focusAreas: [Back and posture]}
  - {name: Superman pull, movementPattern: Pull, phases: [Main exercise]}
  - {name: Front plank, movementPattern: Core, phases: [Main exercise]}
  - {name: Dead bug, movementPattern: Core, phases: [Main exercise]}
  - {name: Marching in place, workoutType: Conditioning, phases: [Main exercise]}
  - {name: Step jacks, workoutType: Conditioning, phases: [Main exercise]}
  - {name: Hamstring stretch, workoutType: Mobility and recovery, phases: [Cool off, Stretching]}
  - {name: Child's pose, workoutType: Mobility and recovery, phases: [Cool off]}
`

type testServer struct {
	router  *gin.Engine
	metrics *metrics.Metrics
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()

	db := memory.NewDB()
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegisterer("planner", "api_test", reg)

	exercises, err := catalog.Load(strings.NewReader(seedCatalog), catalog.FormatYAML)
	require.NoError(t, err)
	cache := catalog.NewCache(db.Exercises(), 1, time.Minute, m)
	_, err = catalog.Import(ctx, cache, exercises)
	require.NoError(t, err)

	generator := planner.NewGenerator(db.PlanStore(), planner.WithMetrics(m))
	authService := service.NewAuthService(db.Users(), testJWTSecret, time.Hour)
	profileService := service.NewProfileService(db.Profiles(), generator)
	planService := service.NewPlanService(db.Plans(), db.WorkoutDays())
	workoutService := service.NewWorkoutService(db.Plans(), db.WorkoutDays(), db.WorkoutExercises(),
		db.ExerciseLogs(), cache, nil, 0, m)
	exerciseService := service.NewExerciseService(cache)

	router := NewRouter(nil, m)
	SetupRoutes(router, testJWTSecret, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		authService, profileService, planService, workoutService, exerciseService)

	return &testServer{router: router, metrics: m}
}

// do sends a JSON request and returns the recorder. body may be nil.
func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// signUp registers a user and returns a token for them.
func (s *testServer) signUp(t *testing.T, email string) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/v1/auth/register", "", RegisterRequest{
		Name: "Test User", Email: email, Password: testPassword,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{Email: email, Password: testPassword})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp LoginResponse
	decode(t, w, &resp)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func validProfileRequest() ProfileRequest {
	return ProfileRequest{
		Goal:                   "General fitness",
		Equipment:              []string{"No equipment"},
		TimePerWorkout:         30,
		ExperienceLevel:        "beginner",
		PainAreas:              []string{"None"},
		WorkoutStylePreference: "Mix of both",
		IntensityPreference:    "Moderate",
		SleepBucket:            "7-8 hours",
	}
}

func newRequest(method, path string) *http.Request {
	return httptest.NewRequest(method, path, nil)
}

func serve(s *testServer, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}
