package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"alcyxob/workout-planner/internal/api"
	"alcyxob/workout-planner/internal/catalog"
	"alcyxob/workout-planner/internal/config"
	"alcyxob/workout-planner/internal/logging"
	"alcyxob/workout-planner/internal/metrics"
	"alcyxob/workout-planner/internal/planner"
	"alcyxob/workout-planner/internal/repository"
	"alcyxob/workout-planner/internal/repository/mongo"
	"alcyxob/workout-planner/internal/service"
	"alcyxob/workout-planner/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

// @title Workout Planner API
// @version 1.0
// @description API for onboarding, 30 day workout plans and set logging.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:   cfg.Log.File,
		LogToStdout:   cfg.Log.Stdout,
		LogLevel:      cfg.Log.Level,
		LogFormatJSON: cfg.Log.JSON,
	})
	log.Info("starting workout planner server")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Info("disconnecting MongoDB")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Errorf("failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.WithField("database", cfg.Database.Name).Info("database connection established")

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		mongo.EnsureIndexes(ctx, appDB)
		log.Info("index creation process completed")
	}()

	// --- Metrics ---
	var m *metrics.Metrics
	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		m = metrics.New("workout_planner", "api")
		metricsHandler = promhttp.Handler()
	}

	// --- Storage ---
	var fileStorage storage.FileStorage
	if cfg.S3.BucketName != "" {
		fileStorage, err = storage.NewS3Storage(context.Background(), cfg.S3)
		if err != nil {
			log.Fatalf("failed to initialize S3 storage: %v", err)
		}
	} else {
		log.Warn("no S3 bucket configured, exercise media links are disabled")
	}

	// --- Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	exerciseCache := catalog.NewCache(
		mongo.NewMongoExerciseRepository(appDB),
		cfg.Planner.CatalogCacheSizeMB,
		cfg.Planner.CatalogCacheTTL,
		m,
	)
	profileRepo := mongo.NewMongoProfileRepository(appDB)
	planRepo := mongo.NewMongoPlanRepository(appDB)
	dayRepo := mongo.NewMongoWorkoutDayRepository(appDB)
	itemRepo := mongo.NewMongoWorkoutExerciseRepository(appDB)
	logRepo := mongo.NewMongoExerciseLogRepository(appDB)

	// --- Services ---
	generator := planner.NewGenerator(
		repository.NewPlanStore(exerciseCache, planRepo, dayRepo, itemRepo),
		planner.WithMinPoolSize(cfg.Planner.MinPoolSize),
		planner.WithVariety(cfg.Planner.VarietySeed),
		planner.WithMetrics(m),
	)
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	profileService := service.NewProfileService(profileRepo, generator)
	planService := service.NewPlanService(planRepo, dayRepo)
	workoutService := service.NewWorkoutService(planRepo, dayRepo, itemRepo, logRepo, exerciseCache,
		fileStorage, cfg.S3.MediaURLExpiry, m)
	exerciseService := service.NewExerciseService(exerciseCache)

	// --- Router ---
	if gin.Mode() == gin.DebugMode && cfg.Log.JSON {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(cfg.Server.CORSOrigins, m)
	api.SetupRoutes(router, cfg.JWT.Secret, cfg.Metrics.Path, metricsHandler,
		authService, profileService, planService, workoutService, exerciseService)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// --- Graceful Shutdown ---
	go func() {
		log.Infof("server listening on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Errorf("server forced to shutdown: %v", err)
	}
	log.Info("server exiting")
}
