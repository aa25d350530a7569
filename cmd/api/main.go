package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-matching-backend/config"
	_ "go-matching-backend/docs" // Important for Swagger
	v1 "go-matching-backend/internal/delivery/http/v1"
	"go-matching-backend/internal/matching"
	"go-matching-backend/internal/repository/postgres"
	"go-matching-backend/internal/usecase"
	"go-matching-backend/pkg/auth"
	"go-matching-backend/pkg/database"
	"go-matching-backend/pkg/logger"
	"go-matching-backend/pkg/redis"
	"go-matching-backend/pkg/validation"
)

// @title           Matching Backend API
// @version         1.0
// @description     Ranks job postings and candidate profiles by compatibility.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting matching backend", "port", cfg.Port)

	ctx := context.Background()

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl, database.PoolConfig{
		MaxConns: int32(cfg.DBMaxConns),
		MinConns: int32(cfg.DBMinConns),
	})
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (optional, rate limiter falls back to memory)
	if cfg.RedisURL != "" {
		if err := redis.Initialize(ctx, redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable, using in-memory rate limiting", "error", err)
		} else {
			defer redis.Close()
		}
	}

	// 5. Setup Repositories
	jobRepo := postgres.NewJobRepository(dbPool)
	candidateRepo := postgres.NewCandidateRepository(dbPool)

	// 6. Setup UseCases
	ranker := matching.NewRanker(nil,
		matching.WithWorkers(cfg.MatchWorkers),
		matching.WithParallelThreshold(cfg.MatchParallelThreshold),
	)
	matchUC := usecase.NewMatchUsecase(jobRepo, candidateRepo, ranker, validation.New(), usecase.MatchOptions{
		DefaultLimit:  cfg.MatchDefaultLimit,
		ExportMaxRows: cfg.MatchExportMaxRows,
	})

	// 7. Setup Auth Provider (JWKS)
	var jwksProvider *auth.Provider
	if cfg.JWKSURL != "" {
		jwksProvider = auth.NewProvider(cfg.JWKSURL)
	}

	healthChecks := map[string]usecase.HealthCheck{"database": dbPool.Ping}
	if redis.Client() != nil {
		healthChecks["redis"] = redis.HealthCheck
	}
	healthUC := usecase.NewHealthUsecase(healthChecks)

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		MatchUC:      matchUC,
		HealthUC:     healthUC,
		JWKSProvider: jwksProvider,
		Config:       cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
