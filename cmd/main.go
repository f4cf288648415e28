package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vigorhq/vigor-backend/internal/clients/redis"
	"github.com/vigorhq/vigor-backend/internal/config"
	"github.com/vigorhq/vigor-backend/internal/data/repos"
	"github.com/vigorhq/vigor-backend/internal/db"
	httpserver "github.com/vigorhq/vigor-backend/internal/http"
	httpH "github.com/vigorhq/vigor-backend/internal/http/handlers"
	httpMW "github.com/vigorhq/vigor-backend/internal/http/middleware"
	"github.com/vigorhq/vigor-backend/internal/modules/energy"
	"github.com/vigorhq/vigor-backend/internal/modules/insights"
	"github.com/vigorhq/vigor-backend/internal/observability"
	"github.com/vigorhq/vigor-backend/internal/platform/envutil"
	"github.com/vigorhq/vigor-backend/internal/platform/logger"
	"github.com/vigorhq/vigor-backend/internal/platform/openai"
)

func main() {
	// Logger
	log, err := logger.New(envutil.String("LOG_MODE", "development"))
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Config
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Config load failed", "error", err)
	}

	// Tracing
	tracingEnabled := envutil.Bool("OTEL_ENABLED", false)
	shutdownOtel := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: "vigor",
		Environment: envutil.String("ENVIRONMENT", "development"),
	})
	defer func() {
		if err := shutdownOtel(context.Background()); err != nil {
			log.Warn("Tracer shutdown failed", "error", err)
		}
	}()

	// Database
	dbService, err := db.NewService(cfg.Postgres, log)
	if err != nil {
		log.Fatal("Database init failed", "error", err)
	}
	if err := dbService.AutoMigrateAll(); err != nil {
		log.Fatal("Database migration failed", "error", err)
	}
	gdb := dbService.DB()

	// Repos
	log.Info("Setting up repos...")
	userRepo := repos.NewUserRepo(gdb, log)
	checkInRepo := repos.NewCheckInRepo(gdb, log)
	healthRecordRepo := repos.NewHealthRecordRepo(gdb, log)
	habitRecordRepo := repos.NewHabitRecordRepo(gdb, log)
	energyScoreRepo := repos.NewEnergyScoreRepo(gdb, log)
	habitPatternRepo := repos.NewHabitPatternRepo(gdb, log)

	// Score event bus (optional)
	var bus redis.ScoreEventBus
	if cfg.Redis.Addr != "" {
		bus, err = redis.NewScoreEventBus(cfg.Redis, log)
		if err != nil {
			log.Warn("Score event bus unavailable, continuing without it", "error", err)
			bus = nil
		} else {
			defer bus.Close()
		}
	}

	// Generator client (optional: explanations fall back without it)
	var aiClient openai.Client
	if cfg.Generator.APIKey != "" {
		aiClient, err = openai.NewClient(cfg.Generator, log)
		if err != nil {
			log.Warn("Generator client init failed, explanations will use the fallback", "error", err)
			aiClient = nil
		}
	} else {
		log.Warn("No generator API key configured, explanations will use the fallback")
	}

	// Usecases
	log.Info("Setting up usecases...")
	energyUC := energy.New(energy.UsecasesDeps{
		Log:           log,
		AI:            aiClient,
		Bus:           bus,
		Users:         userRepo,
		CheckIns:      checkInRepo,
		HealthRecords: healthRecordRepo,
		Habits:        habitRecordRepo,
		Scores:        energyScoreRepo,
	})
	insightsUC := insights.New(insights.UsecasesDeps{
		Log:      log,
		Habits:   habitRecordRepo,
		Scores:   energyScoreRepo,
		Patterns: habitPatternRepo,
	})

	// HTTP
	log.Info("Setting up router...")
	server := httpserver.NewServer(httpserver.RouterConfig{
		Log:            log,
		AuthMiddleware: httpMW.NewAuthMiddleware(log, cfg.Auth.JWTSecret),
		TracingEnabled: tracingEnabled,

		HealthHandler:       httpH.NewHealthHandler(),
		CheckInHandler:      httpH.NewCheckInHandler(log, energyUC),
		ScoreHandler:        httpH.NewScoreHandler(log, energyUC),
		InsightsHandler:     httpH.NewInsightsHandler(log, insightsUC),
		HealthRecordHandler: httpH.NewHealthRecordHandler(log, energyUC),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info("Server listening", "port", cfg.Server.Port)
		errCh <- server.Run(":" + cfg.Server.Port)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatal("Server failed", "error", err)
		}
	case sig := <-stop:
		log.Info("Shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Error("Shutdown failed", "error", err)
		}
	}
}
