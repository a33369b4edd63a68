package main

// @title Schedule Microservice API
// @version 1.0.0
// @description Travel schedule service: creates schedules, predicts the drive with the route provider, resolves where the traveler will be at each meal time, and suggests nearby restaurants for every resolved location.

// @contact.name API Support
// @contact.email support@schedule-microservice.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/schedule-microservice/docs"
	"github.com/schedule-microservice/internal/config"
	httpDelivery "github.com/schedule-microservice/internal/delivery/http"
	"github.com/schedule-microservice/internal/delivery/http/handler"
	"github.com/schedule-microservice/internal/infrastructure/kakao"
	"github.com/schedule-microservice/internal/infrastructure/tmap"
	"github.com/schedule-microservice/internal/pkg/logger"
	"github.com/schedule-microservice/internal/repository/cache"
	"github.com/schedule-microservice/internal/repository/postgres"
	redisRepo "github.com/schedule-microservice/internal/repository/redis"
	"github.com/schedule-microservice/internal/resolver"
	"github.com/schedule-microservice/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Schedule Microservice")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}
	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize repositories and providers
	scheduleRepo := postgres.NewScheduleRepository(db, log)
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)
	routeProvider := tmap.NewTmapClient(&cfg.Tmap, log)
	placeProvider := kakao.NewKakaoClient(&cfg.Kakao, log)

	log.Info("Repositories initialized")

	// 7. Initialize use case
	scheduleUC := usecase.NewScheduleUseCase(
		scheduleRepo,
		routeProvider,
		placeProvider,
		cacheRepo,
		streamRepo,
		resolver.New(log),
		log,
		cfg.Cache.ScheduleCacheTTL,
	)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP handlers and server
	scheduleHandler := handler.NewScheduleHandler(scheduleUC, log)

	server := httpDelivery.NewServer(cfg, log, scheduleHandler, db, redisClient)

	log.Info("HTTP server initialized")

	// 9. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 10. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
