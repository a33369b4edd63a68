package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/schedule-microservice/internal/config"
	"github.com/schedule-microservice/internal/infrastructure/kakao"
	"github.com/schedule-microservice/internal/infrastructure/tmap"
	"github.com/schedule-microservice/internal/pkg/logger"
	"github.com/schedule-microservice/internal/repository/cache"
	"github.com/schedule-microservice/internal/repository/postgres"
	redisRepo "github.com/schedule-microservice/internal/repository/redis"
	"github.com/schedule-microservice/internal/resolver"
	"github.com/schedule-microservice/internal/usecase"
	"github.com/schedule-microservice/internal/worker"
	workerschedule "github.com/schedule-microservice/internal/worker/schedule"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Schedule Calculation Worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Int("max_retries", cfg.Worker.MaxRetries))

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

	// 5. Initialize repositories and providers
	scheduleRepo := postgres.NewScheduleRepository(db, log)
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)
	routeProvider := tmap.NewTmapClient(&cfg.Tmap, log)
	placeProvider := kakao.NewKakaoClient(&cfg.Kakao, log)

	// 6. Initialize use case
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

	// 7. Initialize worker
	calculationWorker := workerschedule.NewCalculationWorker(
		streamRepo,
		scheduleUC,
		cfg.Worker.ConsumerGroup,
		cfg.Worker.MaxRetries,
		log,
	)

	// 8. Create worker manager and register workers
	workerManager := worker.NewManager(log)
	workerManager.Register(calculationWorker)

	// 9. Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	cancel()

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
