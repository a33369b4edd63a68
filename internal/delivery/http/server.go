package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/schedule-microservice/internal/config"
	"github.com/schedule-microservice/internal/delivery/http/handler"
	"github.com/schedule-microservice/internal/delivery/http/middleware"
)

// HealthChecker reports whether a backing service is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Server is the Fiber HTTP server for the schedule API.
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	scheduleHandler *handler.ScheduleHandler

	dbHealth    HealthChecker
	redisHealth HealthChecker
}

func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	scheduleHandler *handler.ScheduleHandler,
	dbHealth HealthChecker,
	redisHealth HealthChecker,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Schedule Microservice",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:             app,
		config:          cfg,
		logger:          logger,
		scheduleHandler: scheduleHandler,
		dbHealth:        dbHealth,
		redisHealth:     redisHealth,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	api.Get("/health", s.health)

	schedules := api.Group("/schedules")
	schedules.Post("/", s.scheduleHandler.CreateSchedule)
	schedules.Get("/", s.scheduleHandler.ListSchedules)
	schedules.Get("/:id", s.scheduleHandler.GetSchedule)
	schedules.Put("/:id", s.scheduleHandler.UpdateSchedule)
	schedules.Delete("/:id", s.scheduleHandler.DeleteSchedule)
	schedules.Post("/:id/recalculate", s.scheduleHandler.Recalculate)
	schedules.Post("/:id/slots/:slot_id/restaurant", s.scheduleHandler.SelectRestaurant)
}

func (s *Server) health(c *fiber.Ctx) error {
	status := "healthy"
	code := fiber.StatusOK
	checks := fiber.Map{}

	if s.dbHealth != nil {
		if err := s.dbHealth.Health(c.Context()); err != nil {
			checks["database"] = err.Error()
			status = "degraded"
			code = fiber.StatusServiceUnavailable
		} else {
			checks["database"] = "ok"
		}
	}
	if s.redisHealth != nil {
		if err := s.redisHealth.Health(c.Context()); err != nil {
			checks["redis"] = err.Error()
			status = "degraded"
			code = fiber.StatusServiceUnavailable
		} else {
			checks["redis"] = "ok"
		}
	}

	return c.Status(code).JSON(fiber.Map{
		"status": status,
		"checks": checks,
		"time":   time.Now(),
	})
}

// Start begins listening on the configured address.
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "INTERNAL_SERVER_ERROR",
				"message": err.Error(),
			},
		})
	}
}
