package server

import (
	"context"
	"time"

	"career-guide/internal/adapter/enrichment"
	"career-guide/internal/config"
	"career-guide/internal/domain"
	"career-guide/internal/handler"
	"career-guide/internal/logger"
	"career-guide/internal/middleware"
	"career-guide/internal/repository"
	"career-guide/internal/service"
	"career-guide/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/jmoiron/sqlx"
	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

const (
	defaultAssessmentTTL = 5 * time.Minute
	defaultProfileTTL    = 30 * time.Minute
)

// Dependencies are the external resources the API runs on. Cache and Model
// are optional.
type Dependencies struct {
	Config *config.Config
	DB     *sqlx.DB
	Cache  domain.Cache
	Model  llms.Model
	Clock  domain.Clock
}

// healthHandler reports 503 when the database is unreachable. A failing cache
// only degrades the service.
func healthHandler(deps Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()

		status := fiber.Map{"status": "ok", "database": "ok"}
		if err := deps.DB.PingContext(ctx); err != nil {
			logger.Get().Error("Health check: database unreachable", zap.Error(err))
			status["status"] = "unavailable"
			status["database"] = "unreachable"
			return c.Status(fiber.StatusServiceUnavailable).JSON(status)
		}
		if deps.Cache != nil {
			status["cache"] = "ok"
			if err := deps.Cache.Ping(ctx); err != nil {
				logger.Get().Warn("Health check: cache unreachable", zap.Error(err))
				status["status"] = "degraded"
				status["cache"] = "unreachable"
			}
		}
		return c.JSON(status)
	}
}

// New wires repositories, services and handlers into a fiber app.
func New(deps Dependencies) (*fiber.App, error) {
	cfg := deps.Config
	appLogger := logger.Get()

	assessmentRepo := repository.NewSQLXAssessmentRepository(deps.DB)
	profileRepo := repository.NewSQLXUserProfileRepository(deps.DB)
	tm := repository.NewTransactionManagerAdapter(deps.DB)

	var assessmentCache *service.AssessmentCache
	if deps.Cache != nil {
		assessmentCache = service.NewAssessmentCache(deps.Cache,
			cfg.ParseTTLStringOrDefault(cfg.CacheTTLs.Assessment, defaultAssessmentTTL),
			cfg.ParseTTLStringOrDefault(cfg.CacheTTLs.Profile, defaultProfileTTL))
	} else {
		appLogger.Warn("No cache configured, assessment reads go to the database")
	}

	var enricher domain.Enricher
	if deps.Model != nil {
		enricher = enrichment.NewLLMEnricher(deps.Model, cfg.LLM.Temperature)
		appLogger.Info("AI enrichment enabled", zap.String("provider", cfg.LLM.Provider), zap.String("model", cfg.LLM.Model))
	} else {
		appLogger.Info("AI enrichment disabled, fallback results will be used")
	}

	assessmentService := service.NewAssessmentService(assessmentRepo, profileRepo, tm, assessmentCache, service.AssessmentServiceConfig{
		Enricher:          enricher,
		EnrichmentTimeout: cfg.LLM.Timeout,
		Clock:             deps.Clock,
	})
	userService := service.NewUserService(profileRepo, assessmentCache)
	authService, err := service.NewAuthService(cfg.Auth.JWT)
	if err != nil {
		return nil, err
	}

	v := validation.NewValidator()

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,X-Request-ID",
		MaxAge:       300,
	}))

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/health", healthHandler(deps))

	handler.SetupRoutes(app.Group("/api"), handler.Routes{
		Auth:        authService,
		Assessments: handler.NewAssessmentHandler(assessmentService, v),
		Users:       handler.NewUserHandler(userService),
		Validation:  middleware.NewValidationMiddleware(v),
	})

	return app, nil
}
