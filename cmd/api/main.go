// @title Career Guide API
// @version 1.0
// @description Career guidance assessments: lifecycle, scoring and AI enrichment.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"career-guide/internal/adapter"
	"career-guide/internal/adapter/enrichment"
	"career-guide/internal/cache"
	"career-guide/internal/config"
	"career-guide/internal/database"
	"career-guide/internal/domain"
	"career-guide/internal/logger"
	"career-guide/internal/server"

	_ "career-guide/cmd/api/docs"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if cfg.DB.AutoMigrate {
		migrator, err := database.NewEmbeddedMigrator(db)
		if err != nil {
			appLogger.Fatal("Failed to load migrations", zap.Error(err))
		}
		applied, err := migrator.Up(context.Background())
		migrator.Close()
		if err != nil {
			appLogger.Fatal("Failed to run migrations", zap.Error(err))
		}
		appLogger.Info("Migrations applied", zap.Int("count", applied))
	}

	var cacheAdapter domain.Cache
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(context.Background(), cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
	}

	model, err := enrichment.NewModel(cfg.LLM)
	if err != nil {
		appLogger.Fatal("Failed to create LLM client", zap.Error(err))
	}

	app, err := server.New(server.Dependencies{
		Config: cfg,
		DB:     db,
		Cache:  cacheAdapter,
		Model:  model,
	})
	if err != nil {
		appLogger.Fatal("Failed to build server", zap.Error(err))
	}

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
