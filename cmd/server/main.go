package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gamepulse/dashboard/internal/cache"
	"gamepulse/dashboard/internal/config"
	"gamepulse/dashboard/internal/database"
	"gamepulse/dashboard/internal/dataset"
	"gamepulse/dashboard/internal/handler"
	"gamepulse/dashboard/internal/hub"

	"github.com/gin-gonic/gin"

	// Swagger imports
	_ "gamepulse/dashboard/docs"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

// @title           Games Analytics API
// @version         1.0
// @description     KPIs and charts over the Steam games dataset.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.AppConfig
	config.SetupLogger(cfg.LogLevel)

	opts := dataset.DefaultOptions(cfg.DataDir)
	opts.DataURL = cfg.DataURL
	opts.Finalize.YearsBack = cfg.YearsBack

	// Connect to the snapshot store
	var snapshots handler.SnapshotWriter
	if cfg.SnapshotDSN != "" {
		if err := database.Connect(cfg.SnapshotDSN); err != nil {
			slog.Error("Failed to connect to snapshot store", "error", err)
			os.Exit(1)
		}
		store := database.NewSnapshotStore(database.DB)
		opts.Snapshot = store
		snapshots = store
	}

	provider := dataset.NewProvider(dataset.NewLoader(opts), cfg.CacheTTL)

	var sectionCache cache.Cache = cache.NewMemory(cfg.SectionCacheTTL, 512)
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedis(cfg.RedisURL, cfg.SectionCacheTTL)
		if err != nil {
			slog.Error("Invalid REDIS_URL", "error", err)
			os.Exit(1)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err = rc.Ping(ctx)
		cancel()
		if err != nil {
			slog.Warn("Redis unreachable, caching sections in process", "error", err)
		} else {
			sectionCache = rc
			defer rc.Close()
		}
	}

	h := handler.New(provider, sectionCache, hub.NewHub(), snapshots, handler.Settings{
		YearsBackDefault:  cfg.YearsBackDefault,
		JWTSecret:         cfg.JWTSecret,
		AdminPasswordHash: cfg.AdminPasswordHash,
	})
	h.PublishReloads(provider)

	if _, err := provider.Current(context.Background()); err != nil {
		slog.Warn("Initial dataset load failed", "error", err)
	}

	router := gin.Default()

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	h.Register(router)

	addr := fmt.Sprintf(":%d", cfg.Port)
	slog.Info("Server is running", "addr", addr)
	slog.Info("Swagger UI is available", "url", fmt.Sprintf("http://localhost:%d/swagger/index.html", cfg.Port))
	if err := router.Run(addr); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}
