package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/dropsight-backend/api/routes"
	"github.com/angelmondragon/dropsight-backend/internal/analytics"
	"github.com/angelmondragon/dropsight-backend/internal/drops"
	"github.com/angelmondragon/dropsight-backend/internal/engine"
	"github.com/angelmondragon/dropsight-backend/internal/inventory"
	"github.com/angelmondragon/dropsight-backend/internal/orders"
	"github.com/angelmondragon/dropsight-backend/pkg/config"
	"github.com/angelmondragon/dropsight-backend/pkg/db"
	"github.com/angelmondragon/dropsight-backend/pkg/logger"
	"github.com/angelmondragon/dropsight-backend/pkg/metrics"
	"github.com/angelmondragon/dropsight-backend/pkg/migrate"
	"github.com/angelmondragon/dropsight-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	engineMetrics := metrics.NewEngineMetrics(registry)

	analysisEngine := engine.New(engine.Config{DefaultBaseline: cfg.Engine.DefaultBaseline}, logg, engineMetrics)

	dropService, err := drops.NewService(drops.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create drops service", err)
		os.Exit(1)
	}

	inventoryService, err := inventory.NewService(inventory.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create inventory service", err)
		os.Exit(1)
	}

	analyticsService, err := analytics.NewService(
		dropService,
		orders.NewRepository(dbClient.DB()),
		inventoryService,
		analysisEngine,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create analytics service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, registry, dropService, inventoryService, analyticsService),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
