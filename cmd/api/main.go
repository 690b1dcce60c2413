package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/panoport/panoport-backend/api/routes"
	"github.com/panoport/panoport-backend/internal/cart"
	"github.com/panoport/panoport-backend/internal/panels"
	"github.com/panoport/panoport-backend/internal/rules"
	"github.com/panoport/panoport-backend/pkg/config"
	"github.com/panoport/panoport-backend/pkg/db"
	"github.com/panoport/panoport-backend/pkg/logger"
	"github.com/panoport/panoport-backend/pkg/metrics"
	"github.com/panoport/panoport-backend/pkg/migrate"
	"github.com/panoport/panoport-backend/pkg/redis"
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

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
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

	redisClient, err := redis.New(context.Background(), cfg.Redis)
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
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	pricingMetrics := metrics.NewPricingMetrics(registry)

	ruleService, err := rules.NewService(rules.NewRepository(dbClient.DB()), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create rule service", err)
		os.Exit(1)
	}

	panelService, err := panels.NewService(panels.NewRepository(dbClient.DB()), logg, pricingMetrics, cfg.Pricing.DefaultMinRentalDays)
	if err != nil {
		logg.Error(context.Background(), "failed to create panel service", err)
		os.Exit(1)
	}

	designFee, err := cfg.Pricing.DesignFee()
	if err != nil {
		logg.Error(context.Background(), "invalid design service fee", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(
		cart.NewRepository(dbClient.DB()),
		dbClient,
		panels.NewRepository(dbClient.DB()),
		panelService,
		ruleService,
		designFee,
		pricingMetrics,
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:       cfg,
			Logger:       logg,
			DB:           dbClient,
			Redis:        redisClient,
			Registry:     registry,
			CartService:  cartService,
			PanelService: panelService,
			RuleService:  ruleService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
