package main

import (
	"fmt"
	"os"

	"staymetrics/internal/delivery"
	"staymetrics/internal/infrastructure"
	"staymetrics/internal/usecase"
	"staymetrics/pkg/config"
	"staymetrics/pkg/logger"
	"staymetrics/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)
	log.Info("Starting portfolio analytics service")

	m := metrics.New()

	providerClient := infrastructure.NewProviderClient(
		cfg.Providers.ReservationAPIURL,
		cfg.Providers.PropertyAPIURL,
		cfg.Providers.ServiceRequestAPIURL,
		cfg.Analytics.RequestTimeout,
		cfg.Analytics.RateLimitPerSecond,
		log,
		m,
	)

	snapshotRepo := infrastructure.NewSnapshotRepository(cfg.Analytics.SnapshotHistorySize, log)

	analyticsService := usecase.NewAnalyticsService(
		providerClient,
		providerClient,
		providerClient,
		snapshotRepo,
		log,
		m,
		cfg.Analytics.ReservationFetchLimit,
		nil,
	)

	handlers := delivery.NewHTTPHandlers(analyticsService, log, m)
	router := delivery.NewHTTPRouter(handlers, log, m, cfg.Analytics.RequestTimeout)

	engine := router.SetupRoutes()

	log.WithField("port", cfg.Server.Port).Info("HTTP server listening")
	if err := engine.Run(":" + cfg.Server.Port); err != nil {
		log.WithError(err).Error("HTTP server stopped")
		os.Exit(1)
	}
}
