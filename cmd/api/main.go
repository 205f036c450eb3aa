package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/bajo3/Emme-Client/internal/agenda"
	"github.com/bajo3/Emme-Client/internal/api/router"
	"github.com/bajo3/Emme-Client/internal/appointments"
	appconfig "github.com/bajo3/Emme-Client/internal/config"
	"github.com/bajo3/Emme-Client/internal/http/handlers"
	"github.com/bajo3/Emme-Client/internal/observability/metrics"
	"github.com/bajo3/Emme-Client/internal/reports"
	"github.com/bajo3/Emme-Client/pkg/logging"
)

func main() {
	// Local development convenience; a missing .env is fine.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting emme agenda API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	if cfg.DatabaseURL == "" {
		logger.Error("DATABASE_URL is required")
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Redis is optional: without it every report request recomputes.
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		opts := &redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		redisClient = redis.NewClient(opts)
		defer redisClient.Close()
	} else {
		logger.Warn("REDIS_ADDR not set, report caching disabled")
	}

	agendaMetrics := metrics.NewAgendaMetrics(prometheus.DefaultRegisterer)
	reportCache := reports.NewCache(redisClient, cfg.ReportCacheTTL)

	store := appointments.NewStore(pool)
	apptService := appointments.NewService(store, logger, agendaMetrics, reportCache)
	reportService := reports.NewService(apptService, reportCache, logger, agendaMetrics)
	controller := agenda.NewController(apptService, apptService, logger)
	defer controller.Close()

	routerCfg := &router.Config{
		Logger:              logger,
		HealthHandler:       handlers.NewHealthHandler(pool),
		AgendaHandler:       handlers.NewAgendaHandler(controller, logger),
		ReportsHandler:      handlers.NewReportsHandler(reportService, logger),
		AppointmentsHandler: handlers.NewAppointmentsHandler(apptService, logger),
		MetricsHandler:      promhttp.Handler(),
		AdminAuthSecret:     cfg.AdminJWTSecret,
		CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
	}
	r := router.New(routerCfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
