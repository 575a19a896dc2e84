package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/UnknownOlympus/waypoint/internal/api"
	"github.com/UnknownOlympus/waypoint/internal/config"
	"github.com/UnknownOlympus/waypoint/internal/geocoding"
	"github.com/UnknownOlympus/waypoint/internal/metrics"
	"github.com/UnknownOlympus/waypoint/internal/optimization"
	"github.com/UnknownOlympus/waypoint/internal/repository"
	"github.com/UnknownOlympus/waypoint/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

const shutdownTimeout = 15 * time.Second

// pinger is satisfied by *pgxpool.Pool.
type pinger interface {
	Ping(ctx context.Context) error
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()
	logger := setupLogger(cfg.Env)

	if cfg.JWTSecret == "" {
		log.Fatal("JWT secret is not configured")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	pool, err := repository.NewDatabase(
		ctx, cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Password, cfg.Database.Name,
	)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pool.Close()

	repo := repository.NewRepository(pool, logger)

	geoProvider, err := geocoding.NewProvider(geocoding.ProviderConfig{
		Type:      geocoding.ProviderType(cfg.Geocoder.ProviderType),
		APIKey:    cfg.Geocoder.APIKey,
		Country:   cfg.Geocoder.Country,
		RateLimit: cfg.Geocoder.RateLimit,
		Timeout:   cfg.Geocoder.Timeout,
		Logger:    logger,
	})
	if err != nil {
		log.Fatalf("Failed to create geocoding provider: %v", err)
	}
	logger.InfoContext(ctx, "Geocoding provider initialized", "type", cfg.Geocoder.ProviderType)

	if cfg.Cache.RedisURL != "" {
		client, errCache := newRedisClient(ctx, cfg.Cache.RedisURL)
		if errCache != nil {
			log.Fatalf("Failed to connect to Redis: %v", errCache)
		}
		defer client.Close()

		geoProvider = geocoding.NewCachedProvider(
			geoProvider, client, cfg.Geocoder.Country, cfg.Cache.TTL, appMetrics, logger,
		)
		logger.InfoContext(ctx, "Geocode cache enabled", "ttl", cfg.Cache.TTL)
	}

	optimizer := optimization.NewMapboxOptimizer(optimization.MapboxConfig{
		AccessToken:    cfg.Optimizer.AccessToken,
		Profile:        cfg.Optimizer.Profile,
		MaxCoordinates: cfg.Optimizer.MaxCoordinates,
		RateLimit:      cfg.Optimizer.RateLimit,
		Timeout:        cfg.Optimizer.Timeout,
	}, logger)

	routeService := service.NewRouteService(
		logger,
		repo,
		geoProvider,
		optimizer,
		appMetrics,
		cfg.Geocoder.Workers,
		cfg.OptimizeTimeout,
	)

	if cfg.Backfill.Interval > 0 {
		backfill := service.NewBackfillWorker(
			logger,
			repo,
			geoProvider,
			appMetrics,
			cfg.Backfill.Workers,
			cfg.Backfill.BatchSize,
			cfg.Backfill.Interval,
		)
		go backfill.Run(ctx)
	}

	go startMonitoringServer(ctx, logger, reg, pool, cfg.Port)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           api.NewRouter(logger, routeService, []byte(cfg.JWTSecret), appMetrics),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.InfoContext(ctx, "Starting API server", "port", cfg.HTTPPort)
		if errServe := server.ListenAndServe(); errServe != nil && !errors.Is(errServe, http.ErrServerClosed) {
			logger.ErrorContext(ctx, "API server failed", "error", errServe)
			stop()
		}
	}()

	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.")

	<-ctx.Done()

	logger.InfoContext(ctx, "Shutdown signal received. Stopping application...")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err = server.Shutdown(shutdownCtx); err != nil {
		logger.ErrorContext(shutdownCtx, "API server shutdown failed", "error", err)
	}

	logger.InfoContext(shutdownCtx, "Application stopped gracefully.")
}

func newRedisClient(ctx context.Context, rawURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err = client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

// startMonitoringServer serves /healthz and /metrics on its own port until ctx is done.
func startMonitoringServer(
	ctx context.Context,
	log *slog.Logger,
	reg *prometheus.Registry,
	dtb pinger,
	port int,
) {
	mux := http.NewServeMux()
	mux.Handle("/healthz", healthHandler(log, dtb))
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	const (
		readTimeout  = 5 * time.Second
		writeTimeout = 10 * time.Second
	)
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	go func() {
		<-ctx.Done()
		_ = server.Close()
	}()

	log.InfoContext(ctx, "Starting monitoring server", "port", port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.ErrorContext(ctx, "Monitoring server failed", "error", err)
	}
}

// healthHandler reports 200 while the database answers pings and 503 otherwise.
func healthHandler(log *slog.Logger, dtb pinger) http.HandlerFunc {
	return func(writer http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		log.DebugContext(ctx, "Performing health checks...")

		status, body := http.StatusOK, "OK"
		if err := dtb.Ping(ctx); err != nil {
			status, body = http.StatusServiceUnavailable, "DB ping failed"
		}
		writer.WriteHeader(status)
		if _, err := writer.Write([]byte(body)); err != nil {
			log.ErrorContext(ctx, "failed to write reply", "error", err)
		}

		log.DebugContext(ctx, "Health checks completed", "status", status)
	}
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	withoutTime := func(_ []string, a slog.Attr) slog.Attr {
		if a.Key == slog.TimeKey {
			return slog.Attr{}
		}
		return a
	}

	switch env {
	case envLocal:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level:     slog.LevelDebug,
			AddSource: true,
		}))
	case envDev:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	case envProd:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level:       slog.LevelWarn,
			ReplaceAttr: withoutTime,
		}))
	default:
		logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level:       slog.LevelError,
			ReplaceAttr: withoutTime,
		}))
		logger.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))

		return logger
	}
}
