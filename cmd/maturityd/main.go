package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	mathttp "github.com/adoptiq/maturity/internal/adapter/http"
	matnats "github.com/adoptiq/maturity/internal/adapter/nats"
	"github.com/adoptiq/maturity/internal/adapter/natskv"
	"github.com/adoptiq/maturity/internal/adapter/otel"
	"github.com/adoptiq/maturity/internal/adapter/postgres"
	"github.com/adoptiq/maturity/internal/adapter/ristretto"
	"github.com/adoptiq/maturity/internal/adapter/tiered"
	"github.com/adoptiq/maturity/internal/adapter/ws"
	"github.com/adoptiq/maturity/internal/catalog"
	"github.com/adoptiq/maturity/internal/config"
	"github.com/adoptiq/maturity/internal/logger"
	"github.com/adoptiq/maturity/internal/middleware"
	"github.com/adoptiq/maturity/internal/port/cache"
	"github.com/adoptiq/maturity/internal/port/clock"
	"github.com/adoptiq/maturity/internal/resilience"
	"github.com/adoptiq/maturity/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log, logCloser := logger.New(cfg.Logging)
	defer logCloser.Close()
	slog.SetDefault(log)
	slog.Info("config loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Logging.Level,
		"pg_max_conns", cfg.Postgres.MaxConns,
	)

	ctx := context.Background()

	// --- Domain catalog ---
	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	slog.Info("catalog loaded", "version", cat.Version, "templates", len(cat.Templates))

	// --- Telemetry ---
	otelShutdown, err := otel.Init(ctx, cfg.Logging.Service, cfg.OTel.Endpoint)
	if err != nil {
		return fmt.Errorf("otel: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := otelShutdown(shutdownCtx); err != nil {
			slog.Error("otel shutdown", "error", err)
		}
	}()

	// --- Infrastructure ---
	if err := postgres.RunMigrations(ctx, cfg.Postgres.DSN); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	slog.Info("migrations applied")

	pool, err := postgres.NewPool(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	defer pool.Close()
	slog.Info("postgres connected")

	queue, err := matnats.Connect(ctx, cfg.NATS.URL)
	if err != nil {
		return fmt.Errorf("nats: %w", err)
	}
	defer func() {
		if err := queue.Drain(); err != nil {
			slog.Error("nats drain", "error", err)
		}
	}()

	// Tiered cache: L1 in-process, L2 shared JetStream KV.
	l1, err := ristretto.New(cfg.Cache.L1MaxSizeMB << 20)
	if err != nil {
		return fmt.Errorf("l1 cache: %w", err)
	}
	defer l1.Close()

	var benchCache cache.Cache = l1
	if kv, err := queue.KeyValue(ctx, cfg.Cache.L2Bucket, cfg.Cache.L2TTL); err != nil {
		slog.Warn("l2 cache unavailable, using l1 only", "error", err)
	} else {
		benchCache = tiered.New(l1, natskv.New(kv), cfg.Cache.L2TTL)
	}

	// --- Services ---
	metrics, err := otel.NewMetrics()
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	hub := ws.NewHub()
	store := postgres.NewStore(pool)
	breaker := resilience.NewBreaker(cfg.Breaker.MaxFailures, cfg.Breaker.Timeout)
	svcs := service.NewSet(store, cat, benchCache, clock.System{}, queue, hub, breaker, metrics)

	// --- HTTP ---
	handlers := &mathttp.Handlers{
		Assessments: svcs.Assessments,
		Benchmarks:  svcs.Benchmarks,
		Roadmaps:    svcs.Roadmaps,
		Pilots:      svcs.Pilots,
		Reports:     svcs.Reports,
		Queue:       queue,
	}

	limiter := middleware.NewRateLimiter(cfg.Rate.RequestsPerSecond, cfg.Rate.Burst)
	stopCleanup := limiter.StartCleanup(cfg.Rate.CleanupInterval, cfg.Rate.MaxIdleTime)
	defer stopCleanup()

	r := chi.NewRouter()
	r.Use(mathttp.CORS(cfg.Server.CORSOrigin))
	r.Use(mathttp.SecurityHeaders)
	r.Use(mathttp.Logger)
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(otel.HTTPMiddleware(cfg.Logging.Service))
	r.Use(middleware.TenantID)
	r.Use(limiter.Handler)

	if kv, err := queue.KeyValue(ctx, cfg.Idempotency.Bucket, cfg.Idempotency.TTL); err != nil {
		slog.Warn("idempotency store unavailable", "error", err)
	} else {
		r.Use(middleware.Idempotency(kv))
	}

	r.Get("/ws", hub.HandleWS)
	mathttp.MountRoutes(r, handlers)

	addr := ":" + cfg.Server.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
		}
	}()

	<-done
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
