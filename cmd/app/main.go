package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/osse101/Pokemonkey_Go/internal/auth"
	"github.com/osse101/Pokemonkey_Go/internal/bootstrap"
	"github.com/osse101/Pokemonkey_Go/internal/cloud"
	"github.com/osse101/Pokemonkey_Go/internal/config"
	"github.com/osse101/Pokemonkey_Go/internal/eventlog"
	"github.com/osse101/Pokemonkey_Go/internal/handler"
	"github.com/osse101/Pokemonkey_Go/internal/progress"
	"github.com/osse101/Pokemonkey_Go/internal/scheduler"
	"github.com/osse101/Pokemonkey_Go/internal/server"
	"github.com/osse101/Pokemonkey_Go/internal/session"
	"github.com/osse101/Pokemonkey_Go/internal/sse"
	"github.com/osse101/Pokemonkey_Go/internal/tracing"
	"github.com/osse101/Pokemonkey_Go/internal/worker"
)

const shutdownTimeout = 30 * time.Second

// @title Pokemonkey API
// @version 1.0
// @description Progress tracking for forest reclamation field crews.
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logger: %v", err)
	}
	defer logFile.Close()

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		slog.Error("Environment validation failed", "error", err)
		os.Exit(1)
	}
	for _, w := range warnings {
		slog.Warn(w)
	}

	if err := run(cfg); err != nil {
		slog.Error("Fatal error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx := context.Background()

	shutdownTracing, err := tracing.Setup(ctx, tracing.Config{
		Endpoint:       cfg.OTLPEndpoint,
		ServiceName:    "pokemonkey",
		ServiceVersion: cfg.Version,
	})
	if err != nil {
		return err
	}

	dbPool, err := bootstrap.ConnectDatabase(ctx, cfg)
	if err != nil {
		return err
	}

	repos, err := bootstrap.InitializeRepositories(ctx, cfg, dbPool)
	if err != nil {
		dbPool.Close()
		return err
	}

	cat, err := bootstrap.LoadCatalog(cfg)
	if err != nil {
		return err
	}

	bus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		return err
	}
	if err := bootstrap.RegisterEventHandlers(cfg, bus, nil); err != nil {
		return err
	}

	hub := sse.NewHub()
	hub.Start()
	sse.NewSubscriber(hub).Subscribe(bus)

	activity := eventlog.NewService(repos.Events)
	if err := activity.Subscribe(bus); err != nil {
		return err
	}

	pool := worker.NewPool(cfg.WorkerCount, cfg.WorkerQueueSize, cfg.WorkerJobTimeout)
	pool.Start()

	cloudClient := cloud.NewClient(cfg.CloudURL, cfg.CloudTimeout, cloud.WithTracerProvider(otel.GetTracerProvider()))
	if !cloudClient.Enabled() {
		slog.Warn("CLOUD_URL not set, team features run offline")
	}

	sessions := session.NewService(session.Dependencies{
		Engine:  progress.NewEngine(progress.Rules{EnforcePrerequisites: cfg.EnforcePrerequisites}),
		Catalog: cat,
		Local:   repos.Local,
		Shared:  repos.Shared,
		Reports: repos.Reports,
		Cloud:   cloudClient,
		Jobs:    pool,
		Bus:     publisher,
	}, session.Config{
		Location:    cfg.Location(),
		SyncTimeout: cfg.CloudTimeout,
		CacheSize:   cfg.TeamCacheSize,
		CacheTTL:    cfg.TeamCacheTTL,
	})

	sched := scheduler.New(pool)
	sched.Schedule("stamina_tick", cfg.StaminaTickInterval, worker.NewJob("stamina_tick", sessions.TickAll))
	if cloudClient.Enabled() {
		sched.Schedule("global_missions", cfg.CloudPollInterval, worker.NewJob("global_missions", sessions.PollGlobalMissions))
	}
	sched.Schedule(eventlog.CleanupJobName, eventlog.CleanupInterval, eventlog.NewCleanupJob(activity, cfg.EventLogRetention))
	sched.Start()

	shiftWorker := worker.NewShiftStartWorker(cfg.Location(), sessions.TickAll)
	shiftWorker.Start()

	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return err
	}

	srv := server.NewServer(cfg, server.Deps{
		Sessions: sessions,
		Tokens:   tokens,
		Ready: map[string]handler.Pinger{
			"postgres": dbPool,
			"local":    repos.Local,
		},
		Version:  cfg.Version,
		Events:   hub,
		Activity: activity,
	})

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-stop:
		slog.Info("Shutdown signal received", "signal", sig.String())
	case runErr = <-serverErr:
		slog.Error("Server failed", "error", runErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Events:      hub,
		Server:      srv,
		Scheduler:   sched,
		ShiftWorker: shiftWorker,
		Sessions:    sessions,
		Pool:        pool,
		Publisher:   publisher,
		Local:       repos.Local,
		Database:    dbPool,
		Tracing:     shutdownTracing,
	})
	return runErr
}
