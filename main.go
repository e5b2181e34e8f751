package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/padelnueve/tracker/internal/announcer"
	"github.com/padelnueve/tracker/internal/auth"
	"github.com/padelnueve/tracker/internal/config"
	"github.com/padelnueve/tracker/internal/database"
	server "github.com/padelnueve/tracker/internal/http"
	"github.com/padelnueve/tracker/internal/lifecycle"
	"github.com/padelnueve/tracker/internal/metrics"
	"github.com/padelnueve/tracker/internal/notifier/slack"
	"github.com/padelnueve/tracker/internal/playtomic"
	"github.com/padelnueve/tracker/internal/pubsub"
	"github.com/padelnueve/tracker/internal/store"
)

const sessionTTL = 12 * time.Hour

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()

	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	authSvc := auth.New(cfg.Auth.TokenSecret, cfg.Auth.Username, cfg.Auth.PasswordHash, sessionTTL)
	announcerClient := announcer.NewClient(cfg.Gemini.APIKey)
	slackNotifier := slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)
	pubsubClient := pubsub.New(cfg.ProjectID)
	playtomicClient := playtomic.NewClient()

	// The real tracker degrades rather than dies when the database is
	// unreachable: API requests against it return 503 while the simulator
	// stays fully usable.
	var real *lifecycle.Service
	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken, cfg.MigrationsDir)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Error("Failed to initialize database, continuing simulator-only", "error", err)
	} else {
		defer func() {
			log.Info("Closing database connection")
			dbTeardown()
		}()
		real = lifecycle.New(
			store.New(db),
			slackNotifier,
			announcerClient,
			metricsSvc,
			pubsubClient,
			playtomicClient,
			cfg.Playtomic.TenantID,
		)
	}
	sim := lifecycle.NewSimulated(announcerClient, metricsSvc)

	s := server.NewServer(
		real,
		sim,
		authSvc,
		metricsSvc,
		metricsHandler,
		slackNotifier,
		pubsubClient,
		cfg,
	)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		// Create a context with a timeout for the shutdown.
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Attempt to gracefully shut down the server.
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
