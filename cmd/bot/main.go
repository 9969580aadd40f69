package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"

	httpapi "invite-warden/internal/api/http"
	"invite-warden/internal/cache"
	"invite-warden/internal/config"
	"invite-warden/internal/jobs"
	"invite-warden/internal/logger"
	"invite-warden/internal/platform"
	"invite-warden/internal/repository/postgres"
	"invite-warden/internal/scheduler"
	"invite-warden/internal/security"
	"invite-warden/internal/service"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Invite Warden...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	logger.Info("HTTP API configuration", "address", cfg.GetServerAddress())

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	store := postgres.NewStore(db)
	inviteCache := cache.NewStore()

	discord, err := platform.NewDiscord(cfg.Discord.Token)
	if err != nil {
		logger.Error("Failed to create discord session", "error", err)
		log.Fatalf("Failed to create discord session: %v", err)
	}

	escalation := service.NewFailureEscalation(discord)
	ingestor := service.NewEventIngestor(inviteCache, discord)
	tracker := service.NewInviteTracker(inviteCache, discord, store.AttributionRepository, escalation, cfg.GraceWindow())
	admin := service.NewInviteAdminService(inviteCache, discord, store.AttributionRepository)

	// Handlers must be in place before Open so the initial guild-create
	// burst seeds the cache.
	discord.RegisterHandlers(ingestor, tracker)
	if err := discord.Open(); err != nil {
		logger.Error("Failed to open gateway connection", "error", err)
		log.Fatalf("Failed to open gateway connection: %v", err)
	}
	defer discord.Close()
	logger.Info("Gateway connection established")

	// Collaborator HTTP API
	tokens := security.NewTokenManager(cfg.Security.JWTSecret)
	router := mux.NewRouter()
	httpapi.RegisterRoutes(router, admin, tokens)

	httpServer := &http.Server{
		Addr:    cfg.GetServerAddress(),
		Handler: router,
	}
	go func() {
		logger.Info("HTTP API listening", "address", cfg.GetServerAddress())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
		}
	}()

	jobRunner := jobs.NewJobRunner(inviteCache, ingestor, cfg)
	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")
	sched.Stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP server shutdown failed", "error", err)
	}
}
