package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skillsphere/backend/api"
	dbfs "github.com/skillsphere/backend/db"
	"github.com/skillsphere/backend/internal/ai"
	"github.com/skillsphere/backend/internal/config"
	"github.com/skillsphere/backend/internal/db"
	"github.com/skillsphere/backend/internal/repository/s3store"
	"github.com/skillsphere/backend/internal/repository/sqlite"
	"github.com/skillsphere/backend/pkg/gateway"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	var configPath = flag.String("config", "", "Path to config YAML file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	api.SetLogger(logger)
	gateway.SetLogger(logger)

	log.Printf("Starting SkillSphere server version %s (built at %s)", version, buildTime)

	ctx := context.Background()

	// Identity store: open and migrate
	database, err := db.New(ctx, cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Migrate(ctx, database, dbfs.Migrations, dbfs.SeedFiles); err != nil {
		log.Fatalf("Failed to migrate DB: %v", err)
	}
	repo := sqlite.New(database, logger)

	// Artifact store for roadmap documents
	roadmaps, err := s3store.New(ctx, cfg.Store, logger)
	if err != nil {
		log.Fatalf("Failed to create artifact store: %v", err)
	}

	// Model gateway and orchestrator
	gw, err := gateway.NewDefaultClient(cfg.Gateway)
	if err != nil {
		log.Fatalf("Failed to create gateway client: %v", err)
	}
	engine, err := ai.NewEngine(ctx, gw, cfg.Engine, repo, repo, logger)
	if err != nil {
		log.Fatalf("Failed to create AI engine: %v", err)
	}

	handler := api.SetupRoutes(cfg, version, buildTime, repo, roadmaps, engine)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.APITimeout,
		WriteTimeout: cfg.APITimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	if err := gw.Close(); err != nil {
		log.Printf("Error closing gateway client: %v", err)
	}
	if err := database.Close(); err != nil {
		log.Printf("Error closing DB: %v", err)
	}

	log.Println("Server exited")
}
