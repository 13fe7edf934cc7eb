// Package main implements the entry point for the study buddy API server,
// which turns uploaded documents into summaries, flashcards, and quizzes and
// answers study questions about them.
package main

import (
	"context"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/MuhammadAhmed-503/study-buddy/internal/config"
	"github.com/MuhammadAhmed-503/study-buddy/internal/platform/logger"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// run loads configuration, connects the database, applies migrations, wires
// the application, and serves until shutdown.
func run() error {
	// A .env file is optional; real deployments use environment variables.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logg := logger.Setup(cfg.Server.LogLevel)
	logg.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"llm_configured", cfg.LLM.Configured())

	db, err := setupAppDatabase(cfg, logg)
	if err != nil {
		return err
	}

	if err := runMigrations(db, logg); err != nil {
		_ = db.Close()
		return err
	}

	ctx := context.Background()
	app, err := newApplication(ctx, cfg, logg, db)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
