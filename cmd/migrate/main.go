package main

import (
	"errors"
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/pageza/alchemorsel-mealplan/backend/config"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/database"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/logging"
)

func main() {
	// Parse command line flags
	rollback := flag.Bool("rollback", false, "Rollback the last migration")
	migrationsDir := flag.String("dir", "migrations", "Directory containing the SQL migrations")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, ServiceName: "migrate"})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.New(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() { _ = database.Close(db) }()

	if *rollback {
		name, err := database.Rollback(db, *migrationsDir, logger)
		if errors.Is(err, database.ErrNothingToRollback) {
			logger.Info("No migrations to rollback")
			return
		}
		if err != nil {
			logger.Fatal("Rollback failed", zap.Error(err))
		}
		logger.Info("Rolled back migration", zap.String("name", name))
		return
	}

	if err := database.RunMigrations(db, *migrationsDir, logger); err != nil {
		logger.Fatal("Migration failed", zap.Error(err))
	}
	logger.Info("All migrations applied")
}
