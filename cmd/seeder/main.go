package main

import (
	"context"
	"flag"
	"log"

	"github.com/alexivanou/padel-spots-api/internal/config"
	"github.com/alexivanou/padel-spots-api/internal/database"
	"github.com/alexivanou/padel-spots-api/internal/logging"
	"github.com/alexivanou/padel-spots-api/internal/repository"
	"github.com/alexivanou/padel-spots-api/internal/seeder"
	"go.uber.org/zap"
)

func main() {
	file := flag.String("file", "", "CSV file to import (defaults to SEEDER_DATA_FILE)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *file != "" {
		cfg.Seeder.DataFile = *file
	}

	logger, err := logging.NewDevelopment(cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()
	db, err := database.Connect(ctx, cfg.DB)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}
	logger.Info("Connected to database", zap.String("type", string(cfg.DB.Type)))

	// Auto-migrate if using memory DB to ensure schema exists
	if cfg.DB.IsMemory() {
		if err := database.Migrate(db, cfg.DB, "migrations"); err != nil {
			logger.Fatal("Failed to run migration", zap.Error(err))
		}
	}

	repos := repository.NewRepositories(db, cfg.DB.Type)
	parser := seeder.NewParser(cfg.Seeder, logger)

	result, err := seeder.Seed(ctx, parser, repos.Spot)
	if err != nil {
		logger.Fatal("Failed to import spots", zap.Error(err))
	}

	logger.Info("Data import completed successfully!",
		zap.Int("spots", result.Loaded),
		zap.Int("skipped", result.Skipped),
	)
}
