package seeder

import (
	"context"
	"fmt"

	"github.com/alexivanou/padel-spots-api/internal/model"
	"github.com/alexivanou/padel-spots-api/internal/repository"
	"go.uber.org/zap"
)

// Seed imports the parser's file into repo batch by batch
func Seed(ctx context.Context, parser *Parser, repo repository.SpotRepository) (Result, error) {
	parser.logger.Info("Importing spots", zap.String("file", parser.dataFile))

	result, err := parser.ProcessSpots(func(batch []model.Spot) error {
		if err := repo.BulkInsertSpots(ctx, batch); err != nil {
			return fmt.Errorf("failed to insert spots batch: %w", err)
		}
		return nil
	})
	if err != nil {
		return result, err
	}

	parser.logger.Info("Spots imported",
		zap.Int("loaded", result.Loaded),
		zap.Int("skipped", result.Skipped),
	)
	return result, nil
}
