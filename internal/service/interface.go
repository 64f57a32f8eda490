package service

import (
	"context"

	"github.com/alexivanou/padel-spots-api/internal/model"
)

// ServiceInterface defines the service interface for testing
type ServiceInterface interface {
	FindSpots(ctx context.Context, filter *model.SpotFilter) ([]model.SpotWithDistance, error)
	FindNearbySpots(ctx context.Context, lat, lng, radiusKm float64) ([]model.SpotWithDistance, error)
	GetSpotByID(ctx context.Context, id int64) (*model.Spot, error)
	CreateSpot(ctx context.Context, req model.CreateSpotRequest) (*model.Spot, error)
	UpdateSpot(ctx context.Context, id int64, req model.UpdateSpotRequest) (*model.Spot, error)
	DeleteSpot(ctx context.Context, id int64) (bool, error)
}
