package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexivanou/padel-spots-api/internal/discovery"
	"github.com/alexivanou/padel-spots-api/internal/model"
	"go.uber.org/zap"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// FindSpots loads the candidate spots from storage and runs discovery over them
func (s *Service) FindSpots(ctx context.Context, filter *model.SpotFilter) ([]model.SpotWithDistance, error) {
	var criteria model.SpotFilter
	if filter != nil {
		criteria = *filter
	}

	candidates, err := s.spotRepo.ListSpots(ctx, criteria)
	if err != nil {
		return nil, fmt.Errorf("failed to list spots: %w", err)
	}

	results := discovery.FindSpots(candidates, filter)

	s.logger.Debug("Spots discovered",
		zap.Int("candidates", len(candidates)),
		zap.Int("results", len(results)),
		zap.Bool("ranked", filter != nil && filter.Location != nil),
	)

	return results, nil
}

// FindNearbySpots returns spots within radiusKm of the given point, nearest first.
// A non-positive radius falls back to the default.
func (s *Service) FindNearbySpots(ctx context.Context, lat, lng, radiusKm float64) ([]model.SpotWithDistance, error) {
	if !finite(lat) || !finite(lng) || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, fmt.Errorf("%w: coordinates out of range", ErrInvalidInput)
	}
	if !finite(radiusKm) {
		return nil, fmt.Errorf("%w: radius must be a finite number", ErrInvalidInput)
	}

	filter := &model.SpotFilter{Location: &model.Coordinate{Lat: lat, Lng: lng}}
	if radiusKm > 0 {
		filter.RadiusKm = &radiusKm
	}
	return s.FindSpots(ctx, filter)
}

// GetSpotByID retrieves a spot; it returns nil when the spot does not exist
func (s *Service) GetSpotByID(ctx context.Context, id int64) (*model.Spot, error) {
	spot, err := s.spotRepo.GetSpotByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get spot: %w", err)
	}
	return spot, nil
}

// CreateSpot validates and stores a new spot
func (s *Service) CreateSpot(ctx context.Context, req model.CreateSpotRequest) (*model.Spot, error) {
	req.ClubName = strings.TrimSpace(req.ClubName)
	req.CourtNumber = strings.TrimSpace(req.CourtNumber)
	req.PlayerReplaced = strings.TrimSpace(req.PlayerReplaced)
	if err := s.validateStruct(req); err != nil {
		return nil, err
	}

	scheduledAt, err := parseSchedule(req.Date, req.Time)
	if err != nil {
		return nil, err
	}

	isFree, err := deriveIsFree(req.Cost, req.IsFree)
	if err != nil {
		return nil, err
	}

	players := req.ExistingPlayers
	if players == nil {
		players = []model.Player{}
	}

	now := s.now().UTC()
	spot := model.Spot{
		ClubName:        req.ClubName,
		ScheduledAt:     scheduledAt,
		CourtNumber:     req.CourtNumber,
		PlayerReplaced:  req.PlayerReplaced,
		Cost:            req.Cost,
		IsFree:          isFree,
		Location:        req.Location,
		ExistingPlayers: players,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	id, err := s.spotRepo.CreateSpot(ctx, spot)
	if err != nil {
		return nil, fmt.Errorf("failed to create spot: %w", err)
	}
	spot.ID = id

	s.logger.Info("Spot created", zap.Int64("id", id), zap.String("club", spot.ClubName))
	return &spot, nil
}

// UpdateSpot applies a partial update; it returns nil when the spot does not exist
func (s *Service) UpdateSpot(ctx context.Context, id int64, req model.UpdateSpotRequest) (*model.Spot, error) {
	req.ClubName = trimmed(req.ClubName)
	req.CourtNumber = trimmed(req.CourtNumber)
	req.PlayerReplaced = trimmed(req.PlayerReplaced)
	if err := s.validateStruct(req); err != nil {
		return nil, err
	}

	spot, err := s.spotRepo.GetSpotByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get spot: %w", err)
	}
	if spot == nil {
		return nil, nil
	}

	if req.ClubName != nil {
		spot.ClubName = *req.ClubName
	}
	if req.Date != nil || req.Time != nil {
		date := spot.ScheduledAt.Format(dateLayout)
		if req.Date != nil {
			date = *req.Date
		}
		clock := spot.ScheduledAt.Format(clockLayout)
		if req.Time != nil {
			clock = *req.Time
		}
		if spot.ScheduledAt, err = parseSchedule(date, clock); err != nil {
			return nil, err
		}
	}
	if req.CourtNumber != nil {
		spot.CourtNumber = *req.CourtNumber
	}
	if req.PlayerReplaced != nil {
		spot.PlayerReplaced = *req.PlayerReplaced
	}
	if req.Cost != nil {
		spot.Cost = *req.Cost
	}
	if spot.IsFree, err = deriveIsFree(spot.Cost, req.IsFree); err != nil {
		return nil, err
	}
	switch {
	case req.ClearLocation:
		spot.Location = nil
	case req.Location != nil:
		spot.Location = req.Location
	}
	if req.ExistingPlayers != nil {
		spot.ExistingPlayers = *req.ExistingPlayers
	}
	spot.UpdatedAt = s.now().UTC()

	ok, err := s.spotRepo.UpdateSpot(ctx, *spot)
	if err != nil {
		return nil, fmt.Errorf("failed to update spot: %w", err)
	}
	if !ok {
		return nil, nil
	}

	s.logger.Info("Spot updated", zap.Int64("id", id))
	return spot, nil
}

// DeleteSpot removes a spot and reports whether it existed
func (s *Service) DeleteSpot(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.spotRepo.DeleteSpot(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete spot: %w", err)
	}
	if deleted {
		s.logger.Info("Spot deleted", zap.Int64("id", id))
	}
	return deleted, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// deriveIsFree computes is_free from cost. An explicit flag must agree with it.
func deriveIsFree(cost float64, requested *bool) (bool, error) {
	isFree := cost == 0
	if requested != nil && *requested != isFree {
		return false, fmt.Errorf("%w: is_free=%t contradicts cost %.2f", ErrInvalidInput, *requested, cost)
	}
	return isFree, nil
}

// parseSchedule combines a calendar date (YYYY-MM-DD or RFC3339) and an HH:MM
// clock time into a UTC instant.
func parseSchedule(date, clock string) (time.Time, error) {
	day, err := ParseDate(date)
	if err != nil {
		return time.Time{}, err
	}

	t, err := time.Parse(clockLayout, strings.TrimSpace(clock))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: time %q must be HH:MM", ErrInvalidInput, clock)
	}

	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC), nil
}

// ParseDate accepts YYYY-MM-DD or an RFC3339 timestamp
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: invalid date %q", ErrInvalidInput, s)
}
