package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alexivanou/padel-spots-api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) FindSpots(ctx context.Context, filter *model.SpotFilter) ([]model.SpotWithDistance, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]model.SpotWithDistance), args.Error(1)
}

func (m *mockService) FindNearbySpots(ctx context.Context, lat, lng, radiusKm float64) ([]model.SpotWithDistance, error) {
	args := m.Called(ctx, lat, lng, radiusKm)
	return args.Get(0).([]model.SpotWithDistance), args.Error(1)
}

func (m *mockService) GetSpotByID(ctx context.Context, id int64) (*model.Spot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Spot), args.Error(1)
}

func (m *mockService) CreateSpot(ctx context.Context, req model.CreateSpotRequest) (*model.Spot, error) {
	args := m.Called(ctx, req)
	return nil, args.Error(1)
}

func (m *mockService) UpdateSpot(ctx context.Context, id int64, req model.UpdateSpotRequest) (*model.Spot, error) {
	args := m.Called(ctx, id, req)
	return nil, args.Error(1)
}

func (m *mockService) DeleteSpot(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func run(t *testing.T, svc *mockService, args ...string) (string, error) {
	var out bytes.Buffer
	root := newRootCmd(&app{svc: svc, out: &out})
	root.SetArgs(args)
	root.SetErr(&bytes.Buffer{})
	err := root.Execute()
	return out.String(), err
}

func madridSpot() model.Spot {
	return model.Spot{
		ID:             3,
		ClubName:       "Padel Club Madrid",
		ScheduledAt:    time.Date(2025, 3, 15, 18, 30, 0, 0, time.UTC),
		CourtNumber:    "Court 3",
		PlayerReplaced: "Carlos",
		IsFree:         true,
		Location:       &model.Coordinate{Lat: 40.4168, Lng: -3.7038},
		ExistingPlayers: []model.Player{
			{Name: "Ana", SkillLevel: model.SkillIntermediate},
		},
	}
}

func TestSearch(t *testing.T) {
	distance := 0.4
	svc := new(mockService)
	svc.On("FindSpots", mock.Anything, mock.MatchedBy(func(f *model.SpotFilter) bool {
		return *f.ClubName == "madrid" &&
			f.IsFree != nil && !*f.IsFree &&
			*f.SkillLevel == model.SkillIntermediate &&
			f.Location.Lat == 40.4 && f.Location.Lng == -3.7 &&
			*f.RadiusKm == 2 &&
			f.MaxCost == nil && f.DateFrom == nil
	})).Return([]model.SpotWithDistance{{Spot: madridSpot(), DistanceKm: &distance}}, nil)

	out, err := run(t, svc, "search", "--club", "madrid", "--free=false", "--skill", "Intermediate",
		"--near", "40.4,-3.7", "--radius", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Padel Club Madrid")
	assert.Contains(t, out, "2025-03-15 18:30")
	assert.Contains(t, out, "0.4 km")
	svc.AssertExpectations(t)
}

func TestSearch_JSON(t *testing.T) {
	svc := new(mockService)
	svc.On("FindSpots", mock.Anything, &model.SpotFilter{}).Return([]model.SpotWithDistance{{Spot: madridSpot()}}, nil)

	out, err := run(t, svc, "search", "--json")
	require.NoError(t, err)

	var resp model.SpotsResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, 1, resp.Total)
	assert.Nil(t, resp.Spots[0].DistanceKm)
}

func TestSearch_InvalidFlags(t *testing.T) {
	cases := [][]string{
		{"search", "--near", "40.4"},
		{"search", "--near", "95,0"},
		{"search", "--near", "40,-3", "--radius", "0"},
		{"search", "--max-cost", "-1"},
		{"search", "--skill", "expert"},
		{"search", "--from", "15/03/2025"},
		{"search", "--near", "NaN,0"},
		{"search", "--near", "40,Inf"},
		{"search", "--max-cost", "NaN"},
		{"search", "--near", "40,-3", "--radius", "NaN"},
	}

	for _, args := range cases {
		svc := new(mockService)
		_, err := run(t, svc, args...)
		assert.Error(t, err, "%v", args)
		svc.AssertNotCalled(t, "FindSpots", mock.Anything, mock.Anything)
	}
}

func TestShow(t *testing.T) {
	spot := madridSpot()
	svc := new(mockService)
	svc.On("GetSpotByID", mock.Anything, int64(3)).Return(&spot, nil)
	svc.On("GetSpotByID", mock.Anything, int64(4)).Return(nil, nil)

	out, err := run(t, svc, "show", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Court 3")
	assert.Contains(t, out, "Ana (intermediate)")
	assert.Contains(t, out, "free")

	_, err = run(t, svc, "show", "4")
	assert.Error(t, err)

	_, err = run(t, svc, "show", "x")
	assert.Error(t, err)
}

func TestDelete(t *testing.T) {
	svc := new(mockService)
	svc.On("DeleteSpot", mock.Anything, int64(3)).Return(true, nil)
	svc.On("DeleteSpot", mock.Anything, int64(4)).Return(false, nil)

	out, err := run(t, svc, "delete", "3")
	require.NoError(t, err)
	assert.Equal(t, "Deleted spot 3\n", out)

	_, err = run(t, svc, "delete", "4")
	assert.Error(t, err)
}
