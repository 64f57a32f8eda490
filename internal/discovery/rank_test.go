package discovery

import (
	"math"
	"testing"

	"github.com/alexivanou/padel-spots-api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// kmPerDegreeLat is the length of one degree of latitude on the haversine sphere
const kmPerDegreeLat = earthRadiusKm * math.Pi / 180

var madrid = model.Coordinate{Lat: 40.4168, Lng: -3.7038}

func northOf(ref model.Coordinate, km float64) *model.Coordinate {
	return &model.Coordinate{Lat: ref.Lat + km/kmPerDegreeLat, Lng: ref.Lng}
}

func rankedIDs(spots []model.SpotWithDistance) []int64 {
	out := make([]int64, 0, len(spots))
	for _, s := range spots {
		out = append(out, s.ID)
	}
	return out
}

func TestRank_WithoutReference(t *testing.T) {
	spots := []model.Spot{
		{ID: 3, Location: northOf(madrid, 50)},
		{ID: 1},
		{ID: 2, Location: &madrid},
	}

	got := Rank(spots, nil, 1)

	assert.Equal(t, []int64{3, 1, 2}, rankedIDs(got))
	for _, s := range got {
		assert.Nil(t, s.DistanceKm)
	}
}

func TestRank_DropsFarSpotsAndSortsNullLast(t *testing.T) {
	spots := []model.Spot{
		{ID: 4, Location: northOf(madrid, 15)},
		{ID: 3},
		{ID: 2, Location: northOf(madrid, 8)},
		{ID: 1, Location: &model.Coordinate{Lat: madrid.Lat, Lng: madrid.Lng}},
	}

	got := Rank(spots, &madrid, 10)

	require.Equal(t, []int64{1, 2, 3}, rankedIDs(got))
	require.NotNil(t, got[0].DistanceKm)
	assert.InDelta(t, 0.0, *got[0].DistanceKm, 1e-9)
	require.NotNil(t, got[1].DistanceKm)
	assert.InDelta(t, 8.0, *got[1].DistanceKm, 0.01)
	assert.Nil(t, got[2].DistanceKm)
}

func TestRank_RadiusBoundaryInclusive(t *testing.T) {
	edge := northOf(madrid, 5)
	radius := Distance(madrid.Lat, madrid.Lng, edge.Lat, edge.Lng)

	got := Rank([]model.Spot{{ID: 1, Location: edge}}, &madrid, radius)

	assert.Equal(t, []int64{1}, rankedIDs(got))
}

func TestRank_StableOnTies(t *testing.T) {
	same := northOf(madrid, 2)
	spots := []model.Spot{
		{ID: 10},
		{ID: 5, Location: same},
		{ID: 11},
		{ID: 7, Location: same},
		{ID: 6, Location: same},
	}

	got := Rank(spots, &madrid, 10)

	assert.Equal(t, []int64{5, 7, 6, 10, 11}, rankedIDs(got))
}

func TestRank_PreservesPlayerOrder(t *testing.T) {
	players := []model.Player{
		{Name: "Zoe", SkillLevel: model.SkillAdvanced},
		{Name: "Adam", SkillLevel: model.SkillBeginner},
	}
	spots := []model.Spot{{ID: 1, Location: &madrid, ExistingPlayers: players}}

	got := Rank(spots, &madrid, 10)

	require.Len(t, got, 1)
	assert.Equal(t, players, got[0].ExistingPlayers)
}
