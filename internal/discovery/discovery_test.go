package discovery

import (
	"sync"
	"testing"

	"github.com/alexivanou/padel-spots-api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindSpots_NoFilter(t *testing.T) {
	spots := testSpots(t)

	got := FindSpots(spots, nil)

	require.Len(t, got, len(spots))
	for i, s := range got {
		assert.Equal(t, spots[i], s.Spot)
		assert.Nil(t, s.DistanceKm)
	}
}

func TestFindSpots_ProximityOrdering(t *testing.T) {
	spots := []model.Spot{
		{ID: 'D', Location: northOf(madrid, 15)},
		{ID: 'C'},
		{ID: 'B', Location: northOf(madrid, 8)},
		{ID: 'A', Location: &model.Coordinate{Lat: madrid.Lat, Lng: madrid.Lng}},
	}

	got := FindSpots(spots, &model.SpotFilter{Location: &madrid, RadiusKm: ptr(10.0)})

	assert.Equal(t, []int64{'A', 'B', 'C'}, rankedIDs(got))
}

func TestFindSpots_DefaultRadius(t *testing.T) {
	spots := []model.Spot{
		{ID: 1, Location: northOf(madrid, 9.5)},
		{ID: 2, Location: northOf(madrid, 10.5)},
	}

	got := FindSpots(spots, &model.SpotFilter{Location: &madrid})

	assert.Equal(t, []int64{1}, rankedIDs(got))
}

func TestFindSpots_FilterWithoutLocationKeepsOrder(t *testing.T) {
	got := FindSpots(testSpots(t), &model.SpotFilter{MaxCost: ptr(20.0)})

	assert.Equal(t, []int64{1, 3, 4}, rankedIDs(got))
	for _, s := range got {
		assert.Nil(t, s.DistanceKm)
	}
}

func TestFindSpots_CombinedCriteria(t *testing.T) {
	got := FindSpots(testSpots(t), &model.SpotFilter{
		SkillLevel: ptr(model.SkillIntermediate),
		Location:   &model.Coordinate{Lat: 41.39, Lng: 2.17},
		RadiusKm:   ptr(5.0),
	})

	// Madrid is ~500 km away and dropped; Barcelona is within radius
	require.Equal(t, []int64{2}, rankedIDs(got))
	require.NotNil(t, got[0].DistanceKm)
	assert.Less(t, *got[0].DistanceKm, 1.0)
}

func TestFindSpots_EmptyResultIsNotAnError(t *testing.T) {
	got := FindSpots(testSpots(t), &model.SpotFilter{ClubName: ptr("nowhere")})

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFindSpots_NeverGrows(t *testing.T) {
	spots := testSpots(t)
	filters := []*model.SpotFilter{
		nil,
		{},
		{Location: &madrid, RadiusKm: ptr(20000.0)},
		{IsFree: ptr(true), Location: &madrid},
	}
	for _, f := range filters {
		assert.LessOrEqual(t, len(FindSpots(spots, f)), len(spots))
	}
}

func TestFindSpots_Concurrent(t *testing.T) {
	spots := testSpots(t)
	filter := &model.SpotFilter{Location: &madrid, RadiusKm: ptr(1000.0)}
	want := FindSpots(spots, filter)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, FindSpots(spots, filter))
		}()
	}
	wg.Wait()
}
