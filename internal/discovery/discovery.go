// Package discovery turns a collection of posted spots into the ordered,
// filtered result a player browses. It is pure: no I/O, no shared state,
// safe to call concurrently.
package discovery

import "github.com/alexivanou/padel-spots-api/internal/model"

// DefaultRadiusKm is the search radius used when a location is given without one
const DefaultRadiusKm = 10.0

// FindSpots filters spots with the criteria in filter and ranks them by
// proximity when filter carries a location. A nil filter returns every spot,
// in the given order, with no distance.
func FindSpots(spots []model.Spot, filter *model.SpotFilter) []model.SpotWithDistance {
	if filter == nil {
		return Rank(spots, nil, 0)
	}

	matched := Filter(spots, *filter)
	return Rank(matched, filter.Location, radiusOrDefault(filter.RadiusKm))
}

func radiusOrDefault(radiusKm *float64) float64 {
	if radiusKm == nil || *radiusKm <= 0 {
		return DefaultRadiusKm
	}
	return *radiusKm
}
