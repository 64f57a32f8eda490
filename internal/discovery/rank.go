package discovery

import (
	"sort"

	"github.com/alexivanou/padel-spots-api/internal/model"
)

// Rank annotates spots with their distance from ref.
//
// With a nil ref every distance is nil and the input order is kept.
// Otherwise spots further than radiusKm are dropped (the boundary is inclusive),
// spots without coordinates are kept, and the result is stably sorted by
// ascending distance with unknown distances last.
func Rank(spots []model.Spot, ref *model.Coordinate, radiusKm float64) []model.SpotWithDistance {
	ranked := make([]model.SpotWithDistance, 0, len(spots))

	if ref == nil {
		for _, spot := range spots {
			ranked = append(ranked, model.SpotWithDistance{Spot: spot})
		}
		return ranked
	}

	for _, spot := range spots {
		var distance *float64
		if spot.Location != nil {
			d := Distance(ref.Lat, ref.Lng, spot.Location.Lat, spot.Location.Lng)
			if d > radiusKm {
				continue
			}
			distance = &d
		}
		ranked = append(ranked, model.SpotWithDistance{Spot: spot, DistanceKm: distance})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return closer(ranked[i].DistanceKm, ranked[j].DistanceKm)
	})

	return ranked
}

// closer orders known distances ascending and unknown ones after all of them
func closer(a, b *float64) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	default:
		return *a < *b
	}
}
