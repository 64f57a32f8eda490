package discovery

import (
	"strings"
	"time"

	"github.com/alexivanou/padel-spots-api/internal/model"
)

// StartOfDay returns midnight of t's calendar day in t's location
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last representable instant of t's calendar day in t's location
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// Match reports whether spot satisfies every non-geographic criterion set on f.
// Location and RadiusKm are ignored here; see Rank.
func Match(spot model.Spot, f model.SpotFilter) bool {
	if f.ClubName != nil && *f.ClubName != "" {
		if !strings.Contains(strings.ToLower(spot.ClubName), strings.ToLower(*f.ClubName)) {
			return false
		}
	}

	if f.DateFrom != nil && spot.ScheduledAt.Before(StartOfDay(*f.DateFrom)) {
		return false
	}

	if f.DateTo != nil && spot.ScheduledAt.After(EndOfDay(*f.DateTo)) {
		return false
	}

	if f.IsFree != nil && spot.IsFree != *f.IsFree {
		return false
	}

	if f.MaxCost != nil && spot.Cost > *f.MaxCost {
		return false
	}

	if f.SkillLevel != nil && !hasSkillLevel(spot.ExistingPlayers, *f.SkillLevel) {
		return false
	}

	return true
}

// Filter returns the spots matching f, keeping their relative order.
// The input slice is not modified.
func Filter(spots []model.Spot, f model.SpotFilter) []model.Spot {
	filtered := make([]model.Spot, 0, len(spots))
	for _, spot := range spots {
		if Match(spot, f) {
			filtered = append(filtered, spot)
		}
	}
	return filtered
}

func hasSkillLevel(players []model.Player, level model.SkillLevel) bool {
	for _, p := range players {
		if p.SkillLevel == level {
			return true
		}
	}
	return false
}
