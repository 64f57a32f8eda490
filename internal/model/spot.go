package model

import "time"

// SkillLevel is the self-declared level of a player
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
	SkillProfessional SkillLevel = "professional"
)

// SkillLevels lists every known skill level
var SkillLevels = []SkillLevel{SkillBeginner, SkillIntermediate, SkillAdvanced, SkillProfessional}

// Valid reports whether s is one of the known skill levels
func (s SkillLevel) Valid() bool {
	for _, level := range SkillLevels {
		if s == level {
			return true
		}
	}
	return false
}

// Player is a confirmed participant of a spot's match.
// Players are values: two entries with the same name and level are equal.
type Player struct {
	Name       string     `json:"name"`
	SkillLevel SkillLevel `json:"skill_level" validate:"oneof=beginner intermediate advanced professional"`
}

// Coordinate represents geographic coordinates
type Coordinate struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng float64 `json:"lng" validate:"gte=-180,lte=180"`
}

// Spot is an open place in a game that somebody had to cancel
type Spot struct {
	ID              int64       `json:"id"`
	ClubName        string      `json:"club_name"`
	ScheduledAt     time.Time   `json:"scheduled_at"`
	CourtNumber     string      `json:"court_number"`
	PlayerReplaced  string      `json:"player_replaced"`
	Cost            float64     `json:"cost"`
	IsFree          bool        `json:"is_free"`
	Location        *Coordinate `json:"location"`
	ExistingPlayers []Player    `json:"existing_players"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// SpotWithDistance is a spot annotated with its distance from a reference point.
// DistanceKm is nil when either side has no coordinates.
type SpotWithDistance struct {
	Spot
	DistanceKm *float64 `json:"distance_km"`
}
