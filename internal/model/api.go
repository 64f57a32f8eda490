package model

import "time"

// SpotFilter holds the optional criteria for spot discovery.
// A nil field places no constraint on the result.
type SpotFilter struct {
	ClubName   *string
	DateFrom   *time.Time
	DateTo     *time.Time
	IsFree     *bool
	MaxCost    *float64
	SkillLevel *SkillLevel
	Location   *Coordinate
	RadiusKm   *float64
}

// SpotsResponse represents the response for spot listings
type SpotsResponse struct {
	Spots []SpotWithDistance `json:"spots"`
	Total int                `json:"total"`
}

// CreateSpotRequest represents the payload for posting a new spot
type CreateSpotRequest struct {
	ClubName        string      `json:"club_name" validate:"required"`
	Date            string      `json:"date" validate:"required"`
	Time            string      `json:"time" validate:"required"`
	CourtNumber     string      `json:"court_number" validate:"required"`
	PlayerReplaced  string      `json:"player_replaced" validate:"required"`
	Cost            float64     `json:"cost" validate:"gte=0"`
	IsFree          *bool       `json:"is_free"`
	Location        *Coordinate `json:"location"`
	ExistingPlayers []Player    `json:"existing_players" validate:"dive"`
}

// UpdateSpotRequest represents a partial update of a spot.
// ClearLocation removes the coordinates and wins over Location.
type UpdateSpotRequest struct {
	ClubName        *string     `json:"club_name" validate:"omitempty,min=1"`
	Date            *string     `json:"date"`
	Time            *string     `json:"time"`
	CourtNumber     *string     `json:"court_number" validate:"omitempty,min=1"`
	PlayerReplaced  *string     `json:"player_replaced" validate:"omitempty,min=1"`
	Cost            *float64    `json:"cost" validate:"omitempty,gte=0"`
	IsFree          *bool       `json:"is_free"`
	Location        *Coordinate `json:"location"`
	ClearLocation   bool        `json:"clear_location"`
	ExistingPlayers *[]Player   `json:"existing_players" validate:"omitempty,dive"`
}
