package api

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/alexivanou/padel-spots-api/internal/model"
	"github.com/alexivanou/padel-spots-api/internal/service"
)

// parseSpotFilter builds discovery criteria from query parameters.
// Absent or empty parameters leave the matching criterion unset.
func parseSpotFilter(query url.Values) (*model.SpotFilter, error) {
	filter := &model.SpotFilter{}

	if club := strings.TrimSpace(query.Get("club_name")); club != "" {
		filter.ClubName = &club
	}

	if s := query.Get("date_from"); s != "" {
		d, err := service.ParseDate(s)
		if err != nil {
			return nil, errors.New("invalid date_from parameter")
		}
		filter.DateFrom = &d
	}

	if s := query.Get("date_to"); s != "" {
		d, err := service.ParseDate(s)
		if err != nil {
			return nil, errors.New("invalid date_to parameter")
		}
		filter.DateTo = &d
	}

	if s := query.Get("is_free"); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return nil, errors.New("invalid is_free parameter")
		}
		filter.IsFree = &b
	}

	if s := query.Get("max_cost"); s != "" {
		v, err := parseFinite(s)
		if err != nil || v < 0 {
			return nil, errors.New("invalid max_cost parameter")
		}
		filter.MaxCost = &v
	}

	if s := query.Get("skill_level"); s != "" {
		level := model.SkillLevel(strings.ToLower(s))
		if !level.Valid() {
			return nil, fmt.Errorf("invalid skill_level parameter: must be one of %v", model.SkillLevels)
		}
		filter.SkillLevel = &level
	}

	if query.Get("lat") != "" || query.Get("lng") != "" {
		location, err := parseLocation(query)
		if err != nil {
			return nil, err
		}
		filter.Location = location
	}

	if s := query.Get("radius_km"); s != "" {
		v, err := parseFinite(s)
		if err != nil || v <= 0 {
			return nil, errors.New("invalid radius_km parameter")
		}
		filter.RadiusKm = &v
	}

	return filter, nil
}

func parseLocation(query url.Values) (*model.Coordinate, error) {
	latStr, lngStr := query.Get("lat"), query.Get("lng")
	if latStr == "" || lngStr == "" {
		return nil, errors.New("parameters 'lat' and 'lng' must be given together")
	}

	lat, err := parseFinite(latStr)
	if err != nil {
		return nil, errors.New("invalid lat parameter")
	}

	lng, err := parseFinite(lngStr)
	if err != nil {
		return nil, errors.New("invalid lng parameter")
	}

	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, errors.New("invalid coordinates range")
	}

	return &model.Coordinate{Lat: lat, Lng: lng}, nil
}

// parseFinite parses a float and rejects NaN and infinities
func parseFinite(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", s)
	}
	return v, nil
}
