package seeder

import (
	"archive/zip"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alexivanou/padel-spots-api/internal/config"
	"github.com/alexivanou/padel-spots-api/internal/model"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Columns expected in the header of a spots file
var Columns = []string{
	"club_name", "scheduled_at", "court_number", "player_replaced",
	"cost", "location_lat", "location_lng", "existing_players",
}

var scheduleLayouts = []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02T15:04"}

// Result summarizes an import run
type Result struct {
	Loaded  int
	Skipped int
}

// Parser reads spot rows from a CSV file
type Parser struct {
	dataFile  string
	batchSize int
	validate  *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewParser creates a new parser instance with config
func NewParser(seederCfg config.SeederConfig, logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{
		dataFile:  seederCfg.DataFile,
		batchSize: seederCfg.BatchSize,
		validate:  validator.New(),
		logger:    logger,
		now:       time.Now,
	}
}

// ProcessSpots streams the configured file to callback in batches.
// Each batch is a fresh slice that the callback may keep.
// A .zip file is read through its first .csv entry.
func (p *Parser) ProcessSpots(callback func(batch []model.Spot) error) (Result, error) {
	if strings.HasSuffix(p.dataFile, ".zip") {
		r, err := zip.OpenReader(p.dataFile)
		if err != nil {
			return Result{}, fmt.Errorf("failed to open zip: %w", err)
		}
		defer r.Close()

		for _, f := range r.File {
			if strings.HasSuffix(f.Name, ".csv") {
				rc, err := f.Open()
				if err != nil {
					return Result{}, fmt.Errorf("failed to open file in zip: %w", err)
				}
				defer rc.Close()
				return p.processSpotsFromReader(rc, callback)
			}
		}
		return Result{}, fmt.Errorf("no csv file found in zip")
	}

	file, err := os.Open(p.dataFile)
	if err != nil {
		return Result{}, fmt.Errorf("failed to open %s: %w", p.dataFile, err)
	}
	defer file.Close()

	return p.processSpotsFromReader(file, callback)
}

func (p *Parser) processSpotsFromReader(reader io.Reader, callback func(batch []model.Spot) error) (Result, error) {
	var result Result

	r := csv.NewReader(reader)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return result, fmt.Errorf("failed to read header: %w", err)
	}
	index, err := columnIndex(header)
	if err != nil {
		return result, err
	}

	batchSize := p.batchSize
	if batchSize <= 0 {
		batchSize = 500
	}
	batch := make([]model.Spot, 0, batchSize)
	now := p.now().UTC()

	line := 1
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				p.logger.Warn("Skipping malformed row", zap.Int("line", line), zap.Error(err))
				result.Skipped++
				continue
			}
			return result, fmt.Errorf("failed to read spots: %w", err)
		}

		spot, err := p.parseRow(record, index)
		if err != nil {
			p.logger.Warn("Skipping invalid row", zap.Int("line", line), zap.Error(err))
			result.Skipped++
			continue
		}
		spot.CreatedAt = now
		spot.UpdatedAt = now

		batch = append(batch, spot)
		if len(batch) >= batchSize {
			if err := callback(batch); err != nil {
				return result, fmt.Errorf("spot callback error: %w", err)
			}
			result.Loaded += len(batch)
			batch = make([]model.Spot, 0, batchSize)
		}
	}

	if len(batch) > 0 {
		if err := callback(batch); err != nil {
			return result, fmt.Errorf("spot callback error: %w", err)
		}
		result.Loaded += len(batch)
	}

	return result, nil
}

func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, col := range Columns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("missing column %q in header", col)
		}
	}
	return index, nil
}

func (p *Parser) parseRow(record []string, index map[string]int) (model.Spot, error) {
	field := func(name string) string {
		i := index[name]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	spot := model.Spot{
		ClubName:       field("club_name"),
		CourtNumber:    field("court_number"),
		PlayerReplaced: field("player_replaced"),
	}
	if spot.ClubName == "" || spot.CourtNumber == "" || spot.PlayerReplaced == "" {
		return spot, errors.New("club_name, court_number and player_replaced are required")
	}

	scheduledAt, err := parseScheduledAt(field("scheduled_at"))
	if err != nil {
		return spot, err
	}
	spot.ScheduledAt = scheduledAt

	if s := field("cost"); s != "" {
		spot.Cost, err = strconv.ParseFloat(s, 64)
		if err != nil || spot.Cost < 0 {
			return spot, fmt.Errorf("invalid cost %q", s)
		}
	}
	spot.IsFree = spot.Cost == 0

	latStr, lngStr := field("location_lat"), field("location_lng")
	if latStr != "" || lngStr != "" {
		lat, errLat := strconv.ParseFloat(latStr, 64)
		lng, errLng := strconv.ParseFloat(lngStr, 64)
		if errLat != nil || errLng != nil {
			return spot, fmt.Errorf("invalid location %q,%q", latStr, lngStr)
		}
		spot.Location = &model.Coordinate{Lat: lat, Lng: lng}
		if err := p.validate.Struct(spot.Location); err != nil {
			return spot, fmt.Errorf("invalid location: %w", err)
		}
	}

	spot.ExistingPlayers, err = ParsePlayers(field("existing_players"))
	if err != nil {
		return spot, err
	}
	for _, player := range spot.ExistingPlayers {
		if err := p.validate.Struct(player); err != nil {
			return spot, fmt.Errorf("invalid player %q: %w", player.Name, err)
		}
	}

	return spot, nil
}

func parseScheduledAt(s string) (time.Time, error) {
	for _, layout := range scheduleLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid scheduled_at %q", s)
}

// ParsePlayers decodes "Name:level;Name:level" into players, in order
func ParsePlayers(s string) ([]model.Player, error) {
	players := []model.Player{}
	if strings.TrimSpace(s) == "" {
		return players, nil
	}

	for _, entry := range strings.Split(s, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		sep := strings.LastIndex(entry, ":")
		if sep <= 0 {
			return nil, fmt.Errorf("invalid player %q: expected name:level", entry)
		}
		players = append(players, model.Player{
			Name:       strings.TrimSpace(entry[:sep]),
			SkillLevel: model.SkillLevel(strings.ToLower(strings.TrimSpace(entry[sep+1:]))),
		})
	}
	return players, nil
}
