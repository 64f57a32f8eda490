package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexivanou/padel-spots-api/internal/config"
	"github.com/alexivanou/padel-spots-api/internal/discovery"
	"github.com/alexivanou/padel-spots-api/internal/model"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
)

// SpotRepository defines operations for spots
type SpotRepository interface {
	ListSpots(ctx context.Context, criteria model.SpotFilter) ([]model.Spot, error)
	GetSpotByID(ctx context.Context, id int64) (*model.Spot, error)
	CreateSpot(ctx context.Context, spot model.Spot) (int64, error)
	UpdateSpot(ctx context.Context, spot model.Spot) (bool, error)
	DeleteSpot(ctx context.Context, id int64) (bool, error)
	BulkInsertSpots(ctx context.Context, spots []model.Spot) error
}

// Container holds all repositories
type Container struct {
	Spot SpotRepository
}

// NewRepositories creates repository implementations based on DB type
func NewRepositories(db *sqlx.DB, dbType config.DBType) *Container {
	if dbType == config.DBTypePostgreSQL {
		return &Container{
			Spot: &pgSpotRepository{db: db},
		}
	}

	// Default to SQLite
	return &Container{
		Spot: &sqliteSpotRepository{db: db},
	}
}

// IsDatabaseEmpty reports whether no spot has been stored yet (used by main).
// A missing spots table counts as empty; any other failure is returned.
func IsDatabaseEmpty(ctx context.Context, db *sqlx.DB) (bool, error) {
	var count int
	err := db.GetContext(ctx, &count, "SELECT COUNT(*) FROM spots")
	if err != nil {
		if isMissingTable(err) {
			return true, nil
		}
		return false, fmt.Errorf("failed to count spots: %w", err)
	}
	return count == 0, nil
}

func isMissingTable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "42P01" // undefined_table
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return strings.Contains(liteErr.Error(), "no such table")
	}
	return false
}

const spotColumns = `id, club_name, scheduled_at, court_number, player_replaced, cost, is_free,
	location_lat, location_lng, existing_players, created_at, updated_at`

const insertSpotQuery = `
	INSERT INTO spots (club_name, scheduled_at, court_number, player_replaced, cost, is_free,
		location_lat, location_lng, existing_players, created_at, updated_at)
	VALUES (:club_name, :scheduled_at, :court_number, :player_replaced, :cost, :is_free,
		:location_lat, :location_lng, :existing_players, :created_at, :updated_at)`

const updateSpotQuery = `
	UPDATE spots SET
		club_name = :club_name,
		scheduled_at = :scheduled_at,
		court_number = :court_number,
		player_replaced = :player_replaced,
		cost = :cost,
		is_free = :is_free,
		location_lat = :location_lat,
		location_lng = :location_lng,
		existing_players = :existing_players,
		updated_at = :updated_at
	WHERE id = :id`

// Storage order; the discovery core keeps it whenever no proximity ranking applies.
const spotOrder = ` ORDER BY scheduled_at ASC, created_at DESC, id DESC`

// spotRow is the flat database representation of a spot
type spotRow struct {
	ID              int64           `db:"id"`
	ClubName        string          `db:"club_name"`
	ScheduledAt     time.Time       `db:"scheduled_at"`
	CourtNumber     string          `db:"court_number"`
	PlayerReplaced  string          `db:"player_replaced"`
	Cost            float64         `db:"cost"`
	IsFree          bool            `db:"is_free"`
	LocationLat     sql.NullFloat64 `db:"location_lat"`
	LocationLng     sql.NullFloat64 `db:"location_lng"`
	ExistingPlayers playerList      `db:"existing_players"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

func newSpotRow(s model.Spot) spotRow {
	row := spotRow{
		ID:              s.ID,
		ClubName:        s.ClubName,
		ScheduledAt:     s.ScheduledAt.UTC(),
		CourtNumber:     s.CourtNumber,
		PlayerReplaced:  s.PlayerReplaced,
		Cost:            s.Cost,
		IsFree:          s.IsFree,
		ExistingPlayers: playerList(s.ExistingPlayers),
		CreatedAt:       s.CreatedAt.UTC(),
		UpdatedAt:       s.UpdatedAt.UTC(),
	}
	if s.Location != nil {
		row.LocationLat = sql.NullFloat64{Float64: s.Location.Lat, Valid: true}
		row.LocationLng = sql.NullFloat64{Float64: s.Location.Lng, Valid: true}
	}
	return row
}

func (r spotRow) toModel() model.Spot {
	spot := model.Spot{
		ID:              r.ID,
		ClubName:        r.ClubName,
		ScheduledAt:     r.ScheduledAt.UTC(),
		CourtNumber:     r.CourtNumber,
		PlayerReplaced:  r.PlayerReplaced,
		Cost:            r.Cost,
		IsFree:          r.IsFree,
		ExistingPlayers: []model.Player(r.ExistingPlayers),
		CreatedAt:       r.CreatedAt.UTC(),
		UpdatedAt:       r.UpdatedAt.UTC(),
	}
	if spot.ExistingPlayers == nil {
		spot.ExistingPlayers = []model.Player{}
	}
	if r.LocationLat.Valid && r.LocationLng.Valid {
		spot.Location = &model.Coordinate{Lat: r.LocationLat.Float64, Lng: r.LocationLng.Float64}
	}
	return spot
}

func rowsToSpots(rows []spotRow) []model.Spot {
	spots := make([]model.Spot, 0, len(rows))
	for _, r := range rows {
		spots = append(spots, r.toModel())
	}
	return spots
}

func newSpotRows(spots []model.Spot) []spotRow {
	rows := make([]spotRow, 0, len(spots))
	for _, s := range spots {
		rows = append(rows, newSpotRow(s))
	}
	return rows
}

// candidateConditions translates the criteria that have an exact SQL equivalent
// into a WHERE clause using '?' placeholders. Club name and skill level stay
// with the discovery core: LIKE case folding differs between engines and the
// players live in a JSON column.
func candidateConditions(f model.SpotFilter) (string, []interface{}) {
	var clauses []string
	var args []interface{}

	if f.DateFrom != nil {
		clauses = append(clauses, "scheduled_at >= ?")
		args = append(args, discovery.StartOfDay(*f.DateFrom).UTC())
	}
	if f.DateTo != nil {
		clauses = append(clauses, "scheduled_at <= ?")
		args = append(args, discovery.EndOfDay(*f.DateTo).UTC())
	}
	if f.IsFree != nil {
		clauses = append(clauses, "is_free = ?")
		args = append(args, *f.IsFree)
	}
	if f.MaxCost != nil {
		clauses = append(clauses, "cost <= ?")
		args = append(args, *f.MaxCost)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// playerList stores existing players as a JSON array
type playerList []model.Player

// Value implements driver.Valuer
func (p playerList) Value() (driver.Value, error) {
	if p == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]model.Player(p))
	if err != nil {
		return nil, fmt.Errorf("failed to encode existing players: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (p *playerList) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*p = playerList{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported existing_players type %T", src)
	}

	var players []model.Player
	if err := json.Unmarshal(data, &players); err != nil {
		return fmt.Errorf("failed to decode existing players: %w", err)
	}
	*p = playerList(players)
	return nil
}
