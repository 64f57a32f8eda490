package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/alexivanou/padel-spots-api/internal/model"
	"github.com/jmoiron/sqlx"
)

type sqliteSpotRepository struct {
	db *sqlx.DB
}

func (r *sqliteSpotRepository) ListSpots(ctx context.Context, criteria model.SpotFilter) ([]model.Spot, error) {
	where, args := candidateConditions(criteria)
	q := "SELECT " + spotColumns + " FROM spots" + where + spotOrder

	var rows []spotRow
	if err := r.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, err
	}
	return rowsToSpots(rows), nil
}

func (r *sqliteSpotRepository) GetSpotByID(ctx context.Context, id int64) (*model.Spot, error) {
	var row spotRow
	if err := r.db.GetContext(ctx, &row, "SELECT "+spotColumns+" FROM spots WHERE id = ?", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	spot := row.toModel()
	return &spot, nil
}

func (r *sqliteSpotRepository) CreateSpot(ctx context.Context, spot model.Spot) (int64, error) {
	res, err := r.db.NamedExecContext(ctx, insertSpotQuery, newSpotRow(spot))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *sqliteSpotRepository) UpdateSpot(ctx context.Context, spot model.Spot) (bool, error) {
	res, err := r.db.NamedExecContext(ctx, updateSpotQuery, newSpotRow(spot))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *sqliteSpotRepository) DeleteSpot(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM spots WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *sqliteSpotRepository) BulkInsertSpots(ctx context.Context, spots []model.Spot) error {
	// SQLite variable limit workaround (100 rows * 11 params)
	chunkSize := 100
	for i := 0; i < len(spots); i += chunkSize {
		end := i + chunkSize
		if end > len(spots) {
			end = len(spots)
		}
		batch := newSpotRows(spots[i:end])

		if _, err := r.db.NamedExecContext(ctx, insertSpotQuery, batch); err != nil {
			return err
		}
	}
	return nil
}
