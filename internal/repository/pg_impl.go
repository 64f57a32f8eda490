package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexivanou/padel-spots-api/internal/model"
	"github.com/jmoiron/sqlx"
)

// --- PostgreSQL Implementation ---

type pgSpotRepository struct {
	db *sqlx.DB
}

func (r *pgSpotRepository) ListSpots(ctx context.Context, criteria model.SpotFilter) ([]model.Spot, error) {
	where, args := candidateConditions(criteria)
	q := r.db.Rebind("SELECT " + spotColumns + " FROM spots" + where + spotOrder)

	var rows []spotRow
	if err := r.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, err
	}
	return rowsToSpots(rows), nil
}

func (r *pgSpotRepository) GetSpotByID(ctx context.Context, id int64) (*model.Spot, error) {
	var row spotRow
	if err := r.db.GetContext(ctx, &row, "SELECT "+spotColumns+" FROM spots WHERE id = $1", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	spot := row.toModel()
	return &spot, nil
}

func (r *pgSpotRepository) CreateSpot(ctx context.Context, spot model.Spot) (int64, error) {
	rows, err := r.db.NamedQueryContext(ctx, insertSpotQuery+" RETURNING id", newSpotRow(spot))
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return 0, err
		}
		return 0, fmt.Errorf("insert returned no id")
	}
	var id int64
	if err := rows.Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *pgSpotRepository) UpdateSpot(ctx context.Context, spot model.Spot) (bool, error) {
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

func (r *pgSpotRepository) DeleteSpot(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM spots WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *pgSpotRepository) BulkInsertSpots(ctx context.Context, spots []model.Spot) error {
	// Chunking to avoid parameter limit issues even in PG (max 65535 parameters)
	chunkSize := 2000
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
