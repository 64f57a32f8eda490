package database

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alexivanou/padel-spots-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectAndMigrate(t *testing.T) {
	cfg := config.DBConfig{Type: config.DBTypeMemory, Name: fmt.Sprintf("db_%d", time.Now().UnixNano())}

	db, err := Connect(context.Background(), cfg)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(db, cfg, "../../migrations"))
	// Second run is a no-op
	require.NoError(t, Migrate(db, cfg, "../../migrations"))

	var count int
	require.NoError(t, db.Get(&count, "SELECT COUNT(*) FROM spots"))
	assert.Equal(t, 0, count)

	_, err = db.Exec(`INSERT INTO spots (club_name, scheduled_at, court_number, player_replaced, cost,
		location_lat, location_lng, created_at, updated_at)
		VALUES ('x', '2024-01-01 10:00:00+00:00', '1', 'y', 0, 10, NULL, '2024-01-01', '2024-01-01')`)
	assert.Error(t, err, "half a location must be rejected")
}

func TestNewMigrator_MissingDir(t *testing.T) {
	cfg := config.DBConfig{Type: config.DBTypeMemory, Name: fmt.Sprintf("db_%d", time.Now().UnixNano())}

	db, err := Connect(context.Background(), cfg)
	require.NoError(t, err)
	defer db.Close()

	_, err = NewMigrator(db, cfg, t.TempDir()+"/missing")
	assert.Error(t, err)
}
