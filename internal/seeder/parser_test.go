package seeder

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alexivanou/padel-spots-api/internal/config"
	"github.com/alexivanou/padel-spots-api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCSV = `club_name,scheduled_at,court_number,player_replaced,cost,location_lat,location_lng,existing_players
Padel Club Madrid,2024-01-20T14:30:00Z,Court 3,Carlos Rodriguez,0,40.4168,-3.7038,Ana Garcia:intermediate;Luis Perez:Advanced
Barcelona Padel Center,2024-01-21 10:00,Court 1,Jordi,15.5,41.3851,2.1734,
Madrid Social,2024-01-22 20:00,Court 5,Eva,8,,,Marta:beginner
,2024-01-22 20:00,Court 5,Eva,8,,,
Bad Date Club,22/01/2024,Court 5,Eva,8,,,
Negative Club,2024-01-22 20:00,Court 5,Eva,-3,,,
Half Location Club,2024-01-22 20:00,Court 5,Eva,0,40.1,,
Far Club,2024-01-22 20:00,Court 5,Eva,0,95,10,
Expert Club,2024-01-22 20:00,Court 5,Eva,0,,,Pro:expert
`

func TestParser_ProcessSpots(t *testing.T) {
	parser := NewParser(config.SeederConfig{BatchSize: 2}, nil)
	clock := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	parser.now = func() time.Time { return clock }

	var batches [][]model.Spot
	result, err := parser.processSpotsFromReader(strings.NewReader(testCSV), func(batch []model.Spot) error {
		batches = append(batches, append([]model.Spot(nil), batch...))
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Loaded)
	assert.Equal(t, 6, result.Skipped)
	require.Len(t, batches, 2)
	assert.Len(t, batches[0], 2)
	assert.Len(t, batches[1], 1)

	madrid := batches[0][0]
	assert.Equal(t, "Padel Club Madrid", madrid.ClubName)
	assert.Equal(t, time.Date(2024, 1, 20, 14, 30, 0, 0, time.UTC), madrid.ScheduledAt)
	assert.True(t, madrid.IsFree)
	require.NotNil(t, madrid.Location)
	assert.Equal(t, 40.4168, madrid.Location.Lat)
	assert.Equal(t, []model.Player{
		{Name: "Ana Garcia", SkillLevel: model.SkillIntermediate},
		{Name: "Luis Perez", SkillLevel: model.SkillAdvanced},
	}, madrid.ExistingPlayers)
	assert.Equal(t, clock, madrid.CreatedAt)

	barcelona := batches[0][1]
	assert.False(t, barcelona.IsFree)
	assert.Equal(t, 15.5, barcelona.Cost)
	assert.Equal(t, time.Date(2024, 1, 21, 10, 0, 0, 0, time.UTC), barcelona.ScheduledAt)
	assert.NotNil(t, barcelona.ExistingPlayers)
	assert.Empty(t, barcelona.ExistingPlayers)

	social := batches[1][0]
	assert.Nil(t, social.Location)
	assert.Len(t, social.ExistingPlayers, 1)
}

func TestParser_ProcessSpots_BatchesAreIndependent(t *testing.T) {
	parser := NewParser(config.SeederConfig{BatchSize: 1}, nil)

	var kept [][]model.Spot
	result, err := parser.processSpotsFromReader(strings.NewReader(testCSV), func(batch []model.Spot) error {
		kept = append(kept, batch)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 3, result.Loaded)
	require.Len(t, kept, 3)

	assert.Equal(t, "Padel Club Madrid", kept[0][0].ClubName)
	assert.Equal(t, "Barcelona Padel Center", kept[1][0].ClubName)
	assert.Equal(t, "Madrid Social", kept[2][0].ClubName)
}

func TestParser_MissingColumn(t *testing.T) {
	parser := NewParser(config.SeederConfig{}, nil)

	_, err := parser.processSpotsFromReader(strings.NewReader("club_name,cost\nX,0\n"), func([]model.Spot) error {
		return nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scheduled_at")
}

func TestParser_CallbackError(t *testing.T) {
	parser := NewParser(config.SeederConfig{BatchSize: 1}, nil)

	calls := 0
	_, err := parser.processSpotsFromReader(strings.NewReader(testCSV), func([]model.Spot) error {
		calls++
		return errors.New("insert failed")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert failed")
	assert.Equal(t, 1, calls)
}

func TestParser_ProcessSpots_Files(t *testing.T) {
	tmpDir := t.TempDir()

	csvPath := filepath.Join(tmpDir, "spots.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(testCSV), 0644))

	zipPath := filepath.Join(tmpDir, "spots.zip")
	f, err := os.Create(zipPath)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create("export/spots.csv")
	require.NoError(t, err)
	_, err = w.Write([]byte(testCSV))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	for _, path := range []string{csvPath, zipPath} {
		t.Run(filepath.Ext(path), func(t *testing.T) {
			parser := NewParser(config.SeederConfig{DataFile: path, BatchSize: 100}, nil)

			var loaded []model.Spot
			result, err := parser.ProcessSpots(func(batch []model.Spot) error {
				loaded = append(loaded, batch...)
				return nil
			})
			require.NoError(t, err)
			assert.Equal(t, 3, result.Loaded)
			assert.Len(t, loaded, 3)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		parser := NewParser(config.SeederConfig{DataFile: filepath.Join(tmpDir, "nope.csv")}, nil)
		_, err := parser.ProcessSpots(func([]model.Spot) error { return nil })
		assert.Error(t, err)
	})
}

func TestParsePlayers(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []model.Player
		wantErr  bool
	}{
		{name: "empty", input: "", expected: []model.Player{}},
		{name: "single", input: "Ana:beginner", expected: []model.Player{{Name: "Ana", SkillLevel: model.SkillBeginner}}},
		{
			name:  "name with colon keeps order",
			input: "Dr: Who:professional; Ana:BEGINNER;",
			expected: []model.Player{
				{Name: "Dr: Who", SkillLevel: model.SkillProfessional},
				{Name: "Ana", SkillLevel: model.SkillBeginner},
			},
		},
		{name: "missing level", input: "Ana", wantErr: true},
		{name: "missing name", input: ":beginner", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePlayers(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
