package db

import (
	"path/filepath"
	"testing"

	"github.com/homedash/homedash-services/internal/appconfig"
	"github.com/homedash/homedash-services/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// newTestDB opens a throwaway SQLite database with the real migrations
// applied. The store's SQL uses $N placeholders, valid in both dialects, so
// the same statements exercised here run against Postgres in production.
func newTestDB(t *testing.T) *DashboardDB {
	t.Helper()

	logger := zerolog.Nop()
	d, err := NewDashboardDB(appconfig.DatabaseConfig{
		Driver: "sqlite3",
		Source: filepath.Join(t.TempDir(), "test.db"),
	}, &logger)
	require.NoError(t, err)
	require.NoError(t, d.Migrate())
	t.Cleanup(func() { d.Close() })
	return d
}

func seedUser(t *testing.T, d *DashboardDB, username string) int64 {
	t.Helper()
	u, err := d.CreateUser(username, "hash")
	require.NoError(t, err)
	return u.ID
}

func seedGroup(t *testing.T, d *DashboardDB, userID int64, name string) int64 {
	t.Helper()
	g, err := d.CreateGroup(userID, name)
	require.NoError(t, err)
	return g.ID
}

func seedTile(t *testing.T, d *DashboardDB, userID int64, groupID *int64, name string) int64 {
	t.Helper()
	tile, err := d.CreateTile(userID, models.TileRequest{
		Name: name, URL: "https://" + name + ".example", Icon: "mdi-web", GroupID: groupID,
	})
	require.NoError(t, err)
	return tile.ID
}

// tilesIn filters one partition out of a GetTiles result, preserving the
// position order.
func tilesIn(tiles []models.Tile, groupID *int64) []models.Tile {
	var out []models.Tile
	for _, tile := range tiles {
		switch {
		case groupID == nil && tile.GroupID == nil:
			out = append(out, tile)
		case groupID != nil && tile.GroupID != nil && *tile.GroupID == *groupID:
			out = append(out, tile)
		}
	}
	return out
}

func tileNames(tiles []models.Tile) []string {
	out := make([]string, len(tiles))
	for i, tile := range tiles {
		out[i] = tile.Name
	}
	return out
}
