package db

import (
	"fmt"

	"github.com/homedash/homedash-services/models"
)

// ExportBackup dumps the user's groups and tiles as-is, original ids
// included. The document is replayable via ImportBackup.
func (d *DashboardDB) ExportBackup(userID int64) (*models.BackupDocument, error) {
	groups, err := d.GetGroups(userID)
	if err != nil {
		return nil, fmt.Errorf("error exporting groups: %w", err)
	}
	tiles, err := d.GetTiles(userID)
	if err != nil {
		return nil, fmt.Errorf("error exporting tiles: %w", err)
	}
	if groups == nil {
		groups = []models.Group{}
	}
	if tiles == nil {
		tiles = []models.Tile{}
	}
	return &models.BackupDocument{Groups: groups, Tiles: tiles}, nil
}

// ImportBackup destructively replaces the user's data with the document's
// contents. Groups get fresh ids; each tile's group reference is translated
// through the old-to-new mapping, and tiles whose original group id has no
// mapping become uncategorized. One transaction end to end.
func (d *DashboardDB) ImportBackup(userID int64, doc *models.BackupDocument) error {
	tx, err := d.DB.Begin()
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}

	if err := d.execQuery(tx, `DELETE FROM tiles WHERE user_id = $1`, userID); err != nil {
		tx.Rollback()
		return fmt.Errorf("error clearing old tiles: %w", err)
	}
	if err := d.execQuery(tx, `DELETE FROM groups WHERE user_id = $1`, userID); err != nil {
		tx.Rollback()
		return fmt.Errorf("error clearing old groups: %w", err)
	}

	oldToNew := make(map[int64]int64, len(doc.Groups))
	for _, g := range doc.Groups {
		var newID int64
		err := tx.QueryRow(`
			INSERT INTO groups (user_id, name, position)
			VALUES ($1, $2, $3) RETURNING id`,
			userID, g.Name, g.Position).Scan(&newID)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("error inserting group: %w", err)
		}
		oldToNew[g.ID] = newID
	}

	for _, t := range doc.Tiles {
		var groupID *int64
		if t.GroupID != nil {
			if mapped, ok := oldToNew[*t.GroupID]; ok {
				groupID = &mapped
			}
		}
		if err := d.execQuery(tx, `
			INSERT INTO tiles (user_id, group_id, name, url, icon, position)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			userID, groupID, t.Name, t.URL, t.Icon, t.Position); err != nil {
			tx.Rollback()
			return fmt.Errorf("error inserting tile: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}
	return nil
}
