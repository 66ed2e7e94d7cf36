package db

import (
	"database/sql"
	"fmt"

	"github.com/homedash/homedash-services/internal/position"
	"github.com/homedash/homedash-services/models"
)

// GetTiles retrieves all tiles owned by the user, ordered by position.
func (d *DashboardDB) GetTiles(userID int64) ([]models.Tile, error) {
	rows, err := d.DB.Query(`
		SELECT id, user_id, group_id, name, url, icon, position FROM tiles
		WHERE user_id = $1 ORDER BY position ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving tiles: %w", err)
	}
	defer rows.Close()

	var tiles []models.Tile
	for rows.Next() {
		var t models.Tile
		if err := rows.Scan(&t.ID, &t.UserID, &t.GroupID, &t.Name, &t.URL, &t.Icon, &t.Position); err != nil {
			return nil, fmt.Errorf("error scanning tiles: %w", err)
		}
		tiles = append(tiles, t)
	}
	return tiles, rows.Err()
}

// CreateTile inserts a tile at the end of its (user, group-or-uncategorized)
// partition. The destination group, when given, must belong to the user.
func (d *DashboardDB) CreateTile(userID int64, req models.TileRequest) (*models.Tile, error) {
	tx, err := d.DB.Begin()
	if err != nil {
		return nil, fmt.Errorf("error starting transaction: %w", err)
	}

	if err := checkGroupOwnership(tx, userID, req.GroupID); err != nil {
		tx.Rollback()
		return nil, err
	}

	newPos, err := nextTilePosition(tx, userID, req.GroupID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	var id int64
	err = tx.QueryRow(`
		INSERT INTO tiles (user_id, group_id, name, url, icon, position)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		userID, req.GroupID, req.Name, req.URL, req.Icon, newPos).Scan(&id)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("error creating tile: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("error committing transaction: %w", err)
	}

	return &models.Tile{
		ID:       id,
		UserID:   userID,
		GroupID:  req.GroupID,
		Name:     req.Name,
		URL:      req.URL,
		Icon:     req.Icon,
		Position: newPos,
	}, nil
}

// UpdateTile rewrites a tile's fields, scoped to its owner. Returns
// ErrNotFound when no row matched and ErrGroupNotFound when the new group
// does not belong to the user.
func (d *DashboardDB) UpdateTile(userID, tileID int64, req models.TileRequest) error {
	tx, err := d.DB.Begin()
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}

	if err := checkGroupOwnership(tx, userID, req.GroupID); err != nil {
		tx.Rollback()
		return err
	}

	res, err := tx.Exec(`
		UPDATE tiles SET name = $1, url = $2, icon = $3, group_id = $4
		WHERE id = $5 AND user_id = $6`,
		req.Name, req.URL, req.Icon, req.GroupID, tileID, userID)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("error updating tile: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("error checking tile update: %w", err)
	}
	if n == 0 {
		tx.Rollback()
		return ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}
	return nil
}

// DeleteTile hard-deletes a tile scoped to its owner.
func (d *DashboardDB) DeleteTile(userID, tileID int64) error {
	res, err := d.DB.Exec(`
		DELETE FROM tiles WHERE id = $1 AND user_id = $2`, tileID, userID)
	if err != nil {
		return fmt.Errorf("error deleting tile: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking tile delete: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ReorderTiles overwrites each listed tile's position with its index,
// scoped to the caller and the stated partition. Ids outside the partition
// match no rows and are ignored; unlisted tiles keep their positions.
func (d *DashboardDB) ReorderTiles(userID int64, groupID *int64, orderedIDs []int64) error {
	tx, err := d.DB.Begin()
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}

	for id, idx := range position.Reindex(orderedIDs) {
		var execErr error
		if groupID == nil {
			execErr = d.execQuery(tx, `
				UPDATE tiles SET position = $1
				WHERE id = $2 AND user_id = $3 AND group_id IS NULL`,
				idx, id, userID)
		} else {
			execErr = d.execQuery(tx, `
				UPDATE tiles SET position = $1
				WHERE id = $2 AND user_id = $3 AND group_id = $4`,
				idx, id, userID, *groupID)
		}
		if execErr != nil {
			tx.Rollback()
			return fmt.Errorf("error reordering tiles: %w", execErr)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}
	return nil
}

// MoveTile moves a tile into the destination partition at newPosition. The
// destination slot is opened by shifting every tile at or after it up by
// one; when source and destination partition coincide the old slot is
// closed first, so the move behaves as remove-then-reinsert instead of
// double-shifting. One transaction end to end.
func (d *DashboardDB) MoveTile(userID, tileID int64, newGroupID *int64, newPosition int) error {
	tx, err := d.DB.Begin()
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}

	if err := checkGroupOwnership(tx, userID, newGroupID); err != nil {
		tx.Rollback()
		return err
	}

	var oldGroupID sql.NullInt64
	var oldPosition int
	err = tx.QueryRow(`
		SELECT group_id, position FROM tiles WHERE id = $1 AND user_id = $2`,
		tileID, userID).Scan(&oldGroupID, &oldPosition)
	if err != nil {
		tx.Rollback()
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		return fmt.Errorf("error locating tile: %w", err)
	}

	// Close the gap the tile leaves behind when it stays in its partition,
	// otherwise the later shift would double-count it.
	if sameGroup(oldGroupID, newGroupID) {
		if newGroupID == nil {
			err = d.execQuery(tx, `
				UPDATE tiles SET position = position - 1
				WHERE user_id = $1 AND group_id IS NULL AND position > $2`,
				userID, oldPosition)
		} else {
			err = d.execQuery(tx, `
				UPDATE tiles SET position = position - 1
				WHERE user_id = $1 AND group_id = $2 AND position > $3`,
				userID, *newGroupID, oldPosition)
		}
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("error closing source slot: %w", err)
		}
	}

	// Open a slot in the destination partition.
	if newGroupID == nil {
		err = d.execQuery(tx, `
			UPDATE tiles SET position = position + 1
			WHERE user_id = $1 AND group_id IS NULL AND position >= $2 AND id <> $3`,
			userID, newPosition, tileID)
	} else {
		err = d.execQuery(tx, `
			UPDATE tiles SET position = position + 1
			WHERE user_id = $1 AND group_id = $2 AND position >= $3 AND id <> $4`,
			userID, *newGroupID, newPosition, tileID)
	}
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("error opening destination slot: %w", err)
	}

	if err := d.execQuery(tx, `
		UPDATE tiles SET group_id = $1, position = $2 WHERE id = $3 AND user_id = $4`,
		newGroupID, newPosition, tileID, userID); err != nil {
		tx.Rollback()
		return fmt.Errorf("error moving tile: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}
	return nil
}

// checkGroupOwnership verifies the referenced group exists for the user.
// A nil groupID targets the uncategorized bucket and always passes.
func checkGroupOwnership(tx *sql.Tx, userID int64, groupID *int64) error {
	if groupID == nil {
		return nil
	}
	var one int
	err := tx.QueryRow(`
		SELECT 1 FROM groups WHERE id = $1 AND user_id = $2`,
		*groupID, userID).Scan(&one)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrGroupNotFound
		}
		return fmt.Errorf("error checking group ownership: %w", err)
	}
	return nil
}

func nextTilePosition(tx *sql.Tx, userID int64, groupID *int64) (int, error) {
	var maxPos sql.NullInt64
	var err error
	if groupID == nil {
		err = tx.QueryRow(`
			SELECT MAX(position) FROM tiles
			WHERE user_id = $1 AND group_id IS NULL`, userID).Scan(&maxPos)
	} else {
		err = tx.QueryRow(`
			SELECT MAX(position) FROM tiles
			WHERE user_id = $1 AND group_id = $2`, userID, *groupID).Scan(&maxPos)
	}
	if err != nil {
		return 0, fmt.Errorf("error calculating tile position: %w", err)
	}
	if !maxPos.Valid {
		return position.Next(nil), nil
	}
	return position.Next([]int{int(maxPos.Int64)}), nil
}

func sameGroup(old sql.NullInt64, dest *int64) bool {
	if !old.Valid {
		return dest == nil
	}
	return dest != nil && old.Int64 == *dest
}
