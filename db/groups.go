package db

import (
	"database/sql"
	"fmt"

	"github.com/homedash/homedash-services/internal/position"
	"github.com/homedash/homedash-services/models"
)

// GetGroups retrieves all groups owned by the user, ordered by position.
func (d *DashboardDB) GetGroups(userID int64) ([]models.Group, error) {
	rows, err := d.DB.Query(`
		SELECT id, user_id, name, position FROM groups
		WHERE user_id = $1 ORDER BY position ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving groups: %w", err)
	}
	defer rows.Close()

	var groups []models.Group
	for rows.Next() {
		var g models.Group
		if err := rows.Scan(&g.ID, &g.UserID, &g.Name, &g.Position); err != nil {
			return nil, fmt.Errorf("error scanning groups: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// CreateGroup inserts a group at the end of the user's group order. The
// position read and the insert share one transaction so concurrent creates
// cannot interleave between them.
func (d *DashboardDB) CreateGroup(userID int64, name string) (*models.Group, error) {
	tx, err := d.DB.Begin()
	if err != nil {
		return nil, fmt.Errorf("error starting transaction: %w", err)
	}

	newPos, err := nextGroupPosition(tx, userID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	var id int64
	err = tx.QueryRow(`
		INSERT INTO groups (user_id, name, position)
		VALUES ($1, $2, $3) RETURNING id`,
		userID, name, newPos).Scan(&id)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("error creating group: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("error committing transaction: %w", err)
	}

	return &models.Group{ID: id, UserID: userID, Name: name, Position: newPos}, nil
}

// RenameGroup renames a group scoped to its owner. Returns ErrNotFound when
// no row matched.
func (d *DashboardDB) RenameGroup(userID, groupID int64, name string) error {
	res, err := d.DB.Exec(`
		UPDATE groups SET name = $1 WHERE id = $2 AND user_id = $3`,
		name, groupID, userID)
	if err != nil {
		return fmt.Errorf("error updating group: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking group update: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteGroup uncategorizes the group's tiles, then deletes the group row.
// Both steps share a transaction: if the group is absent or owned by someone
// else the tile updates roll back and ErrNotFound is returned.
func (d *DashboardDB) DeleteGroup(userID, groupID int64) error {
	tx, err := d.DB.Begin()
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}

	if err := d.execQuery(tx, `
		UPDATE tiles SET group_id = NULL WHERE group_id = $1 AND user_id = $2`,
		groupID, userID); err != nil {
		tx.Rollback()
		return fmt.Errorf("error uncategorizing tiles: %w", err)
	}

	res, err := tx.Exec(`
		DELETE FROM groups WHERE id = $1 AND user_id = $2`, groupID, userID)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("error deleting group: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("error checking group delete: %w", err)
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

// ReorderGroups overwrites each listed group's position with its index.
// Ids outside the caller's scope match no rows and are ignored; unlisted
// groups keep their positions. All-or-nothing.
func (d *DashboardDB) ReorderGroups(userID int64, orderedIDs []int64) error {
	tx, err := d.DB.Begin()
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}

	for id, idx := range position.Reindex(orderedIDs) {
		if err := d.execQuery(tx, `
			UPDATE groups SET position = $1 WHERE id = $2 AND user_id = $3`,
			idx, id, userID); err != nil {
			tx.Rollback()
			return fmt.Errorf("error reordering groups: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}
	return nil
}

func nextGroupPosition(tx *sql.Tx, userID int64) (int, error) {
	var maxPos sql.NullInt64
	err := tx.QueryRow(`
		SELECT MAX(position) FROM groups WHERE user_id = $1`, userID).Scan(&maxPos)
	if err != nil {
		return 0, fmt.Errorf("error calculating group position: %w", err)
	}
	if !maxPos.Valid {
		return position.Next(nil), nil
	}
	return position.Next([]int{int(maxPos.Int64)}), nil
}
