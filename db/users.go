package db

import (
	"database/sql"
	"fmt"

	"github.com/homedash/homedash-services/models"
)

// CreateUser inserts a new user with an already-hashed password and returns
// the created row. Returns ErrUsernameTaken on a duplicate handle.
func (d *DashboardDB) CreateUser(username, passwordHash string) (*models.User, error) {
	var id int64
	err := d.DB.QueryRow(`
		INSERT INTO users (username, password)
		VALUES ($1, $2) RETURNING id`,
		username, passwordHash).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return &models.User{ID: id, Username: username, Password: passwordHash}, nil
}

// GetUserByUsername retrieves a user for login. Returns ErrNotFound when the
// handle is unknown; callers must not disclose which credential was wrong.
func (d *DashboardDB) GetUserByUsername(username string) (*models.User, error) {
	var u models.User
	err := d.DB.QueryRow(`
		SELECT id, username, password FROM users WHERE username = $1`,
		username).Scan(&u.ID, &u.Username, &u.Password)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	return &u, nil
}

// GetUserByID confirms a token's subject still exists.
func (d *DashboardDB) GetUserByID(id int64) (*models.User, error) {
	var u models.User
	err := d.DB.QueryRow(`
		SELECT id, username, password FROM users WHERE id = $1`,
		id).Scan(&u.ID, &u.Username, &u.Password)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	return &u, nil
}

// WipeUsers deletes every user. Groups and tiles go with them via the
// ON DELETE CASCADE rules. Admin tooling only.
func (d *DashboardDB) WipeUsers() (int64, error) {
	res, err := d.DB.Exec(`DELETE FROM users`)
	if err != nil {
		return 0, fmt.Errorf("error wiping users: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("error counting wiped users: %w", err)
	}
	return n, nil
}
