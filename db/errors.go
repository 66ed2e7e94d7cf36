package db

import (
	"errors"

	"github.com/lib/pq"
	sqlite3 "github.com/mattn/go-sqlite3"
)

// Sentinel errors surfaced to handlers, which map them to HTTP codes.
var (
	// ErrNotFound means the row is absent or owned by another user. The two
	// cases are indistinguishable on purpose.
	ErrNotFound = errors.New("not found")

	// ErrGroupNotFound means a tile operation referenced a group that does
	// not exist for the calling user.
	ErrGroupNotFound = errors.New("group not found")

	// ErrUsernameTaken means signup hit the username uniqueness constraint.
	ErrUsernameTaken = errors.New("username already taken")
)

// isUniqueViolation recognizes the uniqueness-constraint error of whichever
// driver is active.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}
