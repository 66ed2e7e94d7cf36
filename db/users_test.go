package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserDuplicateUsername(t *testing.T) {
	d := newTestDB(t)

	_, err := d.CreateUser("alice", "hash1")
	require.NoError(t, err)

	_, err = d.CreateUser("alice", "hash2")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestGetUserByUsernameUnknown(t *testing.T) {
	d := newTestDB(t)

	_, err := d.GetUserByUsername("nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWipeUsersCascades(t *testing.T) {
	d := newTestDB(t)
	alice := seedUser(t, d, "alice")
	bob := seedUser(t, d, "bob")
	groupID := seedGroup(t, d, alice, "Media")
	seedTile(t, d, alice, &groupID, "a")
	seedTile(t, d, bob, nil, "b")

	n, err := d.WipeUsers()
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	var remaining int
	require.NoError(t, d.DB.QueryRow(`SELECT COUNT(*) FROM tiles`).Scan(&remaining))
	assert.Zero(t, remaining)
	require.NoError(t, d.DB.QueryRow(`SELECT COUNT(*) FROM groups`).Scan(&remaining))
	assert.Zero(t, remaining)
}
