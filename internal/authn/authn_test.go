package authn

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const testSecret = "unit-test-secret"

func TestSignAndParse(t *testing.T) {
	token, err := Sign(42, "alice", testSecret, time.Hour)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := Parse(token, testSecret)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := Sign(1, "bob", testSecret, time.Hour)
	assert.NoError(t, err)

	_, err = Parse(token, "some-other-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	token, err := Sign(1, "bob", testSecret, -time.Minute)
	assert.NoError(t, err)

	_, err = Parse(token, testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse("not-a-jwt", testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2")
	assert.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)

	assert.True(t, CheckPassword(hash, "hunter2"))
	assert.False(t, CheckPassword(hash, "hunter3"))
}
