package session

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-unit-tests"

func TestIssueAndParse(t *testing.T) {
	userID := uuid.New()

	token, err := Issue(testSecret, userID, 24*time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := Parse(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestParse_FreshTokenAccepted(t *testing.T) {
	// A token one hour into its 24h lifetime must still be valid.
	token, err := Issue(testSecret, uuid.New(), 23*time.Hour)
	require.NoError(t, err)

	_, err = Parse(testSecret, token)
	assert.NoError(t, err)
}

func TestParse_ExpiredTokenRejected(t *testing.T) {
	// Issuing with a negative ttl simulates a token older than 24h.
	token, err := Issue(testSecret, uuid.New(), -time.Hour)
	require.NoError(t, err)

	_, err = Parse(testSecret, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_MalformedTokenRejected(t *testing.T) {
	for _, tok := range []string{"", "not-a-token", "a.b.c", "dTE6MTcwMDAwMDAwMDAwMA=="} {
		_, err := Parse(testSecret, tok)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q must be rejected", tok)
	}
}

func TestParse_WrongSecretRejected(t *testing.T) {
	token, err := Issue(testSecret, uuid.New(), time.Hour)
	require.NoError(t, err)

	_, err = Parse("a-completely-different-secret", token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
