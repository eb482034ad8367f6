package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/footprint/internal/model"
)

func TestConsumeTokenOnce(t *testing.T) {
	conn := openDB(t)
	repo := NewTokenRepository(conn)
	user := newUser(t, conn, "Maya", "")

	require.NoError(t, repo.Create(&model.Token{
		UserID:    user.ID,
		Type:      model.TokenTypeMagicLink,
		Token:     "abc",
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	tok, err := repo.ConsumeToken("abc")
	require.NoError(t, err)
	assert.Equal(t, user.ID, tok.UserID)
	assert.NotNil(t, tok.UsedAt)

	_, err = repo.ConsumeToken("abc")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestConsumeExpiredToken(t *testing.T) {
	conn := openDB(t)
	repo := NewTokenRepository(conn)
	user := newUser(t, conn, "Maya", "")

	require.NoError(t, repo.Create(&model.Token{
		UserID:    user.ID,
		Type:      model.TokenTypePasswordReset,
		Token:     "old",
		ExpiresAt: time.Now().Add(-time.Minute),
	}))

	_, err := repo.ConsumeToken("old")
	assert.ErrorIs(t, err, ErrTokenNotFound)

	removed, err := repo.CleanupExpired(0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
}
