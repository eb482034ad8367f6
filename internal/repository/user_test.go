package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/footprint/internal/model"
)

func TestUserRepository(t *testing.T) {
	conn := openDB(t)
	repo := NewUserRepository(conn)

	user := newUser(t, conn, "Sita", "workers")

	got, err := repo.ByEmail(user.Email)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	dup := &model.User{ID: "other", Email: user.Email, CreatedAt: time.Now()}
	assert.ErrorIs(t, repo.Create(dup), ErrDuplicateEmail)

	require.NoError(t, repo.Delete(user.ID))
	_, err = repo.ByID(user.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.ErrorIs(t, repo.Delete(user.ID), ErrUserNotFound)
}

func TestProfileUpdate(t *testing.T) {
	conn := openDB(t)
	repo := NewProfileRepository(conn)
	user := newUser(t, conn, "Ram", "")

	p, err := repo.ByUserID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "free", p.Category)
	assert.Equal(t, model.ThemeLight, p.Theme)

	p.District = "Pokhara"
	p.Theme = model.ThemeDark
	require.NoError(t, repo.Update(p))

	p, err = repo.ByUserID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pokhara", p.District)
	assert.Equal(t, model.ThemeDark, p.Theme)

	assert.ErrorIs(t, repo.Update(&model.Profile{UserID: "missing"}), ErrProfileNotFound)
}

func TestActiveSince(t *testing.T) {
	conn := openDB(t)
	stats := NewStatsRepository(conn)
	a := newUser(t, conn, "A", "")
	b := newUser(t, conn, "B", "")

	require.NoError(t, stats.MarkActiveDay(a.ID, "2026-03-10"))
	require.NoError(t, stats.MarkActiveDay(b.ID, "2026-03-01"))

	users, err := NewUserRepository(conn).ActiveSince("2026-03-09")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, a.ID, users[0].ID)
}
