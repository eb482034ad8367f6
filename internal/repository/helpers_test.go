package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"github.com/templui/footprint/internal/db/dbtest"
	"github.com/templui/footprint/internal/model"
)

func newUser(t *testing.T, conn *sqlx.DB, name, category string) *model.User {
	t.Helper()

	user := &model.User{
		ID:        uuid.New().String(),
		Email:     uuid.New().String() + "@example.com",
		CreatedAt: time.Now(),
	}
	require.NoError(t, NewUserRepository(conn).Create(user))
	require.NoError(t, NewProfileRepository(conn).Create(&model.Profile{
		UserID:   user.ID,
		Name:     name,
		Category: category,
	}))
	return user
}

func openDB(t *testing.T) *sqlx.DB {
	t.Helper()
	return dbtest.Open(t)
}
