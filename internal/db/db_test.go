package db_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/footprint/internal/db"
	"github.com/templui/footprint/internal/db/dbtest"
)

func TestMigrationsApplyAndSeed(t *testing.T) {
	conn := dbtest.Open(t)

	version, err := db.Version(conn.DB, "sqlite")
	require.NoError(t, err)
	assert.Equal(t, int64(5), version)

	var count int
	require.NoError(t, conn.Get(&count, `SELECT COUNT(*) FROM demo_competitors`))
	assert.Equal(t, 18, count)

	var top string
	require.NoError(t, conn.Get(&top, `SELECT name FROM demo_competitors ORDER BY points DESC LIMIT 1`))
	assert.Equal(t, "Sita Sharma", top)
}

func TestMigrateDown(t *testing.T) {
	conn := dbtest.Open(t)

	require.NoError(t, db.MigrateDown(conn.DB, "sqlite"))
	version, err := db.Version(conn.DB, "sqlite")
	require.NoError(t, err)
	assert.Equal(t, int64(4), version)
}
