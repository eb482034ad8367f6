package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDialect(t *testing.T) {
	assert.Equal(t, "sqlite3", getDialect("sqlite"))
	assert.Equal(t, "postgres", getDialect("pgx"))
	assert.Equal(t, "postgres", getDialect("postgres"))
	assert.Equal(t, "pgx", normalizeDriver("postgresql"))
}
