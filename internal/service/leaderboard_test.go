package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaderboardMergesDemoAndUsers(t *testing.T) {
	e := newEnv(t)
	climber := e.user(t, "Anita Joshi")
	e.points(t, climber.ID, 700)
	newcomer := e.user(t, "Zed Newcomer")

	board, err := e.leaderboard.Standings("", 5)
	require.NoError(t, err)
	assert.Equal(t, 20, board.Total)
	assert.Len(t, board.Entries, 5)
	require.Len(t, board.Podium, 3)
	assert.Equal(t, "Sita Sharma", board.Podium[0].Name)
	assert.True(t, board.Podium[0].Demo)
	assert.Equal(t, climber.ID, board.Podium[2].UserID)
	assert.Equal(t, "AJ", board.Podium[2].Avatar)
	assert.Equal(t, 8, board.Podium[2].Level)

	rank, err := e.leaderboard.UserRank(newcomer.ID, "")
	require.NoError(t, err)
	assert.Equal(t, 20, rank.Rank)

	workers, err := e.leaderboard.Standings("workers", 0)
	require.NoError(t, err)
	assert.Equal(t, 9, workers.Total)
	for _, entry := range workers.Entries {
		assert.Equal(t, "workers", entry.Category)
	}

	_, err = e.leaderboard.UserRank(climber.ID, "students")
	assert.ErrorIs(t, err, ErrNotRanked)
}

func TestLeaderboardSkipsUnnamedUsers(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, e.auth.SendMagicLink("anon@example.com"))

	board, err := e.leaderboard.Standings("", 0)
	require.NoError(t, err)
	assert.Equal(t, 18, board.Total)
}
