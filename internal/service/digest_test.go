package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeeklyDigest(t *testing.T) {
	e := newEnv(t)
	active := e.user(t, "Active Aryal")
	e.user(t, "Idle Ojha")

	_, err := e.activities.QuickLog(active.ID, "recycled_waste")
	require.NoError(t, err)
	_, err = e.gamification.LogAction(active.ID, "transport", 1, "")
	require.NoError(t, err)

	digest, err := e.digests.Digest(active.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, digest.Activities)
	assert.InDelta(t, 0.15+2.5, digest.CarbonSaved, 0.001)
	assert.Equal(t, 1, digest.Level)
	assert.Equal(t, 1, digest.Streak)

	sent, err := e.digests.SendWeekly()
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	e.digests.now = func() time.Time { return time.Now().AddDate(0, 0, 30) }
	sent, err = e.digests.SendWeekly()
	require.NoError(t, err)
	assert.Equal(t, 0, sent)
}
