package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/footprint/internal/emissions"
)

func TestDashboardOverviewNewUser(t *testing.T) {
	e := newEnv(t)
	u := e.user(t, "Rojina Basnet")

	o, err := e.dashboard.Overview(u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rojina Basnet", o.Profile.Name)
	assert.Nil(t, o.Latest)
	require.NotNil(t, o.Rank)
	assert.Equal(t, 8, o.Rank.Rank)
	assert.Equal(t, 0, o.Stats.Points)
	assert.Equal(t, 0, o.Today.TotalActivities)
	assert.Empty(t, o.Challenges)
	assert.Empty(t, o.Goals)
	assert.Empty(t, o.Tips.Tips)
	assert.Equal(t, 0, o.UnreadMessages)
}

func TestDashboardOverview(t *testing.T) {
	e := newEnv(t)
	e.freeze(midJune)
	u := e.user(t, "Rojina Basnet")

	_, err := e.footprints.Calculate(u.ID, emissions.Input{CarKm: 120})
	require.NoError(t, err)
	_, err = e.challenges.Join(u.ID, "thirty-actions")
	require.NoError(t, err)
	_, err = e.activities.QuickLog(u.ID, "lights_off_hour")
	require.NoError(t, err)
	_, err = e.goals.Create(u.ID, GoalInput{Title: "First 20 kg", TargetKg: 20})
	require.NoError(t, err)
	_, _, err = e.tips.Implement(u.ID, "reusable-bags")
	require.NoError(t, err)

	o, err := e.dashboard.Overview(u.ID)
	require.NoError(t, err)
	require.NotNil(t, o.Latest)
	assert.Equal(t, 1, o.Today.TotalActivities)
	require.Len(t, o.Challenges, 1)
	assert.Len(t, o.Goals, 1)
	assert.Len(t, o.Tips.Tips, 1)
	assert.Equal(t, 50, o.Stats.Points)
	assert.Positive(t, o.UnreadMessages)
}
