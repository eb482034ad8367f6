package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/footprint/internal/gamification"
	"github.com/templui/footprint/internal/model"
	"github.com/templui/footprint/internal/repository"
)

func TestLogAction(t *testing.T) {
	e := newEnv(t)
	u := e.user(t, "Bikash Tamang")

	outcome, err := e.gamification.LogAction(u.ID, "tree", 2, " planted near school ")
	require.NoError(t, err)

	assert.Equal(t, 100, outcome.Stats.Points)
	assert.Equal(t, 2, outcome.Stats.TreesPlanted)
	assert.InDelta(t, 43.54, outcome.Stats.CarbonSaved, 0.001)
	assert.Equal(t, 1, outcome.Stats.ActionsCount)
	assert.Equal(t, 1, outcome.Stats.CurrentStreak)
	assert.Equal(t, 2, outcome.Level.Level)
	assert.True(t, outcome.LevelUp)
	assert.Equal(t, "planted near school", outcome.Action.Details)

	ids := make([]string, 0, len(outcome.NewAchievements))
	for _, a := range outcome.NewAchievements {
		ids = append(ids, a.ID)
	}
	assert.Contains(t, ids, "first_action")

	notes, err := e.notifications.List(u.ID, true)
	require.NoError(t, err)
	types := make(map[string]bool)
	for _, n := range notes {
		types[n.Type] = true
	}
	assert.True(t, types[model.NotificationLevelUp])
	assert.True(t, types[model.NotificationAchievement])
}

func TestLogActionUnknownType(t *testing.T) {
	e := newEnv(t)
	u := e.user(t, "Bikash Tamang")

	_, err := e.gamification.LogAction(u.ID, "teleport", 1, "")
	assert.ErrorIs(t, err, gamification.ErrUnknownAction)

	_, err = e.gamification.LogAction(u.ID, "tree", -1, "")
	assert.ErrorIs(t, err, gamification.ErrInvalidQuantity)
}

func TestAchievementsUnlockOnce(t *testing.T) {
	e := newEnv(t)
	u := e.user(t, "Bikash Tamang")

	_, err := e.gamification.LogAction(u.ID, "transport", 1, "")
	require.NoError(t, err)
	outcome, err := e.gamification.LogAction(u.ID, "transport", 1, "")
	require.NoError(t, err)
	assert.Empty(t, outcome.NewAchievements)

	view, err := e.gamification.Stats(u.ID)
	require.NoError(t, err)
	assert.Equal(t, 40, view.Points)
	assert.Equal(t, 40, view.Balance)
	assert.Equal(t, 1, view.DaysActive)
	assert.Len(t, view.Achievements, len(gamification.Achievements()))

	unlocked := 0
	for _, a := range view.Achievements {
		if a.Unlocked {
			unlocked++
			assert.NotNil(t, a.UnlockedAt)
		}
	}
	assert.Equal(t, 1, unlocked)
}

func TestCreditNeverGoesNegative(t *testing.T) {
	e := newEnv(t)
	u := e.user(t, "Bikash Tamang")

	outcome, err := e.gamification.Credit(u.ID, Gain{Points: -30})
	require.NoError(t, err)
	assert.Equal(t, 0, outcome.Stats.Points)
	assert.False(t, outcome.LevelUp)

	// spent points stay covered
	e.points(t, u.ID, 100)
	require.NoError(t, e.statsRepo.Spend(u.ID, 80))
	outcome, err = e.gamification.Credit(u.ID, Gain{Points: -50})
	require.NoError(t, err)
	assert.Equal(t, 80, outcome.Stats.Points)
	assert.Equal(t, 0, outcome.Stats.Balance())
}

func TestRevoke(t *testing.T) {
	e := newEnv(t)
	u := e.user(t, "Bikash Tamang")

	e.points(t, u.ID, 100)
	require.NoError(t, e.gamification.Revoke(u.ID, 40))
	assert.ErrorIs(t, e.gamification.Revoke(u.ID, 80), repository.ErrInsufficientPoints)

	stats, err := e.statsRepo.Get(u.ID)
	require.NoError(t, err)
	assert.Equal(t, 60, stats.Points)
}

func TestResetLapsedStreaks(t *testing.T) {
	e := newEnv(t)
	u := e.user(t, "Bikash Tamang")

	e.gamification.now = func() time.Time { return time.Now().AddDate(0, 0, -3) }
	_, err := e.gamification.LogAction(u.ID, "recycle", 1, "")
	require.NoError(t, err)

	e.gamification.now = time.Now
	n, err := e.gamification.ResetLapsedStreaks()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	stats, err := e.statsRepo.Get(u.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.CurrentStreak)
	assert.Equal(t, 1, stats.LongestStreak)
}
