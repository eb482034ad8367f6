package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/footprint/internal/gamification"
	"github.com/templui/footprint/internal/model"
	"github.com/templui/footprint/internal/repository"
)

func TestRedeemAndCancel(t *testing.T) {
	e := newEnv(t)
	u := e.user(t, "Nabin Karki")
	e.points(t, u.ID, 300)

	redemption, err := e.rewards.Redeem(u.ID, "coffee-10")
	require.NoError(t, err)
	assert.Len(t, redemption.Code, 8)
	assert.Equal(t, model.RedemptionStatusPending, redemption.Status)
	assert.Equal(t, 250, redemption.PointsSpent)

	stats, err := e.statsRepo.Get(u.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, stats.Balance())
	assert.Equal(t, 300, stats.Points)

	_, err = e.rewards.Redeem(u.ID, "coffee-10")
	assert.ErrorIs(t, err, gamification.ErrInsufficientPoint)

	cancelled, err := e.rewards.Cancel(u.ID, redemption.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RedemptionStatusCancelled, cancelled.Status)

	stats, err = e.statsRepo.Get(u.ID)
	require.NoError(t, err)
	assert.Equal(t, 300, stats.Balance())

	_, err = e.rewards.Cancel(u.ID, redemption.ID)
	assert.ErrorIs(t, err, ErrNotCancellable)
}

func TestRedeemRestoresStock(t *testing.T) {
	e := newEnv(t)
	u := e.user(t, "Nabin Karki")
	e.points(t, u.ID, 400)

	redemption, err := e.rewards.Redeem(u.ID, "meal-15")
	require.NoError(t, err)

	meal := func() int {
		list, err := e.rewards.List(model.RewardCategoryDiscount)
		require.NoError(t, err)
		for _, r := range list {
			if r.ID == "meal-15" {
				return r.Stock
			}
		}
		t.Fatal("meal-15 not listed")
		return 0
	}
	assert.Equal(t, 99, meal())

	_, err = e.rewards.Cancel(u.ID, redemption.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, meal())
}

func TestRedeemUnknownReward(t *testing.T) {
	e := newEnv(t)
	u := e.user(t, "Nabin Karki")

	_, err := e.rewards.Redeem(u.ID, "spaceship")
	assert.ErrorIs(t, err, repository.ErrRewardNotFound)
}

func TestDonate(t *testing.T) {
	e := newEnv(t)
	u := e.user(t, "Nabin Karki")
	e.points(t, u.ID, 100)

	result, err := e.rewards.Donate(u.ID, 45)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Donation.Trees)
	assert.Equal(t, 2, result.Outcome.Stats.TreesPlanted)
	assert.Equal(t, 55, result.Outcome.Stats.Balance())

	_, err = e.rewards.Donate(u.ID, 10)
	assert.ErrorIs(t, err, gamification.ErrDonationTooSmall)

	_, err = e.rewards.Donate(u.ID, 80)
	assert.ErrorIs(t, err, repository.ErrInsufficientPoints)

	donations, err := e.rewards.Donations(u.ID)
	require.NoError(t, err)
	assert.Len(t, donations, 1)
}
