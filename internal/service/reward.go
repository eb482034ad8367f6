package service

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/templui/footprint/internal/gamification"
	"github.com/templui/footprint/internal/model"
	"github.com/templui/footprint/internal/repository"
	"gopkg.in/yaml.v3"
)

var ErrNotCancellable = errors.New("redemption can no longer be cancelled")

// DonationResult is a completed tree donation.
type DonationResult struct {
	Donation *model.Donation `json:"donation"`
	Outcome  *Outcome        `json:"outcome"`
}

type RewardService struct {
	repo          repository.RewardRepository
	stats         repository.StatsRepository
	gamification  *GamificationService
	notifications *NotificationService
}

func NewRewardService(
	repo repository.RewardRepository,
	stats repository.StatsRepository,
	gamification *GamificationService,
	notifications *NotificationService,
) *RewardService {
	return &RewardService{
		repo:          repo,
		stats:         stats,
		gamification:  gamification,
		notifications: notifications,
	}
}

// SeedCatalog upserts catalog/rewards.yaml from content.
func (s *RewardService) SeedCatalog(content fs.FS) error {
	raw, err := fs.ReadFile(content, "catalog/rewards.yaml")
	if err != nil {
		return fmt.Errorf("failed to read reward catalog: %w", err)
	}

	var rewards []*model.Reward
	err = yaml.Unmarshal(raw, &rewards)
	if err != nil {
		return fmt.Errorf("failed to parse reward catalog: %w", err)
	}

	for _, r := range rewards {
		err = s.repo.Upsert(r)
		if err != nil {
			return fmt.Errorf("failed to upsert reward %s: %w", r.ID, err)
		}
	}
	slog.Info("reward catalog seeded", "count", len(rewards))
	return nil
}

func (s *RewardService) List(category string) ([]*model.Reward, error) {
	rewards, err := s.repo.List(category)
	if err != nil {
		return nil, err
	}
	if rewards == nil {
		rewards = []*model.Reward{}
	}
	return rewards, nil
}

// Redeem spends the reward's price and issues a pending voucher code.
// Points and stock are given back if a later step fails.
func (s *RewardService) Redeem(userID, rewardID string) (*model.Redemption, error) {
	reward, err := s.repo.ByID(rewardID)
	if err != nil {
		return nil, err
	}
	if !reward.IsActive {
		return nil, repository.ErrRewardNotFound
	}
	if !reward.InStock() {
		return nil, repository.ErrOutOfStock
	}

	stats, err := s.stats.Get(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}
	err = gamification.CanAfford(stats.Balance(), reward.PointsRequired)
	if err != nil {
		return nil, err
	}

	// Spend re-checks the balance atomically
	err = s.stats.Spend(userID, reward.PointsRequired)
	if err != nil {
		return nil, err
	}

	err = s.repo.TakeStock(reward.ID)
	if err != nil {
		s.refund(userID, reward.PointsRequired)
		return nil, err
	}

	redemption := &model.Redemption{
		UserID:      userID,
		RewardID:    reward.ID,
		PointsSpent: reward.PointsRequired,
		Code:        gamification.RedemptionCode(),
		Status:      model.RedemptionStatusPending,
	}
	err = s.repo.CreateRedemption(redemption)
	if err != nil {
		s.refund(userID, reward.PointsRequired)
		s.returnStock(reward.ID)
		return nil, fmt.Errorf("failed to create redemption: %w", err)
	}

	s.notifications.Notify(userID, model.NotificationReward, "Reward redeemed",
		fmt.Sprintf("%s is yours. Your code is %s.", reward.Title, redemption.Code), redemption.ID)
	slog.Info("reward redeemed", "user_id", userID, "reward_id", reward.ID, "points", reward.PointsRequired)
	return redemption, nil
}

func (s *RewardService) refund(userID string, points int) {
	err := s.stats.Refund(userID, points)
	if err != nil {
		slog.Error("failed to refund points", "error", err, "user_id", userID, "points", points)
	}
}

func (s *RewardService) returnStock(rewardID string) {
	err := s.repo.ReturnStock(rewardID)
	if err != nil {
		slog.Error("failed to return stock", "error", err, "reward_id", rewardID)
	}
}

func (s *RewardService) Redemptions(userID string) ([]*model.Redemption, error) {
	redemptions, err := s.repo.Redemptions(userID)
	if err != nil {
		return nil, err
	}
	if redemptions == nil {
		redemptions = []*model.Redemption{}
	}
	return redemptions, nil
}

// Cancel refunds a pending or approved redemption and restores its stock.
func (s *RewardService) Cancel(userID, redemptionID string) (*model.Redemption, error) {
	redemption, err := s.repo.Redemption(userID, redemptionID)
	if err != nil {
		return nil, err
	}
	if !redemption.Cancellable() {
		return nil, ErrNotCancellable
	}

	// the status guard makes a concurrent second cancel fail here
	err = s.repo.UpdateRedemptionStatus(redemption.ID, redemption.Status, model.RedemptionStatusCancelled)
	if errors.Is(err, repository.ErrRedemptionNotFound) {
		return nil, ErrNotCancellable
	}
	if err != nil {
		return nil, fmt.Errorf("failed to cancel redemption: %w", err)
	}

	err = s.stats.Refund(userID, redemption.PointsSpent)
	if err != nil {
		return nil, fmt.Errorf("failed to refund points: %w", err)
	}
	s.returnStock(redemption.RewardID)

	redemption.Status = model.RedemptionStatusCancelled
	slog.Info("redemption cancelled", "user_id", userID, "redemption_id", redemption.ID)
	return redemption, nil
}

// Donate turns points into planted trees. The whole amount is spent, the
// remainder below a full tree included.
func (s *RewardService) Donate(userID string, points int) (*DonationResult, error) {
	trees, err := gamification.DonationTrees(points)
	if err != nil {
		return nil, err
	}

	err = s.stats.Spend(userID, points)
	if err != nil {
		return nil, err
	}

	donation := &model.Donation{
		UserID: userID,
		Points: points,
		Trees:  trees,
	}
	err = s.repo.CreateDonation(donation)
	if err != nil {
		s.refund(userID, points)
		return nil, fmt.Errorf("failed to save donation: %w", err)
	}

	outcome, err := s.gamification.Credit(userID, Gain{Trees: trees})
	if err != nil {
		return nil, err
	}

	s.notifications.Notify(userID, model.NotificationReward, "Trees planted",
		fmt.Sprintf("Your %d points planted %d trees.", points, trees), donation.ID)
	slog.Info("points donated", "user_id", userID, "points", points, "trees", trees)
	return &DonationResult{Donation: donation, Outcome: outcome}, nil
}

func (s *RewardService) Donations(userID string) ([]*model.Donation, error) {
	donations, err := s.repo.Donations(userID)
	if err != nil {
		return nil, err
	}
	if donations == nil {
		donations = []*model.Donation{}
	}
	return donations, nil
}
