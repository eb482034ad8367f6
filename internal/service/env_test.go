package service

import (
	"io/fs"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	footprint "github.com/templui/footprint"
	"github.com/templui/footprint/internal/db/dbtest"
	"github.com/templui/footprint/internal/model"
	"github.com/templui/footprint/internal/repository"
	"github.com/templui/footprint/internal/storage"
)

// env wires every service over a fresh database, in-memory storage and a
// dev mode email service that only logs.
type env struct {
	conn    *sqlx.DB
	store   *storage.Memory
	content fs.FS

	users      repository.UserRepository
	profileRep repository.ProfileRepository
	statsRepo  repository.StatsRepository

	email         *EmailService
	auth          *AuthService
	profiles      *ProfileService
	files         *FileService
	notifications *NotificationService
	gamification  *GamificationService
	footprints    *FootprintService
	leaderboard   *LeaderboardService
	tips          *TipService
	pledges       *PledgeService
	rewards       *RewardService
	challenges    *ChallengeService
	activities    *ActivityService
	goals         *GoalService
	reports       *ReportService
	dashboard     *DashboardService
	digests       *DigestService
}

func newEnv(t *testing.T) *env {
	t.Helper()

	conn := dbtest.Open(t)
	content, err := fs.Sub(footprint.ContentFS, "content")
	require.NoError(t, err)

	e := &env{
		conn:       conn,
		store:      storage.NewMemory(),
		content:    content,
		users:      repository.NewUserRepository(conn),
		profileRep: repository.NewProfileRepository(conn),
		statsRepo:  repository.NewStatsRepository(conn),
	}

	calcRepo := repository.NewCalculationRepository(conn)
	tipRepo := repository.NewTipRepository(conn)
	activityRepo := repository.NewActivityRepository(conn)

	e.email = NewEmailService("", "noreply@example.com", "http://localhost:8090", "Footprint", true)
	e.auth = NewAuthService(e.users, e.profileRep, repository.NewTokenRepository(conn), e.email,
		"test-secret", false, time.Hour, time.Hour, 10*time.Minute)
	e.profiles = NewProfileService(e.profileRep)
	e.files = NewFileService(repository.NewFileRepository(conn), e.store)
	e.notifications = NewNotificationService(repository.NewNotificationRepository(conn))
	e.gamification = NewGamificationService(e.statsRepo, calcRepo, tipRepo, e.notifications)
	e.footprints = NewFootprintService(calcRepo, e.gamification)
	e.leaderboard = NewLeaderboardService(repository.NewLeaderboardRepository(conn))
	e.tips, err = NewTipService(content, tipRepo, e.gamification)
	require.NoError(t, err)
	e.pledges = NewPledgeService(repository.NewPledgeRepository(conn), e.users, e.email, "http://localhost:8090")
	e.rewards = NewRewardService(repository.NewRewardRepository(conn), e.statsRepo, e.gamification, e.notifications)
	require.NoError(t, e.rewards.SeedCatalog(content))
	e.challenges = NewChallengeService(repository.NewChallengeRepository(conn), activityRepo, e.statsRepo, e.gamification, e.notifications)
	require.NoError(t, e.challenges.SeedCatalog(content))
	e.gamification.OnActivity(e.challenges.Refresh)
	e.activities = NewActivityService(activityRepo, e.statsRepo, e.gamification)
	e.goals = NewGoalService(repository.NewGoalRepository(conn), e.statsRepo, e.notifications)
	e.reports = NewReportService("Footprint", e.profileRep, e.footprints, e.gamification, e.files)
	e.dashboard = NewDashboardService(e.profiles, e.footprints, e.gamification, e.leaderboard,
		e.activities, e.challenges, e.goals, e.tips, e.notifications)
	e.digests = NewDigestService(e.users, e.profileRep, e.statsRepo, activityRepo, e.email)
	return e
}

// user creates a verified account with a profile.
func (e *env) user(t *testing.T, name string) *model.User {
	t.Helper()

	now := time.Now()
	u := &model.User{
		ID:              uuid.New().String(),
		Email:           uuid.New().String()[:8] + "@example.com",
		EmailVerifiedAt: &now,
		CreatedAt:       now,
	}
	require.NoError(t, e.users.Create(u))
	require.NoError(t, e.profileRep.Create(&model.Profile{UserID: u.ID, Name: name, District: "Kathmandu", Category: "workers"}))
	return u
}

// points gives the user spendable points without touching the streak.
func (e *env) points(t *testing.T, userID string, points int) {
	t.Helper()
	_, err := e.gamification.Credit(userID, Gain{Points: points})
	require.NoError(t, err)
}
