package app

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/jmoiron/sqlx"
	footprint "github.com/templui/footprint"
	"github.com/templui/footprint/internal/config"
	"github.com/templui/footprint/internal/db"
	"github.com/templui/footprint/internal/jobs"
	"github.com/templui/footprint/internal/middleware"
	"github.com/templui/footprint/internal/repository"
	"github.com/templui/footprint/internal/service"
	"github.com/templui/footprint/internal/service/payment"
	"github.com/templui/footprint/internal/storage"
)

type App struct {
	Cfg *config.Config
	DB  *sqlx.DB

	AuthService         *service.AuthService
	UserService         *service.UserService
	ProfileService      *service.ProfileService
	EmailService        *service.EmailService
	FileService         *service.FileService
	NotificationService *service.NotificationService
	GamificationService *service.GamificationService
	FootprintService    *service.FootprintService
	LeaderboardService  *service.LeaderboardService
	TipService          *service.TipService
	PledgeService       *service.PledgeService
	RewardService       *service.RewardService
	ChallengeService    *service.ChallengeService
	ActivityService     *service.ActivityService
	GoalService         *service.GoalService
	OffsetService       *service.OffsetService
	ReportService       *service.ReportService
	DashboardService    *service.DashboardService
	DigestService       *service.DigestService

	// Scheduler is always built so jobs can be run by hand. Start only
	// launches it when JOBS_ENABLED is set.
	Scheduler   *jobs.Scheduler
	AuthLimiter *middleware.RateLimiter
}

// New connects to the database and S3, then wires every service.
func New(cfg *config.Config) (*App, error) {
	fileStorage, err := storage.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	return NewWithStorage(cfg, fileStorage)
}

// NewWithStorage is New with a caller supplied object store.
func NewWithStorage(cfg *config.Config, fileStorage storage.Storage) (*App, error) {
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	a, err := build(cfg, database, fileStorage)
	if err != nil {
		_ = database.Close()
		return nil, err
	}
	return a, nil
}

func build(cfg *config.Config, database *sqlx.DB, fileStorage storage.Storage) (*App, error) {
	err := db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	content, err := fs.Sub(footprint.ContentFS, "content")
	if err != nil {
		return nil, fmt.Errorf("failed to open content: %w", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	profileRepository := repository.NewProfileRepository(database)
	tokenRepository := repository.NewTokenRepository(database)
	fileRepository := repository.NewFileRepository(database)
	statsRepository := repository.NewStatsRepository(database)
	calculationRepository := repository.NewCalculationRepository(database)
	tipRepository := repository.NewTipRepository(database)
	activityRepository := repository.NewActivityRepository(database)

	paymentProvider, err := payment.NewProvider(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize payment provider: %w", err)
	}

	// Services
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AppURL,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	fileService := service.NewFileService(fileRepository, fileStorage)
	authService := service.NewAuthService(
		userRepository,
		profileRepository,
		tokenRepository,
		emailService,
		cfg.JWTSecret,
		cfg.IsProduction(),
		cfg.JWTExpiry,
		cfg.TokenPasswordResetExpiry,
		cfg.TokenMagicLinkExpiry,
	)
	userService := service.NewUserService(userRepository, profileRepository, fileService, emailService)
	profileService := service.NewProfileService(profileRepository)
	notificationService := service.NewNotificationService(repository.NewNotificationRepository(database))
	gamificationService := service.NewGamificationService(statsRepository, calculationRepository, tipRepository, notificationService)
	footprintService := service.NewFootprintService(calculationRepository, gamificationService)
	leaderboardService := service.NewLeaderboardService(repository.NewLeaderboardRepository(database))

	tipService, err := service.NewTipService(content, tipRepository, gamificationService)
	if err != nil {
		return nil, fmt.Errorf("failed to load tips: %w", err)
	}

	rewardService := service.NewRewardService(repository.NewRewardRepository(database), statsRepository, gamificationService, notificationService)
	err = rewardService.SeedCatalog(content)
	if err != nil {
		return nil, fmt.Errorf("failed to seed rewards: %w", err)
	}

	challengeService := service.NewChallengeService(
		repository.NewChallengeRepository(database),
		activityRepository,
		statsRepository,
		gamificationService,
		notificationService,
	)
	err = challengeService.SeedCatalog(content)
	if err != nil {
		return nil, fmt.Errorf("failed to seed challenges: %w", err)
	}
	gamificationService.OnActivity(challengeService.Refresh)

	activityService := service.NewActivityService(activityRepository, statsRepository, gamificationService)
	goalService := service.NewGoalService(repository.NewGoalRepository(database), statsRepository, notificationService)
	pledgeService := service.NewPledgeService(repository.NewPledgeRepository(database), userRepository, emailService, cfg.AppURL)
	offsetService := service.NewOffsetService(repository.NewOffsetRepository(database), userRepository, paymentProvider, gamificationService)
	reportService := service.NewReportService(cfg.AppName, profileRepository, footprintService, gamificationService, fileService)
	dashboardService := service.NewDashboardService(
		profileService,
		footprintService,
		gamificationService,
		leaderboardService,
		activityService,
		challengeService,
		goalService,
		tipService,
		notificationService,
	)
	digestService := service.NewDigestService(userRepository, profileRepository, statsRepository, activityRepository, emailService)

	a := &App{
		Cfg:                 cfg,
		DB:                  database,
		AuthService:         authService,
		UserService:         userService,
		ProfileService:      profileService,
		EmailService:        emailService,
		FileService:         fileService,
		NotificationService: notificationService,
		GamificationService: gamificationService,
		FootprintService:    footprintService,
		LeaderboardService:  leaderboardService,
		TipService:          tipService,
		PledgeService:       pledgeService,
		RewardService:       rewardService,
		ChallengeService:    challengeService,
		ActivityService:     activityService,
		GoalService:         goalService,
		OffsetService:       offsetService,
		ReportService:       reportService,
		DashboardService:    dashboardService,
		DigestService:       digestService,
		AuthLimiter:         middleware.NewAuthRateLimiter(),
	}

	a.Scheduler, err = jobs.New(cfg.JobsTimezone, jobs.Maintenance(jobs.Services{
		Gamification:  gamificationService,
		Tokens:        tokenRepository,
		Notifications: notificationService,
		Goals:         goalService,
		Digests:       digestService,
	}, cfg.WeeklyDigestSpec)...)
	if err != nil {
		a.AuthLimiter.Close()
		return nil, fmt.Errorf("failed to build scheduler: %w", err)
	}

	return a, nil
}

// Start launches the background jobs, if enabled.
func (a *App) Start() {
	if a.Cfg.JobsEnabled {
		a.Scheduler.Start()
	}
}

// Close stops the jobs, waiting for running ones until ctx ends, then closes
// the database.
func (a *App) Close(ctx context.Context) error {
	if a.Cfg.JobsEnabled && a.Scheduler != nil {
		err := a.Scheduler.Stop(ctx)
		if err != nil {
			return err
		}
	}
	if a.AuthLimiter != nil {
		a.AuthLimiter.Close()
	}
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
