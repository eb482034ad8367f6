package routes

import (
	"net/http"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/templui/footprint/internal/app"
	"github.com/templui/footprint/internal/handler"
	"github.com/templui/footprint/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	health := handler.NewHealthHandler(app.DB)
	auth := handler.NewAuthHandler(app.AuthService, app.UserService, app.Cfg)
	account := handler.NewAccountHandler(app.AuthService, app.UserService, app.ProfileService, app.FileService)
	dashboard := handler.NewDashboardHandler(app.DashboardService)
	footprint := handler.NewFootprintHandler(app.FootprintService)
	eco := handler.NewEcoHandler(app.GamificationService)
	tips := handler.NewTipHandler(app.TipService)
	leaderboard := handler.NewLeaderboardHandler(app.LeaderboardService)
	rewards := handler.NewRewardHandler(app.RewardService)
	challenges := handler.NewChallengeHandler(app.ChallengeService)
	notifications := handler.NewNotificationHandler(app.NotificationService)
	activities := handler.NewActivityHandler(app.ActivityService)
	goals := handler.NewGoalHandler(app.GoalService)
	offsets := handler.NewOffsetHandler(app.OffsetService)
	reports := handler.NewReportHandler(app.ReportService)
	pledges := handler.NewPledgeHandler(app.PledgeService, app.Cfg.AppName)

	limit := app.AuthLimiter.Limit()
	protected := middleware.RequireAuth

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /healthz", health.Healthz)
	mux.HandleFunc("GET /api/csrf", handler.CSRFToken)

	// Calculators
	mux.HandleFunc("POST /api/calculate", footprint.Estimate)
	mux.HandleFunc("POST /api/calculate/household", footprint.EstimateHousehold)
	mux.HandleFunc("GET /api/activities/compare", activities.Compare)
	mux.HandleFunc("GET /api/offsets/quote", offsets.Quote)

	// Catalogs
	mux.HandleFunc("GET /api/tips", tips.List)
	mux.HandleFunc("GET /api/tips/{slug}", tips.Tip)
	mux.HandleFunc("GET /api/actions", eco.Catalog)
	mux.HandleFunc("GET /api/leaderboard", leaderboard.Standings)
	mux.HandleFunc("GET /api/rewards", rewards.List)
	mux.HandleFunc("GET /api/challenges", challenges.List)

	// Pledges
	mux.HandleFunc("GET /api/pledges/count", pledges.Count)
	mux.HandleFunc("POST /api/pledges", pledges.Create)
	mux.HandleFunc("GET /api/pledges/{id}/certificate", pledges.Certificate)

	// ============================================================================
	// AUTH
	// ============================================================================

	mux.HandleFunc("POST /api/auth/register", limit(auth.Register))
	mux.HandleFunc("POST /api/auth/login", limit(auth.Login))
	mux.HandleFunc("POST /api/auth/logout", auth.Logout)
	mux.HandleFunc("POST /api/auth/magic-link", limit(auth.SendMagicLink))
	mux.HandleFunc("GET /api/auth/magic-link/{token}", auth.VerifyMagicLink)
	mux.HandleFunc("POST /api/auth/forgot-password", limit(auth.ForgotPassword))
	mux.HandleFunc("GET /api/auth/forgot-password/{token}", auth.VerifyForgotPassword)

	// OAuth
	mux.HandleFunc("GET /auth/google", limit(auth.GoogleAuth))
	mux.HandleFunc("GET /auth/google/callback", auth.GoogleCallback)
	mux.HandleFunc("GET /auth/github", limit(auth.GitHubAuth))
	mux.HandleFunc("GET /auth/github/callback", auth.GitHubCallback)

	// ============================================================================
	// PROTECTED ROUTES (/api/me)
	// ============================================================================

	// Account
	mux.HandleFunc("GET /api/me", protected(account.Me))
	mux.HandleFunc("DELETE /api/me", protected(account.DeleteAccount))
	mux.HandleFunc("POST /api/me/onboarding", protected(auth.Onboarding))
	mux.HandleFunc("PATCH /api/me/profile", protected(account.UpdateProfile))
	mux.HandleFunc("PUT /api/me/preferences", protected(account.UpdatePreferences))
	mux.HandleFunc("POST /api/me/avatar", protected(account.UploadAvatar))
	mux.HandleFunc("DELETE /api/me/avatar", protected(account.DeleteAvatar))
	mux.HandleFunc("POST /api/me/password", protected(account.SetPassword))
	mux.HandleFunc("PUT /api/me/password", protected(account.ChangePassword))
	mux.HandleFunc("DELETE /api/me/password", protected(account.RemovePassword))

	mux.HandleFunc("GET /api/me/dashboard", protected(dashboard.Overview))

	// Footprints
	mux.HandleFunc("POST /api/me/footprints", protected(footprint.Calculate))
	mux.HandleFunc("POST /api/me/footprints/household", protected(footprint.Household))
	mux.HandleFunc("GET /api/me/footprints", protected(footprint.History))
	mux.HandleFunc("DELETE /api/me/footprints", protected(footprint.Clear))
	mux.HandleFunc("GET /api/me/footprints/stats", protected(footprint.Stats))
	mux.HandleFunc("GET /api/me/footprints/export", protected(footprint.Export))
	mux.HandleFunc("GET /api/me/footprints/{id}", protected(footprint.Get))
	mux.HandleFunc("DELETE /api/me/footprints/{id}", protected(footprint.Delete))

	// Gamification
	mux.HandleFunc("GET /api/me/stats", protected(eco.Stats))
	mux.HandleFunc("GET /api/me/achievements", protected(eco.Achievements))
	mux.HandleFunc("GET /api/me/actions", protected(eco.Actions))
	mux.HandleFunc("POST /api/me/actions", protected(eco.LogAction))
	mux.HandleFunc("GET /api/me/rank", protected(leaderboard.Rank))

	// Tips
	mux.HandleFunc("GET /api/me/tips", protected(tips.Implemented))
	mux.HandleFunc("POST /api/me/tips", protected(tips.Implement))
	mux.HandleFunc("DELETE /api/me/tips/{id}", protected(tips.Remove))

	// Rewards and donations
	mux.HandleFunc("POST /api/me/rewards/{id}/redeem", protected(rewards.Redeem))
	mux.HandleFunc("GET /api/me/redemptions", protected(rewards.Redemptions))
	mux.HandleFunc("POST /api/me/redemptions/{id}/cancel", protected(rewards.Cancel))
	mux.HandleFunc("GET /api/me/donations", protected(rewards.Donations))
	mux.HandleFunc("POST /api/me/donations", protected(rewards.Donate))

	// Challenges
	mux.HandleFunc("GET /api/me/challenges", protected(challenges.Mine))
	mux.HandleFunc("POST /api/me/challenges/{id}/join", protected(challenges.Join))
	mux.HandleFunc("DELETE /api/me/challenges/{id}", protected(challenges.Leave))

	// Notifications
	mux.HandleFunc("GET /api/me/notifications", protected(notifications.List))
	mux.HandleFunc("POST /api/me/notifications/read", protected(notifications.MarkAllRead))
	mux.HandleFunc("POST /api/me/notifications/{id}/read", protected(notifications.MarkRead))

	// Activities
	mux.HandleFunc("GET /api/me/activities", protected(activities.List))
	mux.HandleFunc("POST /api/me/activities", protected(activities.Create))
	mux.HandleFunc("POST /api/me/activities/quick/{template}", protected(activities.QuickLog))
	mux.HandleFunc("GET /api/me/activities/summary", protected(activities.Summary))
	mux.HandleFunc("GET /api/me/activities/equivalents", protected(activities.Equivalents))

	// Goals
	mux.HandleFunc("GET /api/me/goals", protected(goals.List))
	mux.HandleFunc("POST /api/me/goals", protected(goals.Create))
	mux.HandleFunc("GET /api/me/goals/{id}", protected(goals.Get))
	mux.HandleFunc("PUT /api/me/goals/{id}", protected(goals.Update))
	mux.HandleFunc("DELETE /api/me/goals/{id}", protected(goals.Delete))

	// Offsets
	mux.HandleFunc("GET /api/me/offsets", protected(offsets.Purchases))
	mux.HandleFunc("POST /api/me/offsets/checkout", protected(offsets.Checkout))

	// Reports
	mux.HandleFunc("GET /api/me/reports", protected(reports.List))
	mux.HandleFunc("POST /api/me/reports", protected(reports.Create))
	mux.HandleFunc("GET /api/me/reports/preview", protected(reports.Preview))

	// ============================================================================
	// WEBHOOKS
	// ============================================================================

	mux.HandleFunc("POST /webhooks/payment", offsets.Webhook)

	mux.HandleFunc("/", handler.NotFound)

	// Global middleware, outermost first
	return middleware.Chain(mux,
		middleware.Recover,
		sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle,
		middleware.Config(app.Cfg),
		middleware.RequestID,
		middleware.NonceMiddleware,
		middleware.SecurityHeaders,
		middleware.AuthMiddleware(app.AuthService, app.UserService, app.ProfileService),
		middleware.RequestLogging,
		middleware.CSRFProtection,
	)
}
