package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"
	_ "time/tzdata" // cron timezones on minimal images

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Application
	AppName      string `envconfig:"APP_NAME" default:"Footprint"`
	AppEnv       string `envconfig:"APP_ENV" required:"true"`
	AppURL       string `envconfig:"APP_URL" required:"true"`
	Port         string `envconfig:"PORT" default:"8090"`
	SupportEmail string `envconfig:"SUPPORT_EMAIL" default:"hello@example.com"`

	// Database (optional driver switch, default: sqlite)
	DBDriver     string `envconfig:"DB_DRIVER" default:"sqlite"`
	DBConnection string `envconfig:"DB_CONNECTION" default:"./data/footprint.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"`

	// Security
	JWTSecret                string        `envconfig:"JWT_SECRET" required:"true"`
	JWTExpiry                time.Duration `envconfig:"JWT_EXPIRY" default:"168h"`
	TokenPasswordResetExpiry time.Duration `envconfig:"TOKEN_PASSWORD_RESET_EXPIRY" default:"1h"`
	TokenMagicLinkExpiry     time.Duration `envconfig:"TOKEN_MAGIC_LINK_EXPIRY" default:"10m"`

	// OAuth
	GoogleClientID     string `envconfig:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `envconfig:"GOOGLE_CLIENT_SECRET"`
	GitHubClientID     string `envconfig:"GITHUB_CLIENT_ID"`
	GitHubClientSecret string `envconfig:"GITHUB_CLIENT_SECRET"`

	// Email (RESEND_API_KEY optional in development, required in production)
	EmailFrom    string `envconfig:"EMAIL_FROM" default:"noreply@example.com"`
	ResendAPIKey string `envconfig:"RESEND_API_KEY"`

	// Payment: "stripe", "polar" or empty to disable offset purchases.
	// Polar needs a pay-what-you-want product for offsets.
	PaymentProvider     string `envconfig:"PAYMENT_PROVIDER"`
	PolarAPIKey         string `envconfig:"POLAR_API_KEY"`
	PolarWebhookSecret  string `envconfig:"POLAR_WEBHOOK_SECRET"`
	PolarSandboxMode    bool   `envconfig:"POLAR_SANDBOX_MODE" default:"true"`
	PolarOffsetProduct  string `envconfig:"POLAR_PRODUCT_ID_OFFSET"`
	StripeSecretKey     string `envconfig:"STRIPE_SECRET_KEY"`
	StripeWebhookSecret string `envconfig:"STRIPE_WEBHOOK_SECRET"`

	// Observability (optional)
	SentryDSN string `envconfig:"SENTRY_DSN"`

	// Storage (S3-compatible: MinIO, AWS S3, Cloudflare R2, etc.).
	// Public expiry covers avatars, private expiry covers stored reports.
	S3Region               string        `envconfig:"S3_REGION" required:"true"`
	S3Bucket               string        `envconfig:"S3_BUCKET" required:"true"`
	S3AccessKey            string        `envconfig:"S3_ACCESS_KEY" required:"true"`
	S3SecretKey            string        `envconfig:"S3_SECRET_KEY" required:"true"`
	S3Endpoint             string        `envconfig:"S3_ENDPOINT"`
	S3PresignExpiryPublic  time.Duration `envconfig:"S3_PRESIGN_EXPIRY_PUBLIC" default:"168h"`
	S3PresignExpiryPrivate time.Duration `envconfig:"S3_PRESIGN_EXPIRY_PRIVATE" default:"1h"`

	// Background jobs
	JobsEnabled      bool   `envconfig:"JOBS_ENABLED" default:"true"`
	JobsTimezone     string `envconfig:"JOBS_TIMEZONE" default:"Asia/Kathmandu"`
	WeeklyDigestSpec string `envconfig:"WEEKLY_DIGEST_SPEC" default:"0 8 * * MON"`
}

// Load reads an optional .env file and binds the environment onto Config.
func Load() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field rules envconfig tags cannot express.
// Development allows email to fall back to log mode for local testing.
func (c *Config) Validate() error {
	if c.AppEnv != "development" && c.AppEnv != "production" {
		return fmt.Errorf("APP_ENV must be 'development' or 'production', got %q", c.AppEnv)
	}
	if c.IsProduction() && c.ResendAPIKey == "" {
		return errors.New("production deployment requires RESEND_API_KEY")
	}

	switch c.PaymentProvider {
	case "":
	case "stripe":
		if c.StripeSecretKey == "" {
			return errors.New("PAYMENT_PROVIDER=stripe requires STRIPE_SECRET_KEY")
		}
	case "polar":
		if c.PolarAPIKey == "" || c.PolarOffsetProduct == "" {
			return errors.New("PAYMENT_PROVIDER=polar requires POLAR_API_KEY and POLAR_PRODUCT_ID_OFFSET")
		}
	default:
		return fmt.Errorf("unsupported PAYMENT_PROVIDER %q (use 'stripe', 'polar' or leave empty)", c.PaymentProvider)
	}

	if _, err := time.LoadLocation(c.JobsTimezone); err != nil {
		return fmt.Errorf("invalid JOBS_TIMEZONE: %w", err)
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// PaymentsEnabled reports whether offset purchases can be checked out.
func (c *Config) PaymentsEnabled() bool {
	return c.PaymentProvider != ""
}

// Sanitized returns a copy of the config with only public/safe fields.
// Safe to expose in ctx and rendered reports.
func (c *Config) Sanitized() *Config {
	return &Config{
		AppName:      c.AppName,
		AppEnv:       c.AppEnv,
		AppURL:       c.AppURL,
		Port:         c.Port,
		SupportEmail: c.SupportEmail,

		EmailFrom: c.EmailFrom,

		GoogleClientID: c.GoogleClientID,
		GitHubClientID: c.GitHubClientID,

		PaymentProvider: c.PaymentProvider,

		S3Endpoint: c.S3Endpoint, // Needed for CSP policies
	}
}
