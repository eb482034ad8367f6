package payment

import (
	"fmt"
	"log/slog"

	"github.com/templui/footprint/internal/config"
	"github.com/templui/footprint/internal/model"
)

// NewProvider creates the configured payment provider. It returns nil when
// payments are disabled.
func NewProvider(cfg *config.Config) (Provider, error) {
	provider := cfg.PaymentProvider
	if provider == "" {
		slog.Info("payments disabled, offset purchases unavailable")
		return nil, nil
	}

	slog.Info("initializing payment provider", "provider", provider)

	switch provider {
	case model.ProviderPolar:
		if cfg.PolarAPIKey == "" {
			return nil, fmt.Errorf("POLAR_API_KEY is required when using Polar provider")
		}
		if cfg.PolarOffsetProduct == "" {
			return nil, fmt.Errorf("POLAR_PRODUCT_ID_OFFSET is required when using Polar provider")
		}
		return NewPolarProvider(cfg), nil

	case model.ProviderStripe:
		if cfg.StripeSecretKey == "" {
			return nil, fmt.Errorf("STRIPE_SECRET_KEY is required when using Stripe provider")
		}
		if cfg.StripeWebhookSecret == "" {
			return nil, fmt.Errorf("STRIPE_WEBHOOK_SECRET is required when using Stripe provider")
		}
		return NewStripeProvider(cfg), nil

	default:
		return nil, fmt.Errorf("unknown payment provider: %s (supported: polar, stripe)", provider)
	}
}
