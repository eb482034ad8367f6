package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	polargo "github.com/polarsource/polar-go"
	"github.com/polarsource/polar-go/models/components"
	standardwebhooks "github.com/standard-webhooks/standard-webhooks/libraries/go"
	"github.com/templui/footprint/internal/config"
	"github.com/templui/footprint/internal/model"
)

const polarOrderPaid = "order.paid"

type PolarProvider struct {
	appURL        string
	productID     string
	webhookSecret string
	client        *polargo.Polar
}

func NewPolarProvider(cfg *config.Config) *PolarProvider {
	var serverOption polargo.SDKOption
	if cfg.PolarSandboxMode {
		serverOption = polargo.WithServer(polargo.ServerSandbox)
		slog.Info("polar using sandbox mode", "app_env", cfg.AppEnv)
	} else {
		serverOption = polargo.WithServer(polargo.ServerProduction)
		slog.Info("polar using production mode", "app_env", cfg.AppEnv)
	}

	client := polargo.New(
		polargo.WithSecurity(cfg.PolarAPIKey),
		serverOption,
	)

	return &PolarProvider{
		appURL:        cfg.AppURL,
		productID:     cfg.PolarOffsetProduct,
		webhookSecret: cfg.PolarWebhookSecret,
		client:        client,
	}
}

func (p *PolarProvider) Name() string {
	return model.ProviderPolar
}

// CreateCheckout uses the pay-what-you-want offset product. The quoted
// amount travels in the metadata.
func (p *PolarProvider) CreateCheckout(ctx context.Context, req CheckoutRequest) (*Checkout, error) {
	metadata := map[string]components.CheckoutCreateMetadata{
		"purchase_id":  components.CreateCheckoutCreateMetadataStr(req.PurchaseID),
		"user_id":      components.CreateCheckoutCreateMetadataStr(req.UserID),
		"kg":           components.CreateCheckoutCreateMetadataStr(fmt.Sprintf("%.3f", req.Kg)),
		"amount_cents": components.CreateCheckoutCreateMetadataStr(fmt.Sprint(req.AmountCents)),
	}

	create := components.CheckoutCreate{
		Products:           []string{p.productID},
		SuccessURL:         polargo.String(fmt.Sprintf("%s/api/me/offsets?purchase=%s", p.appURL, req.PurchaseID)),
		ReturnURL:          polargo.String(fmt.Sprintf("%s/api/me/offsets", p.appURL)),
		AllowDiscountCodes: polargo.Bool(false),
		Metadata:           metadata,
	}
	if req.Email != "" {
		create.CustomerEmail = polargo.String(req.Email)
	}
	if req.Name != "" {
		create.CustomerName = polargo.String(req.Name)
	}

	res, err := p.client.Checkouts.Create(ctx, create)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout: %w", err)
	}
	if res == nil || res.Checkout == nil {
		return nil, fmt.Errorf("checkout response is nil")
	}

	slog.Info("polar checkout created", "user_id", req.UserID, "purchase_id", req.PurchaseID, "checkout_id", res.Checkout.ID)
	return &Checkout{ID: res.Checkout.ID, URL: res.Checkout.URL}, nil
}

func (p *PolarProvider) ParseWebhook(payload []byte, headers http.Header) (*Event, error) {
	if p.webhookSecret == "" {
		slog.Warn("polar no webhook secret configured, skipping signature verification")
	} else {
		wh, err := standardwebhooks.NewWebhookRaw([]byte(p.webhookSecret))
		if err != nil {
			return nil, fmt.Errorf("failed to create webhook verifier: %w", err)
		}

		httpHeaders := http.Header{}
		httpHeaders.Set("webhook-id", headers.Get("webhook-id"))
		httpHeaders.Set("webhook-timestamp", headers.Get("webhook-timestamp"))
		httpHeaders.Set("webhook-signature", headers.Get("webhook-signature"))

		err = wh.Verify(payload, httpHeaders)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidSignature, err)
		}
	}

	var event struct {
		Type string `json:"type"`
		Data struct {
			ID       string            `json:"id"`
			Metadata map[string]string `json:"metadata"`
		} `json:"data"`
	}
	err := json.Unmarshal(payload, &event)
	if err != nil {
		return nil, fmt.Errorf("failed to parse webhook: %w", err)
	}

	slog.Info("polar webhook received", "event_type", event.Type)

	return &Event{
		Type:        event.Type,
		PurchaseID:  event.Data.Metadata["purchase_id"],
		ProviderRef: event.Data.ID,
		Paid:        event.Type == polarOrderPaid,
	}, nil
}
