package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/stripe/stripe-go/v81"
	checkoutsession "github.com/stripe/stripe-go/v81/checkout/session"
	"github.com/stripe/stripe-go/v81/webhook"
	"github.com/templui/footprint/internal/config"
	"github.com/templui/footprint/internal/model"
)

const stripeCheckoutCompleted = "checkout.session.completed"

type StripeProvider struct {
	appURL        string
	appName       string
	webhookSecret string
}

func NewStripeProvider(cfg *config.Config) *StripeProvider {
	stripe.Key = cfg.StripeSecretKey

	slog.Info("stripe provider initialized", "app_env", cfg.AppEnv)

	return &StripeProvider{
		appURL:        cfg.AppURL,
		appName:       cfg.AppName,
		webhookSecret: cfg.StripeWebhookSecret,
	}
}

func (s *StripeProvider) Name() string {
	return model.ProviderStripe
}

// CreateCheckout opens a one-time payment session priced inline, so no
// Stripe product has to exist up front.
func (s *StripeProvider) CreateCheckout(ctx context.Context, req CheckoutRequest) (*Checkout, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(fmt.Sprintf("%s/api/me/offsets?purchase=%s", s.appURL, req.PurchaseID)),
		CancelURL:         stripe.String(fmt.Sprintf("%s/api/me/offsets", s.appURL)),
		ClientReferenceID: stripe.String(req.PurchaseID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(req.Currency),
					UnitAmount: stripe.Int64(req.AmountCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(fmt.Sprintf("%s carbon offset: %.1f kg CO2", s.appName, req.Kg)),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		Metadata: map[string]string{
			"purchase_id": req.PurchaseID,
			"user_id":     req.UserID,
		},
	}
	if req.Email != "" {
		params.CustomerEmail = stripe.String(req.Email)
	}
	params.Context = ctx

	sess, err := checkoutsession.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	slog.Info("stripe checkout created", "user_id", req.UserID, "purchase_id", req.PurchaseID, "session_id", sess.ID)
	return &Checkout{ID: sess.ID, URL: sess.URL}, nil
}

func (s *StripeProvider) ParseWebhook(payload []byte, headers http.Header) (*Event, error) {
	// Stripe's API versions are backwards compatible for the fields read here
	event, err := webhook.ConstructEventWithOptions(
		payload,
		headers.Get("Stripe-Signature"),
		s.webhookSecret,
		webhook.ConstructEventOptions{
			IgnoreAPIVersionMismatch: true,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	}

	eventType := string(event.Type)
	slog.Info("stripe webhook received", "event_type", eventType)

	out := &Event{Type: eventType}
	if eventType != stripeCheckoutCompleted {
		return out, nil
	}

	var session struct {
		ID                string            `json:"id"`
		ClientReferenceID string            `json:"client_reference_id"`
		PaymentStatus     string            `json:"payment_status"`
		Metadata          map[string]string `json:"metadata"`
	}
	err = json.Unmarshal(event.Data.Raw, &session)
	if err != nil {
		return nil, fmt.Errorf("failed to parse checkout session: %w", err)
	}

	out.ProviderRef = session.ID
	out.PurchaseID = session.Metadata["purchase_id"]
	if out.PurchaseID == "" {
		out.PurchaseID = session.ClientReferenceID
	}
	out.Paid = session.PaymentStatus == "paid"
	return out, nil
}
