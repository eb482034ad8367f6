// Package payment creates offset checkouts with an external payment
// provider and turns its webhooks into provider-neutral events.
package payment

import (
	"context"
	"errors"
	"net/http"
)

// ErrInvalidSignature is returned for webhooks that fail verification.
var ErrInvalidSignature = errors.New("invalid webhook signature")

// CheckoutRequest describes one offset purchase to pay for.
type CheckoutRequest struct {
	PurchaseID  string
	UserID      string
	Email       string
	Name        string
	Kg          float64
	AmountCents int64
	Currency    string
}

type Checkout struct {
	ID  string
	URL string
}

// Event is a verified webhook reduced to what offsets need. Paid events carry
// the PurchaseID from the checkout metadata.
type Event struct {
	Type        string
	PurchaseID  string
	ProviderRef string
	Paid        bool
}

type Provider interface {
	CreateCheckout(ctx context.Context, req CheckoutRequest) (*Checkout, error)

	// ParseWebhook verifies and decodes a webhook delivery
	ParseWebhook(payload []byte, headers http.Header) (*Event, error)

	// Name returns the provider name (e.g., "polar", "stripe")
	Name() string
}
