package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/footprint/internal/model"
	"github.com/templui/footprint/internal/repository"
	"github.com/templui/footprint/internal/service/payment"
)

// fakeProvider records checkouts and replays a fixed webhook event.
type fakeProvider struct {
	requests []payment.CheckoutRequest
	event    payment.Event
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) CreateCheckout(ctx context.Context, req payment.CheckoutRequest) (*payment.Checkout, error) {
	f.requests = append(f.requests, req)
	return &payment.Checkout{ID: "cs_" + req.PurchaseID, URL: "https://pay.example.com/" + req.PurchaseID}, nil
}

func (f *fakeProvider) ParseWebhook(payload []byte, headers http.Header) (*payment.Event, error) {
	if string(payload) != "signed" {
		return nil, payment.ErrInvalidSignature
	}
	event := f.event
	return &event, nil
}

func TestQuote(t *testing.T) {
	q, err := Quote(1000)
	require.NoError(t, err)
	assert.Equal(t, 1.0, q.Tons)
	assert.Equal(t, 25.0, q.CostUSD)
	assert.Equal(t, "$25.00", q.CostText)
	assert.Equal(t, int64(2500), q.AmountCents)
	assert.Equal(t, 46, q.Trees)

	_, err = Quote(0)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = Quote(maxOffsetKg + 1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestOffsetDisabled(t *testing.T) {
	e := newEnv(t)
	u := e.user(t, "Dorje Lama")
	offsets := NewOffsetService(repository.NewOffsetRepository(e.conn), e.users, nil, e.gamification)

	assert.False(t, offsets.Enabled())
	_, err := offsets.Checkout(context.Background(), u.ID, 100)
	assert.ErrorIs(t, err, ErrPaymentsDisabled)
	assert.ErrorIs(t, offsets.HandleWebhook([]byte("signed"), http.Header{}), ErrPaymentsDisabled)
}

func TestOffsetCheckoutAndWebhook(t *testing.T) {
	e := newEnv(t)
	u := e.user(t, "Dorje Lama")
	provider := &fakeProvider{}
	offsets := NewOffsetService(repository.NewOffsetRepository(e.conn), e.users, provider, e.gamification)

	checkout, err := offsets.Checkout(context.Background(), u.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/"+checkout.Purchase.ID, checkout.CheckoutURL)
	assert.Equal(t, model.OffsetStatusPending, checkout.Purchase.Status)
	// 10 kg costs 25 cents, raised to the minimum
	assert.Equal(t, int64(50), checkout.Purchase.AmountCents)
	require.Len(t, provider.requests, 1)
	assert.Equal(t, u.Email, provider.requests[0].Email)

	assert.ErrorIs(t, offsets.HandleWebhook([]byte("forged"), http.Header{}), payment.ErrInvalidSignature)

	provider.event = payment.Event{Type: "order.paid", PurchaseID: checkout.Purchase.ID, Paid: true}
	require.NoError(t, offsets.HandleWebhook([]byte("signed"), http.Header{}))
	// redelivery is a no-op
	require.NoError(t, offsets.HandleWebhook([]byte("signed"), http.Header{}))

	stats, err := e.statsRepo.Get(u.ID)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, stats.CarbonSaved, 0.001)

	purchases, err := offsets.Purchases(u.ID)
	require.NoError(t, err)
	require.Len(t, purchases, 1)
	assert.Equal(t, model.OffsetStatusPaid, purchases[0].Status)
	assert.NotNil(t, purchases[0].PaidAt)
}

func TestOffsetUnpaidEventIgnored(t *testing.T) {
	e := newEnv(t)
	u := e.user(t, "Dorje Lama")
	provider := &fakeProvider{}
	offsets := NewOffsetService(repository.NewOffsetRepository(e.conn), e.users, provider, e.gamification)

	checkout, err := offsets.Checkout(context.Background(), u.ID, 200)
	require.NoError(t, err)

	provider.event = payment.Event{Type: "checkout.updated", PurchaseID: checkout.Purchase.ID}
	require.NoError(t, offsets.HandleWebhook([]byte("signed"), http.Header{}))

	purchases, err := offsets.Purchases(u.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OffsetStatusPending, purchases[0].Status)
}
