package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"

	"github.com/templui/footprint/internal/emissions"
	"github.com/templui/footprint/internal/model"
	"github.com/templui/footprint/internal/repository"
	"github.com/templui/footprint/internal/service/payment"
	"github.com/templui/footprint/internal/validation"
)

// maxOffsetKg bounds a single purchase at 100 tonnes.
const maxOffsetKg = 100000

var ErrPaymentsDisabled = errors.New("offset purchases are not available")

type OffsetQuote struct {
	Kg          float64 `json:"kg"`
	Tons        float64 `json:"tons"`
	CostUSD     float64 `json:"cost_usd"`
	CostText    string  `json:"cost_text"`
	AmountCents int64   `json:"amount_cents"`
	Trees       int     `json:"trees"`
}

type OffsetCheckout struct {
	Purchase    *model.OffsetPurchase `json:"purchase"`
	CheckoutURL string                `json:"checkout_url"`
}

type OffsetService struct {
	repo         repository.OffsetRepository
	userRepo     repository.UserRepository
	provider     payment.Provider
	gamification *GamificationService
}

// NewOffsetService takes a nil provider when payments are disabled; quotes
// still work then.
func NewOffsetService(repo repository.OffsetRepository, userRepo repository.UserRepository, provider payment.Provider, gamification *GamificationService) *OffsetService {
	return &OffsetService{
		repo:         repo,
		userRepo:     userRepo,
		provider:     provider,
		gamification: gamification,
	}
}

func (s *OffsetService) Enabled() bool {
	return s.provider != nil
}

// Quote prices offsetting kg of CO2.
func Quote(kg float64) (*OffsetQuote, error) {
	err := validation.Positive("kg", kg, maxOffsetKg)
	if err != nil {
		return nil, invalid(err)
	}

	cost := emissions.OffsetCost(kg)
	return &OffsetQuote{
		Kg:          kg,
		Tons:        kg / 1000,
		CostUSD:     cost,
		CostText:    emissions.FormatUSD(cost),
		AmountCents: int64(math.Round(cost * 100)),
		Trees:       emissions.TreesNeeded(kg),
	}, nil
}

// Checkout stores a pending purchase and opens a provider checkout for it.
// Amounts below the provider minimum of 50 cents are rounded up.
func (s *OffsetService) Checkout(ctx context.Context, userID string, kg float64) (*OffsetCheckout, error) {
	if s.provider == nil {
		return nil, ErrPaymentsDisabled
	}

	quote, err := Quote(kg)
	if err != nil {
		return nil, err
	}
	amount := quote.AmountCents
	if amount < 50 {
		amount = 50
	}

	user, err := s.userRepo.ByID(userID)
	if err != nil {
		return nil, err
	}

	purchase := &model.OffsetPurchase{
		UserID:      userID,
		Kg:          kg,
		AmountCents: amount,
		Currency:    "usd",
		Provider:    s.provider.Name(),
		Status:      model.OffsetStatusPending,
	}
	err = s.repo.Create(purchase)
	if err != nil {
		return nil, fmt.Errorf("failed to create purchase: %w", err)
	}

	checkout, err := s.provider.CreateCheckout(ctx, payment.CheckoutRequest{
		PurchaseID:  purchase.ID,
		UserID:      userID,
		Email:       user.Email,
		Kg:          kg,
		AmountCents: amount,
		Currency:    purchase.Currency,
	})
	if err != nil {
		return nil, err
	}

	err = s.repo.SetProviderRef(purchase.ID, checkout.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to save checkout reference: %w", err)
	}
	purchase.ProviderRef = checkout.ID

	return &OffsetCheckout{Purchase: purchase, CheckoutURL: checkout.URL}, nil
}

// HandleWebhook credits paid purchases to the buyer's carbon saved. Redelivered
// events for a purchase already paid are ignored.
func (s *OffsetService) HandleWebhook(payload []byte, headers http.Header) error {
	if s.provider == nil {
		return ErrPaymentsDisabled
	}

	event, err := s.provider.ParseWebhook(payload, headers)
	if err != nil {
		return err
	}
	if !event.Paid {
		return nil
	}
	if event.PurchaseID == "" {
		slog.Warn("paid webhook without purchase id, skipping", "event_type", event.Type, "provider_ref", event.ProviderRef)
		return nil
	}

	purchase, err := s.repo.MarkPaid(event.PurchaseID)
	if errors.Is(err, repository.ErrOffsetNotFound) {
		slog.Info("offset already paid or unknown, skipping", "purchase_id", event.PurchaseID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to mark purchase paid: %w", err)
	}

	_, err = s.gamification.Credit(purchase.UserID, Gain{CarbonKg: purchase.Kg})
	if err != nil {
		return err
	}

	slog.Info("offset purchase paid", "user_id", purchase.UserID, "purchase_id", purchase.ID, "kg", purchase.Kg)
	return nil
}

func (s *OffsetService) Purchases(userID string) ([]*model.OffsetPurchase, error) {
	ps, err := s.repo.ByUser(userID)
	if err != nil {
		return nil, err
	}
	if ps == nil {
		ps = []*model.OffsetPurchase{}
	}
	return ps, nil
}
