package payment

import (
	"fmt"
	"net/http"
	"strconv"
	"testing"
	"time"

	standardwebhooks "github.com/standard-webhooks/standard-webhooks/libraries/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v81/webhook"
	"github.com/templui/footprint/internal/config"
)

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		want    string
		wantErr bool
	}{
		{name: "disabled", cfg: config.Config{}},
		{name: "stripe", cfg: config.Config{PaymentProvider: "stripe", StripeSecretKey: "sk_test", StripeWebhookSecret: "whsec"}, want: "stripe"},
		{name: "stripe without webhook secret", cfg: config.Config{PaymentProvider: "stripe", StripeSecretKey: "sk_test"}, wantErr: true},
		{name: "polar", cfg: config.Config{PaymentProvider: "polar", PolarAPIKey: "key", PolarOffsetProduct: "prod", PolarSandboxMode: true}, want: "polar"},
		{name: "polar without product", cfg: config.Config{PaymentProvider: "polar", PolarAPIKey: "key"}, wantErr: true},
		{name: "unknown", cfg: config.Config{PaymentProvider: "paypal"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(&tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.want == "" {
				assert.Nil(t, p)
				return
			}
			assert.Equal(t, tt.want, p.Name())
		})
	}
}

func stripeSigned(t *testing.T, secret, payload string) http.Header {
	t.Helper()
	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   []byte(payload),
		Secret:    secret,
		Timestamp: time.Now(),
	})

	h := http.Header{}
	h.Set("Stripe-Signature", signed.Header)
	return h
}

func TestStripeParseWebhook(t *testing.T) {
	p := NewStripeProvider(&config.Config{StripeSecretKey: "sk_test", StripeWebhookSecret: "whsec_test"})

	payload := `{"id":"evt_1","object":"event","type":"checkout.session.completed","data":{"object":{` +
		`"id":"cs_1","client_reference_id":"pur_1","payment_status":"paid","metadata":{"purchase_id":"pur_1"}}}}`

	event, err := p.ParseWebhook([]byte(payload), stripeSigned(t, "whsec_test", payload))
	require.NoError(t, err)

	assert.Equal(t, "checkout.session.completed", event.Type)
	assert.Equal(t, "pur_1", event.PurchaseID)
	assert.Equal(t, "cs_1", event.ProviderRef)
	assert.True(t, event.Paid)
}

func TestStripeParseWebhookOtherEvent(t *testing.T) {
	p := NewStripeProvider(&config.Config{StripeSecretKey: "sk_test", StripeWebhookSecret: "whsec_test"})

	payload := `{"id":"evt_2","object":"event","type":"charge.refunded","data":{"object":{"id":"ch_1"}}}`
	event, err := p.ParseWebhook([]byte(payload), stripeSigned(t, "whsec_test", payload))
	require.NoError(t, err)

	assert.False(t, event.Paid)
	assert.Empty(t, event.PurchaseID)
}

func TestStripeParseWebhookBadSignature(t *testing.T) {
	p := NewStripeProvider(&config.Config{StripeSecretKey: "sk_test", StripeWebhookSecret: "whsec_test"})

	payload := `{"id":"evt_1","object":"event","type":"checkout.session.completed","data":{"object":{}}}`
	_, err := p.ParseWebhook([]byte(payload), stripeSigned(t, "whsec_other", payload))
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func polarSigned(t *testing.T, secret, payload string) http.Header {
	t.Helper()
	wh, err := standardwebhooks.NewWebhookRaw([]byte(secret))
	require.NoError(t, err)

	now := time.Now()
	sig, err := wh.Sign("msg_1", now, []byte(payload))
	require.NoError(t, err)

	h := http.Header{}
	h.Set("webhook-id", "msg_1")
	h.Set("webhook-timestamp", strconv.FormatInt(now.Unix(), 10))
	h.Set("webhook-signature", sig)
	return h
}

func TestPolarParseWebhook(t *testing.T) {
	secret := "polar-secret"
	p := NewPolarProvider(&config.Config{PolarAPIKey: "key", PolarWebhookSecret: secret, PolarSandboxMode: true})

	payload := fmt.Sprintf(`{"type":"order.paid","data":{"id":"ord_1","metadata":{"purchase_id":"%s"}}}`, "pur_9")
	event, err := p.ParseWebhook([]byte(payload), polarSigned(t, secret, payload))
	require.NoError(t, err)

	assert.True(t, event.Paid)
	assert.Equal(t, "pur_9", event.PurchaseID)
	assert.Equal(t, "ord_1", event.ProviderRef)
}

func TestPolarParseWebhookBadSignature(t *testing.T) {
	p := NewPolarProvider(&config.Config{PolarAPIKey: "key", PolarWebhookSecret: "polar-secret", PolarSandboxMode: true})

	payload := `{"type":"order.paid","data":{"id":"ord_1","metadata":{"purchase_id":"pur_9"}}}`
	_, err := p.ParseWebhook([]byte(payload), polarSigned(t, "another-secret", payload))
	assert.ErrorIs(t, err, ErrInvalidSignature)
}
