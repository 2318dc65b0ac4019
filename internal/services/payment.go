package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"github.com/stripe/stripe-go/v76/webhook"
)

// MinimumChargeAmount is Stripe's smallest chargeable amount in euros.
const MinimumChargeAmount = 0.50

// ErrPaymentsDisabled is returned when no Stripe secret key is
// configured.
var ErrPaymentsDisabled = errors.New("payment processing is not configured")

// ShippingDetails carries the optional shipping block attached to a
// payment intent.
type ShippingDetails struct {
	Name       string
	Line1      string
	Line2      string
	City       string
	PostalCode string
	Country    string
}

// IntentRequest describes the charge to create.
type IntentRequest struct {
	Amount        float64
	CustomerName  string
	CustomerEmail string
	ItemCount     int
	Shipping      ShippingDetails
}

// Intent is the application-side view of a created payment intent.
type Intent struct {
	ID           string
	ClientSecret string
}

// Webhook event types the shop reacts to.
const (
	EventPaymentSucceeded = "payment_intent.succeeded"
	EventPaymentFailed    = "payment_intent.payment_failed"
)

// WebhookEvent is the decoded, possibly signature-verified, event.
type WebhookEvent struct {
	Type     string
	IntentID string
}

// StripeService wraps the hosted payment-intent API.
type StripeService struct {
	webhookSecret string
	enabled       bool
}

// NewStripeService configures the Stripe client. With an empty secret
// key the service stays disabled and CreateIntent fails fast.
func NewStripeService(secretKey, webhookSecret string) *StripeService {
	if secretKey != "" {
		stripe.Key = secretKey
	}
	return &StripeService{
		webhookSecret: webhookSecret,
		enabled:       secretKey != "",
	}
}

// Enabled reports whether a secret key is configured.
func (s *StripeService) Enabled() bool {
	return s.enabled
}

// CreateIntent requests a payment intent for the given amount.
func (s *StripeService) CreateIntent(req IntentRequest) (*Intent, error) {
	if !s.enabled {
		return nil, ErrPaymentsDisabled
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(ToCents(req.Amount)),
		Currency: stripe.String(string(stripe.CurrencyEUR)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	if req.Shipping.Line1 != "" {
		params.Shipping = &stripe.ShippingDetailsParams{
			Name: stripe.String(req.Shipping.Name),
			Address: &stripe.AddressParams{
				Line1:      stripe.String(req.Shipping.Line1),
				Line2:      stripe.String(req.Shipping.Line2),
				City:       stripe.String(req.Shipping.City),
				PostalCode: stripe.String(req.Shipping.PostalCode),
				Country:    stripe.String(req.Shipping.Country),
			},
		}
	}
	params.AddMetadata("customer_name", req.CustomerName)
	params.AddMetadata("customer_email", req.CustomerEmail)
	params.AddMetadata("item_count", fmt.Sprintf("%d", req.ItemCount))

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, err
	}
	return &Intent{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}

// ParseWebhookEvent decodes an incoming webhook payload. When a
// webhook secret is configured the Stripe signature header is
// verified; otherwise the payload is parsed as-is.
func (s *StripeService) ParseWebhookEvent(payload []byte, signatureHeader string) (*WebhookEvent, error) {
	var event stripe.Event
	if s.webhookSecret != "" {
		verified, err := webhook.ConstructEvent(payload, signatureHeader, s.webhookSecret)
		if err != nil {
			return nil, err
		}
		event = verified
	} else if err := json.Unmarshal(payload, &event); err != nil {
		return nil, err
	}

	we := &WebhookEvent{Type: string(event.Type)}
	switch we.Type {
	case EventPaymentSucceeded, EventPaymentFailed:
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			return nil, err
		}
		we.IntentID = pi.ID
	}
	return we, nil
}

// ToCents converts a euro amount to Stripe's integer cents without
// float drift.
func ToCents(amount float64) int64 {
	return decimal.NewFromFloat(amount).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
