package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCents(t *testing.T) {
	assert.EqualValues(t, 1999, ToCents(19.99))
	assert.EqualValues(t, 50, ToCents(0.50))
	assert.EqualValues(t, 10, ToCents(0.1))
	assert.EqualValues(t, 4500, ToCents(45.00))
}

func TestCreateIntentDisabledWithoutKey(t *testing.T) {
	s := NewStripeService("", "")
	assert.False(t, s.Enabled())

	_, err := s.CreateIntent(IntentRequest{Amount: 10})
	assert.ErrorIs(t, err, ErrPaymentsDisabled)
}

func TestParseWebhookEventWithoutSecret(t *testing.T) {
	s := NewStripeService("", "")
	payload := []byte(`{
		"type": "payment_intent.succeeded",
		"data": {"object": {"id": "pi_123"}}
	}`)

	event, err := s.ParseWebhookEvent(payload, "")
	require.NoError(t, err)
	assert.Equal(t, EventPaymentSucceeded, event.Type)
	assert.Equal(t, "pi_123", event.IntentID)
}

func TestParseWebhookEventUnknownType(t *testing.T) {
	s := NewStripeService("", "")
	payload := []byte(`{"type": "charge.refunded", "data": {"object": {}}}`)

	event, err := s.ParseWebhookEvent(payload, "")
	require.NoError(t, err)
	assert.Equal(t, "charge.refunded", event.Type)
	assert.Empty(t, event.IntentID)
}

func TestParseWebhookEventRejectsBadSignature(t *testing.T) {
	s := NewStripeService("", "whsec_test")
	payload := []byte(`{"type": "payment_intent.succeeded", "data": {"object": {"id": "pi_123"}}}`)

	_, err := s.ParseWebhookEvent(payload, "t=1,v1=bogus")
	assert.Error(t, err)
}

func TestParseWebhookEventGarbage(t *testing.T) {
	s := NewStripeService("", "")
	_, err := s.ParseWebhookEvent([]byte("not json"), "")
	assert.Error(t, err)
}
