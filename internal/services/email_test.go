package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atelier/internal/config"
)

func TestNewEmailServiceDisabledWithoutSMTP(t *testing.T) {
	es := NewEmailService(&config.Config{})
	assert.Nil(t, es.dialer)

	// Sending degrades to logging rather than erroring.
	assert.NoError(t, es.SendContactNotification(ContactInquiry{Email: "june@example.com"}))
}

func TestNewEmailServiceTLS(t *testing.T) {
	cfg := &config.Config{
		MailHost:     "smtp.example.com",
		MailPort:     587,
		MailUsername: "studio@example.com",
		MailPassword: "secret",
		MailUseTLS:   true,
	}
	es := NewEmailService(cfg)
	require.NotNil(t, es.dialer)
	require.NotNil(t, es.dialer.TLSConfig)
	assert.Equal(t, "smtp.example.com", es.dialer.TLSConfig.ServerName)

	cfg.MailUseTLS = false
	es = NewEmailService(cfg)
	require.NotNil(t, es.dialer)
	assert.Nil(t, es.dialer.TLSConfig)
}
