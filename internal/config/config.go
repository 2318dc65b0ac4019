package config

import (
	"crypto/rand"
	"log/slog"
	"os"
	"strconv"
)

// Config holds every environment-driven setting the application needs.
type Config struct {
	Port        string
	DatabaseURL string

	SessionSecret []byte

	StripePublishableKey string
	StripeSecretKey      string
	StripeWebhookSecret  string

	MailHost     string
	MailPort     int
	MailUsername string
	MailPassword string
	MailUseTLS   bool

	UploadDir     string
	MaxUploadSize int64
}

// Load reads the configuration from environment variables, falling back
// to development defaults where a value is not critical.
func Load() (*Config, error) {
	cfg := &Config{
		Port:                 getEnv("PORT", "8080"),
		DatabaseURL:          getEnv("DATABASE_URL", "./atelier.db"),
		StripePublishableKey: os.Getenv("STRIPE_PUBLISHABLE_KEY"),
		StripeSecretKey:      os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret:  os.Getenv("STRIPE_WEBHOOK_SECRET"),
		MailHost:             os.Getenv("MAIL_HOST"),
		MailPort:             getEnvInt("MAIL_PORT", 587),
		MailUsername:         os.Getenv("MAIL_USERNAME"),
		MailPassword:         os.Getenv("MAIL_PASSWORD"),
		MailUseTLS:           getEnv("MAIL_USE_TLS", "true") == "true",
		UploadDir:            getEnv("UPLOAD_DIR", "./static/uploads"),
		MaxUploadSize:        int64(getEnvInt("MAX_UPLOAD_SIZE", 16<<20)),
	}

	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		slog.Warn("SESSION_SECRET not set, generating a random key; sessions will not survive a restart. Set SESSION_SECRET in production.")
		cfg.SessionSecret = randomBytes(32)
	} else {
		cfg.SessionSecret = []byte(secret)
	}

	if cfg.StripeSecretKey == "" {
		slog.Warn("STRIPE_SECRET_KEY not set, checkout will be disabled")
	}
	if cfg.StripeWebhookSecret == "" {
		slog.Warn("STRIPE_WEBHOOK_SECRET not set, webhook events will not be signature-verified")
	}

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		slog.Error("Invalid PORT, falling back to default", "PORT", cfg.Port)
		cfg.Port = "8080"
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		slog.Warn("Invalid integer environment variable, using default", "key", key, "value", value)
		return defaultValue
	}
	return n
}

func randomBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing means the platform is broken; there is no
		// sensible fallback for key material.
		panic(err)
	}
	return b
}
