package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port          string
	DataDir       string
	HashSecret    string
	TokenTTL      time.Duration
	StripeToken   string
	MailgunToken  string
	MailgunDomain string
	Currency      string
	CORSOrigins   []string
	LogLevel      string
}

// Load reads configuration from the environment and performs minimal validation.
func Load() (Config, error) {
	cfg := Config{
		Port:          fallback(os.Getenv("PORT"), "3000"),
		DataDir:       fallback(os.Getenv("DATA_DIR"), ".data"),
		HashSecret:    strings.TrimSpace(os.Getenv("HASH_SECRET")),
		StripeToken:   strings.TrimSpace(os.Getenv("STRIPE_TOKEN")),
		MailgunToken:  strings.TrimSpace(os.Getenv("MAILGUN_TOKEN")),
		MailgunDomain: strings.TrimSpace(os.Getenv("MAILGUN_DOMAIN")),
		Currency:      fallback(os.Getenv("CURRENCY"), "czk"),
		CORSOrigins:   parseCSV(fallback(os.Getenv("CORS_ALLOWED_ORIGINS"), "*")),
		LogLevel:      fallback(os.Getenv("LOG_LEVEL"), "info"),
	}

	minutes := fallback(os.Getenv("TOKEN_TTL_MINUTES"), "60")
	if ttlMinutes, err := strconv.Atoi(minutes); err == nil && ttlMinutes > 0 {
		cfg.TokenTTL = time.Duration(ttlMinutes) * time.Minute
	} else {
		cfg.TokenTTL = 60 * time.Minute
	}

	if cfg.HashSecret == "" {
		return Config{}, errors.New("HASH_SECRET is required")
	}

	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
