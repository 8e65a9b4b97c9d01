package internal

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	Port     int
	LogLevel string

	// SMTP relay. Missing values are not a startup error; sending fails
	// instead and the visitor sees the failure toast.
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPTimeout  time.Duration

	// Mail delivery
	MailProvider        string // "smtp" or "log"
	MailFrom            string
	MailFromName        string
	MailTo              string // Operator mailbox that receives enquiries
	MailReplyToFallback string // Reply-To when the visitor gave no email

	// Locale for currency and percentage formatting
	Locale string

	// Metrics endpoint authentication
	// If both are empty, the /metrics endpoint will be unprotected (not recommended)
	MetricsUsername string
	MetricsPassword string
}

func NewConfig() (*Config, error) {
	// Load .env file if it exists (ignored in production)
	_ = godotenv.Load()

	cfg := &Config{
		Env:      getEnv("ENV", "development"),
		Port:     getEnvInt("PORT", 8080),
		LogLevel: getEnv("LOG_LEVEL", "debug"),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUsername: getEnv("SMTP_USER", getEnv("SMTP_USERNAME", "")),
		SMTPPassword: getEnv("SMTP_PASS", getEnv("SMTP_PASSWORD", "")),
		SMTPTimeout:  getEnvDuration("SMTP_TIMEOUT", 30*time.Second),

		MailProvider:        getEnv("MAIL_PROVIDER", "smtp"),
		MailFrom:            getEnv("MAIL_FROM", "info@savantfs.com.au"),
		MailFromName:        getEnv("MAIL_FROM_NAME", "SavantFS Website"),
		MailTo:              getEnv("MAIL_TO", "sakib@savantfs.com.au"),
		MailReplyToFallback: getEnv("MAIL_REPLY_TO_FALLBACK", "info@savantfs.com.au"),

		Locale: getEnv("LOCALE", "en-AU"),

		MetricsUsername: getEnv("METRICS_USERNAME", ""),
		MetricsPassword: getEnv("METRICS_PASSWORD", ""),
	}

	if cfg.MailProvider != "smtp" && cfg.MailProvider != "log" {
		return nil, fmt.Errorf("MAIL_PROVIDER must be either 'smtp' or 'log', got: %s", cfg.MailProvider)
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("PORT must be between 1 and 65535, got: %d", cfg.Port)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server runs with development defaults.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
