package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port        string
	Environment string

	DatabaseURL string

	RedisURL            string
	EventHandlerTimeout time.Duration

	FirebaseCredentialsFile string

	ResendAPIKey string
	FromEmail    string

	StripeSecretKey     string
	StripeWebhookSecret string
	CheckoutSuccessURL  string
	CheckoutCancelURL   string

	SlackWebhookURL       string
	MailchimpAPIKey       string
	MailchimpListID       string
	MailchimpServerPrefix string

	RecaptchaSecret   string
	RecaptchaMinScore float64

	AdminSetupSecret string
	TestNotifySecret string
	AdminEmails      []string

	CORSOrigins string
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		RedisURL:            getEnv("REDIS_URL", "redis://localhost:6379"),
		EventHandlerTimeout: getDurationEnv("EVENT_HANDLER_TIMEOUT", 30*time.Second),

		FirebaseCredentialsFile: getEnv("FIREBASE_CREDENTIALS_FILE", ""),

		ResendAPIKey: getEnv("RESEND_API_KEY", ""),
		FromEmail:    getEnv("FROM_EMAIL", ""),

		StripeSecretKey:     getEnv("STRIPE_SECRET", ""),
		StripeWebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
		CheckoutSuccessURL:  getEnv("CHECKOUT_SUCCESS_URL", "https://jobscaffold.com/payments/success"),
		CheckoutCancelURL:   getEnv("CHECKOUT_CANCEL_URL", "https://jobscaffold.com/payments/cancel"),

		SlackWebhookURL:       getEnv("SLACK_WEBHOOK_URL", ""),
		MailchimpAPIKey:       getEnv("MAILCHIMP_API_KEY", ""),
		MailchimpListID:       getEnv("MAILCHIMP_LIST_ID", ""),
		MailchimpServerPrefix: getEnv("MAILCHIMP_SERVER_PREFIX", ""),

		RecaptchaSecret:   getEnv("RECAPTCHA_SECRET", ""),
		RecaptchaMinScore: getFloatEnv("RECAPTCHA_MIN_SCORE", 0.5),

		AdminSetupSecret: getEnv("ADMIN_SETUP_SECRET", ""),
		TestNotifySecret: getEnv("TEST_NOTIFY_SECRET", ""),
		AdminEmails:      getListEnv("ADMIN_EMAILS"),

		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:5173"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getListEnv(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
