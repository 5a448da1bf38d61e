package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	JWTSecret     string
	JWTIssuer     string

	// Identifiers
	AppTimezone        *time.Location
	DonationCodePrefix string
	GatewayOrderPrefix string

	// Payment gateway
	MidtransServerKey string
	MidtransBaseURL   string
	MidtransTimeout   time.Duration
	// SkipWebhookSignature disables notification authentication. Always false in production.
	SkipWebhookSignature bool

	// Reconciliation
	ReconcileMaxAttempts int
	PendingDonationTTL   time.Duration
	ExpirySweepSchedule  string
	ExpirySweepBatch     int

	// Event sinks: any of "log", "redis", "kafka", "posthog"
	EventSinks      []string
	RedisURL        string
	EventStream     string
	KafkaBrokers    []string
	KafkaTopic      string
	PosthogAPIKey   string
	PosthogEndpoint string

	// HTTP
	WebhookRateLimit   string
	CheckoutRateLimit  string
	CORSAllowedOrigins []string

	MigrationsPath string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_ISSUER", "donation-admin")
	viper.SetDefault("APP_TIMEZONE", "Asia/Jakarta")
	viper.SetDefault("DONATION_CODE_PREFIX", "DON")
	viper.SetDefault("GATEWAY_ORDER_PREFIX", "DPF")
	viper.SetDefault("MIDTRANS_SERVER_KEY", "")
	viper.SetDefault("MIDTRANS_BASE_URL", "https://app.sandbox.midtrans.com")
	viper.SetDefault("MIDTRANS_TIMEOUT", "15s")
	viper.SetDefault("SKIP_WEBHOOK_SIGNATURE", false)
	viper.SetDefault("RECONCILE_MAX_ATTEMPTS", 3)
	viper.SetDefault("PENDING_DONATION_TTL", "24h")
	viper.SetDefault("EXPIRY_SWEEP_SCHEDULE", "@every 10m")
	viper.SetDefault("EXPIRY_SWEEP_BATCH", 200)
	viper.SetDefault("EVENT_SINKS", "log")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("EVENT_STREAM", "donation:events")
	viper.SetDefault("KAFKA_BROKERS", "")
	viper.SetDefault("KAFKA_TOPIC", "donation-events")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_ENDPOINT", "")
	viper.SetDefault("WEBHOOK_RATE_LIMIT", "600-M")
	viper.SetDefault("CHECKOUT_RATE_LIMIT", "30-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	tzName := viper.GetString("APP_TIMEZONE")
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		log.Printf("Warning: Invalid APP_TIMEZONE ('%s'). Defaulting to UTC.\n", tzName)
		loc = time.UTC
	}
	cfg.AppTimezone = loc

	cfg.DonationCodePrefix = viper.GetString("DONATION_CODE_PREFIX")
	cfg.GatewayOrderPrefix = viper.GetString("GATEWAY_ORDER_PREFIX")

	cfg.MidtransServerKey = viper.GetString("MIDTRANS_SERVER_KEY")
	cfg.MidtransBaseURL = strings.TrimRight(viper.GetString("MIDTRANS_BASE_URL"), "/")
	cfg.MidtransTimeout = parseDuration("MIDTRANS_TIMEOUT", 15*time.Second)

	cfg.SkipWebhookSignature = viper.GetBool("SKIP_WEBHOOK_SIGNATURE")
	if cfg.SkipWebhookSignature && cfg.IsProduction {
		log.Println("Warning: SKIP_WEBHOOK_SIGNATURE is ignored in production.")
		cfg.SkipWebhookSignature = false
	}
	if cfg.MidtransServerKey == "" {
		log.Println("Warning: MIDTRANS_SERVER_KEY not set. Checkout and notification signatures will not work.")
	}

	cfg.ReconcileMaxAttempts = viper.GetInt("RECONCILE_MAX_ATTEMPTS")
	if cfg.ReconcileMaxAttempts < 1 {
		cfg.ReconcileMaxAttempts = 1
	}
	cfg.PendingDonationTTL = parseDuration("PENDING_DONATION_TTL", 24*time.Hour)
	cfg.ExpirySweepSchedule = viper.GetString("EXPIRY_SWEEP_SCHEDULE")
	cfg.ExpirySweepBatch = viper.GetInt("EXPIRY_SWEEP_BATCH")
	if cfg.ExpirySweepBatch <= 0 {
		cfg.ExpirySweepBatch = 200
	}

	cfg.EventSinks = splitList(viper.GetString("EVENT_SINKS"))
	cfg.RedisURL = viper.GetString("REDIS_URL")
	cfg.EventStream = viper.GetString("EVENT_STREAM")
	cfg.KafkaBrokers = splitList(viper.GetString("KAFKA_BROKERS"))
	cfg.KafkaTopic = viper.GetString("KAFKA_TOPIC")
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.PosthogEndpoint = viper.GetString("POSTHOG_ENDPOINT")

	cfg.WebhookRateLimit = viper.GetString("WEBHOOK_RATE_LIMIT")
	cfg.CheckoutRateLimit = viper.GetString("CHECKOUT_RATE_LIMIT")
	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))

	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")

	return cfg, nil
}

// HasSink reports whether name is one of the configured event sinks.
func (c *Config) HasSink(name string) bool {
	for _, s := range c.EventSinks {
		if s == name {
			return true
		}
	}
	return false
}

func parseDuration(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
		}
		return fallback
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
