package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PublicURL       string
}

type CloudflareImagesConfig struct {
	AccountID string
	Token     string
	Hash      string // imagedelivery.net account hash
}

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	Currency      string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
}

// Enabled reports whether a Redis host was configured.
func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

type EmailConfig struct {
	ResendAPIKey string
	FromAddress  string
	FromName     string
}

type Config struct {
	Port         string
	Env          string
	DatabaseURL  string
	JWTSecret    string
	JWTTTL       time.Duration
	CookieSecure bool
	CORSOrigins  string
	FrontendURL  string
	RateLimitMax int

	WebhookRetrySchedule string
	DashboardCacheTTL    time.Duration
	TurnstileSecretKey   string

	R2               R2Config
	CloudflareImages CloudflareImagesConfig
	Stripe           StripeConfig
	Redis            RedisConfig
	Email            EmailConfig
}

func LoadConfig() *Config {
	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		Env:          getEnv("APP_ENV", "development"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		JWTTTL:       getEnvDuration("JWT_TTL", 48*time.Hour),
		CookieSecure: getEnvBool("COOKIE_SECURE", false),
		CORSOrigins:  getEnv("CORS_ORIGINS", "http://localhost:5173"),
		FrontendURL:  strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:5173"), "/"),
		RateLimitMax: getEnvInt("RATE_LIMIT_MAX", 100),

		WebhookRetrySchedule: getEnv("WEBHOOK_RETRY_SCHEDULE", "*/5 * * * *"),
		DashboardCacheTTL:    getEnvDuration("DASHBOARD_CACHE_TTL", 5*time.Minute),
		TurnstileSecretKey:   os.Getenv("CF_TURNSTILE_SECRET_KEY"),
	}

	// R2 config
	cfg.R2.AccountID = os.Getenv("R2_ACCOUNT_ID")
	cfg.R2.AccessKeyID = os.Getenv("R2_ACCESS_KEY_ID")
	cfg.R2.SecretAccessKey = os.Getenv("R2_SECRET_ACCESS_KEY")
	cfg.R2.Bucket = os.Getenv("R2_BUCKET")
	cfg.R2.PublicURL = strings.TrimRight(os.Getenv("R2_PUBLIC_URL"), "/")

	// Cloudflare Images config
	cfg.CloudflareImages.AccountID = os.Getenv("CLOUDFLARE_ACCOUNT_ID")
	cfg.CloudflareImages.Token = os.Getenv("CLOUDFLARE_IMAGES_TOKEN")
	cfg.CloudflareImages.Hash = os.Getenv("CLOUDFLARE_IMAGES_HASH")

	cfg.Stripe.SecretKey = os.Getenv("STRIPE_SECRET_KEY")
	cfg.Stripe.WebhookSecret = os.Getenv("STRIPE_WEBHOOK_SECRET")
	cfg.Stripe.Currency = strings.ToLower(getEnv("STRIPE_CURRENCY", "usd"))

	cfg.Redis.Host = os.Getenv("REDIS_HOST")
	cfg.Redis.Port = getEnvInt("REDIS_PORT", 6379)
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")

	cfg.Email.ResendAPIKey = os.Getenv("RESEND_API_KEY")
	cfg.Email.FromAddress = os.Getenv("EMAIL_FROM_ADDRESS")
	cfg.Email.FromName = getEnv("EMAIL_FROM_NAME", "LearnHub")

	return cfg
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is not set"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is not set"))
	}
	if c.JWTTTL <= 0 {
		errs = append(errs, errors.New("JWT_TTL must be positive"))
	}
	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}
