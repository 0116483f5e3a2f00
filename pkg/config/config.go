package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database DatabaseConfig
	Redis    RedisConfig
	Log      LogConfig
	CORS     CORSConfig
	Gates    GatesConfig
	CMS      CMSConfig
	Mail     MailConfig
	Payments PaymentsConfig
	Catalog  CatalogConfig
	Listing  ListingConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type LogConfig struct {
	Level  string
	Format string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// GatesConfig holds the shared secrets and session window for the password
// gates in front of the admin dashboard and the CMS studio.
type GatesConfig struct {
	AdminPassword  string
	StudioPassword string
	SessionTTL     time.Duration
	SecureCookies  bool
}

// CMSConfig points at the hosted content store's query endpoint.
type CMSConfig struct {
	ProjectID  string
	Dataset    string
	APIVersion string
	Token      string
	BaseURL    string // overrides the per-project endpoint, used in tests
	Timeout    time.Duration
}

// MailConfig configures the contact-form email relay.
type MailConfig struct {
	APIKey  string
	BaseURL string
	From    string
	To      []string
	Timeout time.Duration
}

// PaymentsConfig configures the payment-gateway lookup.
type PaymentsConfig struct {
	BaseURL      string
	APIVersion   string
	ClientID     string
	ClientSecret string
	OrderID      string
	Timeout      time.Duration
}

// CatalogConfig tunes the CMS snapshot cache. Caching is off by default so
// the service behaves like the site it replaces.
type CatalogConfig struct {
	CacheEnabled bool
	CacheTTL     time.Duration
}

// ListingConfig pins the zone used for calendar-day filters. Empty means the
// process-local zone, matching the browser-side behaviour.
type ListingConfig struct {
	Timezone string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Gates = GatesConfig{
		AdminPassword:  v.GetString("ADMIN_PASSWORD"),
		StudioPassword: v.GetString("STUDIO_PASSWORD"),
		SessionTTL:     parseDuration(v.GetString("SESSION_TTL"), 24*time.Hour),
		SecureCookies:  v.GetBool("SECURE_COOKIES"),
	}

	cfg.CMS = CMSConfig{
		ProjectID:  v.GetString("SANITY_PROJECT_ID"),
		Dataset:    v.GetString("SANITY_DATASET"),
		APIVersion: v.GetString("SANITY_API_VERSION"),
		Token:      v.GetString("SANITY_TOKEN"),
		BaseURL:    v.GetString("SANITY_BASE_URL"),
		Timeout:    parseDuration(v.GetString("SANITY_TIMEOUT"), 10*time.Second),
	}

	cfg.Mail = MailConfig{
		APIKey:  v.GetString("RESEND_API_KEY"),
		BaseURL: v.GetString("RESEND_BASE_URL"),
		From:    v.GetString("CONTACT_FROM"),
		To:      splitAndTrim(v.GetString("CONTACT_TO")),
		Timeout: parseDuration(v.GetString("RESEND_TIMEOUT"), 10*time.Second),
	}

	cfg.Payments = PaymentsConfig{
		BaseURL:      v.GetString("CASHFREE_BASE_URL"),
		APIVersion:   v.GetString("CASHFREE_API_VERSION"),
		ClientID:     v.GetString("CASHFREE_CLIENT_ID"),
		ClientSecret: v.GetString("CASHFREE_CLIENT_SECRET"),
		OrderID:      v.GetString("CASHFREE_ORDER_ID"),
		Timeout:      parseDuration(v.GetString("CASHFREE_TIMEOUT"), 10*time.Second),
	}

	cfg.Catalog = CatalogConfig{
		CacheEnabled: v.GetBool("ENABLE_CATALOG_CACHE"),
		CacheTTL:     parseDuration(v.GetString("CATALOG_CACHE_TTL"), 5*time.Minute),
	}

	cfg.Listing = ListingConfig{
		Timezone: v.GetString("LISTING_TIMEZONE"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "leadthebusiness")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ADMIN_PASSWORD", "")
	v.SetDefault("STUDIO_PASSWORD", "")
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("SECURE_COOKIES", true)

	v.SetDefault("SANITY_PROJECT_ID", "")
	v.SetDefault("SANITY_DATASET", "production")
	v.SetDefault("SANITY_API_VERSION", "2024-01-01")
	v.SetDefault("SANITY_TOKEN", "")
	v.SetDefault("SANITY_BASE_URL", "")
	v.SetDefault("SANITY_TIMEOUT", "10s")

	v.SetDefault("RESEND_API_KEY", "")
	v.SetDefault("RESEND_BASE_URL", "https://api.resend.com")
	v.SetDefault("CONTACT_FROM", "Contact Form <contact@resend.dev>")
	v.SetDefault("CONTACT_TO", "info@leadthebusiness.in")
	v.SetDefault("RESEND_TIMEOUT", "10s")

	v.SetDefault("CASHFREE_BASE_URL", "https://api.cashfree.com")
	v.SetDefault("CASHFREE_API_VERSION", "2025-01-01")
	v.SetDefault("CASHFREE_CLIENT_ID", "")
	v.SetDefault("CASHFREE_CLIENT_SECRET", "")
	v.SetDefault("CASHFREE_ORDER_ID", "")
	v.SetDefault("CASHFREE_TIMEOUT", "10s")

	v.SetDefault("ENABLE_CATALOG_CACHE", false)
	v.SetDefault("CATALOG_CACHE_TTL", "5m")

	v.SetDefault("LISTING_TIMEZONE", "")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
