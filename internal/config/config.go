package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Store drivers accepted in STORE_DRIVER.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config is the full runtime configuration read from the environment.
type Config struct {
	App      AppConfig
	Store    StoreConfig
	Cache    CacheConfig
	RabbitMQ RabbitMQConfig
	Mail     MailConfig
	Log      LogConfig
}

// AppConfig holds HTTP server settings.
type AppConfig struct {
	Port           string
	RequestTimeout time.Duration
}

// StoreConfig selects the order store and how to reach it.
type StoreConfig struct {
	Driver   string
	MongoURI string
	DSN      string
}

// CacheConfig enables the redis order cache when RedisAddr is set.
type CacheConfig struct {
	RedisAddr string
	TTL       time.Duration
}

// RabbitMQConfig enables queued notifications when URL is set.
type RabbitMQConfig struct {
	URL string
}

// MailConfig describes the SMTP transport used for order emails.
type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Configured reports whether enough transport settings are present to send mail.
func (c MailConfig) Configured() bool {
	return c.Host != "" && c.Username != "" && c.From != ""
}

// LogConfig holds the logger level.
type LogConfig struct {
	Level string
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("REQUEST_TIMEOUT", "10s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORE_DRIVER", DriverMongo)
	v.SetDefault("MONGODB_URI", "mongodb://localhost:27017/ecommerce")
	v.SetDefault("DATABASE_DSN", "file:storefront.db")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("ORDER_CACHE_TTL", "10m")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("SMTP_HOST", "sandbox.smtp.mailtrap.io")
	v.SetDefault("SMTP_PORT", 2525)

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	requestTimeout, err := time.ParseDuration(v.GetString("REQUEST_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("parsing REQUEST_TIMEOUT: %w", err)
	}
	cacheTTL, err := time.ParseDuration(v.GetString("ORDER_CACHE_TTL"))
	if err != nil {
		return nil, fmt.Errorf("parsing ORDER_CACHE_TTL: %w", err)
	}

	driver := strings.ToLower(strings.TrimSpace(v.GetString("STORE_DRIVER")))
	switch driver {
	case DriverMongo, DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER %q", driver)
	}

	// Mailtrap style variables are honoured when the generic ones are unset.
	username := firstNonEmpty(v.GetString("SMTP_USERNAME"), v.GetString("MAILTRAP_TOKEN"))
	password := firstNonEmpty(v.GetString("SMTP_PASSWORD"), v.GetString("MAILTRAP_TOKEN"))
	from := firstNonEmpty(v.GetString("MAIL_FROM"), v.GetString("MAILTRAP_SENDER_EMAIL"))

	return &Config{
		App: AppConfig{
			Port:           v.GetString("APP_PORT"),
			RequestTimeout: requestTimeout,
		},
		Store: StoreConfig{
			Driver:   driver,
			MongoURI: v.GetString("MONGODB_URI"),
			DSN:      v.GetString("DATABASE_DSN"),
		},
		Cache: CacheConfig{
			RedisAddr: v.GetString("REDIS_ADDR"),
			TTL:       cacheTTL,
		},
		RabbitMQ: RabbitMQConfig{
			URL: v.GetString("RABBITMQ_URL"),
		},
		Mail: MailConfig{
			Host:     v.GetString("SMTP_HOST"),
			Port:     v.GetInt("SMTP_PORT"),
			Username: username,
			Password: password,
			From:     from,
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
