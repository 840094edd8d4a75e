// Package config loads process configuration from the environment and an
// optional config file.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the typed process configuration.
type Config struct {
	Port         string        `mapstructure:"APP_PORT"`
	Env          string        `mapstructure:"APP_ENV"`
	StoreDriver  string        `mapstructure:"STORE_DRIVER"`
	DatabaseDSN  string        `mapstructure:"DATABASE_DSN"`
	SeedFixtures bool          `mapstructure:"SEED_FIXTURES"`
	JWTSecret    string        `mapstructure:"JWT_SECRET"`
	JWTTTL       time.Duration `mapstructure:"JWT_TTL"`

	RabbitMQURL      string `mapstructure:"RABBITMQ_URL"`
	RabbitMQExchange string `mapstructure:"RABBITMQ_EXCHANGE"`

	FavoritesJoinPolicy  string `mapstructure:"FAVORITES_JOIN_POLICY"`
	ActivityDefaultLimit int    `mapstructure:"ACTIVITY_DEFAULT_LIMIT"`
	ActivityMaxLimit     int    `mapstructure:"ACTIVITY_MAX_LIMIT"`

	RedisAddr     string        `mapstructure:"REDIS_ADDR"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	CacheTTL      time.Duration `mapstructure:"CACHE_TTL"`

	CORSAllowedOrigins string `mapstructure:"CORS_ALLOWED_ORIGINS"`
	AuthRateLimitRPM   int    `mapstructure:"AUTH_RATE_LIMIT_RPM"`
}

// defaultJWTSecret signs tokens in dev and test; prod must override it.
const defaultJWTSecret = "change-me"

var keys = map[string]any{
	"APP_PORT":               ":8080",
	"APP_ENV":                "dev",
	"STORE_DRIVER":           "memory",
	"DATABASE_DSN":           "file:rentdir.db?cache=shared",
	"SEED_FIXTURES":          true,
	"JWT_SECRET":             defaultJWTSecret,
	"JWT_TTL":                "24h",
	"RABBITMQ_URL":           "",
	"RABBITMQ_EXCHANGE":      "rentdir.events",
	"FAVORITES_JOIN_POLICY":  "strict",
	"ACTIVITY_DEFAULT_LIMIT": 10,
	"ACTIVITY_MAX_LIMIT":     100,
	"REDIS_ADDR":             "",
	"REDIS_PASSWORD":         "",
	"CACHE_TTL":              "5m",
	"CORS_ALLOWED_ORIGINS":   "*",
	"AUTH_RATE_LIMIT_RPM":    60,
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	for k, def := range keys {
		v.SetDefault(k, def)
	}
}

// Load reads the configuration from v. Defaults are registered and the
// environment is bound before reading; CONFIG_FILE, when set, names a file
// whose values sit between the environment and the defaults.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)
	v.AutomaticEnv()

	if path := v.GetString("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))
	cfg.FavoritesJoinPolicy = strings.ToLower(strings.TrimSpace(cfg.FavoritesJoinPolicy))

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Env {
	case "dev", "prod", "test":
	default:
		return fmt.Errorf("invalid APP_ENV %q (must be dev, prod, or test)", c.Env)
	}
	switch c.StoreDriver {
	case "memory", "sqlite", "postgres":
	default:
		return fmt.Errorf("invalid STORE_DRIVER %q (must be memory, sqlite, or postgres)", c.StoreDriver)
	}
	if c.StoreDriver != "memory" && c.DatabaseDSN == "" {
		return fmt.Errorf("DATABASE_DSN is required for STORE_DRIVER %s", c.StoreDriver)
	}
	switch c.FavoritesJoinPolicy {
	case "strict", "lenient":
	default:
		return fmt.Errorf("invalid FAVORITES_JOIN_POLICY %q (must be strict or lenient)", c.FavoritesJoinPolicy)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.IsProd() && c.JWTSecret == defaultJWTSecret {
		return fmt.Errorf("JWT_SECRET must be set in prod")
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive")
	}
	if c.ActivityDefaultLimit < 0 || c.ActivityMaxLimit < 1 || c.ActivityDefaultLimit > c.ActivityMaxLimit {
		return fmt.Errorf("ACTIVITY_DEFAULT_LIMIT must be between 0 and ACTIVITY_MAX_LIMIT (%d)", c.ActivityMaxLimit)
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive")
	}
	if c.AuthRateLimitRPM < 0 {
		return fmt.Errorf("AUTH_RATE_LIMIT_RPM must not be negative")
	}
	return nil
}

// IsProd reports whether the process runs with APP_ENV=prod.
func (c *Config) IsProd() bool {
	return c.Env == "prod"
}

// EventsEnabled reports whether a broker URL is configured.
func (c *Config) EventsEnabled() bool {
	return c.RabbitMQURL != ""
}

// CacheEnabled reports whether a Redis address is configured.
func (c *Config) CacheEnabled() bool {
	return c.RedisAddr != ""
}
