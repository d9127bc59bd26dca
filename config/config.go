package config

import (
	"strings"
	"time"

	"github.com/layer-3/marketauth/core"
	"github.com/layer-3/marketauth/logger"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. MARKETAUTH_AUTH_SESSION_SECRET
const EnvPrefix = "MARKETAUTH"

// Config is the process configuration
type Config struct {
	API       APIConfig       `toml:"api" mapstructure:"api" json:"api"`
	Auth      AuthConfig      `toml:"auth" mapstructure:"auth" json:"auth"`
	Log       logger.Config   `toml:"log" mapstructure:"log" json:"log"`
	Redis     RedisConfig     `toml:"redis" mapstructure:"redis" json:"redis"`
	Events    EventsConfig    `toml:"events" mapstructure:"events" json:"events"`
	CORS      CORSConfig      `toml:"cors" mapstructure:"cors" json:"cors"`
	RateLimit RateLimitConfig `toml:"rate_limit" mapstructure:"rate_limit" json:"rate_limit"`
}

// APIConfig configures the HTTP listener
type APIConfig struct {
	Port            string        `toml:"port" mapstructure:"port" json:"port"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout" mapstructure:"shutdown_timeout" json:"shutdown_timeout"`
}

// AuthConfig configures wallet sign-in
type AuthConfig struct {
	// AccessTokenLifetime is in seconds; it also bounds how old a signed
	// login timestamp may be.
	AccessTokenLifetime uint32 `toml:"access_token_lifetime" mapstructure:"access_token_lifetime" json:"access_token_lifetime"`
	SessionSecret       string `toml:"session_secret" mapstructure:"session_secret" json:"-"`
	OriginURL           string `toml:"origin_url" mapstructure:"origin_url" json:"origin_url"`
	// Network selects the v5 wallet network id: mainnet or testnet.
	Network string `toml:"network" mapstructure:"network" json:"network"`
}

// RedisConfig locates the redis used for the event stream
type RedisConfig struct {
	URL string `toml:"url" mapstructure:"url" json:"url"`
}

// EventsConfig toggles login event publishing
type EventsConfig struct {
	Enabled bool   `toml:"enabled" mapstructure:"enabled" json:"enabled"`
	Topic   string `toml:"topic" mapstructure:"topic" json:"topic"`
}

// CORSConfig lists the frontends allowed to call the API from a browser
type CORSConfig struct {
	AllowOrigins []string `toml:"allow_origins" mapstructure:"allow_origins" json:"allow_origins"`
}

// RateLimitConfig limits sign-in attempts per client IP
type RateLimitConfig struct {
	LoginPerSecond float64 `toml:"login_per_second" mapstructure:"login_per_second" json:"login_per_second"`
	// TrustedHeaders lists proxy headers (X-Forwarded-For, X-Real-IP) that
	// identify the client. Empty keys on the socket address.
	TrustedHeaders []string `toml:"trusted_headers" mapstructure:"trusted_headers" json:"trusted_headers"`
}

var defaults = map[string]any{
	"api.port":                    ":9000",
	"api.shutdown_timeout":        "10s",
	"auth.access_token_lifetime":  600,
	"auth.session_secret":         "",
	"auth.origin_url":             "",
	"auth.network":                "mainnet",
	"log.level":                   "info",
	"log.development":             false,
	"log.path":                    "",
	"log.max_size_mb":             100,
	"log.max_backups":             7,
	"log.max_age_days":            30,
	"redis.url":                   "redis://localhost:6379/0",
	"events.enabled":              false,
	"events.topic":                "marketauth.login",
	"cors.allow_origins":          []string{},
	"rate_limit.login_per_second": 5,
	"rate_limit.trusted_headers":  []string{},
}

// UnmarshalConfig loads the TOML file at path, applies environment overrides
// and validates the result. An empty path uses defaults and environment only.
func UnmarshalConfig(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(err, "failed on read config")
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(err, "failed on unmarshal config")
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// Validate rejects configurations that would make sign-in unsafe or useless
func (c *Config) Validate() error {
	if c.Auth.SessionSecret == "" {
		return errors.New("auth.session_secret is required")
	}
	if c.Auth.OriginURL == "" {
		return errors.New("auth.origin_url is required")
	}
	if c.Auth.AccessTokenLifetime == 0 {
		return errors.New("auth.access_token_lifetime must be positive")
	}
	switch c.Auth.Network {
	case "mainnet", "testnet":
	default:
		return errors.Errorf("auth.network must be mainnet or testnet, got %q", c.Auth.Network)
	}
	for _, h := range c.RateLimit.TrustedHeaders {
		if h != "X-Forwarded-For" && h != "X-Real-IP" {
			return errors.Errorf("rate_limit.trusted_headers: unsupported header %q", h)
		}
	}
	if c.Events.Enabled && c.Redis.URL == "" {
		return errors.New("redis.url is required when events are enabled")
	}
	return nil
}

// AuthConfig returns the immutable sign-in configuration shared by all requests
func (c *Config) AuthConfig() core.AuthConfig {
	return core.AuthConfig{
		AccessTokenLifetime: time.Duration(c.Auth.AccessTokenLifetime) * time.Second,
		SessionSecret:       []byte(c.Auth.SessionSecret),
		OriginURL:           c.Auth.OriginURL,
	}
}
