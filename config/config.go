package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

var ErrInsecureSecret = errors.New("JWT_SECRET must be set to a non-default value in production")

type DBConfig struct {
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN returns DATABASE_URL when set, otherwise a key/value DSN built from
// the individual parts.
func (d DBConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type Config struct {
	Port               string
	Environment        string
	LogLevel           string
	JWTSecret          string
	Database           DBConfig
	CORSAllowedOrigins []string
	// TrustedProxies lists the proxy IPs/CIDRs whose X-Forwarded-For is
	// believed. Empty means the peer address is the client address.
	TrustedProxies     []string
	LoginRatePerMinute int
	BcryptCost         int
}

// Load reads the configuration from the environment. Call godotenv.Load
// beforehand if a .env file should be honoured.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        getEnvOrDefault("PORT", "8080"),
		Environment: strings.ToLower(getEnvOrDefault("APP_ENV", EnvDevelopment)),
		LogLevel:    strings.ToLower(getEnvOrDefault("LOG_LEVEL", "info")),
		JWTSecret:   getEnvOrDefault("JWT_SECRET", DefaultJWTSecret),
		Database: DBConfig{
			URL:      os.Getenv("DATABASE_URL"),
			Host:     getEnvOrDefault("DB_HOST", "localhost"),
			Port:     getEnvOrDefault("DB_PORT", "5432"),
			User:     getEnvOrDefault("DB_USER", "postgres"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     getEnvOrDefault("DB_NAME", "blog_cms"),
			SSLMode:  getEnvOrDefault("DB_SSLMODE", "disable"),
		},
		CORSAllowedOrigins: splitList(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		TrustedProxies:     splitList(os.Getenv("TRUSTED_PROXIES")),
	}

	var err error
	if cfg.LoginRatePerMinute, err = getIntEnv("LOGIN_RATE_PER_MINUTE", 10); err != nil {
		return nil, err
	}
	if cfg.BcryptCost, err = getIntEnv("BCRYPT_COST", bcrypt.DefaultCost); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration. A production deployment still using the
// default signing secret is rejected outright; elsewhere it is only logged.
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535: %q", c.Port)
	}

	switch c.Environment {
	case EnvDevelopment, EnvProduction, EnvTest:
	default:
		return fmt.Errorf("invalid APP_ENV: %q (must be one of: %s, %s, %s)",
			c.Environment, EnvDevelopment, EnvProduction, EnvTest)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %q (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	for _, proxy := range c.TrustedProxies {
		if net.ParseIP(proxy) == nil {
			if _, _, err := net.ParseCIDR(proxy); err != nil {
				return fmt.Errorf("invalid TRUSTED_PROXIES entry: %q", proxy)
			}
		}
	}

	if c.LoginRatePerMinute < 1 {
		return fmt.Errorf("LOGIN_RATE_PER_MINUTE must be at least 1, got: %d", c.LoginRatePerMinute)
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d, got: %d", bcrypt.MinCost, bcrypt.MaxCost, c.BcryptCost)
	}

	if c.JWTSecret == "" || c.JWTSecret == DefaultJWTSecret {
		if c.IsProduction() {
			return ErrInsecureSecret
		}
		slog.Warn("JWT_SECRET is not set, falling back to the default signing secret; never run like this in production")
	} else if c.IsProduction() && len(c.JWTSecret) < minProductionSecretLength {
		slog.Warn("JWT_SECRET is shorter than recommended", "length", len(c.JWTSecret), "recommended", minProductionSecretLength)
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// SecureCookies reports whether the session cookie needs the Secure flag,
// which is everywhere except local development.
func (c *Config) SecureCookies() bool {
	return c.Environment != EnvDevelopment
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// SigningSecret is the secret tokens are signed with.
func (c *Config) SigningSecret() string {
	if c.JWTSecret == "" {
		return DefaultJWTSecret
	}
	return c.JWTSecret
}
