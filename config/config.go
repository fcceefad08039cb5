package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"farmweather.app/errors"
)

// Config represents the application configuration structure
type Config struct {
	Server   ServerConfig   `split_words:"true"`
	Database DatabaseConfig `split_words:"true"`
	Redis    RedisConfig    `split_words:"true"`
	Weather  WeatherConfig  `split_words:"true"`
	Breaker  BreakerConfig  `split_words:"true"`
	Alerts   AlertConfig    `split_words:"true"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `envconfig:"SERVER_PORT" default:"8080"`
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name     string `envconfig:"DB_NAME" default:"farmweather"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

// GetDSN returns a formatted database connection string
func (c DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// RedisConfig contains cache store connection settings
type RedisConfig struct {
	Addr         string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password     string `envconfig:"REDIS_PASSWORD" default:""`
	DB           int    `envconfig:"REDIS_DB" default:"0"`
	DialTimeout  int    `envconfig:"REDIS_DIAL_TIMEOUT" default:"5"`
	ReadTimeout  int    `envconfig:"REDIS_READ_TIMEOUT" default:"3"`
	WriteTimeout int    `envconfig:"REDIS_WRITE_TIMEOUT" default:"3"`
}

// WeatherConfig contains settings for the external weather provider and
// the forecast cache
type WeatherConfig struct {
	APIKey            string `envconfig:"WEATHER_API_KEY" required:"true"`
	BaseURL           string `envconfig:"WEATHER_API_BASE_URL" default:"https://api.openweathermap.org/data/2.5"`
	RequestTimeoutSec int    `envconfig:"WEATHER_REQUEST_TIMEOUT" default:"5"`
	OuterTimeoutSec   int    `envconfig:"WEATHER_OUTER_TIMEOUT" default:"10"`
	CacheTTLSec       int    `envconfig:"WEATHER_CACHE_TTL" default:"3600"`
}

// RequestTimeout returns the per-request HTTP client timeout
func (w WeatherConfig) RequestTimeout() time.Duration {
	return time.Duration(w.RequestTimeoutSec) * time.Second
}

// OuterTimeout returns the deadline wrapped around each provider call
func (w WeatherConfig) OuterTimeout() time.Duration {
	return time.Duration(w.OuterTimeoutSec) * time.Second
}

// CacheTTL returns the forecast cache freshness window
func (w WeatherConfig) CacheTTL() time.Duration {
	return time.Duration(w.CacheTTLSec) * time.Second
}

// BreakerConfig contains circuit breaker thresholds for the provider call
type BreakerConfig struct {
	FailureThreshold   int `envconfig:"BREAKER_FAILURE_THRESHOLD" default:"3"`
	RecoveryTimeoutSec int `envconfig:"BREAKER_RECOVERY_TIMEOUT" default:"30"`
}

// RecoveryTimeout returns the open-state cooldown duration
func (b BreakerConfig) RecoveryTimeout() time.Duration {
	return time.Duration(b.RecoveryTimeoutSec) * time.Second
}

// AlertConfig contains farming alert settings
type AlertConfig struct {
	TTLHours int `envconfig:"ALERT_TTL_HOURS" default:"24"`
}

// TTL returns the alert lifetime
func (a AlertConfig) TTL() time.Duration {
	return time.Duration(a.TTLHours) * time.Hour
}

// LoadConfig loads and validates application configuration from environment variables
func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Redis.Validate(); err != nil {
		return err
	}
	if err := c.Weather.Validate(); err != nil {
		return err
	}
	if err := c.Breaker.Validate(); err != nil {
		return err
	}
	if err := c.Alerts.Validate(); err != nil {
		return err
	}
	return nil
}

// Validate checks server configuration
func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > 65535 {
		return errors.NewConfigurationError("SERVER_PORT must be between 1 and 65535", nil)
	}
	return nil
}

// ValidateSSLMode validates the SSL mode configuration
func (d *DatabaseConfig) ValidateSSLMode() error {
	validSSLModes := []string{"disable", "require", "verify-ca", "verify-full"}
	for _, mode := range validSSLModes {
		if d.SSLMode == mode {
			return nil
		}
	}
	return errors.NewConfigurationError(
		fmt.Sprintf("DB_SSL_MODE must be one of: %s", strings.Join(validSSLModes, ", ")), nil)
}

// Validate checks database configuration
func (d *DatabaseConfig) Validate() error {
	if d.Host == "" {
		return errors.NewConfigurationError("DB_HOST cannot be empty", nil)
	}
	if d.Port < 1 || d.Port > 65535 {
		return errors.NewConfigurationError("DB_PORT must be between 1 and 65535", nil)
	}
	if d.User == "" {
		return errors.NewConfigurationError("DB_USER cannot be empty", nil)
	}
	if d.Name == "" {
		return errors.NewConfigurationError("DB_NAME cannot be empty", nil)
	}
	if err := d.ValidateSSLMode(); err != nil {
		return err
	}
	return nil
}

// Validate checks cache store configuration
func (r *RedisConfig) Validate() error {
	if r.Addr == "" {
		return errors.NewConfigurationError("REDIS_ADDR cannot be empty", nil)
	}
	if r.DB < 0 {
		return errors.NewConfigurationError("REDIS_DB cannot be negative", nil)
	}
	if r.DialTimeout < 1 || r.ReadTimeout < 1 || r.WriteTimeout < 1 {
		return errors.NewConfigurationError("redis timeouts must be at least 1 second", nil)
	}
	return nil
}

// Validate checks weather provider configuration
func (w *WeatherConfig) Validate() error {
	if w.APIKey == "" {
		return errors.NewConfigurationError("WEATHER_API_KEY is required", nil)
	}
	if w.BaseURL == "" {
		return errors.NewConfigurationError("WEATHER_API_BASE_URL cannot be empty", nil)
	}
	if !strings.HasPrefix(w.BaseURL, "http://") && !strings.HasPrefix(w.BaseURL, "https://") {
		return errors.NewConfigurationError("WEATHER_API_BASE_URL must start with http:// or https://", nil)
	}
	if w.RequestTimeoutSec < 1 {
		return errors.NewConfigurationError("WEATHER_REQUEST_TIMEOUT must be at least 1 second", nil)
	}
	if w.OuterTimeoutSec < w.RequestTimeoutSec {
		return errors.NewConfigurationError("WEATHER_OUTER_TIMEOUT cannot be shorter than WEATHER_REQUEST_TIMEOUT", nil)
	}
	if w.CacheTTLSec < 1 {
		return errors.NewConfigurationError("WEATHER_CACHE_TTL must be at least 1 second", nil)
	}
	return nil
}

// Validate checks circuit breaker configuration
func (b *BreakerConfig) Validate() error {
	if b.FailureThreshold < 1 {
		return errors.NewConfigurationError("BREAKER_FAILURE_THRESHOLD must be at least 1", nil)
	}
	if b.RecoveryTimeoutSec < 1 {
		return errors.NewConfigurationError("BREAKER_RECOVERY_TIMEOUT must be at least 1 second", nil)
	}
	return nil
}

// Validate checks alert configuration
func (a *AlertConfig) Validate() error {
	if a.TTLHours < 1 {
		return errors.NewConfigurationError("ALERT_TTL_HOURS must be at least 1", nil)
	}
	return nil
}
