package config

import (
	"github.com/minhph/orderflow/internal/infra/mail"
	redisclient "github.com/minhph/orderflow/internal/infra/redis"
	"github.com/minhph/orderflow/internal/infra/storage/postgres"
)

// AppConfig represents the top-level configuration.
type AppConfig struct {
	Server   ServerConfig       `yaml:"server"`
	Database postgres.Config    `yaml:"database"`
	Redis    redisclient.Config `yaml:"redis"`
	Mail     mail.Config        `yaml:"mail"`
	Alerting AlertingConfig     `yaml:"alerting"`
	Cache    CacheConfig        `yaml:"cache"`
	Retry    RetryConfig        `yaml:"retry"`
	Logging  LoggingConfig      `yaml:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// AlertingConfig holds monitoring webhook settings.
type AlertingConfig struct {
	URL     string   `yaml:"url"`
	Timeout Duration `yaml:"timeout"`
}

// CacheConfig holds result cache settings.
type CacheConfig struct {
	TTL Duration `yaml:"ttl"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// RetryConfig optionally overrides the built-in retry policies per effect
// group. Zero fields keep the built-in value.
type RetryConfig struct {
	Store       PolicyOverride `yaml:"store"`
	ExternalAPI PolicyOverride `yaml:"external_api"`
	Cache       PolicyOverride `yaml:"cache"`
	Default     PolicyOverride `yaml:"default"`
}

// PolicyOverride holds per-group retry overrides.
type PolicyOverride struct {
	MaxAttempts  int      `yaml:"max_attempts"`
	InitialDelay Duration `yaml:"initial_delay"`
	MaxDelay     Duration `yaml:"max_delay"`
	Timeout      Duration `yaml:"timeout"`
}
