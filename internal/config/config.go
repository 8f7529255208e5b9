// Package config provides configuration management for the Bet Insight application.
package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App         AppConfig         `mapstructure:"app" validate:"required"`
	Database    DatabaseConfig    `mapstructure:"database" validate:"required"`
	Engine      EngineConfig      `mapstructure:"engine" validate:"required"`
	Standings   StandingsConfig   `mapstructure:"standings" validate:"required"`
	ResultsFeed ResultsFeedConfig `mapstructure:"results_feed" validate:"required"`
	Scheduler   SchedulerConfig   `mapstructure:"scheduler" validate:"required"`
	Metrics     MetricsConfig     `mapstructure:"metrics" validate:"required"`
	Features    FeaturesConfig    `mapstructure:"features" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host               string `mapstructure:"host" validate:"required"`
	Port               int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Name               string `mapstructure:"name" validate:"required"`
	User               string `mapstructure:"user" validate:"required"`
	Password           string `mapstructure:"password" validate:"required"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"required,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"required,gt=0"`
}

// EngineConfig represents confidence engine configuration
type EngineConfig struct {
	WorkerCount            int      `mapstructure:"worker_count" validate:"required,gt=0"`
	Blacklist              []string `mapstructure:"blacklist"`
	ProfileCacheTTLSeconds int      `mapstructure:"profile_cache_ttl_seconds" validate:"required,gt=0"`
	HistoryWindowDays      int      `mapstructure:"history_window_days" validate:"required,gt=0"`
}

// StandingsConfig represents the league standings provider configuration
type StandingsConfig struct {
	BaseURL           string         `mapstructure:"base_url" validate:"required,url"`
	APIKey            string         `mapstructure:"api_key"`
	TimeoutSeconds    int            `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	RetryAttempts     int            `mapstructure:"retry_attempts" validate:"required,gte=0"`
	RequestsPerSecond float64        `mapstructure:"requests_per_second" validate:"required,gt=0"`
	Leagues           []LeagueConfig `mapstructure:"leagues" validate:"required,min=1"`
}

// LeagueConfig identifies one league tracked by the standings sync
type LeagueConfig struct {
	Country string `mapstructure:"country" validate:"required"`
	League  string `mapstructure:"league" validate:"required"`
	Enabled bool   `mapstructure:"enabled"`
}

// ResultsFeedConfig represents the settled-results websocket feed configuration
type ResultsFeedConfig struct {
	StreamURL            string `mapstructure:"stream_url" validate:"required"`
	ReconnectMaxRetries  int    `mapstructure:"reconnect_max_retries" validate:"required,gt=0"`
	ReconnectBaseSeconds int    `mapstructure:"reconnect_base_seconds" validate:"required,gt=0"`
	PingIntervalSeconds  int    `mapstructure:"ping_interval_seconds" validate:"required,gt=0"`
}

// SchedulerConfig represents cron schedules for background jobs
type SchedulerConfig struct {
	StandingsSync       string `mapstructure:"standings_sync" validate:"required"`
	ReconciliationSweep string `mapstructure:"reconciliation_sweep" validate:"required"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// FeaturesConfig represents feature flags
type FeaturesConfig struct {
	ScorelineModelEnabled bool `mapstructure:"scoreline_model_enabled"`
	ReconciliationEnabled bool `mapstructure:"reconciliation_enabled"`
	StandingsSyncEnabled  bool `mapstructure:"standings_sync_enabled"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// ProfileCacheTTL returns the scoring-profile cache TTL as a duration
func (c *Config) ProfileCacheTTL() time.Duration {
	return time.Duration(c.Engine.ProfileCacheTTLSeconds) * time.Second
}

// StandingsTimeout returns the standings HTTP timeout as a duration
func (c *Config) StandingsTimeout() time.Duration {
	return time.Duration(c.Standings.TimeoutSeconds) * time.Second
}
