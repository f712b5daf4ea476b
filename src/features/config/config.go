package config

import "time"

// Config holds the application configuration.
type Config struct {
	Server      Server   `yaml:"server"`
	Logger      Logger   `yaml:"logger"`
	Listing     Listing  `yaml:"listing"`
	Resolver    Resolver `yaml:"resolver"`
	Database    Database `yaml:"database"`
	Metrics     Metrics  `yaml:"metrics"`
	WatchConfig bool     `yaml:"watch_config"`
}

// Server hold the configuration for the Fiber server Config
type Server struct {
	PrintRoutes bool   `yaml:"show_routes"`
	Port        uint32 `yaml:"port" validate:"required"`
}

// Logger holds the configuration for the app logging
type Logger struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format  string `yaml:"format" validate:"omitempty,oneof=json text logfmt"`
}

// Listing holds the configuration for fetching manifests and index pages.
type Listing struct {
	BaseURL        string        `yaml:"base_url" validate:"required,url"`
	UserAgent      string        `yaml:"user_agent"`
	Timeout        time.Duration `yaml:"timeout"` // 0 means no timeout
	TolerateStatus bool          `yaml:"tolerate_status"`
}

// Resolver holds the configuration for playlist resolution.
type Resolver struct {
	PatternMode string `yaml:"pattern_mode" validate:"omitempty,oneof=literal regex"`
	Concurrency int    `yaml:"concurrency" validate:"gte=0,lte=64"`
}

// Database holds the configuration for the database
type Database struct {
	Path string `yaml:"path" validate:"required"`
}

// Metrics holds the configuration for the Prometheus endpoint.
type Metrics struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}
