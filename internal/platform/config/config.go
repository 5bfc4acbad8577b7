// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (catalog client, cache tiers) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Bookscout API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"3000"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Catalog site (upstream)
	CatalogBaseURL        string        `env:"CATALOG_BASE_URL"        envDefault:"https://www.audible.fr"`
	CatalogSearchPath     string        `env:"CATALOG_SEARCH_PATH"     envDefault:"/search"`
	CatalogTimeout        time.Duration `env:"CATALOG_TIMEOUT"         envDefault:"10s"`
	CatalogUserAgent      string        `env:"CATALOG_USER_AGENT"      envDefault:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0 Safari/537.36"`
	CatalogAcceptLanguage string        `env:"CATALOG_ACCEPT_LANGUAGE" envDefault:"fr-FR,fr;q=0.9,en-US;q=0.8,en;q=0.7"`

	// Outbound pacing towards the catalog site
	OutboundConcurrency int           `env:"OUTBOUND_CONCURRENCY" envDefault:"2"`
	OutboundMinTime     time.Duration `env:"OUTBOUND_MIN_TIME"    envDefault:"500ms"`

	// Inbound per-IP rate limiting
	RateLimitEnabled bool          `env:"API_RATE_LIMIT_ENABLED" envDefault:"false"`
	RateLimitWindow  time.Duration `env:"API_RATE_LIMIT_WINDOW"  envDefault:"1m"`
	RateLimitMax     int           `env:"API_RATE_LIMIT_MAX"     envDefault:"60"`

	// Ephemeral tier (Redis)
	RedisEnabled   bool          `env:"REDIS_ENABLED"    envDefault:"false"`
	RedisURL       string        `env:"REDIS_URL"        envDefault:"redis://localhost:6379"`
	SearchCacheTTL time.Duration `env:"SEARCH_CACHE_TTL" envDefault:"24h"`

	// Durable tier (PostgreSQL). DatabaseURL wins over the individual parts.
	DBEnabled   bool   `env:"DB_ENABLED"  envDefault:"false"`
	DatabaseURL string `env:"DATABASE_URL"`
	DBHost      string `env:"DB_HOST"`
	DBPort      int    `env:"DB_PORT"     envDefault:"5432"`
	DBUser      string `env:"DB_USER"`
	DBPassword  string `env:"DB_PASSWORD"`
	DBName      string `env:"DB_NAME"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct and validates it.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Map environment variables to struct fields.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks cross-field constraints that struct tags cannot express.
func (c *Config) Validate() error {
	var errs []error

	if _, err := url.ParseRequestURI(c.CatalogBaseURL); err != nil {
		errs = append(errs, fmt.Errorf("CATALOG_BASE_URL: %w", err))
	}
	if c.CatalogTimeout <= 0 {
		errs = append(errs, errors.New("CATALOG_TIMEOUT: must be positive"))
	}
	if c.OutboundConcurrency < 1 {
		errs = append(errs, errors.New("OUTBOUND_CONCURRENCY: must be at least 1"))
	}
	if c.OutboundMinTime < 0 {
		errs = append(errs, errors.New("OUTBOUND_MIN_TIME: must not be negative"))
	}
	if c.RateLimitEnabled && (c.RateLimitWindow <= 0 || c.RateLimitMax < 1) {
		errs = append(errs, errors.New("API_RATE_LIMIT_WINDOW and API_RATE_LIMIT_MAX must be positive"))
	}
	if c.SearchCacheTTL <= 0 {
		errs = append(errs, errors.New("SEARCH_CACHE_TTL: must be positive"))
	}

	// The durable tier needs either a full URL or every connection part.
	if c.DBEnabled && c.DatabaseURL == "" {
		required := map[string]string{
			"DB_HOST":     c.DBHost,
			"DB_USER":     c.DBUser,
			"DB_PASSWORD": c.DBPassword,
			"DB_NAME":     c.DBName,
		}
		for _, name := range []string{"DB_HOST", "DB_USER", "DB_PASSWORD", "DB_NAME"} {
			if required[name] == "" {
				errs = append(errs, fmt.Errorf("%s: required when DB_ENABLED is true", name))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid environment configuration: %w", errors.Join(errs...))
	}
	return nil
}

// DatabaseDSN returns the PostgreSQL connection URL for the durable tier.
func (c *Config) DatabaseDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}

	host := c.DBHost
	if host == "" {
		host = "localhost"
	}
	name := c.DBName
	if name == "" {
		name = "postgres"
	}

	dsn := url.URL{
		Scheme: "postgresql",
		User:   url.UserPassword(c.DBUser, c.DBPassword),
		Host:   net.JoinHostPort(host, strconv.Itoa(c.DBPort)),
		Path:   "/" + name,
	}
	return dsn.String()
}

// AllowedOrigins returns the configured extra CORS origins.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.ExtraOrigins, ",") {
		if clean := strings.TrimSpace(origin); clean != "" {
			origins = append(origins, clean)
		}
	}
	return origins
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
