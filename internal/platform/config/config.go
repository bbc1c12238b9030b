// Copyright (c) 2026 Musicbook. All rights reserved.
// Author: dev@musicbook.kr

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
  - DI-Friendly: Passed to core components (DB, Redis, collaborator clients) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/musicbookkr/server/pkg/slice"
)

// # Configuration Schema

// Config holds all runtime configuration for the Musicbook API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Store (Redis) — issuance cooldown counters
	RedisURL string `env:"REDIS_URL,required"`

	// Public key used to verify externally-issued access tokens.
	JWTPubKeyPath string `env:"JWT_PUBLIC_KEY_PATH,required"`

	// Image host collaborator (Cloudflare-Images-style direct uploads)
	ImagesAPIBase     string `env:"IMAGES_API_BASE,required"`
	ImagesAPIToken    string `env:"IMAGES_API_TOKEN,required"`
	ImagesDeliveryURL string `env:"IMAGES_DELIVERY_URL" envDefault:"https://cdnimg.musicbook.kr"`

	// External song-catalog collaborator (melon lookup proxy)
	MelonAPIBase string `env:"MELON_API_BASE,required"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// ExtraAllowedOrigins returns the additional CORS origins from EXTRA_ORIGINS,
// a comma-separated list. Whitespace around entries is tolerated.
func (c *Config) ExtraAllowedOrigins() []string {
	parts := slice.Map(strings.Split(c.ExtraOrigins, ","), strings.TrimSpace)
	return slice.Filter(parts, func(origin string) bool { return origin != "" })
}
