// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// Environment names recognised in App.Environment.
const (
	EnvironmentDevelopment = "development"
	EnvironmentProduction  = "production"
)

// StructuredConfig is the top-level configuration container for the
// go-tool-access server. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds the server secret, token lifetimes and billing settings.
	App App `envPrefix:"APP_"`

	// Storage holds the persistence backend settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP and
	// gRPC servers.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds settings of outbound collaborators (mail dispatch).
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds settings of background housekeeping.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values that control security,
// token lifecycle, and billing.
type App struct {
	// Environment is "production" (default) or "development". Only
	// development may run without SecretKey.
	// Env: APP_ENV
	Environment string `env:"ENV"`

	// SecretKey is the server-held pepper. Every token digest and every
	// sealed field is derived from it; changing it invalidates all of them.
	// Env: APP_SECRET_KEY
	SecretKey string `env:"SECRET_KEY"`

	// MagicLinkTTL is how long an emailed login link stays redeemable.
	// Env: APP_MAGIC_LINK_TTL
	MagicLinkTTL time.Duration `env:"MAGIC_LINK_TTL"`

	// SessionTTL is the fixed lifetime of a session. No sliding renewal.
	// Env: APP_SESSION_TTL
	SessionTTL time.Duration `env:"SESSION_TTL"`

	// BaseURL is the public origin used to build magic links and redirects
	// (e.g. "https://tools.example.com").
	// Env: APP_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// BillingMode selects which mirrored subscription ("test" or "live")
	// drives entitlements.
	// Env: APP_BILLING_MODE
	BillingMode string `env:"BILLING_MODE"`

	// SyncSignKey verifies service tokens of the billing-sync collaborator.
	// Env: APP_SYNC_SIGN_KEY
	SyncSignKey string `env:"SYNC_SIGN_KEY"`

	// SyncIssuer is the expected "iss" claim of service tokens.
	// Env: APP_SYNC_ISSUER
	SyncIssuer string `env:"SYNC_ISSUER"`

	// Version is exposed via /api/version.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// IsDevelopment reports whether the server runs in development mode.
func (a App) IsDevelopment() bool {
	return a.Environment == EnvironmentDevelopment
}

// Storage groups the configuration for all storage backends used by the
// application.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN selects the backend by its form:
	//   - postgres://... or postgresql://... — PostgreSQL via pgx;
	//   - file:..., sqlite://... or a path ending in .db — SQLite;
	//   - "memory" — in-process store, development and tests only.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress is the TCP address of the gRPC health endpoint.
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout bounds every inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// SecureCookies sets the Secure attribute on the session cookie.
	// Env: SERVER_SECURE_COOKIES
	SecureCookies bool `env:"SECURE_COOKIES"`
}

// Adapter holds configuration for outbound collaborators.
type Adapter struct {
	// MailerURL is the webhook of the mail-dispatch collaborator. When empty
	// magic links are only logged, which is accepted in development only.
	// Env: ADAPTER_MAILER_URL
	MailerURL string `env:"MAILER_URL"`

	// MailerToken is sent as a bearer token to MailerURL.
	// Env: ADAPTER_MAILER_TOKEN
	MailerToken string `env:"MAILER_TOKEN"`

	// RequestTimeout bounds a single call to a collaborator.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// PurgeInterval is how often expired tokens and sessions are deleted.
	// Env: WORKERS_PURGE_INTERVAL
	PurgeInterval time.Duration `env:"PURGE_INTERVAL"`

	// PurgeRetention keeps expired records this long before deletion.
	// Env: WORKERS_PURGE_RETENTION
	PurgeRetention time.Duration `env:"PURGE_RETENTION"`

	// HealthInterval is how often storage is pinged for the health endpoint.
	// Env: WORKERS_HEALTH_INTERVAL
	HealthInterval time.Duration `env:"HEALTH_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (later sources override non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Defaults are applied to whatever is still unset before validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		build()
}
