// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"strings"
	"time"

	"github.com/MKhiriev/go-tool-access/models"
)

const (
	DefaultMagicLinkTTL        = 20 * time.Minute
	DefaultSessionTTL          = 30 * 24 * time.Hour
	DefaultRequestTimeout      = 10 * time.Second
	DefaultAdapterTimeout      = 5 * time.Second
	DefaultPurgeInterval       = time.Hour
	DefaultPurgeRetention      = 24 * time.Hour
	DefaultHealthInterval      = 15 * time.Second
	DefaultSyncIssuer          = "billing-sync"
	DefaultVersion             = "dev"
	defaultDevelopmentBaseHost = "http://localhost:8080"
)

// applyDefaults fills every field that is still zero after merging.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.App.Environment == "" {
		cfg.App.Environment = EnvironmentProduction
	}
	if cfg.App.MagicLinkTTL == 0 {
		cfg.App.MagicLinkTTL = DefaultMagicLinkTTL
	}
	if cfg.App.SessionTTL == 0 {
		cfg.App.SessionTTL = DefaultSessionTTL
	}
	if cfg.App.BillingMode == "" {
		cfg.App.BillingMode = string(models.BillingModeLive)
	}
	if cfg.App.SyncIssuer == "" {
		cfg.App.SyncIssuer = DefaultSyncIssuer
	}
	if cfg.App.Version == "" {
		cfg.App.Version = DefaultVersion
	}
	if cfg.App.BaseURL == "" {
		cfg.App.BaseURL = defaultBaseURL(cfg.Server.HTTPAddress)
	}
	cfg.App.BaseURL = strings.TrimRight(cfg.App.BaseURL, "/")

	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}

	if cfg.Adapter.RequestTimeout == 0 {
		cfg.Adapter.RequestTimeout = DefaultAdapterTimeout
	}

	if cfg.Workers.PurgeInterval == 0 {
		cfg.Workers.PurgeInterval = DefaultPurgeInterval
	}
	if cfg.Workers.PurgeRetention == 0 {
		cfg.Workers.PurgeRetention = DefaultPurgeRetention
	}
	if cfg.Workers.HealthInterval == 0 {
		cfg.Workers.HealthInterval = DefaultHealthInterval
	}
}

func defaultBaseURL(httpAddress string) string {
	if httpAddress == "" || strings.HasPrefix(httpAddress, ":") {
		return defaultDevelopmentBaseHost
	}

	return "http://" + httpAddress
}
