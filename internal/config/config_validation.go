// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-tool-access/internal/security"
	"github.com/MKhiriev/go-tool-access/models"
)

// MemoryDSN selects the in-process store.
const MemoryDSN = "memory"

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if err := cfg.App.validate(); err != nil {
		return err
	}

	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: empty DSN", ErrInvalidStorageConfigs)
	}
	if cfg.Storage.DB.DSN == MemoryDSN && !cfg.App.IsDevelopment() {
		return fmt.Errorf("%w: in-memory storage is allowed in development only", ErrInvalidStorageConfigs)
	}

	if cfg.Server.HTTPAddress == "" && cfg.Server.GRPCAddress == "" {
		return fmt.Errorf("%w: no listen address", ErrInvalidServerConfigs)
	}
	if cfg.Server.RequestTimeout < 0 {
		return fmt.Errorf("%w: negative request timeout", ErrInvalidServerConfigs)
	}

	if cfg.Adapter.MailerURL == "" && !cfg.App.IsDevelopment() {
		return fmt.Errorf("%w: mailer url is required outside development", ErrInvalidAdapterConfigs)
	}
	if cfg.Adapter.MailerURL != "" && !isAbsoluteURL(cfg.Adapter.MailerURL) {
		return fmt.Errorf("%w: mailer url must include scheme and host", ErrInvalidAdapterConfigs)
	}

	if cfg.Workers.PurgeInterval < 0 || cfg.Workers.PurgeRetention < 0 || cfg.Workers.HealthInterval < 0 {
		return fmt.Errorf("%w: negative interval", ErrInvalidWorkerConfigs)
	}

	return nil
}

func (a App) validate() error {
	switch a.Environment {
	case EnvironmentDevelopment, EnvironmentProduction:
	default:
		return fmt.Errorf("%w: unknown environment %q", ErrInvalidAppConfigs, a.Environment)
	}

	if a.SecretKey == "" && !a.IsDevelopment() {
		return fmt.Errorf("%w: %w", ErrInvalidAppConfigs, security.ErrMissingSecret)
	}

	if a.MagicLinkTTL <= 0 || a.SessionTTL <= 0 {
		return fmt.Errorf("%w: token lifetimes must be positive", ErrInvalidAppConfigs)
	}

	if _, err := models.ParseBillingMode(a.BillingMode); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAppConfigs, err)
	}

	if !isAbsoluteURL(a.BaseURL) {
		return fmt.Errorf("%w: base url must include scheme and host", ErrInvalidAppConfigs)
	}

	return nil
}

func isAbsoluteURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}

	return u.Scheme != "" && u.Host != ""
}
