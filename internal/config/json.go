// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] in the shape of the JSON
// configuration file. Durations are written as strings ("20m", "720h").
type StructuredJSONConfig struct {
	App struct {
		Environment  string   `json:"env"`
		SecretKey    string   `json:"secret_key"`
		MagicLinkTTL Duration `json:"magic_link_ttl"`
		SessionTTL   Duration `json:"session_ttl"`
		BaseURL      string   `json:"base_url"`
		BillingMode  string   `json:"billing_mode"`
		SyncSignKey  string   `json:"sync_sign_key"`
		SyncIssuer   string   `json:"sync_issuer"`
		Version      string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		GRPCAddress    string   `json:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout"`
		SecureCookies  bool     `json:"secure_cookies"`
	} `json:"server,omitempty"`

	Adapter struct {
		MailerURL      string   `json:"mailer_url"`
		MailerToken    string   `json:"mailer_token"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Workers struct {
		PurgeInterval  Duration `json:"purge_interval"`
		PurgeRetention Duration `json:"purge_retention"`
		HealthInterval Duration `json:"health_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Environment:  jsonCfg.App.Environment,
			SecretKey:    jsonCfg.App.SecretKey,
			MagicLinkTTL: time.Duration(jsonCfg.App.MagicLinkTTL),
			SessionTTL:   time.Duration(jsonCfg.App.SessionTTL),
			BaseURL:      jsonCfg.App.BaseURL,
			BillingMode:  jsonCfg.App.BillingMode,
			SyncSignKey:  jsonCfg.App.SyncSignKey,
			SyncIssuer:   jsonCfg.App.SyncIssuer,
			Version:      jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			GRPCAddress:    jsonCfg.Server.GRPCAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
			SecureCookies:  jsonCfg.Server.SecureCookies,
		},
		Adapter: Adapter{
			MailerURL:      jsonCfg.Adapter.MailerURL,
			MailerToken:    jsonCfg.Adapter.MailerToken,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		Workers: Workers{
			PurgeInterval:  time.Duration(jsonCfg.Workers.PurgeInterval),
			PurgeRetention: time.Duration(jsonCfg.Workers.PurgeRetention),
			HealthInterval: time.Duration(jsonCfg.Workers.HealthInterval),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
