// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses command-line configuration flags from args.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-grpc-address grpc health address in format [host]:[port]
//	-d database DSN
//	-c/-config json file path with configs
//	-env runtime environment (production|development)
//	-secret-key server secret used for digests and sealed fields
//	-magic-link-ttl magic link lifetime (e.g., "20m")
//	-session-ttl session lifetime (e.g., "720h")
//	-base-url public origin used in links and redirects
//	-billing-mode subscription mode that drives entitlements (test|live)
//	-sync-sign-key billing-sync service token key
//	-mailer-url mail-dispatch webhook
//	-request-timeout request timeout (e.g., "30s", "1m")
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("go-tool-access", flag.ContinueOnError)

	var serverAddress, grpcServerAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var environment string
	var secretKey string
	var magicLinkTTL time.Duration
	var sessionTTL time.Duration
	var baseURL string
	var billingMode string
	var syncSignKey string
	var mailerURL string
	var requestTimeout time.Duration

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.Var(&grpcServerAddress, "grpc-address", "Net grpc health address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&environment, "env", "", "Runtime environment (production|development)")
	fs.StringVar(&secretKey, "secret-key", "", "Server secret")
	fs.DurationVar(&magicLinkTTL, "magic-link-ttl", 0, "Magic link lifetime (e.g., 20m)")
	fs.DurationVar(&sessionTTL, "session-ttl", 0, "Session lifetime (e.g., 720h)")
	fs.StringVar(&baseURL, "base-url", "", "Public base URL")
	fs.StringVar(&billingMode, "billing-mode", "", "Billing mode (test|live)")
	fs.StringVar(&syncSignKey, "sync-sign-key", "", "Billing-sync token signing key")
	fs.StringVar(&mailerURL, "mailer-url", "", "Mail-dispatch webhook URL")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			Environment:  environment,
			SecretKey:    secretKey,
			MagicLinkTTL: magicLinkTTL,
			SessionTTL:   sessionTTL,
			BaseURL:      baseURL,
			BillingMode:  billingMode,
			SyncSignKey:  syncSignKey,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			GRPCAddress:    grpcServerAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Adapter: Adapter{
			MailerURL: mailerURL,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is
// "localhost" or empty, and returns an error if the format or values are
// invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "localhost" && host != "" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
