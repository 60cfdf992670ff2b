// Command synctoken prints a signed service token for the billing-sync
// collaborator. The key and issuer default to APP_SYNC_SIGN_KEY and
// APP_SYNC_ISSUER.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/MKhiriev/go-tool-access/internal/config"
	"github.com/MKhiriev/go-tool-access/internal/utils"
)

func main() {
	var (
		service  = flag.String("service", "billing-sync", "name of the calling service (sub claim)")
		issuer   = flag.String("issuer", envOr("APP_SYNC_ISSUER", config.DefaultSyncIssuer), "token issuer (iss claim)")
		key      = flag.String("key", os.Getenv("APP_SYNC_SIGN_KEY"), "HMAC signing key")
		duration = flag.Duration("ttl", 24*time.Hour, "token lifetime")
	)
	flag.Parse()

	token, err := utils.GenerateServiceToken(*issuer, *service, *duration, *key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "synctoken: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token.SignedString)
	fmt.Fprintf(os.Stderr, "expires at %s\n", token.ExpiresAt.Format(time.RFC3339))
}

func envOr(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}
