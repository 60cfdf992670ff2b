package service

import (
	"context"

	"github.com/MKhiriev/go-tool-access/models"
)

// MagicLinkService issues and redeems single-use login tokens.
type MagicLinkService interface {
	// Issue mints a token for userID, stores only its digest and returns the
	// plaintext with its expiry.
	Issue(ctx context.Context, userID int64) (models.IssuedToken, error)

	// Redeem consumes token and returns its owner. At most one caller ever
	// succeeds for a given token.
	Redeem(ctx context.Context, token string) (int64, error)
}

// SessionService manages fixed-lifetime sessions. Expiry never slides.
type SessionService interface {
	Create(ctx context.Context, userID int64) (models.IssuedToken, error)
	Validate(ctx context.Context, token string) (int64, error)
	Revoke(ctx context.Context, token string) error
}

type EntitlementService interface {
	GetEntitlement(ctx context.Context, userID int64) (models.Entitlement, error)
}

// AuthService drives the magic-link login flow end to end.
type AuthService interface {
	RequestMagicLink(ctx context.Context, email string) error
	Login(ctx context.Context, token string) (models.LoginResult, error)
	Logout(ctx context.Context, sessionToken string) error
	CurrentUser(ctx context.Context, userID int64) (models.User, error)
}

// BillingService is the write side of entitlements, fed by the billing-sync
// collaborator.
type BillingService interface {
	CreateCheckoutRef(ctx context.Context, email string) (string, error)
	SyncSubscription(ctx context.Context, update models.SubscriptionUpdate) (models.Entitlement, error)
	ParseSyncToken(ctx context.Context, rawToken string) (models.Token, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.VersionResponse
}

// AuthServiceWrapper decorates an AuthService, e.g. with input validation.
type AuthServiceWrapper interface {
	Wrap(AuthService) AuthService
}

// BillingServiceWrapper decorates a BillingService.
type BillingServiceWrapper interface {
	Wrap(BillingService) BillingService
}

// idGenerator mints row identifiers.
type idGenerator interface {
	Generate() string
}
