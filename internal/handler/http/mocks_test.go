package http

import (
	"context"

	"github.com/MKhiriev/go-tool-access/models"
)

// ─────────────────────────────────────────────
// Mock: service.AuthService
// ─────────────────────────────────────────────

type mockAuthService struct {
	requestFn     func(ctx context.Context, email string) error
	loginFn       func(ctx context.Context, token string) (models.LoginResult, error)
	logoutFn      func(ctx context.Context, token string) error
	currentUserFn func(ctx context.Context, userID int64) (models.User, error)
}

func (m *mockAuthService) RequestMagicLink(ctx context.Context, email string) error {
	if m.requestFn != nil {
		return m.requestFn(ctx, email)
	}
	return nil
}

func (m *mockAuthService) Login(ctx context.Context, token string) (models.LoginResult, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, token)
	}
	return models.LoginResult{}, nil
}

func (m *mockAuthService) Logout(ctx context.Context, token string) error {
	if m.logoutFn != nil {
		return m.logoutFn(ctx, token)
	}
	return nil
}

func (m *mockAuthService) CurrentUser(ctx context.Context, userID int64) (models.User, error) {
	if m.currentUserFn != nil {
		return m.currentUserFn(ctx, userID)
	}
	return models.User{UserID: userID}, nil
}

// ─────────────────────────────────────────────
// Mock: service.SessionService
// ─────────────────────────────────────────────

type mockSessionService struct {
	validateFn func(ctx context.Context, token string) (int64, error)
}

func (m *mockSessionService) Create(context.Context, int64) (models.IssuedToken, error) {
	return models.IssuedToken{}, nil
}

func (m *mockSessionService) Validate(ctx context.Context, token string) (int64, error) {
	if m.validateFn != nil {
		return m.validateFn(ctx, token)
	}
	return 0, nil
}

func (m *mockSessionService) Revoke(context.Context, string) error {
	return nil
}

// ─────────────────────────────────────────────
// Mock: service.EntitlementService
// ─────────────────────────────────────────────

type mockEntitlementService struct {
	getFn func(ctx context.Context, userID int64) (models.Entitlement, error)
}

func (m *mockEntitlementService) GetEntitlement(ctx context.Context, userID int64) (models.Entitlement, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID)
	}
	return models.FreeEntitlement(""), nil
}

// ─────────────────────────────────────────────
// Mock: service.BillingService
// ─────────────────────────────────────────────

type mockBillingService struct {
	checkoutFn func(ctx context.Context, email string) (string, error)
	syncFn     func(ctx context.Context, update models.SubscriptionUpdate) (models.Entitlement, error)
	parseFn    func(ctx context.Context, raw string) (models.Token, error)
}

func (m *mockBillingService) CreateCheckoutRef(ctx context.Context, email string) (string, error) {
	if m.checkoutFn != nil {
		return m.checkoutFn(ctx, email)
	}
	return "", nil
}

func (m *mockBillingService) SyncSubscription(ctx context.Context, update models.SubscriptionUpdate) (models.Entitlement, error) {
	if m.syncFn != nil {
		return m.syncFn(ctx, update)
	}
	return models.Entitlement{}, nil
}

func (m *mockBillingService) ParseSyncToken(ctx context.Context, raw string) (models.Token, error) {
	if m.parseFn != nil {
		return m.parseFn(ctx, raw)
	}
	return models.Token{}, nil
}

// ─────────────────────────────────────────────
// Mock: service.AppInfoService
// ─────────────────────────────────────────────

type mockAppInfoService struct {
	version string
}

func (m *mockAppInfoService) GetAppVersion(context.Context) string {
	return m.version
}

func (m *mockAppInfoService) GetBuildInfo(context.Context) models.VersionResponse {
	return models.VersionResponse{Version: m.version, Date: "N/A", Commit: "N/A"}
}
