package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-tool-access/internal/validators"
	"github.com/MKhiriev/go-tool-access/models"
)

// AuthValidationService rejects malformed input before it reaches the
// wrapped AuthService.
type AuthValidationService struct {
	inner     AuthService
	validator validators.Validator
}

func NewAuthValidationService() AuthServiceWrapper {
	return &AuthValidationService{
		validator: validators.NewAccessValidator(),
	}
}

func (v *AuthValidationService) RequestMagicLink(ctx context.Context, email string) error {
	if err := v.validator.Validate(ctx, models.MagicLinkRequest{Email: email}); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.RequestMagicLink(ctx, email)
}

// Login maps malformed tokens to ErrInvalidOrExpiredToken so that they are
// indistinguishable from unknown ones.
func (v *AuthValidationService) Login(ctx context.Context, token string) (models.LoginResult, error) {
	if err := v.validator.Validate(ctx, models.RedeemRequest{Token: token}); err != nil {
		return models.LoginResult{}, ErrInvalidOrExpiredToken
	}

	return v.inner.Login(ctx, token)
}

func (v *AuthValidationService) Logout(ctx context.Context, sessionToken string) error {
	return v.inner.Logout(ctx, sessionToken)
}

func (v *AuthValidationService) CurrentUser(ctx context.Context, userID int64) (models.User, error) {
	if userID <= 0 {
		return models.User{}, ErrInvalidSession
	}

	return v.inner.CurrentUser(ctx, userID)
}

func (v *AuthValidationService) Wrap(wrapped AuthService) AuthService {
	v.inner = wrapped
	return v
}

// BillingValidationService guards the billing write path.
type BillingValidationService struct {
	inner     BillingService
	validator validators.Validator
}

func NewBillingValidationService() BillingServiceWrapper {
	return &BillingValidationService{
		validator: validators.NewAccessValidator(),
	}
}

func (v *BillingValidationService) CreateCheckoutRef(ctx context.Context, email string) (string, error) {
	if err := v.validator.Validate(ctx, models.CheckoutRefRequest{Email: email}); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.CreateCheckoutRef(ctx, email)
}

func (v *BillingValidationService) SyncSubscription(ctx context.Context, update models.SubscriptionUpdate) (models.Entitlement, error) {
	if err := v.validator.Validate(ctx, update); err != nil {
		return models.Entitlement{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.SyncSubscription(ctx, update)
}

func (v *BillingValidationService) ParseSyncToken(ctx context.Context, rawToken string) (models.Token, error) {
	if rawToken == "" {
		return models.Token{}, ErrInvalidServiceToken
	}

	return v.inner.ParseSyncToken(ctx, rawToken)
}

func (v *BillingValidationService) Wrap(wrapped BillingService) BillingService {
	v.inner = wrapped
	return v
}
