package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-tool-access/internal/config"
	"github.com/MKhiriev/go-tool-access/internal/logger"
	"github.com/MKhiriev/go-tool-access/internal/security"
	"github.com/MKhiriev/go-tool-access/internal/store"
	"github.com/MKhiriev/go-tool-access/internal/utils"
	"github.com/MKhiriev/go-tool-access/models"
)

// billingService mirrors subscription state pushed by the billing-sync
// collaborator and keeps the advisory User.IsPro cache in step.
type billingService struct {
	users         store.UserRepository
	subscriptions store.SubscriptionRepository
	cipher        security.FieldCipher

	syncSignKey string
	syncIssuer  string

	now    func() time.Time
	logger *logger.Logger
}

// NewBillingService constructs a BillingService. The cipher seals checkout
// references, which carry the buyer's email until an account exists.
func NewBillingService(users store.UserRepository, subscriptions store.SubscriptionRepository, cipher security.FieldCipher, cfg config.App, logger *logger.Logger) BillingService {
	return &billingService{
		users:         users,
		subscriptions: subscriptions,
		cipher:        cipher,
		syncSignKey:   cfg.SyncSignKey,
		syncIssuer:    cfg.SyncIssuer,
		now:           time.Now,
		logger:        logger,
	}
}

// CreateCheckoutRef seals the normalized email into an opaque reference
// that the checkout flow echoes back on the first subscription update.
func (b *billingService) CreateCheckoutRef(ctx context.Context, email string) (string, error) {
	email = models.NormalizeEmail(email)
	if email == "" {
		return "", ErrInvalidDataProvided
	}

	ref, err := b.cipher.Seal(email)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*billingService.CreateCheckoutRef").Msg("sealing checkout reference failed")
		return "", fmt.Errorf("%w: %w", ErrTokenGenerationFailed, err)
	}

	return ref, nil
}

// SyncSubscription stores update as the user's subscription for its mode and
// returns the entitlement it yields now.
//
// Returns the entitlement or:
//   - ErrInvalidDataProvided for unknown status, mode or user.
//   - ErrInvalidCheckoutRef if the reference does not open under the secret.
//   - ErrStorageFailure on repository errors.
func (b *billingService) SyncSubscription(ctx context.Context, update models.SubscriptionUpdate) (models.Entitlement, error) {
	log := logger.FromContext(ctx)

	status, err := models.ParseSubscriptionStatus(update.Status)
	if err != nil {
		return models.Entitlement{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	mode, err := models.ParseBillingMode(update.Mode)
	if err != nil {
		return models.Entitlement{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	userID, err := b.resolveUser(ctx, update)
	if err != nil {
		return models.Entitlement{}, err
	}

	now := b.now()
	sub := models.Subscription{
		UserID:           userID,
		Mode:             mode,
		Status:           status,
		CurrentPeriodEnd: update.CurrentPeriodEnd,
		EndedAt:          update.EndedAt,
		UpdatedAt:        now,
	}
	if err = b.subscriptions.Upsert(ctx, sub); err != nil {
		log.Err(err).Str("func", "*billingService.SyncSubscription").Int64("user_id", userID).Msg("storing subscription failed")
		return models.Entitlement{}, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}

	entitlement := ComputeEntitlement(&sub, now)
	if err = b.users.SetPro(ctx, userID, entitlement.IsPro); err != nil {
		log.Warn().Err(err).Str("func", "*billingService.SyncSubscription").Int64("user_id", userID).Msg("refreshing pro cache failed")
	}

	log.Info().
		Str("func", "*billingService.SyncSubscription").
		Int64("user_id", userID).
		Str("mode", string(mode)).
		Str("status", string(status)).
		Bool("is_pro", entitlement.IsPro).
		Msg("subscription synced")

	return entitlement, nil
}

// ParseSyncToken authenticates the billing-sync collaborator. Without a
// configured signing key every token is rejected.
func (b *billingService) ParseSyncToken(ctx context.Context, rawToken string) (models.Token, error) {
	if b.syncSignKey == "" {
		return models.Token{}, ErrInvalidServiceToken
	}

	token, err := utils.ValidateAndParseServiceToken(rawToken, b.syncSignKey, b.syncIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "*billingService.ParseSyncToken").Msg("service token rejected")
		return models.Token{}, fmt.Errorf("%w: %w", ErrInvalidServiceToken, err)
	}

	return token, nil
}

func (b *billingService) resolveUser(ctx context.Context, update models.SubscriptionUpdate) (int64, error) {
	log := logger.FromContext(ctx)

	if update.CheckoutRef == "" {
		user, err := b.users.GetByID(ctx, update.UserID)
		if errors.Is(err, store.ErrNoUserWasFound) {
			return 0, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
		}
		if err != nil {
			log.Err(err).Str("func", "*billingService.resolveUser").Msg("loading user failed")
			return 0, fmt.Errorf("%w: %w", ErrStorageFailure, err)
		}
		return user.UserID, nil
	}

	email, err := b.cipher.Open(update.CheckoutRef)
	if err != nil {
		log.Warn().Err(err).Str("func", "*billingService.resolveUser").Msg("checkout reference does not open")
		return 0, fmt.Errorf("%w: %w", ErrInvalidCheckoutRef, err)
	}

	user, err := b.users.FindOrCreateByEmail(ctx, email, b.now())
	if err != nil {
		log.Err(err).Str("func", "*billingService.resolveUser").Msg("resolving checkout user failed")
		return 0, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}

	return user.UserID, nil
}
