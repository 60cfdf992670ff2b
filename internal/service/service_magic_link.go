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

// Reasons a redemption failed. They only ever reach the log.
const (
	redeemFailureUnknown = "unknown"
	redeemFailureUsed    = "already_used"
	redeemFailureExpired = "expired"
	redeemFailureRace    = "lost_race"
)

// magicLinkService is the concrete implementation of MagicLinkService.
type magicLinkService struct {
	tokens store.AuthTokenRepository
	hasher security.Hasher
	ids    idGenerator

	// ttl is how long an issued token stays redeemable.
	ttl time.Duration

	now    func() time.Time
	logger *logger.Logger
}

// NewMagicLinkService constructs a MagicLinkService over tokens. Token
// digests are computed with hasher, so rotating the secret behind it
// invalidates every outstanding link.
func NewMagicLinkService(tokens store.AuthTokenRepository, hasher security.Hasher, cfg config.App, logger *logger.Logger) MagicLinkService {
	ttl := cfg.MagicLinkTTL
	if ttl <= 0 {
		ttl = config.DefaultMagicLinkTTL
	}

	return &magicLinkService{
		tokens: tokens,
		hasher: hasher,
		ids:    utils.NewUUIDGenerator(),
		ttl:    ttl,
		now:    time.Now,
		logger: logger,
	}
}

// Issue mints a fresh 256-bit token for userID.
//
// Returns the plaintext token and its expiry or:
//   - ErrTokenGenerationFailed if the entropy source fails.
//   - ErrStorageFailure if the digest cannot be persisted.
func (s *magicLinkService) Issue(ctx context.Context, userID int64) (models.IssuedToken, error) {
	log := logger.FromContext(ctx)

	plaintext, err := s.hasher.GenerateToken(security.MinTokenBytes)
	if err != nil {
		log.Err(err).Str("func", "*magicLinkService.Issue").Msg("token generation failed")
		return models.IssuedToken{}, fmt.Errorf("%w: %w", ErrTokenGenerationFailed, err)
	}

	now := s.now()
	token := models.AuthToken{
		ID:        s.ids.Generate(),
		UserID:    userID,
		TokenHash: s.hasher.Hash(plaintext),
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}

	if err = s.tokens.Create(ctx, token); err != nil {
		log.Err(err).Str("func", "*magicLinkService.Issue").Int64("user_id", userID).Msg("storing auth token failed")
		return models.IssuedToken{}, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}

	log.Debug().
		Str("func", "*magicLinkService.Issue").
		Int64("user_id", userID).
		Str("token_id", token.ID).
		Time("expires_at", token.ExpiresAt).
		Msg("magic link issued")

	return models.IssuedToken{Token: plaintext, ExpiresAt: token.ExpiresAt}, nil
}

// Redeem consumes token through a single conditional write.
//
// Returns the owning user or:
//   - ErrInvalidOrExpiredToken if the token is unknown, used, expired or
//     was consumed by a concurrent caller first.
//   - ErrStorageFailure if the store fails.
func (s *magicLinkService) Redeem(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, ErrInvalidOrExpiredToken
	}

	now := s.now()
	digest := s.hasher.Hash(token)

	userID, err := s.tokens.Consume(ctx, digest, now)
	if errors.Is(err, store.ErrAuthTokenNotFound) {
		s.logRedeemFailure(ctx, digest, now)
		return 0, ErrInvalidOrExpiredToken
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*magicLinkService.Redeem").Msg("consuming auth token failed")
		return 0, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}

	return userID, nil
}

// logRedeemFailure looks the token up after the fact to record why the
// redemption failed. The lookup is diagnostic only and cannot change the
// answer already decided by Consume.
func (s *magicLinkService) logRedeemFailure(ctx context.Context, digest string, now time.Time) {
	log := logger.FromContext(ctx)

	reason := redeemFailureUnknown
	token, err := s.tokens.Lookup(ctx, digest)
	switch {
	case errors.Is(err, store.ErrAuthTokenNotFound):
	case err != nil:
		log.Err(err).Str("func", "*magicLinkService.logRedeemFailure").Msg("diagnostic lookup failed")
	case token.IsUsed() && !token.UsedAt.Before(now.Add(-time.Second)):
		reason = redeemFailureRace
	case token.IsUsed():
		reason = redeemFailureUsed
	case token.IsExpired(now):
		reason = redeemFailureExpired
	}

	event := log.Info().Str("func", "*magicLinkService.Redeem").Str("reason", reason)
	if token.UserID != 0 {
		event = event.Int64("user_id", token.UserID)
	}
	event.Msg("magic link redemption rejected")
}
