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

// sessionService is the concrete implementation of SessionService. Like
// magic links, only token digests are stored.
type sessionService struct {
	sessions store.SessionRepository
	hasher   security.Hasher
	ids      idGenerator
	ttl      time.Duration

	now    func() time.Time
	logger *logger.Logger
}

// NewSessionService constructs a SessionService. The lifetime comes from
// cfg.SessionTTL and defaults to 30 days.
func NewSessionService(sessions store.SessionRepository, hasher security.Hasher, cfg config.App, logger *logger.Logger) SessionService {
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = config.DefaultSessionTTL
	}

	return &sessionService{
		sessions: sessions,
		hasher:   hasher,
		ids:      utils.NewUUIDGenerator(),
		ttl:      ttl,
		now:      time.Now,
		logger:   logger,
	}
}

func (s *sessionService) Create(ctx context.Context, userID int64) (models.IssuedToken, error) {
	log := logger.FromContext(ctx)

	plaintext, err := s.hasher.GenerateToken(security.MinTokenBytes)
	if err != nil {
		log.Err(err).Str("func", "*sessionService.Create").Msg("token generation failed")
		return models.IssuedToken{}, fmt.Errorf("%w: %w", ErrTokenGenerationFailed, err)
	}

	now := s.now()
	session := models.Session{
		ID:        s.ids.Generate(),
		UserID:    userID,
		TokenHash: s.hasher.Hash(plaintext),
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	if err = s.sessions.Create(ctx, session); err != nil {
		log.Err(err).Str("func", "*sessionService.Create").Int64("user_id", userID).Msg("storing session failed")
		return models.IssuedToken{}, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}

	log.Debug().Str("func", "*sessionService.Create").Int64("user_id", userID).Str("session_id", session.ID).Msg("session created")

	return models.IssuedToken{Token: plaintext, ExpiresAt: session.ExpiresAt}, nil
}

// Validate returns the session owner. A successful validation never moves
// the expiry.
func (s *sessionService) Validate(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, ErrInvalidSession
	}

	session, err := s.sessions.FindActive(ctx, s.hasher.Hash(token), s.now())
	if errors.Is(err, store.ErrSessionNotFound) {
		logger.FromContext(ctx).Debug().Str("func", "*sessionService.Validate").Msg("session is unknown, revoked or expired")
		return 0, ErrInvalidSession
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*sessionService.Validate").Msg("session lookup failed")
		return 0, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}

	return session.UserID, nil
}

// Revoke is idempotent: empty, unknown and already revoked tokens succeed.
func (s *sessionService) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	if err := s.sessions.Revoke(ctx, s.hasher.Hash(token), s.now()); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*sessionService.Revoke").Msg("session revocation failed")
		return fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}

	return nil
}
