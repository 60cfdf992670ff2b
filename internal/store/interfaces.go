package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-tool-access/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists user identities keyed by normalized email.
type UserRepository interface {
	// FindOrCreateByEmail returns the user owning email, creating it first
	// when absent. Concurrent calls for the same email return the same user.
	FindOrCreateByEmail(ctx context.Context, email string, now time.Time) (models.User, error)
	GetByID(ctx context.Context, userID int64) (models.User, error)
	TouchLastLogin(ctx context.Context, userID int64, at time.Time) error
	SetPro(ctx context.Context, userID int64, isPro bool) error
}

// AuthTokenRepository persists magic-link tokens by digest.
type AuthTokenRepository interface {
	Create(ctx context.Context, token models.AuthToken) error

	// Consume marks the token identified by tokenHash as used if and only if
	// it is still unused and not expired at now, and returns its owner.
	// The check and the write are a single atomic step, so among concurrent
	// callers at most one succeeds. Everyone else gets [ErrAuthTokenNotFound].
	Consume(ctx context.Context, tokenHash string, now time.Time) (int64, error)

	// Lookup returns the stored token regardless of its state.
	Lookup(ctx context.Context, tokenHash string) (models.AuthToken, error)
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// SessionRepository persists sessions by digest.
type SessionRepository interface {
	Create(ctx context.Context, session models.Session) error

	// FindActive returns the session only when it exists, is not revoked and
	// expires after now. Otherwise it returns [ErrSessionNotFound].
	FindActive(ctx context.Context, tokenHash string, now time.Time) (models.Session, error)

	// Revoke sets revoked_at once. Unknown or already revoked sessions are
	// not an error.
	Revoke(ctx context.Context, tokenHash string, now time.Time) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// SubscriptionRepository mirrors billing state, one row per user and mode.
type SubscriptionRepository interface {
	Get(ctx context.Context, userID int64, mode models.BillingMode) (models.Subscription, error)
	Upsert(ctx context.Context, subscription models.Subscription) error
}

// ErrorClassificator maps a driver error to an access-store [Failure].
type ErrorClassificator interface {
	Classify(err error) Failure
}

// Pinger is implemented by every storage backend.
type Pinger interface {
	Ping(ctx context.Context) error
}
