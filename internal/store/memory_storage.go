package store

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-tool-access/models"
)

// The in-memory repositories back APP_ENV=development with DSN "memory" and
// the service tests. Each one guards its map with a mutex, and every
// check-and-write happens under a single critical section.

// ── users ───────────────────────────────────────────────────────────────────

type memoryUserRepository struct {
	mu      sync.Mutex
	nextID  int64
	byID    map[int64]models.User
	byEmail map[string]int64
}

// NewMemoryUserRepository returns an empty in-memory [UserRepository].
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{
		byID:    make(map[int64]models.User),
		byEmail: make(map[string]int64),
	}
}

func (r *memoryUserRepository) FindOrCreateByEmail(_ context.Context, email string, now time.Time) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.byEmail[email]; ok {
		return r.byID[id], nil
	}

	r.nextID++
	user := models.User{UserID: r.nextID, Email: email, CreatedAt: now.UTC()}
	r.byID[user.UserID] = user
	r.byEmail[email] = user.UserID

	return user, nil
}

func (r *memoryUserRepository) GetByID(_ context.Context, userID int64) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byID[userID]
	if !ok {
		return models.User{}, ErrNoUserWasFound
	}
	return user, nil
}

func (r *memoryUserRepository) TouchLastLogin(_ context.Context, userID int64, at time.Time) error {
	return r.update(userID, func(u *models.User) {
		t := at.UTC()
		u.LastLoginAt = &t
	})
}

func (r *memoryUserRepository) SetPro(_ context.Context, userID int64, isPro bool) error {
	return r.update(userID, func(u *models.User) { u.IsPro = isPro })
}

func (r *memoryUserRepository) update(userID int64, fn func(*models.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byID[userID]
	if !ok {
		return ErrNoUserWasFound
	}
	fn(&user)
	r.byID[userID] = user

	return nil
}

// ── auth tokens ─────────────────────────────────────────────────────────────

type memoryAuthTokenRepository struct {
	mu     sync.Mutex
	byHash map[string]models.AuthToken
}

// NewMemoryAuthTokenRepository returns an empty in-memory [AuthTokenRepository].
func NewMemoryAuthTokenRepository() AuthTokenRepository {
	return &memoryAuthTokenRepository{byHash: make(map[string]models.AuthToken)}
}

func (r *memoryAuthTokenRepository) Create(_ context.Context, token models.AuthToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byHash[token.TokenHash]; ok {
		return ErrAuthTokenAlreadyExists
	}
	for _, existing := range r.byHash {
		if existing.ID == token.ID {
			return ErrAuthTokenAlreadyExists
		}
	}
	r.byHash[token.TokenHash] = token

	return nil
}

func (r *memoryAuthTokenRepository) Consume(_ context.Context, tokenHash string, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	token, ok := r.byHash[tokenHash]
	if !ok || !token.IsRedeemable(now) {
		return 0, ErrAuthTokenNotFound
	}

	usedAt := now.UTC()
	token.UsedAt = &usedAt
	r.byHash[tokenHash] = token

	return token.UserID, nil
}

func (r *memoryAuthTokenRepository) Lookup(_ context.Context, tokenHash string) (models.AuthToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	token, ok := r.byHash[tokenHash]
	if !ok {
		return models.AuthToken{}, ErrAuthTokenNotFound
	}
	return token, nil
}

func (r *memoryAuthTokenRepository) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted int64
	for hash, token := range r.byHash {
		if token.ExpiresAt.Before(before) {
			delete(r.byHash, hash)
			deleted++
		}
	}
	return deleted, nil
}

// ── sessions ────────────────────────────────────────────────────────────────

type memorySessionRepository struct {
	mu     sync.Mutex
	byHash map[string]models.Session
}

// NewMemorySessionRepository returns an empty in-memory [SessionRepository].
func NewMemorySessionRepository() SessionRepository {
	return &memorySessionRepository{byHash: make(map[string]models.Session)}
}

func (r *memorySessionRepository) Create(_ context.Context, session models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byHash[session.TokenHash]; ok {
		return ErrSessionAlreadyExists
	}
	r.byHash[session.TokenHash] = session

	return nil
}

func (r *memorySessionRepository) FindActive(_ context.Context, tokenHash string, now time.Time) (models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.byHash[tokenHash]
	if !ok || !session.IsValid(now) {
		return models.Session{}, ErrSessionNotFound
	}
	return session, nil
}

func (r *memorySessionRepository) Revoke(_ context.Context, tokenHash string, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.byHash[tokenHash]
	if !ok || session.IsRevoked() {
		return nil
	}

	revokedAt := now.UTC()
	session.RevokedAt = &revokedAt
	r.byHash[tokenHash] = session

	return nil
}

func (r *memorySessionRepository) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted int64
	for hash, session := range r.byHash {
		if session.ExpiresAt.Before(before) || (session.IsRevoked() && session.RevokedAt.Before(before)) {
			delete(r.byHash, hash)
			deleted++
		}
	}
	return deleted, nil
}

// ── subscriptions ───────────────────────────────────────────────────────────

type subscriptionKey struct {
	userID int64
	mode   models.BillingMode
}

type memorySubscriptionRepository struct {
	mu   sync.Mutex
	subs map[subscriptionKey]models.Subscription
}

// NewMemorySubscriptionRepository returns an empty in-memory
// [SubscriptionRepository].
func NewMemorySubscriptionRepository() SubscriptionRepository {
	return &memorySubscriptionRepository{subs: make(map[subscriptionKey]models.Subscription)}
}

func (r *memorySubscriptionRepository) Get(_ context.Context, userID int64, mode models.BillingMode) (models.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sub, ok := r.subs[subscriptionKey{userID: userID, mode: mode}]
	if !ok {
		return models.Subscription{}, ErrSubscriptionNotFound
	}
	return sub, nil
}

func (r *memorySubscriptionRepository) Upsert(_ context.Context, sub models.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.subs[subscriptionKey{userID: sub.UserID, mode: sub.Mode}] = sub
	return nil
}
