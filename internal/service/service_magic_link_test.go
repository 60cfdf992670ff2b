package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-tool-access/internal/config"
	"github.com/MKhiriev/go-tool-access/internal/logger"
	"github.com/MKhiriev/go-tool-access/internal/mock"
	"github.com/MKhiriev/go-tool-access/internal/security"
	"github.com/MKhiriev/go-tool-access/internal/store"
	"github.com/MKhiriev/go-tool-access/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// fakeClock is a settable clock shared by services under test.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestHasher(t *testing.T) security.Hasher {
	t.Helper()
	h, err := security.NewHasher("test-secret")
	require.NoError(t, err)
	return h
}

func newTestMagicLinkService(t *testing.T, tokens store.AuthTokenRepository, clock *fakeClock) *magicLinkService {
	t.Helper()
	svc := NewMagicLinkService(tokens, newTestHasher(t), config.App{MagicLinkTTL: 15 * time.Minute}, logger.Nop()).(*magicLinkService)
	svc.now = clock.Now
	return svc
}

// ─────────────────────────────────────────────
// Issue
// ─────────────────────────────────────────────

func TestMagicLinkIssue_StoresDigestOnly(t *testing.T) {
	clock := newFakeClock()
	tokens := store.NewMemoryAuthTokenRepository()
	svc := newTestMagicLinkService(t, tokens, clock)

	issued, err := svc.Issue(context.Background(), 42)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, len(issued.Token), 43, "256 bits in unpadded base64url")
	assert.Equal(t, clock.Now().Add(15*time.Minute), issued.ExpiresAt)

	_, err = tokens.Lookup(context.Background(), issued.Token)
	require.ErrorIs(t, err, store.ErrAuthTokenNotFound, "plaintext must not be a stored key")

	stored, err := tokens.Lookup(context.Background(), svc.hasher.Hash(issued.Token))
	require.NoError(t, err)
	assert.Equal(t, int64(42), stored.UserID)
	assert.False(t, stored.IsUsed())
}

func TestMagicLinkIssue_TokensAreUnique(t *testing.T) {
	svc := newTestMagicLinkService(t, store.NewMemoryAuthTokenRepository(), newFakeClock())

	seen := make(map[string]struct{})
	for range 100 {
		issued, err := svc.Issue(context.Background(), 1)
		require.NoError(t, err)
		_, dup := seen[issued.Token]
		require.False(t, dup)
		seen[issued.Token] = struct{}{}
	}
}

func TestMagicLinkIssue_StorageFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	tokens := mock.NewMockAuthTokenRepository(ctrl)
	tokens.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	svc := newTestMagicLinkService(t, tokens, newFakeClock())

	_, err := svc.Issue(context.Background(), 1)
	require.ErrorIs(t, err, ErrStorageFailure)
}

// ─────────────────────────────────────────────
// Redeem
// ─────────────────────────────────────────────

func TestMagicLinkRedeem_Once(t *testing.T) {
	clock := newFakeClock()
	svc := newTestMagicLinkService(t, store.NewMemoryAuthTokenRepository(), clock)
	ctx := context.Background()

	issued, err := svc.Issue(ctx, 7)
	require.NoError(t, err)

	userID, err := svc.Redeem(ctx, issued.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), userID)

	_, err = svc.Redeem(ctx, issued.Token)
	require.ErrorIs(t, err, ErrInvalidOrExpiredToken)
}

func TestMagicLinkRedeem_GenericFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("empty", func(t *testing.T) {
		svc := newTestMagicLinkService(t, store.NewMemoryAuthTokenRepository(), newFakeClock())
		_, err := svc.Redeem(ctx, "")
		require.ErrorIs(t, err, ErrInvalidOrExpiredToken)
	})

	t.Run("unknown", func(t *testing.T) {
		svc := newTestMagicLinkService(t, store.NewMemoryAuthTokenRepository(), newFakeClock())
		_, err := svc.Redeem(ctx, "never-issued")
		require.ErrorIs(t, err, ErrInvalidOrExpiredToken)
	})

	t.Run("expired exactly at ttl", func(t *testing.T) {
		clock := newFakeClock()
		svc := newTestMagicLinkService(t, store.NewMemoryAuthTokenRepository(), clock)
		issued, err := svc.Issue(ctx, 1)
		require.NoError(t, err)

		clock.Advance(15 * time.Minute)
		_, err = svc.Redeem(ctx, issued.Token)
		require.ErrorIs(t, err, ErrInvalidOrExpiredToken)
	})

	t.Run("valid a second before ttl", func(t *testing.T) {
		clock := newFakeClock()
		svc := newTestMagicLinkService(t, store.NewMemoryAuthTokenRepository(), clock)
		issued, err := svc.Issue(ctx, 1)
		require.NoError(t, err)

		clock.Advance(15*time.Minute - time.Second)
		_, err = svc.Redeem(ctx, issued.Token)
		require.NoError(t, err)
	})
}

func TestMagicLinkRedeem_StorageFailureIsNotAVerdict(t *testing.T) {
	ctrl := gomock.NewController(t)
	tokens := mock.NewMockAuthTokenRepository(ctrl)
	tokens.EXPECT().Consume(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), errors.New("timeout"))

	svc := newTestMagicLinkService(t, tokens, newFakeClock())

	_, err := svc.Redeem(context.Background(), "token")
	require.ErrorIs(t, err, ErrStorageFailure)
	assert.NotErrorIs(t, err, ErrInvalidOrExpiredToken)
}

func TestMagicLinkRedeem_DiagnosticLookupDoesNotChangeAnswer(t *testing.T) {
	ctrl := gomock.NewController(t)
	tokens := mock.NewMockAuthTokenRepository(ctrl)
	clock := newFakeClock()
	usedAt := clock.Now().Add(-time.Minute)

	gomock.InOrder(
		tokens.EXPECT().Consume(gomock.Any(), gomock.Any(), clock.Now()).Return(int64(0), store.ErrAuthTokenNotFound),
		tokens.EXPECT().Lookup(gomock.Any(), gomock.Any()).Return(models.AuthToken{UserID: 3, UsedAt: &usedAt}, nil),
	)

	svc := newTestMagicLinkService(t, tokens, clock)

	_, err := svc.Redeem(context.Background(), "token")
	require.ErrorIs(t, err, ErrInvalidOrExpiredToken)
}

func TestMagicLinkRedeem_ConcurrentRedeemersOneWinner(t *testing.T) {
	svc := newTestMagicLinkService(t, store.NewMemoryAuthTokenRepository(), newFakeClock())
	ctx := context.Background()

	issued, err := svc.Issue(ctx, 9)
	require.NoError(t, err)

	const racers = 32
	var (
		wg      sync.WaitGroup
		winners atomic.Int32
		losers  atomic.Int32
	)
	start := make(chan struct{})
	for range racers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := svc.Redeem(ctx, issued.Token)
			switch {
			case err == nil:
				winners.Add(1)
			case errors.Is(err, ErrInvalidOrExpiredToken):
				losers.Add(1)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), winners.Load())
	assert.Equal(t, int32(racers-1), losers.Load())
}

func TestMagicLinkRedeem_SecretRotationInvalidatesOutstandingLinks(t *testing.T) {
	tokens := store.NewMemoryAuthTokenRepository()
	clock := newFakeClock()
	ctx := context.Background()

	issued, err := newTestMagicLinkService(t, tokens, clock).Issue(ctx, 1)
	require.NoError(t, err)

	rotated, err := security.NewHasher("rotated-secret")
	require.NoError(t, err)
	svc := newTestMagicLinkService(t, tokens, clock)
	svc.hasher = rotated

	_, err = svc.Redeem(ctx, issued.Token)
	require.ErrorIs(t, err, ErrInvalidOrExpiredToken)
}
