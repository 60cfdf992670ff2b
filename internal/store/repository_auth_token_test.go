package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-tool-access/internal/logger"
	"github.com/MKhiriev/go-tool-access/models"
	"github.com/jackc/pgerrcode"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthTokenRepo(t *testing.T, dialect Dialect) (*authTokenRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t, dialect)
	return &authTokenRepository{db: db, logger: logger.Nop()}, mock
}

var tokenNow = time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)

func TestAuthTokenCreate(t *testing.T) {
	token := models.AuthToken{
		ID:        "id-1",
		UserID:    3,
		TokenHash: "digest",
		ExpiresAt: tokenNow.Add(20 * time.Minute),
		CreatedAt: tokenNow,
	}

	t.Run("success", func(t *testing.T) {
		repo, mock := newTestAuthTokenRepo(t, DialectPostgres)
		mock.ExpectExec("INSERT INTO auth_tokens").
			WithArgs("id-1", int64(3), "digest", token.ExpiresAt, tokenNow).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Create(context.Background(), token))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("postgres unique violation", func(t *testing.T) {
		repo, mock := newTestAuthTokenRepo(t, DialectPostgres)
		mock.ExpectExec("INSERT INTO auth_tokens").
			WillReturnError(pgError(pgerrcode.UniqueViolation))

		err := repo.Create(context.Background(), token)
		require.ErrorIs(t, err, ErrAuthTokenAlreadyExists)
	})

	t.Run("sqlite unique violation", func(t *testing.T) {
		repo, mock := newTestAuthTokenRepo(t, DialectSQLite)
		mock.ExpectExec("INSERT INTO auth_tokens").
			WillReturnError(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique})

		err := repo.Create(context.Background(), token)
		require.ErrorIs(t, err, ErrAuthTokenAlreadyExists)
	})
}

func TestAuthTokenConsume(t *testing.T) {
	t.Run("first redemption returns owner", func(t *testing.T) {
		repo, mock := newTestAuthTokenRepo(t, DialectPostgres)
		mock.ExpectQuery("UPDATE auth_tokens SET used_at = \\$1 WHERE token_hash = \\$2 AND used_at IS NULL AND expires_at > \\$3 RETURNING user_id").
			WithArgs(tokenNow, "digest", tokenNow).
			WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(int64(11)))

		userID, err := repo.Consume(context.Background(), "digest", tokenNow)
		require.NoError(t, err)
		assert.Equal(t, int64(11), userID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no matching row is not found", func(t *testing.T) {
		repo, mock := newTestAuthTokenRepo(t, DialectPostgres)
		mock.ExpectQuery("UPDATE auth_tokens").
			WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

		_, err := repo.Consume(context.Background(), "digest", tokenNow)
		require.ErrorIs(t, err, ErrAuthTokenNotFound)
	})

	t.Run("sqlite placeholders", func(t *testing.T) {
		repo, mock := newTestAuthTokenRepo(t, DialectSQLite)
		mock.ExpectQuery("UPDATE auth_tokens SET used_at = \\? WHERE token_hash = \\?").
			WithArgs(tokenNow, "digest", tokenNow).
			WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(int64(2)))

		userID, err := repo.Consume(context.Background(), "digest", tokenNow)
		require.NoError(t, err)
		assert.Equal(t, int64(2), userID)
	})

	t.Run("busy sqlite is a retryable store failure", func(t *testing.T) {
		repo, mock := newTestAuthTokenRepo(t, DialectSQLite)
		mock.ExpectQuery("UPDATE auth_tokens").
			WillReturnError(sqlite3.Error{Code: sqlite3.ErrBusy})

		_, err := repo.Consume(context.Background(), "digest", tokenNow)
		require.ErrorIs(t, err, ErrExecutingQuery)
		assert.NotErrorIs(t, err, ErrAuthTokenNotFound)
		assert.True(t, IsRetryable(err))
	})
}

func TestAuthTokenLookup(t *testing.T) {
	columns := []string{"id", "user_id", "token_hash", "expires_at", "used_at", "created_at"}

	t.Run("used token", func(t *testing.T) {
		repo, mock := newTestAuthTokenRepo(t, DialectPostgres)
		usedAt := tokenNow.Add(time.Minute)
		mock.ExpectQuery("SELECT id, user_id, token_hash, expires_at, used_at, created_at FROM auth_tokens").
			WithArgs("digest").
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow("id-1", int64(3), "digest", tokenNow.Add(20*time.Minute), usedAt, tokenNow))

		token, err := repo.Lookup(context.Background(), "digest")
		require.NoError(t, err)
		assert.True(t, token.IsUsed())
		assert.False(t, token.IsRedeemable(tokenNow))
	})

	t.Run("unknown token", func(t *testing.T) {
		repo, mock := newTestAuthTokenRepo(t, DialectPostgres)
		mock.ExpectQuery("FROM auth_tokens").WillReturnError(sql.ErrNoRows)

		_, err := repo.Lookup(context.Background(), "digest")
		require.ErrorIs(t, err, ErrAuthTokenNotFound)
	})
}

func TestAuthTokenDeleteExpired(t *testing.T) {
	repo, mock := newTestAuthTokenRepo(t, DialectPostgres)
	mock.ExpectExec("DELETE FROM auth_tokens WHERE expires_at < \\$1").
		WithArgs(tokenNow).
		WillReturnResult(sqlmock.NewResult(0, 4))

	deleted, err := repo.DeleteExpired(context.Background(), tokenNow)
	require.NoError(t, err)
	assert.Equal(t, int64(4), deleted)
}
