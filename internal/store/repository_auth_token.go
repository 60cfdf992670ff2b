package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-tool-access/internal/logger"
	"github.com/MKhiriev/go-tool-access/models"
)

// authTokenRepository is the SQL-backed implementation of
// [AuthTokenRepository] over the "auth_tokens" table.
type authTokenRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewAuthTokenRepository constructs an [AuthTokenRepository] backed by db.
func NewAuthTokenRepository(db *DB, logger *logger.Logger) AuthTokenRepository {
	logger.Debug().Msg("creating auth token repository")
	return &authTokenRepository{
		db:     db,
		logger: logger,
	}
}

// Create stores a new token. A duplicate id or digest is reported as
// [ErrAuthTokenAlreadyExists].
func (r *authTokenRepository) Create(ctx context.Context, token models.AuthToken) error {
	log := logger.FromContext(ctx)

	query, args, err := buildCreateAuthTokenQuery(r.db.builder, token)
	if err != nil {
		log.Err(err).Str("func", "*authTokenRepository.Create").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return ErrAuthTokenAlreadyExists
		}
		r.db.classify(ctx, "*authTokenRepository.Create", err)
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// Consume performs the conditional UPDATE ... RETURNING. The database
// serialises concurrent updates of the same row, and once the first one
// commits used_at is no longer NULL, so every later update matches nothing.
func (r *authTokenRepository) Consume(ctx context.Context, tokenHash string, now time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildConsumeAuthTokenQuery(r.db.builder, tokenHash, now)
	if err != nil {
		log.Err(err).Str("func", "*authTokenRepository.Consume").Msg("error building query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var userID int64
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrAuthTokenNotFound
	}
	if err != nil {
		r.db.classify(ctx, "*authTokenRepository.Consume", err)
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return userID, nil
}

func (r *authTokenRepository) Lookup(ctx context.Context, tokenHash string) (models.AuthToken, error) {
	query, args, err := buildLookupAuthTokenQuery(r.db.builder, tokenHash)
	if err != nil {
		return models.AuthToken{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		token  models.AuthToken
		usedAt sql.NullTime
	)
	err = r.db.QueryRowContext(ctx, query, args...).
		Scan(&token.ID, &token.UserID, &token.TokenHash, &token.ExpiresAt, &usedAt, &token.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.AuthToken{}, ErrAuthTokenNotFound
	}
	if err != nil {
		r.db.classify(ctx, "*authTokenRepository.Lookup", err)
		return models.AuthToken{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	token.UsedAt = timePtr(usedAt)

	return token, nil
}

func (r *authTokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	query, args, err := buildDeleteExpiredAuthTokensQuery(r.db.builder, before)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return execDelete(ctx, r.db, "*authTokenRepository.DeleteExpired", query, args)
}

// execDelete runs a DELETE and returns the number of removed rows.
func execDelete(ctx context.Context, db *DB, fn, query string, args []any) (int64, error) {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		db.classify(ctx, fn, err)
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrReadingResult, err)
	}

	return deleted, nil
}
