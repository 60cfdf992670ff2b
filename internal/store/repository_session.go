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

// sessionRepository is the SQL-backed implementation of [SessionRepository]
// over the "sessions" table.
type sessionRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewSessionRepository constructs a [SessionRepository] backed by db.
func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	logger.Debug().Msg("creating session repository")
	return &sessionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *sessionRepository) Create(ctx context.Context, session models.Session) error {
	log := logger.FromContext(ctx)

	query, args, err := buildCreateSessionQuery(r.db.builder, session)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.Create").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return ErrSessionAlreadyExists
		}
		r.db.classify(ctx, "*sessionRepository.Create", err)
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *sessionRepository) FindActive(ctx context.Context, tokenHash string, now time.Time) (models.Session, error) {
	query, args, err := buildFindActiveSessionQuery(r.db.builder, tokenHash, now)
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		session   models.Session
		revokedAt sql.NullTime
	)
	err = r.db.QueryRowContext(ctx, query, args...).
		Scan(&session.ID, &session.UserID, &session.TokenHash, &session.CreatedAt, &session.ExpiresAt, &revokedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, ErrSessionNotFound
	}
	if err != nil {
		r.db.classify(ctx, "*sessionRepository.FindActive", err)
		return models.Session{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	session.RevokedAt = timePtr(revokedAt)

	return session, nil
}

// Revoke ignores the affected row count: zero rows means the session is
// unknown or already revoked, and both are success.
func (r *sessionRepository) Revoke(ctx context.Context, tokenHash string, now time.Time) error {
	query, args, err := buildRevokeSessionQuery(r.db.builder, tokenHash, now)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		r.db.classify(ctx, "*sessionRepository.Revoke", err)
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *sessionRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	query, args, err := buildDeleteExpiredSessionsQuery(r.db.builder, before)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return execDelete(ctx, r.db, "*sessionRepository.DeleteExpired", query, args)
}
