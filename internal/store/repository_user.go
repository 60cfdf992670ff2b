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

// userRepository is the SQL-backed implementation of [UserRepository].
// It handles user lookup and creation against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// FindOrCreateByEmail runs a single INSERT ... ON CONFLICT statement, so two
// first logins racing on the same address converge on one row.
func (r *userRepository) FindOrCreateByEmail(ctx context.Context, email string, now time.Time) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindOrCreateUserQuery(r.db.builder, email, now)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.FindOrCreateByEmail").Msg("error building query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		r.db.classify(ctx, "*userRepository.FindOrCreateByEmail", err)
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return user, nil
}

// GetByID returns [ErrNoUserWasFound] when no row matches.
func (r *userRepository) GetByID(ctx context.Context, userID int64) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetUserByIDQuery(r.db.builder, userID)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.GetByID").Msg("error building query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNoUserWasFound
	}
	if err != nil {
		r.db.classify(ctx, "*userRepository.GetByID", err)
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return user, nil
}

func (r *userRepository) TouchLastLogin(ctx context.Context, userID int64, at time.Time) error {
	query, args, err := buildTouchLastLoginQuery(r.db.builder, userID, at)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execUserUpdate(ctx, "*userRepository.TouchLastLogin", query, args)
}

func (r *userRepository) SetPro(ctx context.Context, userID int64, isPro bool) error {
	query, args, err := buildSetProQuery(r.db.builder, userID, isPro)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execUserUpdate(ctx, "*userRepository.SetPro", query, args)
}

// execUserUpdate runs an UPDATE on a single user and maps zero affected rows
// to [ErrNoUserWasFound].
func (r *userRepository) execUserUpdate(ctx context.Context, fn, query string, args []any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.db.classify(ctx, fn, err)
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadingResult, err)
	}
	if affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}

func scanUser(row *sql.Row) (models.User, error) {
	var (
		user      models.User
		lastLogin sql.NullTime
	)
	if err := row.Scan(&user.UserID, &user.Email, &user.IsPro, &lastLogin, &user.CreatedAt); err != nil {
		return models.User{}, err
	}
	user.LastLoginAt = timePtr(lastLogin)

	return user, nil
}
