package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-tool-access/internal/logger"
	"github.com/MKhiriev/go-tool-access/models"
)

// subscriptionRepository is the SQL-backed implementation of
// [SubscriptionRepository] over the "subscriptions" table.
type subscriptionRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewSubscriptionRepository constructs a [SubscriptionRepository] backed by db.
func NewSubscriptionRepository(db *DB, logger *logger.Logger) SubscriptionRepository {
	logger.Debug().Msg("creating subscription repository")
	return &subscriptionRepository{
		db:     db,
		logger: logger,
	}
}

// Get returns [ErrSubscriptionNotFound] when the user has no row in mode.
func (r *subscriptionRepository) Get(ctx context.Context, userID int64, mode models.BillingMode) (models.Subscription, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetSubscriptionQuery(r.db.builder, userID, mode)
	if err != nil {
		log.Err(err).Str("func", "*subscriptionRepository.Get").Msg("error building query")
		return models.Subscription{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		sub                models.Subscription
		rawMode, rawStatus string
		periodEnd, ended   sql.NullTime
	)
	err = r.db.QueryRowContext(ctx, query, args...).
		Scan(&sub.UserID, &rawMode, &rawStatus, &periodEnd, &ended, &sub.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Subscription{}, ErrSubscriptionNotFound
	}
	if err != nil {
		r.db.classify(ctx, "*subscriptionRepository.Get", err)
		return models.Subscription{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	sub.Mode = models.BillingMode(rawMode)
	sub.Status = models.SubscriptionStatus(rawStatus)
	sub.CurrentPeriodEnd = timePtr(periodEnd)
	sub.EndedAt = timePtr(ended)

	return sub, nil
}

// Upsert inserts the subscription or overwrites the mutable columns of the
// existing (user_id, mode) row.
func (r *subscriptionRepository) Upsert(ctx context.Context, sub models.Subscription) error {
	query, args, err := buildUpsertSubscriptionQuery(r.db.builder, sub)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		r.db.classify(ctx, "*subscriptionRepository.Upsert", err)
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
