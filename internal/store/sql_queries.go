package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-tool-access/models"
)

var (
	userColumns         = []string{"user_id", "email", "is_pro", "last_login_at", "created_at"}
	authTokenColumns    = []string{"id", "user_id", "token_hash", "expires_at", "used_at", "created_at"}
	sessionColumns      = []string{"id", "user_id", "token_hash", "created_at", "expires_at", "revoked_at"}
	subscriptionColumns = []string{"user_id", "mode", "status", "current_period_end", "ended_at", "updated_at"}
)

const (
	upsertUserSuffix = "ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email " +
		"RETURNING user_id, email, is_pro, last_login_at, created_at"

	upsertSubscriptionSuffix = "ON CONFLICT (user_id, mode) DO UPDATE SET " +
		"status = EXCLUDED.status, " +
		"current_period_end = EXCLUDED.current_period_end, " +
		"ended_at = EXCLUDED.ended_at, " +
		"updated_at = EXCLUDED.updated_at"
)

// ── users ───────────────────────────────────────────────────────────────────

// buildFindOrCreateUserQuery inserts the email or, when it already exists,
// performs a no-op update so that RETURNING yields the existing row.
func buildFindOrCreateUserQuery(b sq.StatementBuilderType, email string, now time.Time) (string, []any, error) {
	return b.Insert(models.User{}.TableName()).
		Columns("email", "is_pro", "created_at").
		Values(email, false, utc(now)).
		Suffix(upsertUserSuffix).
		ToSql()
}

func buildGetUserByIDQuery(b sq.StatementBuilderType, userID int64) (string, []any, error) {
	return b.Select(userColumns...).
		From(models.User{}.TableName()).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

func buildTouchLastLoginQuery(b sq.StatementBuilderType, userID int64, at time.Time) (string, []any, error) {
	return b.Update(models.User{}.TableName()).
		Set("last_login_at", utc(at)).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

func buildSetProQuery(b sq.StatementBuilderType, userID int64, isPro bool) (string, []any, error) {
	return b.Update(models.User{}.TableName()).
		Set("is_pro", isPro).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

// ── auth tokens ─────────────────────────────────────────────────────────────

func buildCreateAuthTokenQuery(b sq.StatementBuilderType, token models.AuthToken) (string, []any, error) {
	return b.Insert(token.TableName()).
		Columns("id", "user_id", "token_hash", "expires_at", "created_at").
		Values(token.ID, token.UserID, token.TokenHash, utc(token.ExpiresAt), utc(token.CreatedAt)).
		ToSql()
}

// buildConsumeAuthTokenQuery is the single conditional write that redeems a
// token. Its predicate is what makes redemption single-use under concurrency.
func buildConsumeAuthTokenQuery(b sq.StatementBuilderType, tokenHash string, now time.Time) (string, []any, error) {
	return b.Update(models.AuthToken{}.TableName()).
		Set("used_at", utc(now)).
		Where(sq.Eq{"token_hash": tokenHash}).
		Where(sq.Eq{"used_at": nil}).
		Where(sq.Gt{"expires_at": utc(now)}).
		Suffix("RETURNING user_id").
		ToSql()
}

func buildLookupAuthTokenQuery(b sq.StatementBuilderType, tokenHash string) (string, []any, error) {
	return b.Select(authTokenColumns...).
		From(models.AuthToken{}.TableName()).
		Where(sq.Eq{"token_hash": tokenHash}).
		ToSql()
}

func buildDeleteExpiredAuthTokensQuery(b sq.StatementBuilderType, before time.Time) (string, []any, error) {
	return b.Delete(models.AuthToken{}.TableName()).
		Where(sq.Lt{"expires_at": utc(before)}).
		ToSql()
}

// ── sessions ────────────────────────────────────────────────────────────────

func buildCreateSessionQuery(b sq.StatementBuilderType, session models.Session) (string, []any, error) {
	return b.Insert(session.TableName()).
		Columns("id", "user_id", "token_hash", "created_at", "expires_at").
		Values(session.ID, session.UserID, session.TokenHash, utc(session.CreatedAt), utc(session.ExpiresAt)).
		ToSql()
}

func buildFindActiveSessionQuery(b sq.StatementBuilderType, tokenHash string, now time.Time) (string, []any, error) {
	return b.Select(sessionColumns...).
		From(models.Session{}.TableName()).
		Where(sq.Eq{"token_hash": tokenHash}).
		Where(sq.Eq{"revoked_at": nil}).
		Where(sq.Gt{"expires_at": utc(now)}).
		ToSql()
}

// buildRevokeSessionQuery only touches sessions that are not yet revoked, so
// the first revocation time is preserved.
func buildRevokeSessionQuery(b sq.StatementBuilderType, tokenHash string, now time.Time) (string, []any, error) {
	return b.Update(models.Session{}.TableName()).
		Set("revoked_at", utc(now)).
		Where(sq.Eq{"token_hash": tokenHash}).
		Where(sq.Eq{"revoked_at": nil}).
		ToSql()
}

func buildDeleteExpiredSessionsQuery(b sq.StatementBuilderType, before time.Time) (string, []any, error) {
	return b.Delete(models.Session{}.TableName()).
		Where(sq.Or{
			sq.Lt{"expires_at": utc(before)},
			sq.Lt{"revoked_at": utc(before)},
		}).
		ToSql()
}

// ── subscriptions ───────────────────────────────────────────────────────────

func buildGetSubscriptionQuery(b sq.StatementBuilderType, userID int64, mode models.BillingMode) (string, []any, error) {
	return b.Select(subscriptionColumns...).
		From(models.Subscription{}.TableName()).
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Eq{"mode": string(mode)}).
		ToSql()
}

func buildUpsertSubscriptionQuery(b sq.StatementBuilderType, sub models.Subscription) (string, []any, error) {
	return b.Insert(sub.TableName()).
		Columns(subscriptionColumns...).
		Values(
			sub.UserID,
			string(sub.Mode),
			string(sub.Status),
			nullTime(sub.CurrentPeriodEnd),
			nullTime(sub.EndedAt),
			utc(sub.UpdatedAt),
		).
		Suffix(upsertSubscriptionSuffix).
		ToSql()
}
