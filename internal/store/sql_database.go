package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-tool-access/internal/logger"
	"github.com/MKhiriev/go-tool-access/migrations"
)

// Dialect names the SQL backend a [DB] talks to.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite3"
)

// DialectFromDSN picks the SQL dialect from the DSN form.
//
//	postgres://..., postgresql://...  -> DialectPostgres
//	file:..., sqlite://..., *.db      -> DialectSQLite
func DialectFromDSN(dsn string) (Dialect, error) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return DialectPostgres, nil
	case strings.HasPrefix(dsn, "file:"), strings.HasPrefix(dsn, "sqlite://"), strings.HasSuffix(dsn, ".db"):
		return DialectSQLite, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedDSN, redactDSN(dsn))
	}
}

// statementBuilder returns a squirrel builder with the placeholder format of
// the dialect.
func statementBuilder(dialect Dialect) sq.StatementBuilderType {
	if dialect == DialectSQLite {
		return sq.StatementBuilder.PlaceholderFormat(sq.Question)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

// DB is a database connection together with everything the repositories
// need to talk to it: the dialect, a placeholder-aware query builder and a
// driver error classifier.
type DB struct {
	*sql.DB
	dialect            Dialect
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

func newDB(conn *sql.DB, dialect Dialect, classifier ErrorClassificator, log *logger.Logger) *DB {
	return &DB{
		DB:                 conn,
		dialect:            dialect,
		builder:            statementBuilder(dialect),
		errorClassificator: classifier,
		logger:             log,
	}
}

// Dialect returns the dialect of the connection.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Migrate applies the embedded migrations of the connection's dialect.
func (db *DB) Migrate() error {
	if err := migrations.Migrate(db.DB, string(db.dialect)); err != nil {
		return fmt.Errorf("%w: %w", ErrMigratingDB, err)
	}
	return nil
}

// Ping implements [Pinger].
func (db *DB) Ping(ctx context.Context) error {
	return db.PingContext(ctx)
}

// classify logs the access-store failure behind a driver error. Nothing is
// retried here; retryable failures still propagate to the service as
// storage failures.
func (db *DB) classify(ctx context.Context, fn string, err error) {
	if db.errorClassificator == nil || err == nil {
		return
	}

	failure := db.errorClassificator.Classify(err)
	logger.FromContext(ctx).Err(err).
		Str("func", fn).
		Str("dialect", string(db.dialect)).
		Str("store_failure", string(failure.Reason)).
		Bool("retryable", failure.Class == Retryable).
		Msg("database error")
}

// utc normalises times before they reach the driver so that SQLite's text
// representation compares in chronological order.
func utc(t time.Time) time.Time {
	return t.UTC()
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: utc(*t), Valid: true}
}

// redactDSN hides everything after the scheme so credentials never reach logs.
func redactDSN(dsn string) string {
	if i := strings.Index(dsn, "://"); i >= 0 {
		return dsn[:i+3] + "***"
	}
	if len(dsn) > 8 {
		return dsn[:8] + "***"
	}
	return dsn
}
