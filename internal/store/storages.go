package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-tool-access/internal/config"
	"github.com/MKhiriev/go-tool-access/internal/logger"
)

// Storages groups every repository of one backend.
type Storages struct {
	UserRepository         UserRepository
	AuthTokenRepository    AuthTokenRepository
	SessionRepository      SessionRepository
	SubscriptionRepository SubscriptionRepository

	db *DB
}

// NewStorages selects the backend from cfg.DB.DSN, connects to it and
// applies migrations for SQL backends. DSN [config.MemoryDSN] yields the
// in-memory repositories.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	if cfg.DB.DSN == config.MemoryDSN {
		log.Warn().Str("func", "NewStorages").Msg("using in-memory storage, data is lost on restart")
		return NewMemoryStorages(), nil
	}

	dialect, err := DialectFromDSN(cfg.DB.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("cannot select storage backend")
		return nil, err
	}

	var db *DB
	switch dialect {
	case DialectPostgres:
		db, err = NewConnectPostgres(ctx, cfg.DB, log)
	case DialectSQLite:
		db, err = NewConnectSQLite(ctx, cfg.DB, log)
	}
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("error applying migrations")
		_ = db.Close()
		return nil, err
	}
	log.Info().Str("func", "NewStorages").Str("dialect", string(dialect)).Msg("storage is ready")

	return NewSQLStorages(db, log), nil
}

// NewSQLStorages builds SQL repositories over an already migrated db.
func NewSQLStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository:         NewUserRepository(db, log),
		AuthTokenRepository:    NewAuthTokenRepository(db, log),
		SessionRepository:      NewSessionRepository(db, log),
		SubscriptionRepository: NewSubscriptionRepository(db, log),
		db:                     db,
	}
}

// NewMemoryStorages builds empty in-memory repositories.
func NewMemoryStorages() *Storages {
	return &Storages{
		UserRepository:         NewMemoryUserRepository(),
		AuthTokenRepository:    NewMemoryAuthTokenRepository(),
		SessionRepository:      NewMemorySessionRepository(),
		SubscriptionRepository: NewMemorySubscriptionRepository(),
	}
}

// Ping implements [Pinger]. The in-memory backend is always reachable.
func (s *Storages) Ping(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	if err := s.db.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrConnectingDB, err)
	}
	return nil
}

// Close releases the database connection, if any.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
