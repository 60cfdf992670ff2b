package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrNoUserWasFound is returned when a query expected to match a user
	// record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrAuthTokenNotFound is returned when no unused, unexpired auth token
	// matches the digest. An unknown, used, expired and lost-race token all
	// look the same from here.
	ErrAuthTokenNotFound = errors.New("auth token was not found")

	// ErrAuthTokenAlreadyExists is returned when an auth token with the same
	// id or digest is already stored.
	ErrAuthTokenAlreadyExists = errors.New("auth token already exists")

	// ErrSessionNotFound is returned when no active session matches the
	// digest.
	ErrSessionNotFound = errors.New("session was not found")

	// ErrSessionAlreadyExists is returned when a session with the same id or
	// digest is already stored.
	ErrSessionAlreadyExists = errors.New("session already exists")

	// ErrSubscriptionNotFound is returned when the user has no subscription
	// in the requested billing mode.
	ErrSubscriptionNotFound = errors.New("subscription was not found")
)

// Connection and configuration errors.
var (
	// ErrUnsupportedDSN is returned by [DialectFromDSN] and [NewStorages]
	// when the DSN does not select any known backend.
	ErrUnsupportedDSN = errors.New("unsupported database DSN")

	// ErrConnectingDB is returned when the database cannot be opened or does
	// not answer a ping.
	ErrConnectingDB = errors.New("error connecting database")

	// ErrMigratingDB is returned when applying the embedded migrations fails.
	ErrMigratingDB = errors.New("error migrating database")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or a statement
	// with a RETURNING clause fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrReadingResult is returned when the driver cannot report the number
	// of affected rows.
	ErrReadingResult = errors.New("failed to read statement result")
)
