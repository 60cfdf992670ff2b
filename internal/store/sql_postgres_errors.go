package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassification tells whether a failed statement could succeed on a
// later attempt. Repositories never retry on their own; the classification
// only reaches the log.
type ErrorClassification int

const (
	NonRetryable ErrorClassification = iota
	Retryable
)

// FailureReason names what went wrong in access-store terms.
type FailureReason string

const (
	ReasonUnknown        FailureReason = "unknown"
	ReasonConnectionLost FailureReason = "connection_lost"
	ReasonNotReady       FailureReason = "not_ready"
	// ReasonWriteConflict is a conditional write (token consume, session
	// revoke, subscription upsert) that lost to a concurrent transaction.
	// It is returned to the caller as a storage failure and is never turned
	// into a not-found answer.
	ReasonWriteConflict FailureReason = "write_conflict"
	ReasonDuplicate     FailureReason = "duplicate"
)

// Failure is the classification of one driver error.
type Failure struct {
	Class  ErrorClassification
	Reason FailureReason
}

var unknownFailure = Failure{Class: NonRetryable, Reason: ReasonUnknown}

// pgFailures lists the PostgreSQL codes the access store distinguishes.
// Codes not listed are non-retryable with an unknown reason.
var pgFailures = map[string]Failure{
	pgerrcode.ConnectionException:    {Retryable, ReasonConnectionLost},
	pgerrcode.ConnectionDoesNotExist: {Retryable, ReasonConnectionLost},
	pgerrcode.ConnectionFailure:      {Retryable, ReasonConnectionLost},
	pgerrcode.AdminShutdown:          {Retryable, ReasonConnectionLost},
	pgerrcode.CannotConnectNow:       {Retryable, ReasonNotReady},

	pgerrcode.TransactionRollback:  {Retryable, ReasonWriteConflict},
	pgerrcode.SerializationFailure: {Retryable, ReasonWriteConflict},
	pgerrcode.DeadlockDetected:     {Retryable, ReasonWriteConflict},

	pgerrcode.UniqueViolation: {NonRetryable, ReasonDuplicate},
}

// PostgresErrorClassifier implements [ErrorClassificator] for pgx errors.
type PostgresErrorClassifier struct{}

func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify implements [ErrorClassificator].
func (c *PostgresErrorClassifier) Classify(err error) Failure {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return unknownFailure
	}
	return ClassifyPgError(pgErr)
}

// ClassifyPgError looks pgErr.Code up in the access-store failure table.
func ClassifyPgError(pgErr *pgconn.PgError) Failure {
	if f, ok := pgFailures[pgErr.Code]; ok {
		return f
	}
	return unknownFailure
}

// IsRetryable reports whether err, as returned by any SQL repository, wraps a
// driver error that may succeed on a later attempt.
func IsRetryable(err error) bool {
	return classifyAny(err).Class == Retryable
}

// classifyAny classifies err without knowing which driver produced it.
func classifyAny(err error) Failure {
	if f := NewPostgresErrorClassifier().Classify(err); f != unknownFailure {
		return f
	}
	return NewSQLiteErrorClassifier().Classify(err)
}

// isUniqueViolation recognises a unique-constraint failure from either driver.
func isUniqueViolation(err error) bool {
	return classifyAny(err).Reason == ReasonDuplicate
}
