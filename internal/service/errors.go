package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidOrExpiredToken is the single answer to every failed
	// redemption: unknown, already used, expired and lost-race tokens are
	// indistinguishable to the caller.
	ErrInvalidOrExpiredToken = errors.New("invalid or expired token")

	// ErrInvalidSession is returned for unknown, revoked and expired
	// sessions alike.
	ErrInvalidSession = errors.New("invalid session")

	// ErrStorageFailure wraps any unexpected repository error. It is never a
	// credential verdict.
	ErrStorageFailure = errors.New("storage failure")

	ErrTokenGenerationFailed = errors.New("token generation failed")
	ErrMagicLinkNotSent      = errors.New("magic link could not be sent")

	ErrInvalidCheckoutRef  = errors.New("invalid checkout reference")
	ErrInvalidServiceToken = errors.New("invalid service token")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
