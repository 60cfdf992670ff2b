// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors of the authentication middlewares. Callers can match
// against them with [errors.Is].
var (
	// ErrNoCredentials is returned when a request carries neither a session
	// cookie nor an "Authorization" header.
	ErrNoCredentials = errors.New("no session cookie or `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is not of the form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	ErrInvalidJSON = errors.New("invalid JSON was passed")
)
