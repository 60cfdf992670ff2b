// Package utils provides general-purpose helpers shared by the server
// packages: type-safe context keys, JSON responses, the resty client wrapper,
// UUIDv7 ids and service-token signing.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey is the key used to store the user identifier in the context.
// Used together with GetUserIDFromContext for type-safe retrieval
// of the user ID from context.Context.
//
// The session middleware stores it after a successful validation.
var UserIDCtxKey = contextKey("userID")

// SessionTokenCtxKey holds the plaintext session token of the current
// request so that logout can revoke exactly that session.
var SessionTokenCtxKey = contextKey("sessionToken")

// WithSession returns a copy of ctx carrying the authenticated user and the
// session token they presented.
func WithSession(ctx context.Context, userID int64, sessionToken string) context.Context {
	ctx = context.WithValue(ctx, UserIDCtxKey, userID)
	return context.WithValue(ctx, SessionTokenCtxKey, sessionToken)
}

// GetSessionTokenFromContext returns the session token stored by
// [WithSession].
func GetSessionTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(SessionTokenCtxKey).(string)
	return token, ok && token != ""
}

// GetUserIDFromContext retrieves the user identifier from the context.
//
// Returns the user ID of type int64 and an ok flag:
//   - ok == true  — value is found and has the correct int64 type
//   - ok == false — value is missing or has an unexpected type
//
// Example usage:
//
//	userID, ok := utils.GetUserIDFromContext(ctx)
//	if !ok {
//	    // handle missing user in context
//	}
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int64)
	return userID, ok
}
