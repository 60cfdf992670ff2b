package models

import (
	"strings"
	"time"
)

// User is the stable identity behind every magic link and session.
//
// IsPro is an advisory cache refreshed by billing sync. Access decisions are
// always recomputed from the subscription record.
type User struct {
	// UserID is the server-assigned identifier.
	UserID int64 `json:"user_id"`

	// Email is stored normalized (see [NormalizeEmail]) and is unique.
	Email string `json:"email"`

	// IsPro caches the last computed entitlement. Never trust it for gating.
	IsPro bool `json:"is_pro"`

	// LastLoginAt is set on every successful magic-link login.
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// NormalizeEmail trims surrounding whitespace and lowercases the address so
// that lookups by email are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
