package models

import "time"

// AuthToken is one issued magic-link login attempt.
//
// Only the digest of the plaintext token is persisted. A token moves from
// unused to used exactly once and is never touched again afterwards.
type AuthToken struct {
	ID        string     `json:"id"`
	UserID    int64      `json:"user_id"`
	TokenHash string     `json:"-"`
	ExpiresAt time.Time  `json:"expires_at"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the AuthToken model.
func (t AuthToken) TableName() string {
	return "auth_tokens"
}

// IsUsed reports whether the token has already been redeemed.
func (t AuthToken) IsUsed() bool {
	return t.UsedAt != nil
}

// IsExpired reports whether now is at or past the expiry.
func (t AuthToken) IsExpired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// IsRedeemable reports whether the token is unused and not yet expired.
func (t AuthToken) IsRedeemable(now time.Time) bool {
	return !t.IsUsed() && !t.IsExpired(now)
}

// IssuedToken is a freshly minted plaintext credential together with its
// expiry. The plaintext is handed out once and never stored.
type IssuedToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
