package models

import "time"

// Session is one authenticated client context bound to a user.
// The bearer token itself lives only on the client; TokenHash is its digest.
type Session struct {
	ID        string     `json:"id"`
	UserID    int64      `json:"user_id"`
	TokenHash string     `json:"-"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt time.Time  `json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
}

// TableName returns the name of the database table
// associated with the Session model.
func (s Session) TableName() string {
	return "sessions"
}

// IsRevoked reports whether the session was explicitly revoked.
func (s Session) IsRevoked() bool {
	return s.RevokedAt != nil
}

// IsValid reports whether the session is not revoked and now is before the
// expiry.
func (s Session) IsValid(now time.Time) bool {
	return !s.IsRevoked() && now.Before(s.ExpiresAt)
}
