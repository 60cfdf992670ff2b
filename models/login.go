package models

import "time"

// LoginResult is the outcome of a successful magic-link login: the owning
// user and the session minted for them.
type LoginResult struct {
	UserID  int64
	Session IssuedToken
}

// MagicLinkMessage is handed to the mail-dispatch collaborator. Link embeds
// the plaintext token and must not be logged outside development.
type MagicLinkMessage struct {
	Email     string    `json:"email"`
	Link      string    `json:"link"`
	ExpiresAt time.Time `json:"expires_at"`
}
