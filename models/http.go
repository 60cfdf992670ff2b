package models

import "time"

// MagicLinkRequest is the body of POST /api/auth/magic-link.
type MagicLinkRequest struct {
	Email string `json:"email"`
}

// RedeemRequest is the body of POST /api/auth/redeem.
type RedeemRequest struct {
	Token string `json:"token"`
}

// SessionResponse is returned to API clients after a successful redemption.
type SessionResponse struct {
	SessionToken string    `json:"session_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// MeResponse is returned by GET /api/me.
type MeResponse struct {
	User        User        `json:"user"`
	Entitlement Entitlement `json:"entitlement"`
}

// CheckoutRefRequest is the body of POST /api/billing/checkout-ref.
type CheckoutRefRequest struct {
	Email string `json:"email"`
}

// CheckoutRefResponse carries the sealed pending-checkout email.
type CheckoutRefResponse struct {
	CheckoutRef string `json:"checkout_ref"`
}

// VersionResponse is returned by GET /api/version.
type VersionResponse struct {
	Version string `json:"version"`
	Date    string `json:"date"`
	Commit  string `json:"commit"`
}
