package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ServiceClaims is the claim set of a service token presented by the
// billing-sync collaborator on internal routes.
type ServiceClaims struct {
	jwt.RegisteredClaims
}

// Token is a signed service token together with the values extracted from
// it after validation.
type Token struct {
	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"token"`

	// Service is the "sub" claim: the name of the calling collaborator.
	Service string `json:"service"`

	ExpiresAt time.Time `json:"expires_at"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t Token) String() string {
	return t.SignedString
}
