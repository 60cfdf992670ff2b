package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-tool-access/models"
	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidServiceToken is returned by [ValidateAndParseServiceToken] for
// any signature, algorithm, issuer, expiry or subject failure.
var ErrInvalidServiceToken = errors.New("invalid service token")

// GenerateServiceToken creates a signed HMAC-SHA256 JWT identifying a
// collaborating service.
//
// The token includes the following standard claims:
//   - Issuer    (iss): identifies who minted the token
//   - Subject   (sub): the name of the calling service
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus tokenDuration
//
// All parameters are required. Returns an error if any of them are empty or zero.
//
// Example usage:
//
//	token, err := utils.GenerateServiceToken("billing-sync", "stripe-webhook", time.Hour, "secret")
func GenerateServiceToken(issuer, service string, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || service == "" || tokenDuration <= 0 || signKey == "" {
		return models.Token{}, errors.New("invalid params for generating service token")
	}

	now := time.Now()
	claims := models.ServiceClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   service,
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing service token: %w", err)
	}

	return models.Token{
		SignedString: tokenString,
		Service:      service,
		ExpiresAt:    claims.ExpiresAt.Time,
	}, nil
}

// ValidateAndParseServiceToken validates tokenString and extracts the
// calling service.
//
// Validation includes:
//   - Signature verification with tokenSignKey, HS256 only
//   - Issuer (iss) claim check against tokenIssuer
//   - Expiration (exp) claim, which is required
//   - Subject (sub) claim presence
//
// Every failure wraps [ErrInvalidServiceToken].
func ValidateAndParseServiceToken(tokenString, tokenSignKey, tokenIssuer string) (models.Token, error) {
	claims := &models.ServiceClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrInvalidServiceToken, err)
	}

	if claims.Subject == "" {
		return models.Token{}, fmt.Errorf("%w: empty subject", ErrInvalidServiceToken)
	}

	return models.Token{
		SignedString: tokenString,
		Service:      claims.Subject,
		ExpiresAt:    claims.ExpiresAt.Time,
	}, nil
}

// ParseBearerToken extracts the credential from an "Authorization: Bearer x"
// header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}
