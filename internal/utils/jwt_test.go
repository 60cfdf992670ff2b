package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-tool-access/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateServiceToken_Success(t *testing.T) {
	token, err := GenerateServiceToken("billing-sync", "webhook", time.Hour, "secret-key")
	require.NoError(t, err)

	assert.NotEmpty(t, token.SignedString)
	assert.Equal(t, "webhook", token.Service)
	assert.WithinDuration(t, time.Now().Add(time.Hour), token.ExpiresAt, 2*time.Second)
	assert.Equal(t, token.SignedString, token.String())
}

func TestGenerateServiceToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name     string
		issuer   string
		service  string
		duration time.Duration
		key      string
	}{
		{"empty issuer", "", "svc", time.Hour, "key"},
		{"empty service", "iss", "", time.Hour, "key"},
		{"zero duration", "iss", "svc", 0, "key"},
		{"negative duration", "iss", "svc", -time.Hour, "key"},
		{"empty key", "iss", "svc", time.Hour, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateServiceToken(tt.issuer, tt.service, tt.duration, tt.key)
			require.Error(t, err)
		})
	}
}

func TestValidateAndParseServiceToken_Success(t *testing.T) {
	issued, err := GenerateServiceToken("billing-sync", "webhook", time.Hour, "secret-key")
	require.NoError(t, err)

	parsed, err := ValidateAndParseServiceToken(issued.SignedString, "secret-key", "billing-sync")
	require.NoError(t, err)
	assert.Equal(t, "webhook", parsed.Service)
	assert.Equal(t, issued.ExpiresAt.Unix(), parsed.ExpiresAt.Unix())
}

func TestValidateAndParseServiceToken_Rejections(t *testing.T) {
	valid, err := GenerateServiceToken("billing-sync", "webhook", time.Hour, "secret-key")
	require.NoError(t, err)

	expired := signClaims(t, jwt.SigningMethodHS256, models.ServiceClaims{RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    "billing-sync",
		Subject:   "webhook",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}})
	noExpiry := signClaims(t, jwt.SigningMethodHS256, models.ServiceClaims{RegisteredClaims: jwt.RegisteredClaims{
		Issuer:  "billing-sync",
		Subject: "webhook",
	}})
	noSubject := signClaims(t, jwt.SigningMethodHS256, models.ServiceClaims{RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    "billing-sync",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}})
	wrongAlg := signClaims(t, jwt.SigningMethodHS512, models.ServiceClaims{RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    "billing-sync",
		Subject:   "webhook",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}})

	tests := []struct {
		name   string
		token  string
		key    string
		issuer string
	}{
		{"wrong key", valid.SignedString, "other-key", "billing-sync"},
		{"wrong issuer", valid.SignedString, "secret-key", "someone-else"},
		{"expired", expired, "secret-key", "billing-sync"},
		{"no expiry", noExpiry, "secret-key", "billing-sync"},
		{"no subject", noSubject, "secret-key", "billing-sync"},
		{"wrong algorithm", wrongAlg, "secret-key", "billing-sync"},
		{"malformed", "not-a-jwt", "secret-key", "billing-sync"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateAndParseServiceToken(tt.token, tt.key, tt.issuer)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidServiceToken))
		})
	}
}

func TestParseBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{header: "Bearer abc", want: "abc"},
		{header: "bearer   abc ", want: "abc"},
		{header: "Basic abc", wantErr: true},
		{header: "Bearer", wantErr: true},
		{header: "", wantErr: true},
		{header: "Bearer a b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, err := ParseBearerToken(tt.header)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func signClaims(t *testing.T, method jwt.SigningMethod, claims models.ServiceClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString([]byte("secret-key"))
	require.NoError(t, err)
	return s
}
