package validators

import (
	"context"
	"strings"
	"testing"

	"github.com/MKhiriev/go-tool-access/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// MagicLinkRequest
// ─────────────────────────────────────────────

func TestAccessValidator_MagicLinkRequest(t *testing.T) {
	v := NewAccessValidator()
	ctx := context.Background()

	tests := []struct {
		name    string
		email   string
		wantErr error
	}{
		{name: "plain address", email: "alice@example.com"},
		{name: "mixed case and spaces", email: "  Alice@Example.COM "},
		{name: "plus addressing", email: "alice+tools@example.com"},
		{name: "empty", email: "", wantErr: ErrEmptyEmail},
		{name: "whitespace only", email: "   ", wantErr: ErrEmptyEmail},
		{name: "missing at", email: "alice.example.com", wantErr: ErrInvalidEmail},
		{name: "display name", email: "Alice <alice@example.com>", wantErr: ErrInvalidEmail},
		{name: "two addresses", email: "a@example.com, b@example.com", wantErr: ErrInvalidEmail},
		{name: "too long", email: strings.Repeat("a", 250) + "@example.com", wantErr: ErrInvalidEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, models.MagicLinkRequest{Email: tt.email})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestAccessValidator_PointerAndUnknownField(t *testing.T) {
	v := NewAccessValidator()
	ctx := context.Background()

	require.NoError(t, v.Validate(ctx, &models.MagicLinkRequest{Email: "a@b.co"}))
	require.NoError(t, v.Validate(ctx, models.MagicLinkRequest{Email: "a@b.co"}, FieldEmail))
	require.ErrorIs(t, v.Validate(ctx, models.MagicLinkRequest{Email: "a@b.co"}, "name"), ErrUnknownField)
	require.ErrorIs(t, v.Validate(ctx, 42), ErrUnsupportedType)
}

func TestAccessValidator_CheckoutRefRequest(t *testing.T) {
	v := NewAccessValidator()

	require.NoError(t, v.Validate(context.Background(), models.CheckoutRefRequest{Email: "buyer@example.com"}))
	require.ErrorIs(t, v.Validate(context.Background(), &models.CheckoutRefRequest{}), ErrEmptyEmail)
}

// ─────────────────────────────────────────────
// RedeemRequest
// ─────────────────────────────────────────────

func TestAccessValidator_RedeemRequest(t *testing.T) {
	v := NewAccessValidator()
	ctx := context.Background()

	require.NoError(t, v.Validate(ctx, models.RedeemRequest{Token: "abc"}))
	require.ErrorIs(t, v.Validate(ctx, models.RedeemRequest{}), ErrEmptyToken)
	require.ErrorIs(t, v.Validate(ctx, &models.RedeemRequest{Token: strings.Repeat("x", maxTokenLength+1)}), ErrTokenTooLong)
}

// ─────────────────────────────────────────────
// SubscriptionUpdate
// ─────────────────────────────────────────────

func TestAccessValidator_SubscriptionUpdate(t *testing.T) {
	v := NewAccessValidator()
	ctx := context.Background()

	valid := models.SubscriptionUpdate{UserID: 1, Mode: "live", Status: "trialing"}

	tests := []struct {
		name    string
		mutate  func(u *models.SubscriptionUpdate)
		wantErr error
	}{
		{name: "valid by user id", mutate: func(*models.SubscriptionUpdate) {}},
		{name: "valid by checkout ref", mutate: func(u *models.SubscriptionUpdate) { u.UserID = 0; u.CheckoutRef = "ref" }},
		{name: "no owner", mutate: func(u *models.SubscriptionUpdate) { u.UserID = 0 }, wantErr: ErrNoSubscriptionUser},
		{name: "both owners", mutate: func(u *models.SubscriptionUpdate) { u.CheckoutRef = "ref" }, wantErr: ErrAmbiguousOwner},
		{name: "negative user", mutate: func(u *models.SubscriptionUpdate) { u.UserID = -1 }, wantErr: ErrInvalidUserID},
		{name: "status outside enum", mutate: func(u *models.SubscriptionUpdate) { u.Status = "lifetime" }, wantErr: ErrInvalidStatus},
		{name: "empty status", mutate: func(u *models.SubscriptionUpdate) { u.Status = "" }, wantErr: ErrInvalidStatus},
		{name: "unknown mode", mutate: func(u *models.SubscriptionUpdate) { u.Mode = "sandbox" }, wantErr: ErrInvalidMode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			update := valid
			tt.mutate(&update)

			err := v.Validate(ctx, update)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestAccessValidator_SubscriptionUpdate_EveryKnownStatusAccepted(t *testing.T) {
	v := NewAccessValidator()

	for _, status := range models.SubscriptionStatuses {
		update := models.SubscriptionUpdate{UserID: 1, Mode: "test", Status: string(status)}
		assert.NoError(t, v.Validate(context.Background(), update), status)
	}
}

func TestAccessValidator_SubscriptionUpdate_FieldScoping(t *testing.T) {
	v := NewAccessValidator()
	update := models.SubscriptionUpdate{UserID: 1, Mode: "bogus", Status: "active"}

	require.NoError(t, v.Validate(context.Background(), update, FieldStatus))
	require.ErrorIs(t, v.Validate(context.Background(), update, FieldMode), ErrInvalidMode)
	require.ErrorIs(t, v.Validate(context.Background(), update, "price"), ErrUnknownField)
}
