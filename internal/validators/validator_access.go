package validators

import (
	"context"
	"fmt"
	"net/mail"
	"slices"

	"github.com/MKhiriev/go-tool-access/models"
)

const (
	FieldEmail       = "email"
	FieldToken       = "token"
	FieldUserID      = "user_id"
	FieldCheckoutRef = "checkout_ref"
	FieldStatus      = "status"
	FieldMode        = "mode"
)

const (
	// maxEmailLength is the RFC 5321 limit of a forward path.
	maxEmailLength = 254

	// maxTokenLength comfortably exceeds any token the server issues and
	// keeps oversized input away from the hasher.
	maxTokenLength = 512
)

// AccessValidator validates the inputs of the login and billing flows.
type AccessValidator struct{}

func NewAccessValidator() Validator {
	return &AccessValidator{}
}

// Validate implements [Validator]. Passing field names restricts validation
// to those fields.
func (v *AccessValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.MagicLinkRequest:
		return v.validateMagicLinkRequest(value, fields...)
	case *models.MagicLinkRequest:
		return v.validateMagicLinkRequest(*value, fields...)

	case models.CheckoutRefRequest:
		return v.validateEmail(value.Email)
	case *models.CheckoutRefRequest:
		return v.validateEmail(value.Email)

	case models.RedeemRequest:
		return v.validateToken(value.Token)
	case *models.RedeemRequest:
		return v.validateToken(value.Token)

	case models.SubscriptionUpdate:
		return v.validateSubscriptionUpdate(value, fields...)
	case *models.SubscriptionUpdate:
		return v.validateSubscriptionUpdate(*value, fields...)

	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, obj)
	}
}

func (v *AccessValidator) validateMagicLinkRequest(req models.MagicLinkRequest, fields ...string) error {
	for _, field := range fields {
		if field != FieldEmail {
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}
	return v.validateEmail(req.Email)
}

// validateEmail accepts a bare addr-spec only. Display names such as
// "Bob <bob@example.com>" are rejected.
func (v *AccessValidator) validateEmail(raw string) error {
	email := models.NormalizeEmail(raw)
	if email == "" {
		return ErrEmptyEmail
	}
	if len(email) > maxEmailLength {
		return fmt.Errorf("%w: longer than %d characters", ErrInvalidEmail, maxEmailLength)
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Name != "" || addr.Address != email {
		return ErrInvalidEmail
	}

	return nil
}

func (v *AccessValidator) validateToken(token string) error {
	if token == "" {
		return ErrEmptyToken
	}
	if len(token) > maxTokenLength {
		return ErrTokenTooLong
	}
	return nil
}

func (v *AccessValidator) validateSubscriptionUpdate(update models.SubscriptionUpdate, fields ...string) error {
	checks := map[string]func() error{
		FieldUserID: func() error {
			switch {
			case update.UserID < 0:
				return ErrInvalidUserID
			case update.UserID == 0 && update.CheckoutRef == "":
				return ErrNoSubscriptionUser
			case update.UserID != 0 && update.CheckoutRef != "":
				return ErrAmbiguousOwner
			}
			return nil
		},
		FieldStatus: func() error {
			if _, err := models.ParseSubscriptionStatus(update.Status); err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidStatus, err)
			}
			return nil
		},
		FieldMode: func() error {
			if _, err := models.ParseBillingMode(update.Mode); err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidMode, err)
			}
			return nil
		},
	}

	order := []string{FieldUserID, FieldStatus, FieldMode}
	if len(fields) > 0 {
		for _, field := range fields {
			if _, ok := checks[field]; !ok {
				return fmt.Errorf("%w: %s", ErrUnknownField, field)
			}
		}
		order = slices.DeleteFunc(order, func(f string) bool { return !slices.Contains(fields, f) })
	}

	for _, field := range order {
		if err := checks[field](); err != nil {
			return err
		}
	}

	return nil
}
