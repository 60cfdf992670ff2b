package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyEmail         = errors.New("email is required")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrEmptyToken         = errors.New("token is required")
	ErrTokenTooLong       = errors.New("token is too long")
	ErrNoSubscriptionUser = errors.New("either user_id or checkout_ref is required")
	ErrAmbiguousOwner     = errors.New("user_id and checkout_ref are mutually exclusive")
	ErrInvalidUserID      = errors.New("invalid user ID")
	ErrInvalidStatus      = errors.New("invalid subscription status")
	ErrInvalidMode        = errors.New("invalid billing mode")
)
