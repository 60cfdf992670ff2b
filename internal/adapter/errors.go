package adapter

import "errors"

var (
	// ErrInvalidMailerURL is returned by [NewHTTPMailer] for a URL without
	// scheme or host.
	ErrInvalidMailerURL = errors.New("invalid mailer url")

	// ErrMailerRejected means the collaborator refused the message (4xx).
	// Retrying the same message will not help.
	ErrMailerRejected = errors.New("mailer rejected the message")

	// ErrMailerUnavailable covers transport failures and 5xx answers.
	ErrMailerUnavailable = errors.New("mailer is unavailable")
)
