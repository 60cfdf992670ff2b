// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter holds the outbound collaborators of the access server.
//
// The only collaborator today is the mail-dispatch webhook that delivers
// magic links ([Mailer]). The HTTP implementation ([NewHTTPMailer]) builds
// its resty client lazily on first send; [NewLogMailer] replaces it in
// development when no webhook is configured.
//
// Transport failures are mapped by mapHTTPError to [ErrMailerRejected] and
// [ErrMailerUnavailable] so callers can use [errors.Is].
package adapter

import (
	"context"

	"github.com/MKhiriev/go-tool-access/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/mailer_mock.go -package=mock

// Mailer hands a magic link to the mail-dispatch collaborator.
type Mailer interface {
	// SendMagicLink delivers msg. The link embeds a live credential, so
	// implementations must not log it outside development.
	SendMagicLink(ctx context.Context, msg models.MagicLinkMessage) error
}
