package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/go-tool-access/internal/adapter"
	"github.com/MKhiriev/go-tool-access/internal/config"
	"github.com/MKhiriev/go-tool-access/internal/logger"
	"github.com/MKhiriev/go-tool-access/internal/store"
	"github.com/MKhiriev/go-tool-access/models"
)

// CallbackPath is where emailed magic links point. The token travels in the
// "token" query parameter.
const CallbackPath = "/api/auth/callback"

// authService is the concrete implementation of AuthService. It composes the
// magic-link and session services with user persistence and mail dispatch.
type authService struct {
	users     store.UserRepository
	magicLink MagicLinkService
	sessions  SessionService
	mailer    adapter.Mailer

	// baseURL is the public origin magic links are built on, without a
	// trailing slash.
	baseURL string

	now    func() time.Time
	logger *logger.Logger
}

// NewAuthService constructs an AuthService.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(users store.UserRepository, magicLink MagicLinkService, sessions SessionService, mailer adapter.Mailer, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		users:     users,
		magicLink: magicLink,
		sessions:  sessions,
		mailer:    mailer,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		now:       time.Now,
		logger:    logger,
	}
}

// RequestMagicLink finds or creates the user owning email, issues a token
// and hands the link to the mailer.
//
// Returns nil on success or:
//   - ErrInvalidDataProvided if email is empty after normalization.
//   - ErrStorageFailure if the user cannot be resolved or the token stored.
//   - ErrMagicLinkNotSent if the mailer fails.
func (a *authService) RequestMagicLink(ctx context.Context, email string) error {
	log := logger.FromContext(ctx)

	email = models.NormalizeEmail(email)
	if email == "" {
		return ErrInvalidDataProvided
	}

	user, err := a.users.FindOrCreateByEmail(ctx, email, a.now())
	if err != nil {
		log.Err(err).Str("func", "*authService.RequestMagicLink").Msg("resolving user by email failed")
		return fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}

	issued, err := a.magicLink.Issue(ctx, user.UserID)
	if err != nil {
		return err
	}

	msg := models.MagicLinkMessage{
		Email:     user.Email,
		Link:      a.callbackLink(issued.Token),
		ExpiresAt: issued.ExpiresAt,
	}
	if err = a.mailer.SendMagicLink(ctx, msg); err != nil {
		log.Err(err).Str("func", "*authService.RequestMagicLink").Int64("user_id", user.UserID).Msg("magic link dispatch failed")
		return fmt.Errorf("%w: %w", ErrMagicLinkNotSent, err)
	}

	log.Info().Str("func", "*authService.RequestMagicLink").Int64("user_id", user.UserID).Msg("magic link sent")
	return nil
}

// Login redeems a magic-link token and opens a session for its owner.
func (a *authService) Login(ctx context.Context, token string) (models.LoginResult, error) {
	log := logger.FromContext(ctx)

	userID, err := a.magicLink.Redeem(ctx, token)
	if err != nil {
		return models.LoginResult{}, err
	}

	session, err := a.sessions.Create(ctx, userID)
	if err != nil {
		return models.LoginResult{}, err
	}

	// last login is informational only
	if err = a.users.TouchLastLogin(ctx, userID, a.now()); err != nil {
		log.Warn().Err(err).Str("func", "*authService.Login").Int64("user_id", userID).Msg("updating last login failed")
	}

	log.Info().Str("func", "*authService.Login").Int64("user_id", userID).Msg("user logged in")

	return models.LoginResult{UserID: userID, Session: session}, nil
}

func (a *authService) Logout(ctx context.Context, sessionToken string) error {
	return a.sessions.Revoke(ctx, sessionToken)
}

// CurrentUser loads the profile behind an already validated session. A user
// that vanished since is reported as ErrInvalidSession.
func (a *authService) CurrentUser(ctx context.Context, userID int64) (models.User, error) {
	user, err := a.users.GetByID(ctx, userID)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return models.User{}, ErrInvalidSession
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.CurrentUser").Int64("user_id", userID).Msg("loading user failed")
		return models.User{}, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}

	return user, nil
}

func (a *authService) callbackLink(token string) string {
	return a.baseURL + CallbackPath + "?token=" + url.QueryEscape(token)
}
