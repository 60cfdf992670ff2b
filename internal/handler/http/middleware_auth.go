package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-tool-access/internal/logger"
	"github.com/MKhiriev/go-tool-access/internal/utils"
)

// auth is an HTTP middleware that enforces a valid user session.
//
// The session token is taken from the "session" cookie or, for API clients,
// from an "Authorization: Bearer" header. On success the user ID and the
// token are stored in the request context (see [utils.WithSession]) and the
// request logger gains a user_id field.
//
// Unknown, revoked and expired sessions are all answered with 401.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		token, err := sessionTokenFromRequest(r)
		if err != nil {
			log.Debug().Err(err).Msg("request without session")
			utils.WriteError(w, http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		userID, err := h.services.SessionService.Validate(ctx, token)
		if err != nil {
			status := statusFromError(err)
			if status >= http.StatusInternalServerError {
				log.Err(err).Msg("session validation failed")
			}
			utils.WriteError(w, status)
			return
		}

		ctx = utils.WithSession(ctx, userID, token)
		ctx = logger.WithUserID(ctx, userID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// syncAuth admits only requests carrying a service token signed for the
// billing-sync collaborator.
func (h *Handler) syncAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Warn().Err(ErrNoCredentials).Msg("internal route called without credentials")
			utils.WriteError(w, http.StatusUnauthorized)
			return
		}

		raw, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Warn().Err(err).Msg("internal route called with malformed credentials")
			utils.WriteError(w, http.StatusUnauthorized)
			return
		}

		token, err := h.services.BillingService.ParseSyncToken(r.Context(), raw)
		if err != nil {
			log.Warn().Err(err).Msg("service token rejected")
			utils.WriteError(w, http.StatusUnauthorized)
			return
		}

		log.Debug().Str("service", token.Service).Msg("service authenticated")
		next.ServeHTTP(w, r)
	})
}

// sessionTokenFromRequest prefers the cookie over the header.
func sessionTokenFromRequest(r *http.Request) (string, error) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", ErrNoCredentials
	}

	token, err := utils.ParseBearerToken(authHeader)
	if err != nil {
		return "", errors.Join(ErrInvalidAuthorizationHeader, err)
	}

	return token, nil
}
