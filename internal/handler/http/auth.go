package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/MKhiriev/go-tool-access/internal/logger"
	"github.com/MKhiriev/go-tool-access/internal/service"
	"github.com/MKhiriev/go-tool-access/internal/utils"
	"github.com/MKhiriev/go-tool-access/models"
)

const (
	sessionCookieName = "session"

	// maxBodyBytes bounds every JSON request body.
	maxBodyBytes = 64 << 10

	loginErrorInvalid     = "invalid_or_expired"
	loginErrorUnavailable = "unavailable"
)

// requestMagicLink answers 202 for every well-formed email, whether or not
// an account existed before.
func (h *Handler) requestMagicLink(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.MagicLinkRequest
	if err := decodeJSON(w, r, &req); err != nil {
		log.Err(err).Msg("invalid magic link request")
		utils.WriteError(w, http.StatusBadRequest)
		return
	}

	if err := h.services.AuthService.RequestMagicLink(r.Context(), req.Email); err != nil {
		status := statusFromError(err)
		log.Err(err).Int("status", status).Msg("magic link request failed")
		utils.WriteError(w, status)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

// callback is the target of emailed links. Browsers get the session as a
// cookie and are redirected to the app.
func (h *Handler) callback(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	result, err := h.services.AuthService.Login(r.Context(), r.URL.Query().Get("token"))
	if err != nil {
		reason := loginErrorInvalid
		if !errors.Is(err, service.ErrInvalidOrExpiredToken) {
			reason = loginErrorUnavailable
			log.Err(err).Msg("login via callback failed")
		}
		http.Redirect(w, r, h.baseURL+"/login?error="+url.QueryEscape(reason), http.StatusSeeOther)
		return
	}

	http.SetCookie(w, h.sessionCookie(result.Session))
	http.Redirect(w, r, h.baseURL+"/", http.StatusSeeOther)
}

// redeem is the API variant of callback for clients that keep the session
// token themselves.
func (h *Handler) redeem(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.RedeemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		log.Err(err).Msg("invalid redeem request")
		utils.WriteError(w, http.StatusBadRequest)
		return
	}

	result, err := h.services.AuthService.Login(r.Context(), req.Token)
	if err != nil {
		status := statusFromError(err)
		if status >= http.StatusInternalServerError {
			log.Err(err).Msg("redeem failed")
		}
		utils.WriteError(w, status)
		return
	}

	utils.WriteJSON(w, models.SessionResponse{
		SessionToken: result.Session.Token,
		ExpiresAt:    result.Session.ExpiresAt,
	}, http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	token, _ := utils.GetSessionTokenFromContext(r.Context())
	if err := h.services.AuthService.Logout(r.Context(), token); err != nil {
		log.Err(err).Msg("logout failed")
		utils.WriteError(w, statusFromError(err))
		return
	}

	http.SetCookie(w, h.expiredSessionCookie())
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized)
		return
	}

	user, err := h.services.AuthService.CurrentUser(ctx, userID)
	if err != nil {
		log.Err(err).Msg("loading current user failed")
		utils.WriteError(w, statusFromError(err))
		return
	}

	entitlement, err := h.services.EntitlementService.GetEntitlement(ctx, userID)
	if err != nil {
		log.Err(err).Msg("computing entitlement failed")
		utils.WriteError(w, statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.MeResponse{User: user, Entitlement: entitlement}, http.StatusOK)
}

func (h *Handler) entitlement(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized)
		return
	}

	entitlement, err := h.services.EntitlementService.GetEntitlement(r.Context(), userID)
	if err != nil {
		logger.FromRequest(r).Err(err).Msg("computing entitlement failed")
		utils.WriteError(w, statusFromError(err))
		return
	}

	utils.WriteJSON(w, entitlement, http.StatusOK)
}

func (h *Handler) sessionCookie(session models.IssuedToken) *http.Cookie {
	return &http.Cookie{
		Name:     sessionCookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}

func (h *Handler) expiredSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}

// decodeJSON reads a single bounded JSON object into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return nil
}
