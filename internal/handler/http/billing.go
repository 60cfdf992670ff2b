package http

import (
	"net/http"

	"github.com/MKhiriev/go-tool-access/internal/logger"
	"github.com/MKhiriev/go-tool-access/internal/utils"
	"github.com/MKhiriev/go-tool-access/models"
)

func (h *Handler) createCheckoutRef(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.CheckoutRefRequest
	if err := decodeJSON(w, r, &req); err != nil {
		log.Err(err).Msg("invalid checkout ref request")
		utils.WriteError(w, http.StatusBadRequest)
		return
	}

	ref, err := h.services.BillingService.CreateCheckoutRef(r.Context(), req.Email)
	if err != nil {
		log.Err(err).Msg("creating checkout ref failed")
		utils.WriteError(w, statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.CheckoutRefResponse{CheckoutRef: ref}, http.StatusOK)
}

// syncSubscription mirrors one subscription update and replies with the
// entitlement it yields.
func (h *Handler) syncSubscription(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var update models.SubscriptionUpdate
	if err := decodeJSON(w, r, &update); err != nil {
		log.Err(err).Msg("invalid subscription update")
		utils.WriteError(w, http.StatusBadRequest)
		return
	}

	entitlement, err := h.services.BillingService.SyncSubscription(r.Context(), update)
	if err != nil {
		log.Err(err).Msg("subscription sync failed")
		utils.WriteError(w, statusFromError(err))
		return
	}

	utils.WriteJSON(w, entitlement, http.StatusOK)
}
