package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"guestregistry/internal/delivery/http/helpers"
	"guestregistry/internal/domain"
)

type InvitationController struct {
	Logger  *slog.Logger
	Service domain.InvitationService
}

func NewInvitationController(logger *slog.Logger, svc domain.InvitationService) *InvitationController {
	return &InvitationController{
		Logger:  logger,
		Service: svc,
	}
}

// ReadSuccessResponse is the success response envelope for GET /invitations/{registrationID} (200).
type ReadSuccessResponse struct {
	Data  *domain.Invitation `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// Read godoc
// @Summary Read the authoritative invitation for a registration identifier
// @Description Looks the guest up by registration identifier in the store. Returns the guest name and registration identifier only when the record is accepted; a pending or rejected record yields not_confirmed with no guest data.
// @Tags invitations
// @Produce json
// @Param registrationID path string true "Registration identifier"
// @Success 200 {object} controllers.ReadSuccessResponse
// @Failure 403 {object} helpers.APIResponse "error.code: not_confirmed"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 503 {object} helpers.APIResponse "error.code: store_unavailable"
// @Router /invitations/{registrationID} [get]
func (c *InvitationController) Read(w http.ResponseWriter, r *http.Request) {
	registrationID := r.PathValue("registrationID")
	if registrationID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing registrationID")
		return
	}

	invitation, err := c.Service.Read(r.Context(), registrationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "invitation not found")
			return
		}
		if errors.Is(err, domain.ErrNotConfirmed) {
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeNotConfirmed, "this invitation is not yet confirmed")
			return
		}
		if errors.Is(err, domain.ErrStoreUnavailable) {
			helpers.WriteJSONError(w, http.StatusServiceUnavailable, helpers.ErrCodeStoreUnavailable, "record store unavailable, please retry")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}

	helpers.WriteJSONSuccess(w, http.StatusOK, invitation)
}

// DecodeTicketSuccessResponse is the success response envelope for GET /tickets (200).
type DecodeTicketSuccessResponse struct {
	Data  *domain.TicketPayload `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// DecodeTicket godoc
// @Summary Decode a bearer ticket payload
// @Description Decodes the self-contained ticket payload from the data query parameter. This path performs no store lookup and no status check; the result reflects the fields sealed into the ticket at send time and must not be treated as store-authoritative.
// @Tags invitations
// @Produce json
// @Param data query string true "Opaque ticket payload"
// @Success 200 {object} controllers.DecodeTicketSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: invalid_ticket"
// @Router /tickets [get]
func (c *InvitationController) DecodeTicket(w http.ResponseWriter, r *http.Request) {
	payload, err := c.Service.DecodeTicket(r.URL.Query().Get("data"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTicket) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeInvalidTicket, "ticket payload is not valid")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}

	helpers.WriteJSONSuccess(w, http.StatusOK, payload)
}
