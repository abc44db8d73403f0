package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"guestregistry/internal/delivery/http/helpers"
	"guestregistry/internal/domain"
)

type GuestController struct {
	Logger  *slog.Logger
	Service domain.RegistrationService
}

func NewGuestController(logger *slog.Logger, svc domain.RegistrationService) *GuestController {
	return &GuestController{
		Logger:  logger,
		Service: svc,
	}
}

// ListGuestsSuccessResponse is the success response envelope for GET /admin/guests (200).
type ListGuestsSuccessResponse struct {
	Data  ListGuestsData    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListGuestsData is the data payload of the guest list response.
type ListGuestsData struct {
	Guests     []*domain.Guest        `json:"guests"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// List godoc
// @Summary List guest records for review
// @Description Returns guest records newest first, optionally narrowed by a status filter (all, pending, accepted, rejected) and a free-text query matched against name, email, telephone, and registration identifier.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter (default all)"
// @Param q query string false "Free-text search query"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListGuestsSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 503 {object} helpers.APIResponse "error.code: store_unavailable"
// @Router /admin/guests [get]
func (c *GuestController) List(w http.ResponseWriter, r *http.Request) {
	filter, err := domain.ParseStatusFilter(r.URL.Query().Get("status"))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	pagination := helpers.ParsePagination(r)

	page, err := c.Service.List(r.Context(), filter, r.URL.Query().Get("q"), pagination)
	if err != nil {
		if errors.Is(err, domain.ErrStoreUnavailable) {
			helpers.WriteJSONError(w, http.StatusServiceUnavailable, helpers.ErrCodeStoreUnavailable, "record store unavailable, please retry")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}

	helpers.WriteJSONSuccess(w, http.StatusOK, ListGuestsData{
		Guests:     page.Guests,
		Pagination: helpers.NewPaginationMeta(pagination.Page, pagination.PageSize, page.Total),
	})
}

// AddGuestRequest is the request body for POST /admin/guests.
type AddGuestRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Telephone string `json:"telephone"`
	Status    string `json:"status"` // optional, defaults to "pending"
}

// Validate implements helpers.Validator.
func (a *AddGuestRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(a.FirstName) == "" {
		errs = append(errs, "first_name is required")
	}
	if strings.TrimSpace(a.LastName) == "" {
		errs = append(errs, "last_name is required")
	}
	if strings.TrimSpace(a.Email) == "" {
		errs = append(errs, "email is required")
	}
	if strings.TrimSpace(a.Telephone) == "" {
		errs = append(errs, "telephone is required")
	}
	if a.Status != "" {
		if _, err := domain.ParseStatus(a.Status); err != nil {
			errs = append(errs, err.Error())
		}
	}
	return errs
}

// AddGuestSuccessResponse is the success response envelope for POST /admin/guests (201).
type AddGuestSuccessResponse struct {
	Data  *domain.Guest     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// Add godoc
// @Summary Add a guest record manually
// @Description Creates a guest record through operator entry. The initial status may be any of the three values and defaults to pending. No notifications are sent.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.AddGuestRequest true "Guest data"
// @Success 201 {object} controllers.AddGuestSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 503 {object} helpers.APIResponse "error.code: store_unavailable"
// @Router /admin/guests [post]
func (c *GuestController) Add(w http.ResponseWriter, r *http.Request) {
	var req AddGuestRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	status := domain.StatusPending
	if req.Status != "" {
		status, _ = domain.ParseStatus(req.Status)
	}

	guest, err := c.Service.AddGuest(r.Context(), domain.SubmissionInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Telephone: req.Telephone,
	}, status)
	if err != nil {
		var invalid *domain.InvalidSubmissionError
		if errors.As(err, &invalid) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeInvalidSubmission, invalid.Error())
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

	helpers.WriteJSONSuccess(w, http.StatusCreated, guest)
}

// UpdateStatusRequest is the request body for PATCH /admin/guests/{guestID}/status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Validate implements helpers.Validator.
func (u *UpdateStatusRequest) Validate() []string {
	if _, err := domain.ParseStatus(u.Status); err != nil {
		return []string{err.Error()}
	}
	return nil
}

// UpdateStatusSuccessResponse is the success response envelope for PATCH /admin/guests/{guestID}/status (200).
type UpdateStatusSuccessResponse struct {
	Data  *domain.Guest     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// UpdateStatus godoc
// @Summary Transition a guest record to a target status
// @Description Sets the record's status and refreshes its updated_at timestamp. Any status may be set from any other; re-applying the current status is a no-op success.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param guestID path string true "Guest record ID"
// @Param body body controllers.UpdateStatusRequest true "Target status"
// @Success 200 {object} controllers.UpdateStatusSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 503 {object} helpers.APIResponse "error.code: store_unavailable"
// @Router /admin/guests/{guestID}/status [patch]
func (c *GuestController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	guestID := r.PathValue("guestID")
	if guestID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing guestID")
		return
	}

	var req UpdateStatusRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	status, _ := domain.ParseStatus(req.Status)

	guest, err := c.Service.UpdateStatus(r.Context(), guestID, status)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "guest not found")
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

	helpers.WriteJSONSuccess(w, http.StatusOK, guest)
}
