package controllers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"guestregistry/internal/delivery/http/helpers"
	"guestregistry/internal/domain"
)

// maxSubmissionBytes bounds the multipart submission body (screenshot included).
const maxSubmissionBytes = 10 << 20

type RegistrationController struct {
	Logger  *slog.Logger
	Service domain.RegistrationService
}

func NewRegistrationController(logger *slog.Logger, svc domain.RegistrationService) *RegistrationController {
	return &RegistrationController{
		Logger:  logger,
		Service: svc,
	}
}

// SubmitSuccessResponse is the success response envelope for POST /registrations (201).
type SubmitSuccessResponse struct {
	Data  *domain.SubmissionResult `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

// Submit godoc
// @Summary Submit a public registration
// @Description Accepts a multipart form with firstName, lastName, email, telephone, and a paymentScreenshot file. Persists the guest with status pending and sends the confirmation and operator alert emails. The response reports both phases: persisted and delivered.
// @Tags registrations
// @Accept mpfd
// @Produce json
// @Param firstName formData string true "First name"
// @Param lastName formData string true "Last name"
// @Param email formData string true "Email address"
// @Param telephone formData string true "Telephone number"
// @Param paymentScreenshot formData file true "Payment confirmation image"
// @Success 201 {object} controllers.SubmitSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: invalid_submission (message lists missing fields)"
// @Failure 502 {object} helpers.APIResponse "error.code: delivery_failed (record is persisted)"
// @Failure 503 {object} helpers.APIResponse "error.code: store_unavailable"
// @Router /registrations [post]
func (c *RegistrationController) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSubmissionBytes)
	if err := r.ParseMultipartForm(maxSubmissionBytes); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid multipart form")
		return
	}

	input := domain.SubmissionInput{
		FirstName: r.FormValue("firstName"),
		LastName:  r.FormValue("lastName"),
		Email:     r.FormValue("email"),
		Telephone: r.FormValue("telephone"),
	}

	if file, header, err := r.FormFile("paymentScreenshot"); err == nil {
		defer file.Close()
		content, readErr := io.ReadAll(file)
		if readErr != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "could not read payment screenshot")
			return
		}
		input.Screenshot = &domain.Screenshot{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Content:     content,
		}
	}

	result, err := c.Service.Submit(r.Context(), input)
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
		if errors.Is(err, domain.ErrDeliveryFailed) {
			// The record is already persisted; tell the submitter which phase failed.
			helpers.WriteJSONError(w, http.StatusBadGateway, helpers.ErrCodeDeliveryFailed, "registration stored but notification delivery failed")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}

	helpers.WriteJSONSuccess(w, http.StatusCreated, result)
}
