package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	h "guestregistry/internal/delivery/http/helpers"
	"guestregistry/internal/domain"
)

// LoginRequest is the request body for POST /auth/login.
type LoginRequest struct {
	Passcode string `json:"passcode"`
}

// Validate implements helpers.Validator.
func (l LoginRequest) Validate() []string {
	if l.Passcode == "" {
		return []string{"passcode is required"}
	}
	return nil
}

// LoginResponse is the response body for POST /auth/login.
type LoginResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
}

type AuthController struct {
	Logger  *slog.Logger
	Service domain.AuthService
}

func NewAuthController(logger *slog.Logger, svc domain.AuthService) *AuthController {
	return &AuthController{
		Logger:  logger,
		Service: svc,
	}
}

// Login godoc
// @Summary Open an operator session
// @Description Verifies the operator passcode and returns a short-lived Bearer session token for the review surface.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Operator passcode"
// @Success 200 {object} helpers.APIResponse "data contains token and token_type"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /auth/login [post]
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	token, err := c.Service.Login(r.Context(), req.Passcode)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid passcode")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}

	h.WriteJSONSuccess(w, http.StatusOK, LoginResponse{Token: token, TokenType: "Bearer"})
}
