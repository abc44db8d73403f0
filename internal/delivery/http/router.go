package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "guestregistry/docs"
	"guestregistry/internal/delivery/http/controllers"
	"guestregistry/internal/delivery/http/middleware"
	"guestregistry/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
func NewRouter(
	registrationController *controllers.RegistrationController,
	invitationController *controllers.InvitationController,
	guestController *controllers.GuestController,
	authController *controllers.AuthController,
	verifier domain.TokenVerifier,
) *http.ServeMux {
	mux := http.NewServeMux()
	requireSession := middleware.RequireSession(verifier)

	// Public surface
	mux.HandleFunc("POST /registrations", registrationController.Submit)
	mux.HandleFunc("GET /invitations/{registrationID}", invitationController.Read)
	mux.HandleFunc("GET /tickets", invitationController.DecodeTicket)

	// Auth
	mux.HandleFunc("POST /auth/login", authController.Login)

	// Review surface (session required)
	mux.HandleFunc("GET /admin/guests", requireSession(guestController.List))
	mux.HandleFunc("POST /admin/guests", requireSession(guestController.Add))
	mux.HandleFunc("PATCH /admin/guests/{guestID}/status", requireSession(guestController.UpdateStatus))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
