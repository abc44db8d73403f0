package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"guestregistry/config"
	authadapter "guestregistry/internal/adapters/auth"
	emailadapter "guestregistry/internal/adapters/email"
	"guestregistry/internal/adapters/regid"
	"guestregistry/internal/adapters/ticket"
	delivery "guestregistry/internal/delivery/http"
	"guestregistry/internal/delivery/http/controllers"
	"guestregistry/internal/delivery/http/middleware"
	"guestregistry/internal/repository/postgres"
	"guestregistry/internal/services"
)

// @title Guest Registry API
// @version 1.0
// @description Event guest registration, review, and invitation API.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger := config.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := db.PingContext(pingCtx); err != nil {
		logger.Warn("database not reachable at startup", "err", err)
	}
	cancel()

	mailer, err := emailadapter.NewMailer(emailadapter.MailerConfig{
		Provider:    cfg.Mail.Provider,
		FromAddress: cfg.Mail.FromAddress,
		FromName:    cfg.Mail.FromName,
		SES: emailadapter.SESConfig{
			Region:             cfg.Mail.SES.Region,
			AccessKeyID:        cfg.Mail.SES.AccessKeyID,
			SecretAccessKey:    cfg.Mail.SES.SecretAccessKey,
			InsecureSkipVerify: cfg.Mail.SES.InsecureSkipVerify,
		},
	})
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}

	issuer, verifier := authadapter.NewJWTTokens(cfg.Auth.JWTSecret)
	codec := ticket.NewCodec()

	guestRepo := postgres.NewGuestRepository(db)
	emailService := services.NewEmailService(mailer, emailadapter.NewTemplateRenderer(), cfg.Mail.OperatorEmail, logger)
	registrationService := services.NewRegistrationService(guestRepo, regid.NewGenerator(), codec, emailService, logger, cfg.PublicBaseURL)
	invitationService := services.NewInvitationService(guestRepo, codec)
	authService := services.NewAuthService(authadapter.NewBcryptVerifier(cfg.Auth.PasscodeHash), issuer, cfg.Auth.SessionTTL, logger)

	mux := delivery.NewRouter(
		controllers.NewRegistrationController(logger, registrationService),
		controllers.NewInvitationController(logger, invitationService),
		controllers.NewGuestController(logger, registrationService),
		controllers.NewAuthController(logger, authService),
		verifier,
	)

	handler := middleware.LoggingMiddleware(logger, middleware.CORS(cfg.AllowedOrigins, mux))
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "err", err)
	}
	logger.Info("server stopped")
}
