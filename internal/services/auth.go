package services

import (
	"context"
	"log/slog"
	"time"

	"guestregistry/internal/domain"
)

// operatorSubject identifies the single operator principal in session tokens.
const operatorSubject = "operator"

type authService struct {
	credentials domain.CredentialVerifier
	issuer      domain.TokenIssuer
	sessionTTL  time.Duration
	logger      *slog.Logger
}

// NewAuthService creates the review-surface Authenticator: it checks the
// shared operator credential and issues a short-lived session token.
func NewAuthService(credentials domain.CredentialVerifier, issuer domain.TokenIssuer, sessionTTL time.Duration, logger *slog.Logger) domain.AuthService {
	return &authService{
		credentials: credentials,
		issuer:      issuer,
		sessionTTL:  sessionTTL,
		logger:      logger,
	}
}

func (s *authService) Login(ctx context.Context, passcode string) (string, error) {
	if err := s.credentials.Verify(passcode); err != nil {
		s.logger.WarnContext(ctx, "operator login rejected")
		return "", domain.ErrInvalidCredentials
	}
	token, err := s.issuer.Issue(operatorSubject, s.sessionTTL)
	if err != nil {
		return "", err
	}
	s.logger.InfoContext(ctx, "operator session issued", "ttl", s.sessionTTL)
	return token, nil
}
