package domain

import (
	"context"
	"errors"
	"time"
)

// ErrInvalidCredentials means the operator passcode did not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

// CredentialVerifier checks the shared operator passcode against its stored hash.
type CredentialVerifier interface {
	Verify(passcode string) error
}

// TokenIssuer issues session tokens for an authenticated operator.
type TokenIssuer interface {
	Issue(subject string, ttl time.Duration) (string, error)
}

// TokenVerifier verifies a session token and returns its subject.
type TokenVerifier interface {
	Verify(token string) (subject string, err error)
}

// AuthService issues short-lived operator sessions. Every review-surface
// operation requires a valid session token.
type AuthService interface {
	Login(ctx context.Context, passcode string) (token string, err error)
}
