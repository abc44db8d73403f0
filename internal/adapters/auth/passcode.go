package auth

import (
	"golang.org/x/crypto/bcrypt"

	"guestregistry/internal/domain"
)

type bcryptVerifier struct {
	hash []byte
}

// NewBcryptVerifier returns a CredentialVerifier that compares the operator
// passcode against the configured bcrypt hash.
func NewBcryptVerifier(passcodeHash string) domain.CredentialVerifier {
	return &bcryptVerifier{hash: []byte(passcodeHash)}
}

func (v *bcryptVerifier) Verify(passcode string) error {
	if err := bcrypt.CompareHashAndPassword(v.hash, []byte(passcode)); err != nil {
		return domain.ErrInvalidCredentials
	}
	return nil
}

// HashPasscode generates a bcrypt hash for a passcode. Used by deployment
// tooling to produce OPERATOR_PASSCODE_HASH.
func HashPasscode(passcode string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(passcode), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
