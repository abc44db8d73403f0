package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for the invitation paths.
var (
	// ErrNotConfirmed means the record exists but is not accepted yet. No guest
	// data is returned with it.
	ErrNotConfirmed = errors.New("invitation not confirmed")
	// ErrInvalidTicket means a bearer ticket payload did not decode to the
	// expected shape.
	ErrInvalidTicket = errors.New("invalid ticket payload")
)

// Invitation is the authoritative, store-backed invitation result. It carries
// exactly the guest's display name and registration identifier; no contact or
// payment fields are exposed through this path.
// swagger:model Invitation
type Invitation struct {
	GuestName      string `json:"guest_name"`
	RegistrationID string `json:"registration_id"`
}

// TicketPayload is the self-contained bearer ticket embedded in the guest
// confirmation at send time. It is decoded without a store lookup and carries
// no status, so it must never be treated as store-authoritative.
// swagger:model TicketPayload
type TicketPayload struct {
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	Telephone      string    `json:"telephone"`
	RegistrationID string    `json:"registration_id"`
	SubmittedAt    time.Time `json:"submitted_at"`
}

// TicketCodec encodes and decodes bearer ticket payloads as opaque URL-safe
// strings. Decode fails only structurally.
type TicketCodec interface {
	Encode(payload TicketPayload) string
	Decode(encoded string) (*TicketPayload, error)
}

// InvitationService exposes the two invitation paths. They have different
// trust levels and are deliberately separate operations with separate result
// types.
type InvitationService interface {
	// Read is the authoritative gate: it looks the record up by registration
	// identifier and returns the invitation only when the record is accepted.
	// Returns ErrNotFound or ErrNotConfirmed otherwise.
	Read(ctx context.Context, registrationID string) (*Invitation, error)
	// DecodeTicket decodes a bearer ticket payload. It performs no store
	// lookup and no status check; the only validation is structural.
	DecodeTicket(encoded string) (*TicketPayload, error)
}
