package ticket

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"guestregistry/internal/domain"
)

type base64JSONCodec struct{}

// NewCodec returns a TicketCodec that serializes payloads as JSON wrapped in
// URL-safe base64. The encoding is opaque but not signed: the ticket is a
// bearer convenience display, not an authorization credential.
func NewCodec() domain.TicketCodec {
	return &base64JSONCodec{}
}

func (c *base64JSONCodec) Encode(payload domain.TicketPayload) string {
	// Marshal of a plain struct cannot fail.
	raw, _ := json.Marshal(payload)
	return base64.RawURLEncoding.EncodeToString(raw)
}

func (c *base64JSONCodec) Decode(encoded string) (*domain.TicketPayload, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return nil, domain.ErrInvalidTicket
	}
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidTicket, err)
	}
	var payload domain.TicketPayload
	dec := json.NewDecoder(strings.NewReader(string(raw)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidTicket, err)
	}
	if payload.RegistrationID == "" || payload.FirstName == "" || payload.LastName == "" {
		return nil, domain.ErrInvalidTicket
	}
	return &payload, nil
}
