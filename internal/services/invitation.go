package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"guestregistry/internal/domain"
)

type invitationService struct {
	repo  domain.GuestRepository
	codec domain.TicketCodec
}

// NewInvitationService creates an InvitationService backed by the guest store
// for the authoritative gate and by the codec for the bearer ticket path.
func NewInvitationService(repo domain.GuestRepository, codec domain.TicketCodec) domain.InvitationService {
	return &invitationService{repo: repo, codec: codec}
}

// Read grants invitation data only for accepted records. Non-accepted records
// yield ErrNotConfirmed with no guest data, so personal fields never leak
// through an unconfirmed invitation link.
func (s *invitationService) Read(ctx context.Context, registrationID string) (*domain.Invitation, error) {
	registrationID = strings.TrimSpace(registrationID)
	if registrationID == "" {
		return nil, domain.ErrNotFound
	}
	guest, err := s.repo.GetByRegistrationID(ctx, registrationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get guest: %w", err)
	}
	if guest.Status != domain.StatusAccepted {
		return nil, domain.ErrNotConfirmed
	}
	return &domain.Invitation{
		GuestName:      guest.FullName(),
		RegistrationID: guest.RegistrationID,
	}, nil
}

// DecodeTicket validates only the payload shape. The bearer path never
// consults the store and makes no freshness or authorization guarantee.
func (s *invitationService) DecodeTicket(encoded string) (*domain.TicketPayload, error) {
	return s.codec.Decode(encoded)
}
