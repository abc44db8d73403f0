package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"guestregistry/internal/domain"
)

type registrationService struct {
	repo      domain.GuestRepository
	idGen     domain.RegistrationIDGenerator
	codec     domain.TicketCodec
	email     domain.EmailService
	logger    *slog.Logger
	ticketURL string // base URL for ticket links, e.g. https://example.com/tickets
}

// NewRegistrationService creates a RegistrationService with the given collaborators.
// publicBaseURL is used to build the ticket link embedded in the guest confirmation.
func NewRegistrationService(
	repo domain.GuestRepository,
	idGen domain.RegistrationIDGenerator,
	codec domain.TicketCodec,
	email domain.EmailService,
	logger *slog.Logger,
	publicBaseURL string,
) domain.RegistrationService {
	return &registrationService{
		repo:      repo,
		idGen:     idGen,
		codec:     codec,
		email:     email,
		logger:    logger,
		ticketURL: strings.TrimSuffix(publicBaseURL, "/") + "/tickets",
	}
}

// validateSubmission trims the input in place and returns the names of missing
// required fields. requireScreenshot is false for operator manual entry.
func validateSubmission(input *domain.SubmissionInput, requireScreenshot bool) []string {
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Email = strings.TrimSpace(input.Email)
	input.Telephone = strings.TrimSpace(input.Telephone)

	var missing []string
	if input.FirstName == "" {
		missing = append(missing, "firstName")
	}
	if input.LastName == "" {
		missing = append(missing, "lastName")
	}
	if input.Email == "" {
		missing = append(missing, "email")
	}
	if input.Telephone == "" {
		missing = append(missing, "telephone")
	}
	if requireScreenshot && (input.Screenshot == nil || len(input.Screenshot.Content) == 0) {
		missing = append(missing, "paymentScreenshot")
	}
	return missing
}

func (s *registrationService) Submit(ctx context.Context, input domain.SubmissionInput) (*domain.SubmissionResult, error) {
	if missing := validateSubmission(&input, true); len(missing) > 0 {
		return nil, &domain.InvalidSubmissionError{MissingFields: missing}
	}

	now := time.Now()
	guest := domain.NewGuest(
		input.FirstName, input.LastName, input.Email, input.Telephone,
		s.idGen.New(), domain.StatusPending, now,
	)
	guest.PaymentScreenshotRef = input.Screenshot.Filename

	// Persist before notifying so a delivery failure never loses the record.
	if err := s.repo.Insert(ctx, guest); err != nil {
		return &domain.SubmissionResult{Guest: guest}, fmt.Errorf("insert guest: %w", err)
	}

	result := &domain.SubmissionResult{Guest: guest, Persisted: true}

	// The ticket payload is sealed at send time; it is never re-derived from
	// the store and carries no status.
	payload := domain.TicketPayload{
		FirstName:      guest.FirstName,
		LastName:       guest.LastName,
		Email:          guest.Email,
		Telephone:      guest.Telephone,
		RegistrationID: guest.RegistrationID,
		SubmittedAt:    guest.SubmittedAt,
	}

	guestErr := s.email.SendGuestConfirmation(ctx, &domain.GuestConfirmationEmailData{
		FirstName: guest.FirstName,
		LastName:  guest.LastName,
		Email:     guest.Email,
		Telephone: guest.Telephone,
		TicketURL: s.ticketURL + "?data=" + s.codec.Encode(payload),
	})
	operatorErr := s.email.SendOperatorAlert(ctx, &domain.OperatorAlertEmailData{
		FirstName:   guest.FirstName,
		LastName:    guest.LastName,
		Email:       guest.Email,
		Telephone:   guest.Telephone,
		SubmittedAt: guest.SubmittedAt,
	}, &domain.Attachment{
		Filename:    input.Screenshot.Filename,
		ContentType: input.Screenshot.ContentType,
		Content:     input.Screenshot.Content,
	})

	if guestErr != nil || operatorErr != nil {
		s.logger.ErrorContext(ctx, "notification delivery failed",
			"registration_id", guest.RegistrationID,
			"guest_send_err", guestErr,
			"operator_send_err", operatorErr,
		)
		return result, fmt.Errorf("%w: %w", domain.ErrDeliveryFailed, errors.Join(guestErr, operatorErr))
	}

	result.Delivered = true
	s.logger.InfoContext(ctx, "registration submitted",
		"registration_id", guest.RegistrationID, "email", guest.Email)
	return result, nil
}

func (s *registrationService) AddGuest(ctx context.Context, input domain.SubmissionInput, status domain.Status) (*domain.Guest, error) {
	if missing := validateSubmission(&input, false); len(missing) > 0 {
		return nil, &domain.InvalidSubmissionError{MissingFields: missing}
	}
	if _, err := domain.ParseStatus(string(status)); err != nil {
		return nil, err
	}

	now := time.Now()
	guest := domain.NewGuest(
		input.FirstName, input.LastName, input.Email, input.Telephone,
		s.idGen.New(), status, now,
	)
	if input.Screenshot != nil {
		guest.PaymentScreenshotRef = input.Screenshot.Filename
	}
	if err := s.repo.Insert(ctx, guest); err != nil {
		return nil, fmt.Errorf("insert guest: %w", err)
	}
	s.logger.InfoContext(ctx, "guest added manually",
		"registration_id", guest.RegistrationID, "status", guest.Status)
	return guest, nil
}

func (s *registrationService) UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Guest, error) {
	if _, err := domain.ParseStatus(string(status)); err != nil {
		return nil, err
	}
	guest, err := s.repo.UpdateStatus(ctx, id, status, time.Now())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update status: %w", err)
	}
	// Any transition is allowed; the log line is the audit trail.
	s.logger.InfoContext(ctx, "guest status updated",
		"guest_id", guest.ID,
		"registration_id", guest.RegistrationID,
		"status", guest.Status,
	)
	return guest, nil
}

func (s *registrationService) List(ctx context.Context, filter domain.StatusFilter, query string, p domain.PaginationParams) (*domain.GuestPage, error) {
	guests, err := s.repo.SelectAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("select guests: %w", err)
	}
	matched := MatchGuests(guests, filter, query)
	total := len(matched)

	start := (p.Page - 1) * p.PageSize
	if start < 0 {
		start = 0
	}
	if start > total {
		start = total
	}
	end := start + p.PageSize
	if end > total {
		end = total
	}
	return &domain.GuestPage{Guests: matched[start:end], Total: total}, nil
}

// MatchGuests is the read-side projection used by the review surface. A guest
// matches when its status equals the filter (or the filter is "all") and at
// least one of first name, last name, email, telephone, or registration id
// contains the query. Name, email, and registration id comparisons are
// case-insensitive; the telephone is compared as-is. Input order is preserved.
func MatchGuests(guests []*domain.Guest, filter domain.StatusFilter, query string) []*domain.Guest {
	q := strings.ToLower(strings.TrimSpace(query))
	matched := make([]*domain.Guest, 0, len(guests))
	for _, g := range guests {
		if filter != domain.FilterAll && g.Status != domain.Status(filter) {
			continue
		}
		if q != "" && !matchesQuery(g, q) {
			continue
		}
		matched = append(matched, g)
	}
	return matched
}

func matchesQuery(g *domain.Guest, q string) bool {
	return strings.Contains(strings.ToLower(g.FirstName), q) ||
		strings.Contains(strings.ToLower(g.LastName), q) ||
		strings.Contains(strings.ToLower(g.Email), q) ||
		strings.Contains(g.Telephone, q) ||
		strings.Contains(strings.ToLower(g.RegistrationID), q)
}
