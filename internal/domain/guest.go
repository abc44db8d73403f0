package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Sentinel errors shared across guest operations.
var (
	// ErrNotFound means an identifier did not resolve to a record. It is a
	// terminal negative result, not an infrastructure fault.
	ErrNotFound = errors.New("not found")
	// ErrStoreUnavailable means the record store could not be reached. Callers
	// may retry the whole request; the service layer never retries.
	ErrStoreUnavailable = errors.New("record store unavailable")
	// ErrDeliveryFailed means one or both notification sends failed. The guest
	// record is already persisted when this is returned.
	ErrDeliveryFailed = errors.New("notification delivery failed")
	// ErrDuplicateRegistrationID means an insert collided on the unique
	// registration identifier column.
	ErrDuplicateRegistrationID = errors.New("registration id already exists")
)

// Status is the review state of a guest record.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// ParseStatus validates s against the three-value status enumeration.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusPending:
		return StatusPending, nil
	case StatusAccepted:
		return StatusAccepted, nil
	case StatusRejected:
		return StatusRejected, nil
	}
	return "", fmt.Errorf("invalid status %q", s)
}

// StatusFilter selects guests for list queries: "all" or one of the statuses.
type StatusFilter string

const FilterAll StatusFilter = "all"

// ParseStatusFilter validates f as "all" or a status value. Empty means "all".
func ParseStatusFilter(f string) (StatusFilter, error) {
	f = strings.ToLower(strings.TrimSpace(f))
	if f == "" || f == string(FilterAll) {
		return FilterAll, nil
	}
	st, err := ParseStatus(f)
	if err != nil {
		return "", err
	}
	return StatusFilter(st), nil
}

// Guest represents a single registration record.
// swagger:model Guest
type Guest struct {
	ID                   string    `json:"id"`
	FirstName            string    `json:"first_name"`
	LastName             string    `json:"last_name"`
	Email                string    `json:"email"`
	Telephone            string    `json:"telephone"`
	RegistrationID       string    `json:"registration_id"`
	SubmittedAt          time.Time `json:"submitted_at"`
	Status               Status    `json:"status"`
	UpdatedAt            time.Time `json:"updated_at"`
	PaymentScreenshotRef string    `json:"payment_screenshot_ref,omitempty"`
}

// FullName returns the guest's display name.
func (g *Guest) FullName() string {
	return g.FirstName + " " + g.LastName
}

// NewGuest returns a new Guest. ID is set by the repository on insert.
// UpdatedAt starts equal to SubmittedAt and is refreshed on status changes only.
func NewGuest(firstName, lastName, email, telephone, registrationID string, status Status, submittedAt time.Time) *Guest {
	return &Guest{
		FirstName:      firstName,
		LastName:       lastName,
		Email:          email,
		Telephone:      telephone,
		RegistrationID: registrationID,
		SubmittedAt:    submittedAt,
		Status:         status,
		UpdatedAt:      submittedAt,
	}
}

// GuestRepository defines storage operations for guest records.
type GuestRepository interface {
	// Insert stores a new record and sets its ID.
	Insert(ctx context.Context, guest *Guest) error
	// SelectAll returns every record ordered by submission time, newest first.
	SelectAll(ctx context.Context) ([]*Guest, error)
	// GetByRegistrationID returns the record with the given registration
	// identifier, or ErrNotFound.
	GetByRegistrationID(ctx context.Context, registrationID string) (*Guest, error)
	// UpdateStatus sets status and updatedAt on the record with the given
	// primary key in a single write and returns the updated record, or
	// ErrNotFound. Other fields are untouched.
	UpdateStatus(ctx context.Context, id string, status Status, updatedAt time.Time) (*Guest, error)
}

// RegistrationIDGenerator produces unique, URL-safe registration identifiers.
// Generation is total: it never fails or blocks.
type RegistrationIDGenerator interface {
	New() string
}
