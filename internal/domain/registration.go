package domain

import (
	"context"
	"fmt"
	"strings"
)

// InvalidSubmissionError reports which required submission fields were missing.
// It is user-correctable; no record is created and no notification is sent.
type InvalidSubmissionError struct {
	MissingFields []string
}

func (e *InvalidSubmissionError) Error() string {
	return fmt.Sprintf("invalid submission: missing %s", strings.Join(e.MissingFields, ", "))
}

// Screenshot is the payment-confirmation image attached to a public submission.
type Screenshot struct {
	Filename    string
	ContentType string
	Content     []byte
}

// SubmissionInput carries the fields of a public registration submission.
type SubmissionInput struct {
	FirstName  string
	LastName   string
	Email      string
	Telephone  string
	Screenshot *Screenshot
}

// SubmissionResult is the two-phase outcome of a submission: the record may be
// persisted even when notification delivery failed, and monitoring needs to see
// both flags to detect drift between "guest was emailed" and "guest is stored".
type SubmissionResult struct {
	Guest     *Guest `json:"guest"`
	Persisted bool   `json:"persisted"`
	Delivered bool   `json:"delivered"`
}

// PaginationParams selects a page of a list result.
type PaginationParams struct {
	Page     int
	PageSize int
}

// GuestPage is one page of guest records plus the total before paging.
type GuestPage struct {
	Guests []*Guest
	Total  int
}

// RegistrationService governs the guest registration lifecycle.
type RegistrationService interface {
	// Submit validates and processes a public registration: the record is
	// persisted with status pending, then the guest confirmation and operator
	// alert are sent. Returns *InvalidSubmissionError, ErrStoreUnavailable, or
	// ErrDeliveryFailed (record already persisted).
	Submit(ctx context.Context, input SubmissionInput) (*SubmissionResult, error)
	// AddGuest creates a record through operator manual entry. The initial
	// status is chosen by the operator and no notifications are sent.
	AddGuest(ctx context.Context, input SubmissionInput, status Status) (*Guest, error)
	// UpdateStatus transitions the record with the given primary key to the
	// target status. Any status may be set from any other; setting the current
	// status again is a no-op success that still refreshes UpdatedAt.
	UpdateStatus(ctx context.Context, id string, status Status) (*Guest, error)
	// List returns guests matching the status filter and free-text query,
	// newest first, paged.
	List(ctx context.Context, filter StatusFilter, query string, p PaginationParams) (*GuestPage, error)
}
