package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guestregistry/internal/domain"
)

func validSubmission() domain.SubmissionInput {
	return domain.SubmissionInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Telephone: "+250788000001",
		Screenshot: &domain.Screenshot{
			Filename:    "payment.png",
			ContentType: "image/png",
			Content:     []byte{0x89, 0x50, 0x4e, 0x47},
		},
	}
}

func newTestRegistrationService(repo domain.GuestRepository, email domain.EmailService) domain.RegistrationService {
	return NewRegistrationService(repo, &sequenceIDGenerator{}, stubCodec{}, email, testLogger(), "https://party.example.com")
}

func TestRegistrationService_Submit_MissingFields(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*domain.SubmissionInput)
		wantMissing []string
	}{
		{
			name:        "missing telephone",
			mutate:      func(in *domain.SubmissionInput) { in.Telephone = "  " },
			wantMissing: []string{"telephone"},
		},
		{
			name:        "missing screenshot",
			mutate:      func(in *domain.SubmissionInput) { in.Screenshot = nil },
			wantMissing: []string{"paymentScreenshot"},
		},
		{
			name: "everything missing",
			mutate: func(in *domain.SubmissionInput) {
				*in = domain.SubmissionInput{}
			},
			wantMissing: []string{"firstName", "lastName", "email", "telephone", "paymentScreenshot"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockGuestRepository()
			email := &mockEmailService{}
			svc := newTestRegistrationService(repo, email)

			input := validSubmission()
			tt.mutate(&input)

			result, err := svc.Submit(context.Background(), input)
			require.Nil(t, result)

			var invalid *domain.InvalidSubmissionError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.wantMissing, invalid.MissingFields)

			// No record is created and no notification is sent.
			assert.Zero(t, repo.calls["Insert"])
			assert.Empty(t, email.guestSends)
			assert.Empty(t, email.operatorSends)
		})
	}
}

func TestRegistrationService_Submit_Success(t *testing.T) {
	repo := newMockGuestRepository()
	email := &mockEmailService{}
	svc := newTestRegistrationService(repo, email)

	before := time.Now()
	result, err := svc.Submit(context.Background(), validSubmission())
	require.NoError(t, err)

	assert.True(t, result.Persisted)
	assert.True(t, result.Delivered)

	guest := result.Guest
	require.NotNil(t, guest)
	assert.NotEmpty(t, guest.ID)
	assert.Equal(t, "REG-TEST-A", guest.RegistrationID)
	assert.Equal(t, domain.StatusPending, guest.Status)
	assert.Equal(t, guest.SubmittedAt, guest.UpdatedAt)
	assert.False(t, guest.SubmittedAt.Before(before))
	assert.Equal(t, "payment.png", guest.PaymentScreenshotRef)

	// Guest confirmation carries the sealed ticket link.
	require.Len(t, email.guestSends, 1)
	confirmation := email.guestSends[0]
	assert.Equal(t, "ada@example.com", confirmation.Email)
	assert.Contains(t, confirmation.TicketURL, "https://party.example.com/tickets?data=")

	payload, err := stubCodec{}.Decode(confirmation.TicketURL[len("https://party.example.com/tickets?data="):])
	require.NoError(t, err)
	assert.Equal(t, "REG-TEST-A", payload.RegistrationID)
	assert.Equal(t, "Ada", payload.FirstName)

	// Operator alert carries the payment screenshot.
	require.Len(t, email.operatorSends, 1)
	require.Len(t, email.attachments, 1)
	assert.Equal(t, "payment.png", email.attachments[0].Filename)
	assert.Equal(t, "image/png", email.attachments[0].ContentType)
}

func TestRegistrationService_Submit_StoreUnavailable(t *testing.T) {
	repo := newMockGuestRepository()
	repo.insertErr = domain.ErrStoreUnavailable
	email := &mockEmailService{}
	svc := newTestRegistrationService(repo, email)

	result, err := svc.Submit(context.Background(), validSubmission())
	require.ErrorIs(t, err, domain.ErrStoreUnavailable)
	require.NotNil(t, result)
	assert.False(t, result.Persisted)
	assert.False(t, result.Delivered)

	// Nothing is sent when the record could not be stored.
	assert.Empty(t, email.guestSends)
	assert.Empty(t, email.operatorSends)
}

func TestRegistrationService_Submit_DeliveryFailure(t *testing.T) {
	tests := []struct {
		name        string
		guestErr    error
		operatorErr error
	}{
		{name: "guest send fails", guestErr: errSMTPDown},
		{name: "operator send fails", operatorErr: errSMTPDown},
		{name: "both fail", guestErr: errSMTPDown, operatorErr: errSMTPDown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockGuestRepository()
			email := &mockEmailService{guestErr: tt.guestErr, operatorErr: tt.operatorErr}
			svc := newTestRegistrationService(repo, email)

			result, err := svc.Submit(context.Background(), validSubmission())
			require.ErrorIs(t, err, domain.ErrDeliveryFailed)

			// The record persists regardless of delivery outcome.
			require.NotNil(t, result)
			assert.True(t, result.Persisted)
			assert.False(t, result.Delivered)
			assert.Equal(t, 1, repo.calls["Insert"])
		})
	}
}

func TestRegistrationService_AddGuest(t *testing.T) {
	repo := newMockGuestRepository()
	email := &mockEmailService{}
	svc := newTestRegistrationService(repo, email)

	input := validSubmission()
	input.Screenshot = nil

	guest, err := svc.AddGuest(context.Background(), input, domain.StatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAccepted, guest.Status)
	assert.NotEmpty(t, guest.RegistrationID)

	// Manual entry sends no notifications.
	assert.Empty(t, email.guestSends)
	assert.Empty(t, email.operatorSends)
}

func TestRegistrationService_AddGuest_MissingFields(t *testing.T) {
	svc := newTestRegistrationService(newMockGuestRepository(), &mockEmailService{})

	input := validSubmission()
	input.Email = ""
	input.Screenshot = nil

	_, err := svc.AddGuest(context.Background(), input, domain.StatusPending)
	var invalid *domain.InvalidSubmissionError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, []string{"email"}, invalid.MissingFields)
}

func TestRegistrationService_UpdateStatus(t *testing.T) {
	repo := newMockGuestRepository()
	svc := newTestRegistrationService(repo, &mockEmailService{})

	guest, err := svc.AddGuest(context.Background(), domain.SubmissionInput{
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Telephone: "0788000001",
	}, domain.StatusPending)
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), guest.ID, domain.StatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAccepted, updated.Status)
	assert.True(t, updated.UpdatedAt.After(updated.SubmittedAt) || updated.UpdatedAt.Equal(updated.SubmittedAt))

	// Transitions are permissive: accepted records may move back to pending.
	reverted, err := svc.UpdateStatus(context.Background(), guest.ID, domain.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, reverted.Status)
}

func TestRegistrationService_UpdateStatus_SameValueIsNoOpSuccess(t *testing.T) {
	repo := newMockGuestRepository()
	svc := newTestRegistrationService(repo, &mockEmailService{})

	guest, err := svc.AddGuest(context.Background(), domain.SubmissionInput{
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Telephone: "0788000001",
	}, domain.StatusAccepted)
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), guest.ID, domain.StatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAccepted, updated.Status)
	// UpdatedAt is refreshed; every other field is untouched.
	assert.False(t, updated.UpdatedAt.Before(guest.UpdatedAt))
	assert.Equal(t, guest.FirstName, updated.FirstName)
	assert.Equal(t, guest.LastName, updated.LastName)
	assert.Equal(t, guest.Email, updated.Email)
	assert.Equal(t, guest.Telephone, updated.Telephone)
	assert.Equal(t, guest.RegistrationID, updated.RegistrationID)
	assert.Equal(t, guest.SubmittedAt, updated.SubmittedAt)
}

func TestRegistrationService_UpdateStatus_NotFound(t *testing.T) {
	svc := newTestRegistrationService(newMockGuestRepository(), &mockEmailService{})
	_, err := svc.UpdateStatus(context.Background(), "missing", domain.StatusAccepted)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegistrationService_UpdateStatus_InvalidStatus(t *testing.T) {
	svc := newTestRegistrationService(newMockGuestRepository(), &mockEmailService{})
	_, err := svc.UpdateStatus(context.Background(), "g1", domain.Status("archived"))
	require.Error(t, err)
}

func TestRegistrationService_List_Paging(t *testing.T) {
	repo := newMockGuestRepository()
	svc := newTestRegistrationService(repo, &mockEmailService{})

	for _, name := range []string{"Ada", "Bob", "Cleo", "Dan", "Eve"} {
		_, err := svc.AddGuest(context.Background(), domain.SubmissionInput{
			FirstName: name, LastName: "Guest", Email: name + "@example.com", Telephone: "0788000000",
		}, domain.StatusPending)
		require.NoError(t, err)
	}

	page, err := svc.List(context.Background(), domain.FilterAll, "", domain.PaginationParams{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, page.Total)
	require.Len(t, page.Guests, 2)
	// Newest first: the last added guest leads.
	assert.Equal(t, "Eve", page.Guests[0].FirstName)

	last, err := svc.List(context.Background(), domain.FilterAll, "", domain.PaginationParams{Page: 3, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, last.Guests, 1)
	assert.Equal(t, "Ada", last.Guests[0].FirstName)

	beyond, err := svc.List(context.Background(), domain.FilterAll, "", domain.PaginationParams{Page: 9, PageSize: 2})
	require.NoError(t, err)
	assert.Empty(t, beyond.Guests)
	assert.Equal(t, 5, beyond.Total)
}

func TestMatchGuests(t *testing.T) {
	ada := &domain.Guest{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Telephone: "0788111222", RegistrationID: "REG-1-AAAAA", Status: domain.StatusPending}
	bob := &domain.Guest{FirstName: "Bob", LastName: "Builder", Email: "bob@example.com", Telephone: "0788333444", RegistrationID: "REG-2-BBBBB", Status: domain.StatusAccepted}
	guests := []*domain.Guest{ada, bob}

	tests := []struct {
		name   string
		filter domain.StatusFilter
		query  string
		want   []*domain.Guest
	}{
		{"accepted filter with matching query", domain.StatusFilter(domain.StatusAccepted), "bob", []*domain.Guest{bob}},
		{"all filter with unmatched query", domain.FilterAll, "xyz", []*domain.Guest{}},
		{"all filter no query keeps order", domain.FilterAll, "", []*domain.Guest{ada, bob}},
		{"query is case-insensitive", domain.FilterAll, "ADA", []*domain.Guest{ada}},
		{"query matches last name", domain.FilterAll, "builder", []*domain.Guest{bob}},
		{"query matches email", domain.FilterAll, "ada@", []*domain.Guest{ada}},
		{"query matches telephone digits", domain.FilterAll, "333444", []*domain.Guest{bob}},
		{"query matches registration id", domain.FilterAll, "reg-1", []*domain.Guest{ada}},
		{"status filter without query", domain.StatusFilter(domain.StatusPending), "", []*domain.Guest{ada}},
		{"status filter excludes query match", domain.StatusFilter(domain.StatusRejected), "bob", []*domain.Guest{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchGuests(guests, tt.filter, tt.query)
			assert.Equal(t, tt.want, got)
		})
	}
}
