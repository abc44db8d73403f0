package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"guestregistry/internal/delivery/http/helpers"
	"guestregistry/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeRegistrationService implements domain.RegistrationService for handler tests.
type fakeRegistrationService struct {
	submitResult *domain.SubmissionResult
	submitErr    error
	lastSubmit   *domain.SubmissionInput

	addResult *domain.Guest
	addErr    error
	lastAdd   *domain.SubmissionInput
	lastAddSt domain.Status

	updateResult *domain.Guest
	updateErr    error
	lastUpdateID string
	lastUpdateSt domain.Status

	listResult *domain.GuestPage
	listErr    error
	lastFilter domain.StatusFilter
	lastQuery  string
	lastParams domain.PaginationParams
}

func (f *fakeRegistrationService) Submit(ctx context.Context, input domain.SubmissionInput) (*domain.SubmissionResult, error) {
	f.lastSubmit = &input
	return f.submitResult, f.submitErr
}

func (f *fakeRegistrationService) AddGuest(ctx context.Context, input domain.SubmissionInput, status domain.Status) (*domain.Guest, error) {
	f.lastAdd = &input
	f.lastAddSt = status
	return f.addResult, f.addErr
}

func (f *fakeRegistrationService) UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Guest, error) {
	f.lastUpdateID = id
	f.lastUpdateSt = status
	return f.updateResult, f.updateErr
}

func (f *fakeRegistrationService) List(ctx context.Context, filter domain.StatusFilter, query string, p domain.PaginationParams) (*domain.GuestPage, error) {
	f.lastFilter = filter
	f.lastQuery = query
	f.lastParams = p
	return f.listResult, f.listErr
}

// fakeInvitationService implements domain.InvitationService for handler tests.
type fakeInvitationService struct {
	readResult   *domain.Invitation
	readErr      error
	lastReadID   string
	decodeResult *domain.TicketPayload
	decodeErr    error
	lastEncoded  string
}

func (f *fakeInvitationService) Read(ctx context.Context, registrationID string) (*domain.Invitation, error) {
	f.lastReadID = registrationID
	return f.readResult, f.readErr
}

func (f *fakeInvitationService) DecodeTicket(encoded string) (*domain.TicketPayload, error) {
	f.lastEncoded = encoded
	return f.decodeResult, f.decodeErr
}

// fakeAuthService implements domain.AuthService for handler tests.
type fakeAuthService struct {
	token        string
	err          error
	lastPasscode string
}

func (f *fakeAuthService) Login(ctx context.Context, passcode string) (string, error) {
	f.lastPasscode = passcode
	return f.token, f.err
}

// decodeEnvelope unmarshals the response body into an APIResponse with the
// data re-decoded into dest (may be nil when only the error is of interest).
func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, dest any) *helpers.APIError {
	t.Helper()
	var envelope struct {
		Data  json.RawMessage   `json:"data"`
		Error *helpers.APIError `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	if dest != nil && len(envelope.Data) > 0 && string(envelope.Data) != "null" {
		require.NoError(t, json.Unmarshal(envelope.Data, dest))
	}
	return envelope.Error
}

// newMux routes requests through http.ServeMux so r.PathValue works in tests.
func newMux(pattern string, handler http.HandlerFunc) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc(pattern, handler)
	return mux
}
