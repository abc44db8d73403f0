package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"guestregistry/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// mockGuestRepository is an in-memory GuestRepository for service tests.
type mockGuestRepository struct {
	mu        sync.Mutex
	guests    []*domain.Guest
	nextID    int
	insertErr error
	selectErr error
	updateErr error
	// calls counts repository method invocations, keyed by method name.
	calls map[string]int
}

func newMockGuestRepository() *mockGuestRepository {
	return &mockGuestRepository{calls: map[string]int{}}
}

func (m *mockGuestRepository) Insert(ctx context.Context, g *domain.Guest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["Insert"]++
	if m.insertErr != nil {
		return m.insertErr
	}
	m.nextID++
	g.ID = "guest-" + string(rune('0'+m.nextID))
	stored := *g
	m.guests = append([]*domain.Guest{&stored}, m.guests...)
	return nil
}

func (m *mockGuestRepository) SelectAll(ctx context.Context) ([]*domain.Guest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["SelectAll"]++
	if m.selectErr != nil {
		return nil, m.selectErr
	}
	out := make([]*domain.Guest, len(m.guests))
	copy(out, m.guests)
	return out, nil
}

func (m *mockGuestRepository) GetByRegistrationID(ctx context.Context, registrationID string) (*domain.Guest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["GetByRegistrationID"]++
	if m.selectErr != nil {
		return nil, m.selectErr
	}
	for _, g := range m.guests {
		if g.RegistrationID == registrationID {
			copied := *g
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockGuestRepository) UpdateStatus(ctx context.Context, id string, status domain.Status, updatedAt time.Time) (*domain.Guest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["UpdateStatus"]++
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	for _, g := range m.guests {
		if g.ID == id {
			g.Status = status
			g.UpdatedAt = updatedAt
			copied := *g
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

// failIfTouchedRepository fails the test on any call. Used to prove the bearer
// ticket path never consults the store.
type failIfTouchedRepository struct {
	t *testing.T
}

func (f *failIfTouchedRepository) Insert(ctx context.Context, g *domain.Guest) error {
	f.t.Fatal("repository must not be touched")
	return nil
}

func (f *failIfTouchedRepository) SelectAll(ctx context.Context) ([]*domain.Guest, error) {
	f.t.Fatal("repository must not be touched")
	return nil, nil
}

func (f *failIfTouchedRepository) GetByRegistrationID(ctx context.Context, registrationID string) (*domain.Guest, error) {
	f.t.Fatal("repository must not be touched")
	return nil, nil
}

func (f *failIfTouchedRepository) UpdateStatus(ctx context.Context, id string, status domain.Status, updatedAt time.Time) (*domain.Guest, error) {
	f.t.Fatal("repository must not be touched")
	return nil, nil
}

// sequenceIDGenerator yields deterministic registration identifiers.
type sequenceIDGenerator struct {
	mu sync.Mutex
	n  int
}

func (s *sequenceIDGenerator) New() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return "REG-TEST-" + string(rune('A'-1+s.n))
}

// stubCodec encodes payloads as plain base64 JSON for assertions.
type stubCodec struct{}

func (stubCodec) Encode(p domain.TicketPayload) string {
	raw, _ := json.Marshal(p)
	return base64.RawURLEncoding.EncodeToString(raw)
}

func (stubCodec) Decode(encoded string) (*domain.TicketPayload, error) {
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, domain.ErrInvalidTicket
	}
	var p domain.TicketPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, domain.ErrInvalidTicket
	}
	return &p, nil
}

// mockEmailService records sends and can fail either delivery.
type mockEmailService struct {
	mu            sync.Mutex
	guestSends    []*domain.GuestConfirmationEmailData
	operatorSends []*domain.OperatorAlertEmailData
	attachments   []*domain.Attachment
	guestErr      error
	operatorErr   error
}

func (m *mockEmailService) SendGuestConfirmation(ctx context.Context, data *domain.GuestConfirmationEmailData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.guestErr != nil {
		return m.guestErr
	}
	m.guestSends = append(m.guestSends, data)
	return nil
}

func (m *mockEmailService) SendOperatorAlert(ctx context.Context, data *domain.OperatorAlertEmailData, screenshot *domain.Attachment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.operatorErr != nil {
		return m.operatorErr
	}
	m.operatorSends = append(m.operatorSends, data)
	m.attachments = append(m.attachments, screenshot)
	return nil
}

var errSMTPDown = errors.New("smtp connection refused")
