package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"guestregistry/internal/domain"
)

type guestRepository struct {
	DB *sql.DB
}

// NewGuestRepository returns a GuestRepository backed by Postgres.
func NewGuestRepository(db *sql.DB) domain.GuestRepository {
	return &guestRepository{DB: db}
}

const guestColumns = `id, first_name, last_name, email, telephone, registration_id, submitted_at, status, updated_at, COALESCE(payment_screenshot_ref, '')`

func (r *guestRepository) Insert(ctx context.Context, g *domain.Guest) error {
	query := `
		INSERT INTO guests (first_name, last_name, email, telephone, registration_id, submitted_at, status, updated_at, payment_screenshot_ref)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''))
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		g.FirstName, g.LastName, g.Email, g.Telephone,
		g.RegistrationID, g.SubmittedAt, g.Status, g.UpdatedAt, g.PaymentScreenshotRef,
	).Scan(&g.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrDuplicateRegistrationID
		}
		return storeErr("insert guest", err)
	}
	return nil
}

func (r *guestRepository) SelectAll(ctx context.Context) ([]*domain.Guest, error) {
	query := `
		SELECT ` + guestColumns + `
		FROM guests
		ORDER BY submitted_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, storeErr("select guests", err)
	}
	defer rows.Close()

	var guests []*domain.Guest
	for rows.Next() {
		g := &domain.Guest{}
		if err := scanGuest(rows, g); err != nil {
			return nil, storeErr("scan guest", err)
		}
		guests = append(guests, g)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("select guests", err)
	}
	if guests == nil {
		guests = []*domain.Guest{}
	}
	return guests, nil
}

func (r *guestRepository) GetByRegistrationID(ctx context.Context, registrationID string) (*domain.Guest, error) {
	query := `
		SELECT ` + guestColumns + `
		FROM guests
		WHERE registration_id = $1
	`
	g := &domain.Guest{}
	err := scanGuest(r.DB.QueryRowContext(ctx, query, registrationID), g)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, storeErr("get guest by registration id", err)
	}
	return g, nil
}

func (r *guestRepository) UpdateStatus(ctx context.Context, id string, status domain.Status, updatedAt time.Time) (*domain.Guest, error) {
	query := `
		UPDATE guests
		SET status = $2, updated_at = $3
		WHERE id = $1
		RETURNING ` + guestColumns + `
	`
	g := &domain.Guest{}
	err := scanGuest(r.DB.QueryRowContext(ctx, query, id, status, updatedAt), g)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, storeErr("update guest status", err)
	}
	return g, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanGuest(s scanner, g *domain.Guest) error {
	return s.Scan(
		&g.ID, &g.FirstName, &g.LastName, &g.Email, &g.Telephone,
		&g.RegistrationID, &g.SubmittedAt, &g.Status, &g.UpdatedAt, &g.PaymentScreenshotRef,
	)
}

// storeErr wraps infrastructure failures so callers can match ErrStoreUnavailable.
func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, domain.ErrStoreUnavailable, err)
}
