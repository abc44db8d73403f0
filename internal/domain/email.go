package domain

import (
	"context"
	"time"
)

// Attachment is a file attached to an outgoing email.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string, attachments []Attachment) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// GuestConfirmationEmailData holds data for the guest-facing confirmation.
type GuestConfirmationEmailData struct {
	FirstName string
	LastName  string
	Email     string
	Telephone string
	TicketURL string // self-contained ticket link with the bearer payload embedded
}

// OperatorAlertEmailData holds data for the operator-facing submission alert.
type OperatorAlertEmailData struct {
	FirstName   string
	LastName    string
	Email       string
	Telephone   string
	SubmittedAt time.Time
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendGuestConfirmation(ctx context.Context, data *GuestConfirmationEmailData) error
	SendOperatorAlert(ctx context.Context, data *OperatorAlertEmailData, screenshot *Attachment) error
}
