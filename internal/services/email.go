package services

import (
	"context"
	"fmt"
	"log/slog"

	"guestregistry/internal/domain"
)

type emailService struct {
	mailer        domain.Mailer
	renderer      domain.EmailTemplateRenderer
	operatorEmail string
	logger        *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and
// template renderer. operatorEmail receives new-submission alerts.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, operatorEmail string, logger *slog.Logger) domain.EmailService {
	return &emailService{
		mailer:        mailer,
		renderer:      renderer,
		operatorEmail: operatorEmail,
		logger:        logger,
	}
}

// SendGuestConfirmation sends the guest-facing confirmation using the
// "guest_confirmation" template.
func (s *emailService) SendGuestConfirmation(ctx context.Context, data *domain.GuestConfirmationEmailData) error {
	if data == nil {
		return fmt.Errorf("guest confirmation data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("guest_confirmation", data)
	if err != nil {
		return fmt.Errorf("failed to render guest_confirmation template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody, nil); err != nil {
		return fmt.Errorf("failed to send guest confirmation: %w", err)
	}
	s.logger.InfoContext(ctx, "guest confirmation sent", "to", data.Email)
	return nil
}

// SendOperatorAlert sends the operator-facing alert using the "operator_alert"
// template, attaching the payment screenshot when present.
func (s *emailService) SendOperatorAlert(ctx context.Context, data *domain.OperatorAlertEmailData, screenshot *domain.Attachment) error {
	if data == nil {
		return fmt.Errorf("operator alert data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("operator_alert", data)
	if err != nil {
		return fmt.Errorf("failed to render operator_alert template: %w", err)
	}
	var attachments []domain.Attachment
	if screenshot != nil {
		attachments = []domain.Attachment{*screenshot}
	}
	if err := s.mailer.Send(s.operatorEmail, subject, htmlBody, textBody, attachments); err != nil {
		return fmt.Errorf("failed to send operator alert: %w", err)
	}
	s.logger.InfoContext(ctx, "operator alert sent", "to", s.operatorEmail)
	return nil
}
