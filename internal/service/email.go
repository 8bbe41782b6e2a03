package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"sainath-backend/internal/config"
	"sainath-backend/internal/logger"
)

type emailService struct {
	client *sendgrid.Client
	from   *mail.Email
}

// NewEmailService returns a SendGrid-backed mailer. With no API key
// configured it degrades to a no-op that logs instead of sending, so
// dev environments work without credentials.
func NewEmailService(cfg config.EmailConfig) EmailService {
	if cfg.SendGridAPIKey == "" {
		return &noopEmailService{}
	}
	return &emailService{
		client: sendgrid.NewSendClient(cfg.SendGridAPIKey),
		from:   mail.NewEmail(cfg.FromName, cfg.FromEmail),
	}
}

func (s *emailService) send(toEmail, toName, subject, plain, html string) error {
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(s.from, subject, to, plain, html)
	resp, err := s.client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

func (s *emailService) SendJoinRequestNotification(ctx context.Context, hostEmail, memberName, memberEmail string) error {
	subject := "New join request"
	plain := fmt.Sprintf("%s (%s) has requested to join. Approve them from the members page.", memberName, memberEmail)
	html := fmt.Sprintf("<p><strong>%s</strong> (%s) has requested to join.</p><p>Approve them from the members page.</p>", memberName, memberEmail)
	return s.send(hostEmail, "", subject, plain, html)
}

func (s *emailService) SendApprovalNotification(ctx context.Context, memberEmail, memberName string) error {
	subject := "Your account has been approved"
	plain := fmt.Sprintf("Hi %s, your account has been approved. You can now log in and start recording orders.", memberName)
	html := fmt.Sprintf("<p>Hi %s,</p><p>Your account has been approved. You can now log in and start recording orders.</p>", memberName)
	return s.send(memberEmail, memberName, subject, plain, html)
}

func (s *emailService) SendPendingVerificationDigest(ctx context.Context, hostEmail string, orderCount, expenseCount int) error {
	subject := "Pending verifications"
	plain := fmt.Sprintf("You have %d orders and %d expenses waiting for verification.", orderCount, expenseCount)
	html := fmt.Sprintf("<p>You have <strong>%d orders</strong> and <strong>%d expenses</strong> waiting for verification.</p>", orderCount, expenseCount)
	return s.send(hostEmail, "", subject, plain, html)
}

type noopEmailService struct{}

func (n *noopEmailService) SendJoinRequestNotification(ctx context.Context, hostEmail, memberName, memberEmail string) error {
	logger.Info("email disabled, skipping join request notification", "to", hostEmail, "member", memberEmail)
	return nil
}

func (n *noopEmailService) SendApprovalNotification(ctx context.Context, memberEmail, memberName string) error {
	logger.Info("email disabled, skipping approval notification", "to", memberEmail)
	return nil
}

func (n *noopEmailService) SendPendingVerificationDigest(ctx context.Context, hostEmail string, orderCount, expenseCount int) error {
	logger.Info("email disabled, skipping pending verification digest", "to", hostEmail)
	return nil
}
