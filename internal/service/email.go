package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"calapan-rental-backend/internal/config"
	"calapan-rental-backend/internal/domain"
)

type sendGridEmailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(cfg config.EmailConfig) EmailService {
	return &sendGridEmailService{
		apiKey:    cfg.APIKey,
		fromEmail: cfg.From,
		fromName:  cfg.FromName,
	}
}

func (s *sendGridEmailService) SendRentalApprovalEmail(ctx context.Context, email, name, vehicle string, pickup, returnDate time.Time, totalCents, costCents, depositCents int64) error {
	subject := "Your Rental Has Been Approved"
	plainText := fmt.Sprintf(
		"Hi %s,\n\nYour rental of %s has been approved.\n\nPick-up: %s\nReturn: %s\nRental cost: %s\nSecurity deposit: %s\nTotal due: %s\n\nSafe travels!",
		name, vehicle, formatDateTime(pickup), formatDateTime(returnDate),
		formatCents(costCents), formatCents(depositCents), formatCents(totalCents))
	htmlContent := fmt.Sprintf(
		`<p>Hi %s,</p><p>Your rental of <strong>%s</strong> has been approved.</p>
<table>
<tr><td>Pick-up</td><td>%s</td></tr>
<tr><td>Return</td><td>%s</td></tr>
<tr><td>Rental cost</td><td>%s</td></tr>
<tr><td>Security deposit</td><td>%s</td></tr>
<tr><td><strong>Total due</strong></td><td><strong>%s</strong></td></tr>
</table>
<p>Safe travels!</p>`,
		name, vehicle, formatDateTime(pickup), formatDateTime(returnDate),
		formatCents(costCents), formatCents(depositCents), formatCents(totalCents))
	return s.send(ctx, email, name, subject, plainText, htmlContent)
}

func (s *sendGridEmailService) SendRentalRejectionEmail(ctx context.Context, email, name, vehicle, reason string) error {
	subject := "Update on Your Rental Request"
	detail := "Please contact support for details."
	if reason != "" {
		detail = "Reason: " + reason
	}
	plainText := fmt.Sprintf("Hi %s,\n\nWe were unable to approve your rental request for %s. %s", name, vehicle, detail)
	htmlContent := fmt.Sprintf("<p>Hi %s,</p><p>We were unable to approve your rental request for <strong>%s</strong>. %s</p>", name, vehicle, detail)
	return s.send(ctx, email, name, subject, plainText, htmlContent)
}

func (s *sendGridEmailService) SendRentalReturnEmail(ctx context.Context, email, name, vehicle string, lateFeeCents int64, disposition domain.DepositStatus) error {
	subject := "Rental Completed"
	feeLine := "No late fee was charged."
	if lateFeeCents > 0 {
		feeLine = fmt.Sprintf("A late fee of %s was charged.", formatCents(lateFeeCents))
	}
	depositLine := "Your security deposit will be refunded."
	if disposition == domain.DepositStatusForfeited {
		depositLine = "Your security deposit has been forfeited; please contact support for details."
	}
	plainText := fmt.Sprintf("Hi %s,\n\nThank you for returning %s. %s %s", name, vehicle, feeLine, depositLine)
	htmlContent := fmt.Sprintf("<p>Hi %s,</p><p>Thank you for returning <strong>%s</strong>.</p><p>%s %s</p>", name, vehicle, feeLine, depositLine)
	return s.send(ctx, email, name, subject, plainText, htmlContent)
}

func (s *sendGridEmailService) send(_ context.Context, to, toName, subject, plainText, htmlContent string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}
