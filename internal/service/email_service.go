package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/resend/resend-go/v2"
)

// EmailSender отправляет транзакционные письма для важных уведомлений.
type EmailSender interface {
	SendNotification(ctx context.Context, toEmail, title, message string) error
}

// NoopEmailSender используется, когда почтовая доставка выключена.
type NoopEmailSender struct{}

func (s *NoopEmailSender) SendNotification(ctx context.Context, toEmail, title, message string) error {
	log.Printf("[EmailSender] noop send notification to=%s title=%q", toEmail, title)
	return nil
}

// ResendEmailSender sends emails via Resend REST API.
type ResendEmailSender struct {
	from   string
	client *resend.Client
}

func NewResendEmailSender(apiKey, from string) (*ResendEmailSender, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend api key is required")
	}
	if from == "" {
		return nil, fmt.Errorf("email from is required")
	}
	return &ResendEmailSender{
		from:   from,
		client: resend.NewClient(apiKey),
	}, nil
}

func (s *ResendEmailSender) SendNotification(ctx context.Context, toEmail, title, message string) error {
	if toEmail == "" || title == "" {
		return fmt.Errorf("toEmail and title are required")
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{toEmail},
		Subject: title,
		Text:    message,
		Html:    fmt.Sprintf("<p>%s</p>", message),
	}

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		_, err := s.client.Emails.SendWithOptions(ctx, params, &resend.SendEmailOptions{})
		if err == nil {
			return nil
		}
		lastErr = err
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt+1) * time.Second):
		}
	}
	return fmt.Errorf("failed to send email after retries: %w", lastErr)
}
