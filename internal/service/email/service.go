package email

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/resend/resend-go/v3"

	"jobscaffold-backend/internal/config"
	"jobscaffold-backend/internal/domain"
)

type Service interface {
	SendNotificationEmail(ctx context.Context, to string, notif *domain.Notification) error
	SendLeadWelcomeEmail(ctx context.Context, to string) error
	SendDigestEmail(ctx context.Context, to, subject, text, html string) error
}

type service struct {
	client *resend.Client
	from   string
}

func NewService(cfg *config.Config) Service {
	return &service{
		client: resend.NewClient(cfg.ResendAPIKey),
		from:   cfg.FromEmail,
	}
}

func (s *service) send(to, subject, text, html string) error {
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("JobScaffold <%s>", s.from),
		To:      []string{to},
		Subject: subject,
		Text:    text,
		Html:    html,
	}

	_, err := s.client.Emails.Send(params)
	return err
}

func (s *service) SendNotificationEmail(ctx context.Context, to string, notif *domain.Notification) error {
	subject := notif.Title
	if subject == "" {
		subject = "Notification"
	}

	payload, err := json.MarshalIndent(notif.Data, "", "  ")
	if err != nil {
		payload = []byte("{}")
	}
	html := fmt.Sprintf(
		`<p>%s</p><pre style="background:#f5f5f5;padding:12px">%s</pre>`,
		notif.Body, payload,
	)

	return s.send(to, subject, notif.Body, html)
}

func (s *service) SendLeadWelcomeEmail(ctx context.Context, to string) error {
	text := "Thanks for your interest in JobScaffold!\n\n" +
		"We're building the easiest way for contractors to manage estimates, approvals, scheduling, and payments.\n\n" +
		"We'll be in touch soon with early access details.\n\n" +
		"Best,\nThe JobScaffold Team"
	html := `
		<h2>Welcome to JobScaffold!</h2>
		<p>Thanks for your interest in JobScaffold!</p>
		<p>We're building the easiest way for contractors to manage estimates, approvals, scheduling, and payments.</p>
		<p>We'll be in touch soon with early access details.</p>
		<p>Best,<br/>The JobScaffold Team</p>`

	return s.send(to, "Welcome to JobScaffold!", text, html)
}

func (s *service) SendDigestEmail(ctx context.Context, to, subject, text, html string) error {
	return s.send(to, subject, text, html)
}
