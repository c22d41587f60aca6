package lead

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"jobscaffold-backend/internal/domain"
	"jobscaffold-backend/internal/events"
	"jobscaffold-backend/internal/repository"
)

var (
	ErrInvalidEmail    = fmt.Errorf("valid email is required")
	ErrCaptchaRequired = fmt.Errorf("missing reCAPTCHA token")
	ErrCaptchaRejected = fmt.Errorf("reCAPTCHA verification failed")
)

// CaptchaVerifier validates a reCAPTCHA token. A nil verifier disables the
// check.
type CaptchaVerifier interface {
	Verify(ctx context.Context, token string) (bool, error)
}

// ChatNotifier posts a short team-chat message. Fire-and-forget: callers
// log failures and move on.
type ChatNotifier interface {
	Notify(ctx context.Context, text string) error
}

// ListSyncer adds a lead to the external mailing list.
type ListSyncer interface {
	Subscribe(ctx context.Context, email, source string) error
}

// EmailSender is the slice of the email service the lead pipeline uses.
type EmailSender interface {
	SendLeadWelcomeEmail(ctx context.Context, to string) error
}

type Service struct {
	leads   repository.LeadRepository
	bus     events.Publisher
	captcha CaptchaVerifier
	email   EmailSender
	chat    ChatNotifier
	list    ListSyncer
	logger  *slog.Logger
}

func NewService(
	leads repository.LeadRepository,
	bus events.Publisher,
	captcha CaptchaVerifier,
	email EmailSender,
	chat ChatNotifier,
	list ListSyncer,
	logger *slog.Logger,
) *Service {
	return &Service{
		leads:   leads,
		bus:     bus,
		captcha: captcha,
		email:   email,
		chat:    chat,
		list:    list,
		logger:  logger,
	}
}

// Create validates and upserts a lead, then announces it on the bus.
// Upserting by email dedupes repeat submissions.
func (s *Service) Create(ctx context.Context, input domain.CreateLeadInput) (*domain.Lead, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}

	if s.captcha != nil {
		if input.RecaptchaToken == "" {
			return nil, ErrCaptchaRequired
		}
		ok, err := s.captcha.Verify(ctx, input.RecaptchaToken)
		if err != nil {
			return nil, fmt.Errorf("verify captcha: %w", err)
		}
		if !ok {
			return nil, ErrCaptchaRejected
		}
	}

	source := input.Source
	if source == "" {
		source = "unknown"
	}

	lead := &domain.Lead{
		Email:       email,
		Source:      source,
		UTMSource:   optional(input.UTMSource),
		UTMMedium:   optional(input.UTMMedium),
		UTMCampaign: optional(input.UTMCampaign),
		UTMTerm:     optional(input.UTMTerm),
		UTMContent:  optional(input.UTMContent),
		LandingPath: optional(input.LandingPath),
		Referrer:    optional(input.Referrer),
		UserAgent:   optional(input.UserAgent),
	}
	if err := s.leads.Upsert(ctx, lead); err != nil {
		return nil, fmt.Errorf("upsert lead: %w", err)
	}

	if err := s.bus.Publish(ctx, events.TopicLeadCreated, lead); err != nil {
		return nil, fmt.Errorf("publish lead: %w", err)
	}
	return lead, nil
}

// HandleLeadCreated runs the side integrations for a captured lead:
// welcome email, mailing-list sync, and a chat ping. Each is independent;
// a failure in one is logged and does not stop the others.
func (s *Service) HandleLeadCreated(ctx context.Context, env events.Envelope) error {
	var lead domain.Lead
	if err := json.Unmarshal(env.Record, &lead); err != nil {
		return fmt.Errorf("decode lead: %w", err)
	}

	s.logger.Info("new lead captured", "email", lead.Email, "source", attributedSource(&lead))

	if s.email != nil {
		if err := s.email.SendLeadWelcomeEmail(ctx, lead.Email); err != nil {
			s.logger.Error("welcome email failed", "email", lead.Email, "error", err)
		}
	}

	if s.list != nil {
		if err := s.list.Subscribe(ctx, lead.Email, lead.Source); err != nil {
			s.logger.Error("mailing list sync failed", "email", lead.Email, "error", err)
		}
	}

	if s.chat != nil {
		if err := s.chat.Notify(ctx, chatText(&lead)); err != nil {
			s.logger.Error("chat notification failed", "error", err)
		}
	}
	return nil
}

func chatText(lead *domain.Lead) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*New Lead Captured*\n📧 Email: %s\n📍 Source: %s", lead.Email, attributedSource(lead))
	if lead.UTMMedium != nil {
		fmt.Fprintf(&b, " (%s)", *lead.UTMMedium)
	}
	if lead.UTMCampaign != nil {
		fmt.Fprintf(&b, " – %s", *lead.UTMCampaign)
	}
	if lead.LandingPath != nil {
		fmt.Fprintf(&b, "\n🧭 Path: %s", *lead.LandingPath)
	}
	if lead.Referrer != nil {
		fmt.Fprintf(&b, "\n↩️ Referrer: %s", *lead.Referrer)
	}
	return b.String()
}

func attributedSource(lead *domain.Lead) string {
	if lead.UTMSource != nil && *lead.UTMSource != "" {
		return *lead.UTMSource
	}
	if lead.Source != "" {
		return lead.Source
	}
	return "unknown"
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
