package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
	"github.com/stripe/stripe-go/v82/webhook"

	"jobscaffold-backend/internal/config"
	"jobscaffold-backend/internal/domain"
	"jobscaffold-backend/internal/repository"
)

var ErrInvalidAmount = fmt.Errorf("amount must be a positive integer in the smallest currency unit")

type Service struct {
	stripe   *client.API
	invoices repository.InvoiceRepository
	cfg      *config.Config
	logger   *slog.Logger
}

func NewService(cfg *config.Config, invoices repository.InvoiceRepository, logger *slog.Logger) *Service {
	return &Service{
		stripe:   client.New(cfg.StripeSecretKey, nil),
		invoices: invoices,
		cfg:      cfg,
		logger:   logger,
	}
}

// CreateCheckoutSession opens a one-off Stripe checkout for an invoice and
// returns the hosted payment URL. Invoice and user ids ride along as
// session metadata so the webhook can settle the invoice later.
func (s *Service) CreateCheckoutSession(ctx context.Context, userID uuid.UUID, input domain.CheckoutInput) (string, error) {
	if input.Amount <= 0 {
		return "", ErrInvalidAmount
	}

	currency := input.Currency
	if currency == "" {
		currency = "usd"
	}
	title := input.Title
	if title == "" {
		title = "Invoice"
	}
	successURL := input.SuccessURL
	if successURL == "" {
		successURL = s.cfg.CheckoutSuccessURL
	}
	cancelURL := input.CancelURL
	if cancelURL == "" {
		cancelURL = s.cfg.CheckoutCancelURL
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(successURL + "?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(cancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(currency),
					UnitAmount: stripe.Int64(input.Amount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(title),
						Description: stripe.String(input.Description),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx
	params.AddMetadata("invoice_id", input.InvoiceID)
	params.AddMetadata("user_id", userID.String())

	session, err := s.stripe.CheckoutSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	return session.URL, nil
}

// HandleWebhook processes a Stripe event delivery. The signature is
// verified when a webhook secret is configured; without one the raw JSON
// is trusted, which is only acceptable for development.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	var event stripe.Event
	if s.cfg.StripeWebhookSecret != "" && signature != "" {
		verified, err := webhook.ConstructEvent(payload, signature, s.cfg.StripeWebhookSecret)
		if err != nil {
			return fmt.Errorf("verify webhook signature: %w", err)
		}
		event = verified
	} else if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("decode webhook event: %w", err)
	}

	if event.Type != stripe.EventTypeCheckoutSessionCompleted {
		return nil
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return fmt.Errorf("decode checkout session: %w", err)
	}

	invoiceID, err := uuid.Parse(session.Metadata["invoice_id"])
	if err != nil {
		s.logger.Info("checkout session without invoice metadata", "session_id", session.ID)
		return nil
	}

	if err := s.invoices.MarkPaid(ctx, invoiceID, session.ID, session.AmountTotal); err != nil {
		return fmt.Errorf("mark invoice paid: %w", err)
	}
	s.logger.Info("invoice marked paid", "invoice_id", invoiceID, "session_id", session.ID)
	return nil
}
