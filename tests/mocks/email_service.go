package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"jobscaffold-backend/internal/domain"
)

// EmailService satisfies email.Service and the narrower sender ports
// carved off it by the fanout and lead packages.
type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendNotificationEmail(ctx context.Context, to string, notif *domain.Notification) error {
	args := m.Called(ctx, to, notif)
	return args.Error(0)
}

func (m *EmailService) SendLeadWelcomeEmail(ctx context.Context, to string) error {
	args := m.Called(ctx, to)
	return args.Error(0)
}

func (m *EmailService) SendDigestEmail(ctx context.Context, to, subject, text, html string) error {
	args := m.Called(ctx, to, subject, text, html)
	return args.Error(0)
}
