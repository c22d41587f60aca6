package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"jobscaffold-backend/internal/domain"
)

type InvoiceRepository struct {
	mock.Mock
}

func (m *InvoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *InvoiceRepository) MarkPaid(ctx context.Context, id uuid.UUID, stripeSessionID string, amountTotal int64) error {
	args := m.Called(ctx, id, stripeSessionID, amountTotal)
	return args.Error(0)
}
