package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"jobscaffold-backend/internal/domain"
)

type LeadRepository struct {
	mock.Mock
}

func (m *LeadRepository) Upsert(ctx context.Context, lead *domain.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *LeadRepository) ListSince(ctx context.Context, since time.Time) ([]domain.Lead, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Lead), args.Error(1)
}
