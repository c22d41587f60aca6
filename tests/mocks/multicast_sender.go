package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"jobscaffold-backend/internal/service/push"
)

type MulticastSender struct {
	mock.Mock
}

func (m *MulticastSender) SendMulticast(ctx context.Context, tokens []string, title, body string, data map[string]string) ([]push.TokenResult, error) {
	args := m.Called(ctx, tokens, title, body, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]push.TokenResult), args.Error(1)
}
