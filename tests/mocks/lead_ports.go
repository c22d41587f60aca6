package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type CaptchaVerifier struct {
	mock.Mock
}

func (m *CaptchaVerifier) Verify(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}

type ChatNotifier struct {
	mock.Mock
}

func (m *ChatNotifier) Notify(ctx context.Context, text string) error {
	args := m.Called(ctx, text)
	return args.Error(0)
}

type ListSyncer struct {
	mock.Mock
}

func (m *ListSyncer) Subscribe(ctx context.Context, email, source string) error {
	args := m.Called(ctx, email, source)
	return args.Error(0)
}
