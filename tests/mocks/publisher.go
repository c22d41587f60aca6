package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type Publisher struct {
	mock.Mock
}

func (m *Publisher) Publish(ctx context.Context, topic string, record interface{}) error {
	args := m.Called(ctx, topic, record)
	return args.Error(0)
}

func (m *Publisher) PublishChange(ctx context.Context, topic string, before, after interface{}) error {
	args := m.Called(ctx, topic, before, after)
	return args.Error(0)
}
