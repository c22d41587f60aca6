// Package events carries store-change events between the writers of
// application records and the services that react to them. Redis pub/sub
// stands in for the document store's own trigger mechanism: one channel per
// collection, at-least-once from the consumer's point of view, no ordering
// between deliveries.
package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	TopicNotificationCreated  = "notifications.created"
	TopicLeadCreated          = "leads.created"
	TopicProjectUpdateCreated = "updates.created"
	TopicFileCreated          = "files.created"
	TopicInvoiceCreated       = "invoices.created"
	TopicMessageCreated       = "messages.created"
	TopicContractUpdated      = "contracts.updated"
)

// Envelope wraps one record change. Before is populated only on update
// topics and holds the record's prior state.
type Envelope struct {
	ID         string          `json:"id"`
	Topic      string          `json:"topic"`
	OccurredAt time.Time       `json:"occurred_at"`
	Record     json.RawMessage `json:"record"`
	Before     json.RawMessage `json:"before,omitempty"`
}

type Publisher interface {
	Publish(ctx context.Context, topic string, record interface{}) error
	PublishChange(ctx context.Context, topic string, before, after interface{}) error
}

type redisPublisher struct {
	client *redis.Client
}

func NewPublisher(client *redis.Client) Publisher {
	return &redisPublisher{client: client}
}

func (p *redisPublisher) Publish(ctx context.Context, topic string, record interface{}) error {
	return p.PublishChange(ctx, topic, nil, record)
}

func (p *redisPublisher) PublishChange(ctx context.Context, topic string, before, after interface{}) error {
	env := Envelope{
		ID:         uuid.NewString(),
		Topic:      topic,
		OccurredAt: time.Now().UTC(),
	}

	var err error
	if env.Record, err = json.Marshal(after); err != nil {
		return err
	}
	if before != nil {
		if env.Before, err = json.Marshal(before); err != nil {
			return err
		}
	}

	payload, err := json.Marshal(env)
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, topic, payload).Err()
}

// Handler processes one delivered envelope. A returned error is logged and
// dropped; the bus has no retry contract.
type Handler func(ctx context.Context, env Envelope) error

type Listener struct {
	client   *redis.Client
	handlers map[string]Handler
	timeout  time.Duration
	logger   *slog.Logger
}

func NewListener(client *redis.Client, timeout time.Duration, logger *slog.Logger) *Listener {
	return &Listener{
		client:   client,
		handlers: make(map[string]Handler),
		timeout:  timeout,
		logger:   logger,
	}
}

func (l *Listener) Handle(topic string, h Handler) {
	l.handlers[topic] = h
}

// Run subscribes to every registered topic and dispatches until ctx is
// cancelled. Each delivery runs in its own goroutine under its own
// deadline, so concurrent events for different records never serialize.
func (l *Listener) Run(ctx context.Context) error {
	topics := make([]string, 0, len(l.handlers))
	for topic := range l.handlers {
		topics = append(topics, topic)
	}

	sub := l.client.Subscribe(ctx, topics...)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			go l.dispatch(msg.Channel, []byte(msg.Payload))
		}
	}
}

func (l *Listener) dispatch(topic string, payload []byte) {
	handler := l.handlers[topic]
	if handler == nil {
		return
	}

	var env Envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		l.logger.Error("dropping malformed event", "topic", topic, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
	defer cancel()

	if err := handler(ctx, env); err != nil {
		l.logger.Error("event handler failed", "topic", topic, "event_id", env.ID, "error", err)
	}
}
