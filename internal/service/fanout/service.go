// Package fanout is the delivery engine behind every notification: given a
// stored notification record it resolves the addressee's delivery targets,
// multicasts to the push channel, prunes dead tokens from the target store,
// and independently sends the email rendition.
package fanout

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"jobscaffold-backend/internal/domain"
	"jobscaffold-backend/internal/events"
	"jobscaffold-backend/internal/repository"
	"jobscaffold-backend/internal/service/push"
)

// PushDispatcher is the push channel as seen by the router.
type PushDispatcher interface {
	Send(ctx context.Context, targets []domain.DeviceToken, msg push.Message) ([]domain.DeliveryResult, error)
}

// EmailSender is the email channel as seen by the router. A nil sender
// means the channel is not configured.
type EmailSender interface {
	SendNotificationEmail(ctx context.Context, to string, notif *domain.Notification) error
}

type Service struct {
	resolver   *TargetResolver
	dispatcher PushDispatcher
	reconciler *Reconciler
	email      EmailSender
	logger     *slog.Logger
}

func NewService(
	tokens repository.DeviceTokenRepository,
	users repository.UserRepository,
	dispatcher PushDispatcher,
	email EmailSender,
	logger *slog.Logger,
) *Service {
	return &Service{
		resolver:   NewTargetResolver(tokens, users),
		dispatcher: dispatcher,
		reconciler: NewReconciler(tokens, logger),
		email:      email,
		logger:     logger,
	}
}

// HandleNotificationCreated adapts Deliver to the event bus.
func (s *Service) HandleNotificationCreated(ctx context.Context, env events.Envelope) error {
	var notif domain.Notification
	if err := json.Unmarshal(env.Record, &notif); err != nil {
		s.logger.Error("undecodable notification event", "event_id", env.ID, "error", err)
		return nil
	}
	s.Deliver(ctx, &notif)
	return nil
}

// Deliver fans one notification out to every channel. It never returns an
// error: the trigger has no response path, so every failure is terminal
// and logged. The push pipeline and the email pipeline run concurrently
// and fail independently of each other.
//
// The bus delivers at least once, so a redelivered notification can send a
// second email; push redelivery is harmless and token cleanup is
// idempotent.
func (s *Service) Deliver(ctx context.Context, notif *domain.Notification) {
	if notif.UserID == uuid.Nil {
		s.logger.Warn("notification missing user id, dropping", "notification_id", notif.ID)
		return
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.deliverPush(ctx, notif)
	}()
	go func() {
		defer wg.Done()
		s.deliverEmail(ctx, notif)
	}()
	wg.Wait()
}

func (s *Service) deliverPush(ctx context.Context, notif *domain.Notification) {
	log := s.logger.With("notification_id", notif.ID, "user_id", notif.UserID)

	targets, err := s.resolver.Resolve(ctx, notif.UserID)
	if err != nil {
		log.Error("target resolution failed", "error", err)
		return
	}
	if len(targets) == 0 {
		log.Info("no push targets for user")
		return
	}

	outcomes, err := s.dispatcher.Send(ctx, targets, push.Message{
		Title:    notif.Title,
		Body:     notif.Body,
		Category: notif.Category,
		Data:     notif.Data,
	})
	if err != nil {
		log.Error("push dispatch failed", "error", err)
		return
	}

	if removed := s.reconciler.Reconcile(ctx, notif.UserID, outcomes); removed > 0 {
		log.Info("pruned dead tokens", "removed", removed)
	}
}

func (s *Service) deliverEmail(ctx context.Context, notif *domain.Notification) {
	if s.email == nil {
		return
	}
	log := s.logger.With("notification_id", notif.ID, "user_id", notif.UserID)

	addr, err := s.resolver.Email(ctx, notif.UserID)
	if err != nil {
		log.Error("email resolution failed", "error", err)
		return
	}
	if addr == "" {
		return
	}

	if err := s.email.SendNotificationEmail(ctx, addr, notif); err != nil {
		log.Warn("email send failed", "error", err)
		return
	}
	log.Info("notification email sent")
}
