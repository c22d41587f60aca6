// Package notifier reacts to application record changes by producing
// notification records. Each handler is a thin adapter: decide the
// addressee, check their opt-outs, build the notification, and hand it to
// the shared fanout path by persisting and republishing it. Delivery
// mechanics live entirely in the fanout service.
package notifier

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"jobscaffold-backend/internal/domain"
	"jobscaffold-backend/internal/events"
	"jobscaffold-backend/internal/repository"
	"jobscaffold-backend/internal/service/fanout"
)

type Service struct {
	notifications repository.NotificationRepository
	users         repository.UserRepository
	projects      repository.ProjectRepository
	bus           events.Publisher
	logger        *slog.Logger
}

func NewService(
	notifications repository.NotificationRepository,
	users repository.UserRepository,
	projects repository.ProjectRepository,
	bus events.Publisher,
	logger *slog.Logger,
) *Service {
	return &Service{
		notifications: notifications,
		users:         users,
		projects:      projects,
		bus:           bus,
		logger:        logger,
	}
}

// Create persists a notification and puts it on the bus for delivery.
func (s *Service) Create(ctx context.Context, input domain.CreateNotificationInput) (*domain.Notification, error) {
	category := input.Category
	if category == "" {
		category = domain.CategoryCustom
	}

	notif := &domain.Notification{
		ID:       uuid.New(),
		UserID:   input.UserID,
		Category: category,
		Title:    input.Title,
		Body:     input.Body,
		Data:     input.Data,
	}
	if err := s.notifications.Create(ctx, notif); err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}
	if err := s.bus.Publish(ctx, events.TopicNotificationCreated, notif); err != nil {
		return nil, fmt.Errorf("publish notification: %w", err)
	}
	return notif, nil
}

func (s *Service) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	notifications, total, err := s.notifications.ListByUser(ctx, userID, unreadOnly, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Notification]{}, err
	}
	return domain.NewPaginatedResponse(notifications, params.Page, params.PageSize, total), nil
}

func (s *Service) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	return s.notifications.MarkAsRead(ctx, id)
}

func (s *Service) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.notifications.MarkAllAsRead(ctx, userID)
}

func (s *Service) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notifications.CountUnread(ctx, userID)
}

// HandleProjectUpdateCreated notifies the project's customer about a new
// status post, unless they opted out of project updates.
func (s *Service) HandleProjectUpdateCreated(ctx context.Context, env events.Envelope) error {
	var update domain.ProjectUpdate
	if err := json.Unmarshal(env.Record, &update); err != nil {
		return fmt.Errorf("decode project update: %w", err)
	}

	project, err := s.projects.GetByID(ctx, update.ProjectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.Info("project not found, skipping update notification", "project_id", update.ProjectID)
			return nil
		}
		return fmt.Errorf("get project: %w", err)
	}
	if project.CustomerID == nil {
		s.logger.Info("no customer assigned to project", "project_id", project.ID)
		return nil
	}

	customer, err := s.users.GetByID(ctx, *project.CustomerID)
	if err != nil {
		return fmt.Errorf("get customer: %w", err)
	}
	if fanout.Suppressed(customer.Preferences, domain.CategoryProjectUpdate) {
		s.logger.Info("user disabled project update notifications", "user_id", customer.ID)
		return nil
	}

	body := update.Message
	if body == "" {
		body = "New update posted"
	}

	_, err = s.Create(ctx, domain.CreateNotificationInput{
		UserID:   customer.ID,
		Category: domain.CategoryProjectUpdate,
		Title:    "📸 New Project Update",
		Body:     body,
		Data: domain.Payload{
			"project_id": update.ProjectID.String(),
			"update_id":  update.ID.String(),
		},
	})
	return err
}

// HandleFileCreated notifies the project's customer about an uploaded
// file, unless the customer is the uploader.
func (s *Service) HandleFileCreated(ctx context.Context, env events.Envelope) error {
	var file domain.ProjectFile
	if err := json.Unmarshal(env.Record, &file); err != nil {
		return fmt.Errorf("decode project file: %w", err)
	}
	if file.ProjectID == nil {
		s.logger.Info("file not associated with a project", "file_id", file.ID)
		return nil
	}

	project, err := s.projects.GetByID(ctx, *file.ProjectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("get project: %w", err)
	}
	if project.CustomerID == nil || *project.CustomerID == file.UploadedBy {
		return nil
	}

	fileName := file.FileName
	if fileName == "" {
		fileName = "Unknown file"
	}

	_, err = s.Create(ctx, domain.CreateNotificationInput{
		UserID:   *project.CustomerID,
		Category: domain.CategoryFileUpload,
		Title:    "📁 New File Uploaded",
		Body:     fileName,
		Data: domain.Payload{
			"project_id": project.ID.String(),
			"file_id":    file.ID.String(),
		},
	})
	return err
}

// HandleInvoiceCreated notifies the paying user, honoring the invoice
// opt-out.
func (s *Service) HandleInvoiceCreated(ctx context.Context, env events.Envelope) error {
	var invoice domain.Invoice
	if err := json.Unmarshal(env.Record, &invoice); err != nil {
		return fmt.Errorf("decode invoice: %w", err)
	}

	payer, err := s.users.GetByID(ctx, invoice.UserID)
	if err != nil {
		return fmt.Errorf("get payer: %w", err)
	}
	if fanout.Suppressed(payer.Preferences, domain.CategoryInvoice) {
		s.logger.Info("user disabled invoice notifications", "user_id", payer.ID)
		return nil
	}

	title := invoice.Title
	if title == "" {
		title = "Invoice"
	}

	_, err = s.Create(ctx, domain.CreateNotificationInput{
		UserID:   payer.ID,
		Category: domain.CategoryInvoice,
		Title:    "💵 New Invoice",
		Body:     fmt.Sprintf("%s - $%.2f", title, invoice.Amount),
		Data: domain.Payload{
			"invoice_id": invoice.ID.String(),
		},
	})
	return err
}

// HandleMessageCreated notifies the recipient with the sender's display
// name as the title, honoring the message opt-out.
func (s *Service) HandleMessageCreated(ctx context.Context, env events.Envelope) error {
	var message domain.Message
	if err := json.Unmarshal(env.Record, &message); err != nil {
		return fmt.Errorf("decode message: %w", err)
	}
	if message.RecipientID == uuid.Nil || message.SenderID == uuid.Nil {
		return nil
	}

	recipient, err := s.users.GetByID(ctx, message.RecipientID)
	if err != nil {
		return fmt.Errorf("get recipient: %w", err)
	}
	if fanout.Suppressed(recipient.Preferences, domain.CategoryMessage) {
		s.logger.Info("user disabled message notifications", "user_id", recipient.ID)
		return nil
	}

	senderName := "Someone"
	if sender, err := s.users.GetByID(ctx, message.SenderID); err == nil && sender.Name != "" {
		senderName = sender.Name
	}

	text := message.Text
	if text == "" {
		text = "New message"
	}

	_, err = s.Create(ctx, domain.CreateNotificationInput{
		UserID:   recipient.ID,
		Category: domain.CategoryMessage,
		Title:    fmt.Sprintf("💬 %s", senderName),
		Body:     text,
		Data: domain.Payload{
			"message_id": message.ID.String(),
			"sender_id":  message.SenderID.String(),
		},
	})
	return err
}

// HandleContractUpdated fires once per contract transition into the
// completed status and creates one notification per distinct participant.
// Those notifications re-enter the bus and fan out like any other.
func (s *Service) HandleContractUpdated(ctx context.Context, env events.Envelope) error {
	var before, after domain.Contract
	if err := json.Unmarshal(env.Record, &after); err != nil {
		return fmt.Errorf("decode contract: %w", err)
	}
	if len(env.Before) > 0 {
		if err := json.Unmarshal(env.Before, &before); err != nil {
			return fmt.Errorf("decode prior contract: %w", err)
		}
	}

	if before.IsCompleted() || !after.IsCompleted() {
		return nil
	}

	body := "A contract has been completed."
	if after.Title != "" {
		body = fmt.Sprintf("%s has been completed.", after.Title)
	}

	for _, userID := range after.Participants() {
		_, err := s.Create(ctx, domain.CreateNotificationInput{
			UserID:   userID,
			Category: domain.CategoryContractCompleted,
			Title:    "Contract completed",
			Body:     body,
			Data: domain.Payload{
				"contract_id": after.ID.String(),
			},
		})
		if err != nil {
			s.logger.Error("contract completion notification failed",
				"contract_id", after.ID, "user_id", userID, "error", err)
		}
	}
	return nil
}
