package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"jobscaffold-backend/internal/domain"
	"jobscaffold-backend/internal/middleware"
	"jobscaffold-backend/internal/service/notifier"
)

type NotificationHandler struct {
	notifier *notifier.Service
}

func NewNotificationHandler(notifier *notifier.Service) *NotificationHandler {
	return &NotificationHandler{notifier: notifier}
}

type testNotifyRequest struct {
	UserID   uuid.UUID       `json:"user_id"`
	Title    string          `json:"title"`
	Body     string          `json:"body"`
	Category domain.Category `json:"category"`
}

// CreateTest writes a sample notification for a user so the delivery path
// can be verified end to end. Guarded by the test secret.
func (h *NotificationHandler) CreateTest(c *fiber.Ctx) error {
	var req testNotifyRequest
	if err := c.BodyParser(&req); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if req.UserID == uuid.Nil {
		return middleware.BadRequest("Missing user_id")
	}
	if req.Title == "" {
		req.Title = "Test Notification"
	}
	if req.Body == "" {
		req.Body = "This is a test."
	}
	if req.Category == "" {
		req.Category = domain.CategoryCustom
	}

	notif, err := h.notifier.Create(c.Context(), domain.CreateNotificationInput{
		UserID:   req.UserID,
		Title:    req.Title,
		Body:     req.Body,
		Category: req.Category,
		Data:     domain.Payload{},
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"ok": true, "id": notif.ID})
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	userID, err := queryUserID(c)
	if err != nil {
		return err
	}

	params := domain.PaginationParams{}
	if err := c.QueryParser(&params); err != nil {
		return middleware.BadRequest("Invalid pagination parameters")
	}
	params.Validate()
	unreadOnly := c.Query("unread_only") == "true"

	result, err := h.notifier.List(c.Context(), userID, unreadOnly, params)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *NotificationHandler) GetUnreadCount(c *fiber.Ctx) error {
	userID, err := queryUserID(c)
	if err != nil {
		return err
	}

	count, err := h.notifier.UnreadCount(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"count": count})
}

func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	notifID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid notification ID")
	}

	if err := h.notifier.MarkAsRead(c.Context(), notifID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *NotificationHandler) MarkAllAsRead(c *fiber.Ctx) error {
	userID, err := queryUserID(c)
	if err != nil {
		return err
	}

	if err := h.notifier.MarkAllAsRead(c.Context(), userID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// queryUserID reads the addressee from the gateway-forwarded user header,
// falling back to a query parameter. Authentication itself happens
// upstream of this service.
func queryUserID(c *fiber.Ctx) (uuid.UUID, error) {
	raw := c.Get("X-User-ID")
	if raw == "" {
		raw = c.Query("user_id")
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, middleware.BadRequest("Missing or invalid user id")
	}
	return userID, nil
}
