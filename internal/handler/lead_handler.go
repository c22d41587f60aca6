package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"jobscaffold-backend/internal/domain"
	"jobscaffold-backend/internal/middleware"
	"jobscaffold-backend/internal/service/lead"
)

type LeadHandler struct {
	leads *lead.Service
}

func NewLeadHandler(leads *lead.Service) *LeadHandler {
	return &LeadHandler{leads: leads}
}

func (h *LeadHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateLeadInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.UserAgent == "" {
		input.UserAgent = c.Get("User-Agent")
	}

	if _, err := h.leads.Create(c.Context(), input); err != nil {
		switch {
		case errors.Is(err, lead.ErrInvalidEmail):
			return middleware.BadRequest(err.Error())
		case errors.Is(err, lead.ErrCaptchaRequired):
			return fiber.NewError(fiber.StatusPreconditionFailed, err.Error())
		case errors.Is(err, lead.ErrCaptchaRejected):
			return middleware.Forbidden(err.Error())
		default:
			return err
		}
	}

	return c.JSON(fiber.Map{"ok": true})
}
