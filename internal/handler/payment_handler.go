package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"jobscaffold-backend/internal/domain"
	"jobscaffold-backend/internal/middleware"
	"jobscaffold-backend/internal/service/payment"
)

type PaymentHandler struct {
	payments *payment.Service
}

func NewPaymentHandler(payments *payment.Service) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

func (h *PaymentHandler) CreateCheckoutSession(c *fiber.Ctx) error {
	userID, err := queryUserID(c)
	if err != nil {
		return err
	}

	var input domain.CheckoutInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	url, err := h.payments.CreateCheckoutSession(c.Context(), userID, input)
	if err != nil {
		if errors.Is(err, payment.ErrInvalidAmount) {
			return middleware.BadRequest(err.Error())
		}
		return err
	}

	return c.JSON(fiber.Map{"url": url})
}

// StripeWebhook receives event deliveries from Stripe. The body must stay
// raw for signature verification.
func (h *PaymentHandler) StripeWebhook(c *fiber.Ctx) error {
	signature := c.Get("Stripe-Signature")

	if err := h.payments.HandleWebhook(c.Context(), c.Body(), signature); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Webhook error")
	}
	return c.JSON(fiber.Map{"received": true})
}
