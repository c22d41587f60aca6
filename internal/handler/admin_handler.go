package handler

import (
	"github.com/gofiber/fiber/v2"

	"jobscaffold-backend/internal/domain"
	"jobscaffold-backend/internal/middleware"
	"jobscaffold-backend/internal/service/admin"
)

type AdminHandler struct {
	admin *admin.Service
}

func NewAdminHandler(adminSvc *admin.Service) *AdminHandler {
	return &AdminHandler{admin: adminSvc}
}

// Setup bootstraps the admin account. Meant to run once after deploy and
// then be disabled.
func (h *AdminHandler) Setup(c *fiber.Ctx) error {
	var input domain.BootstrapAdminInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	user, err := h.admin.Bootstrap(c.Context(), input)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"ok":      true,
		"uid":     user.ID,
		"email":   user.Email,
		"message": "Admin user created/updated successfully. Access /admin in the app to switch roles.",
	})
}
