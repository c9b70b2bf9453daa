package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/temply-mn/temply-api/internal/middleware"
	"github.com/temply-mn/temply-api/internal/services"
)

type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.adminService.Summary(c.UserContext(), middleware.PrincipalFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}
