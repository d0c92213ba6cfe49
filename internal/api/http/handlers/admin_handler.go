package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ticketreport/backend/internal/api/dto"
	"github.com/ticketreport/backend/internal/domain"
	"github.com/ticketreport/backend/internal/service"
	apperrors "github.com/ticketreport/backend/pkg/util"
)

// AdminHandler exposes user administration endpoints. Routes are mounted
// behind the admin role guard.
type AdminHandler struct {
	admin *service.AdminService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{admin: adminService}
}

// ListUsers GET /admin/users.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.admin.ListUsers(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponses(users)})
}

// ListResolvers GET /admin/resolvers.
func (h *AdminHandler) ListResolvers(c *fiber.Ctx) error {
	users, err := h.admin.ListResolvers(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponses(users)})
}

// ApproveUser POST /admin/users/:id/approve.
func (h *AdminHandler) ApproveUser(c *fiber.Ctx) error {
	if err := h.admin.ApproveUser(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "approved"}})
}

// UpdateUserRole PATCH /admin/users/:id/role.
func (h *AdminHandler) UpdateUserRole(c *fiber.Ctx) error {
	var req dto.UpdateUserRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.admin.UpdateUserRole(c.Context(), c.Params("id"), domain.Role(req.Role)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "role_updated"}})
}

// ResetPassword POST /admin/users/:id/reset-password.
func (h *AdminHandler) ResetPassword(c *fiber.Ctx) error {
	tempPassword, err := h.admin.ResetPassword(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ResetPasswordResponse{TemporaryPassword: tempPassword}})
}

func userResponses(users []domain.User) []dto.UserResponse {
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, dto.NewUserResponse(&users[i]))
	}
	return items
}
