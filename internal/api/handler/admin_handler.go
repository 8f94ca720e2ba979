package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/way2pg/way2pg-api/internal/core/domain"
	"github.com/way2pg/way2pg-api/internal/core/ports"
)

type AdminHandler struct {
	service ports.AdminService
}

func NewAdminHandler(service ports.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

// ListUsers returns accounts, optionally filtered.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        role     query  string  false  "Filter by role"
// @Param        pending  query  bool    false  "Only owners awaiting approval"
// @Success      200  {array}  domain.User
// @Router       /v1/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	filter := ports.UserFilter{
		Role:         c.QueryParam("role"),
		PendingOwner: c.QueryParam("pending") == "true",
	}

	users, err := h.service.ListUsers(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	if users == nil {
		users = []*domain.User{}
	}
	return c.JSON(http.StatusOK, users)
}

// ApproveOwner grants an owner full privileges.
//
// @Summary      Approve an owner account
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  errorResponse
// @Router       /v1/admin/owners/{id}/approve [post]
func (h *AdminHandler) ApproveOwner(c echo.Context) error {
	user, err := h.service.ApproveOwner(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteUser removes an account and cascades to its listings and bookings.
//
// @Summary      Delete a user
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "User id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	if err := h.service.DeleteUser(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
