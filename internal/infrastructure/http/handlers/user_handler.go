package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tokobarang/inventory-dashboard/internal/core/ports"
)

// UserHandler serves the read-only /users resource. Records include the
// plaintext password; the dashboard signs in against this list.
type UserHandler struct {
	repo ports.UserRepository
}

func NewUserHandler(repo ports.UserRepository) *UserHandler {
	return &UserHandler{repo: repo}
}

// List returns every user.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {array}   domain.RemoteUser
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.repo.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Get returns one user.
//
// @Summary      Get user
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  domain.RemoteUser
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	u, err := h.repo.FindByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}
