package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tokobarang/inventory-dashboard/internal/core/domain"
	"github.com/tokobarang/inventory-dashboard/internal/dashboard"
)

// RBAC admits only session users holding one of allowedRoles. Visitors with no
// session user are sent to the sign-in page. Must run after Session.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			store := SessionFrom(c)
			if store == nil {
				return c.Redirect(http.StatusSeeOther, dashboard.SignInPath)
			}
			if err := store.Initialize(c.Request().Context()); err != nil {
				return err
			}

			user := store.CurrentUser()
			if user == nil {
				return c.Redirect(http.StatusSeeOther, dashboard.SignInPath)
			}
			if _, ok := allowed[user.Role]; !ok {
				return domain.ErrForbidden
			}

			c.Set("role", user.Role)
			return next(c)
		}
	}
}
