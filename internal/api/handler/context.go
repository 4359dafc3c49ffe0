package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/tokobarang/inventory-dashboard/internal/api/middleware"
	"github.com/tokobarang/inventory-dashboard/internal/core/service"
)

// sessionStore returns the store attached by the Session middleware. Its
// absence means the route was registered without the middleware.
func sessionStore(c echo.Context) (*service.SessionStore, error) {
	s := middleware.SessionFrom(c)
	if s == nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "session not attached")
	}
	return s, nil
}

func productID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	return id, nil
}

// redirectRecorder is the Navigator of a request-scoped controller: the last
// requested path becomes the response's redirect.
type redirectRecorder struct {
	path string
}

func (r *redirectRecorder) Redirect(path string) { r.path = path }
