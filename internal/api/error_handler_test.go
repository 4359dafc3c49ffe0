package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/tokobarang/inventory-dashboard/internal/api/handler"
	"github.com/tokobarang/inventory-dashboard/internal/core/domain"
)

func TestHTTPErrorHandler_JSON(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "invalid product id"), http.StatusBadRequest, `{"error":"invalid product id"}`},
		{"product not found", fmt.Errorf("find: %w", domain.ErrProductNotFound), http.StatusNotFound, `{"error":"product not found"}`},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, `{"error":"access forbidden"}`},
		{"fetch failure", &domain.FetchError{Op: "list_products", Message: "failed to fetch products"}, http.StatusBadGateway, `{"error":"remote resource unavailable"}`},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, `{"error":"internal server error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			NewHTTPErrorHandler(zerolog.Nop())(tt.err, c)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestHTTPErrorHandler_HTMLForBrowsers(t *testing.T) {
	e := echo.New()
	e.Renderer = handler.NewRenderer()
	req := httptest.NewRequest(http.MethodGet, "/dashboard/products/9/edit", nil)
	req.Header.Set(echo.HeaderAccept, "text/html,application/xhtml+xml")
	rec := httptest.NewRecorder()

	NewHTTPErrorHandler(zerolog.Nop())(domain.ErrProductNotFound, e.NewContext(req, rec))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMETextHTML)
	assert.Contains(t, rec.Body.String(), "product not found")
}
