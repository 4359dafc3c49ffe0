package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runSession(t *testing.T, mw echo.MiddlewareFunc, cookie *http.Cookie) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })(c)
	require.NoError(t, err)
	return c, rec
}

func TestSession_IssuesCookieWhenMissing(t *testing.T) {
	c, rec := runSession(t, Session(newRegistry(), "dashboard_sid", false), nil)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "dashboard_sid", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	_, err := uuid.Parse(cookies[0].Value)
	require.NoError(t, err)
	assert.Equal(t, cookies[0].Value, c.Get(ContextClientID))
	assert.NotNil(t, SessionFrom(c))
}

func TestSession_ReusesValidCookie(t *testing.T) {
	registry := newRegistry()
	id := uuid.NewString()

	c, rec := runSession(t, Session(registry, "dashboard_sid", false), &http.Cookie{Name: "dashboard_sid", Value: id})

	assert.Empty(t, rec.Result().Cookies())
	assert.Equal(t, id, c.Get(ContextClientID))
	assert.Same(t, registry.For(id), SessionFrom(c))
}

func TestSession_ReplacesMalformedCookie(t *testing.T) {
	c, rec := runSession(t, Session(newRegistry(), "dashboard_sid", false), &http.Cookie{Name: "dashboard_sid", Value: "../../etc"})

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.NotEqual(t, "../../etc", cookies[0].Value)
	assert.Equal(t, cookies[0].Value, c.Get(ContextClientID))
}

func TestReleaseSession_ForgetsCachedStore(t *testing.T) {
	registry := newRegistry()
	id := uuid.NewString()
	chain := func(next echo.HandlerFunc) echo.HandlerFunc {
		return Session(registry, "dashboard_sid", false)(ReleaseSession(registry)(next))
	}

	runSession(t, chain, &http.Cookie{Name: "dashboard_sid", Value: id})

	assert.Zero(t, registry.Len())
}

func TestSession_CookielessRequestsStayBounded(t *testing.T) {
	registry := newRegistry().WithLimits(0, 10)
	mw := Session(registry, "dashboard_sid", false)

	for i := 0; i < 100; i++ {
		runSession(t, mw, nil)
	}

	assert.Equal(t, 10, registry.Len())
}
