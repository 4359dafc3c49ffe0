package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/tokobarang/inventory-dashboard/internal/core/service"
)

// Context keys set by Session.
const (
	ContextClientID = "client_id"
	ContextSession  = "session"
)

const cookieMaxAge = 365 * 24 * 60 * 60

// Session identifies the browser by a uuid held in cookieName, issuing a new
// one when the cookie is missing or malformed, and attaches the client's
// session store to the context.
func Session(registry *service.SessionRegistry, cookieName string, secure bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var clientID string
			if ck, err := c.Cookie(cookieName); err == nil {
				if id, err := uuid.Parse(ck.Value); err == nil {
					clientID = id.String()
				}
			}

			if clientID == "" {
				clientID = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     cookieName,
					Value:    clientID,
					Path:     "/",
					MaxAge:   cookieMaxAge,
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			c.Set(ContextClientID, clientID)
			c.Set(ContextSession, registry.For(clientID))
			return next(c)
		}
	}
}

// ReleaseSession drops the client's cached store once the handler succeeds.
// Mount it after Session on routes that end a session.
func ReleaseSession(registry *service.SessionRegistry) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := next(c); err != nil {
				return err
			}
			if id, ok := c.Get(ContextClientID).(string); ok {
				registry.Forget(id)
			}
			return nil
		}
	}
}

// SessionFrom returns the store attached by Session, or nil.
func SessionFrom(c echo.Context) *service.SessionStore {
	s, _ := c.Get(ContextSession).(*service.SessionStore)
	return s
}
