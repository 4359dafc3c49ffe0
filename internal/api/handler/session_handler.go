package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const dashboardPath = "/dashboard"

const signInFailed = "Unable to log in. Check your username and password."

type SessionHandler struct{}

func NewSessionHandler() *SessionHandler {
	return &SessionHandler{}
}

type signInPage struct {
	Username string
	Error    string
}

// SignInPage renders the sign-in form, or skips it for a signed-in client.
//
// @Summary      Sign-in page
// @Tags         session
// @Produce      html
// @Success      200
// @Success      303
// @Router       /signin [get]
func (h *SessionHandler) SignInPage(c echo.Context) error {
	store, err := sessionStore(c)
	if err != nil {
		return err
	}
	if err := store.Initialize(c.Request().Context()); err != nil {
		return err
	}
	if store.CurrentUser() != nil {
		return c.Redirect(http.StatusSeeOther, dashboardPath)
	}
	return c.Render(http.StatusOK, tmplSignIn, signInPage{})
}

// SignIn checks the submitted credentials against the remote user list.
//
// @Summary      Sign in
// @Tags         session
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        username  formData  string  true  "Username"
// @Param        password  formData  string  true  "Password"
// @Success      303
// @Failure      401
// @Failure      429
// @Router       /signin [post]
func (h *SessionHandler) SignIn(c echo.Context) error {
	store, err := sessionStore(c)
	if err != nil {
		return err
	}

	username := c.FormValue("username")
	if store.Login(c.Request().Context(), username, c.FormValue("password")) {
		return c.Redirect(http.StatusSeeOther, dashboardPath)
	}
	return c.Render(http.StatusUnauthorized, tmplSignIn, signInPage{Username: username, Error: signInFailed})
}

// Index sends visitors to the dashboard.
func (h *SessionHandler) Index(c echo.Context) error {
	return c.Redirect(http.StatusSeeOther, dashboardPath)
}
