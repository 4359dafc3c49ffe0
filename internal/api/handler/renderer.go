package handler

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

// Template names.
const (
	tmplSignIn        = "signin"
	tmplDashboard     = "dashboard"
	tmplConfirmDelete = "confirm_delete"
	tmplError         = "error"
)

// Renderer executes the embedded page templates for echo.
type Renderer struct {
	templates *template.Template
}

func NewRenderer() *Renderer {
	return &Renderer{
		templates: template.Must(template.New("").ParseFS(templateFS, "templates/*.html")),
	}
}

// Render satisfies echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
