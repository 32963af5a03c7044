package handler

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/velocar/rental-portal/internal/core/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer executes the embedded page templates, each paired with the shared
// layout. Satisfies echo.Renderer.
type Renderer struct {
	templates map[string]*template.Template
}

// NewRenderer parses every page template against the layout.
func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"date":      func(t time.Time) string { return t.Format("Jan 2, 2006") },
		"dateInput": func(t time.Time) string { return t.Format("2006-01-02") },
		"money":     func(v float64) string { return fmt.Sprintf("$%.2f", v) },
	}

	pages, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	templates := make(map[string]*template.Template)
	for _, page := range pages {
		base := filepath.Base(page)
		if base == "layout.html" {
			continue
		}
		t, err := template.New(base).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", page)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", base, err)
		}
		templates[strings.TrimSuffix(base, ".html")] = t
	}
	return &Renderer{templates: templates}, nil
}

// Render satisfies echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	t, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("render: unknown template %q", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

// basePage carries what every page hands the layout: the session snapshot for
// the navigation (login state, admin badge, avatar) plus the one-shot flash
// and the error banner.
type basePage struct {
	Session domain.Session
	Flash   *flash
	Error   string
}

func (p *basePage) SetError(msg string) { p.Error = msg }

// ErrorPage is the data for the standalone error page rendered by the central
// error handler.
type ErrorPage struct {
	basePage
	Status  int
	Message string
}

// NewErrorPage builds the error page for the current request, keeping the
// navigation consistent with the session.
func NewErrorPage(c echo.Context, status int, message string) ErrorPage {
	return ErrorPage{basePage: newBasePage(c), Status: status, Message: message}
}
