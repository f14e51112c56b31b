package view

import (
	"fmt"
	"html/template"
	"io"

	"github.com/inventory-pro/dashboard/internal/shared"
	"github.com/inventory-pro/dashboard/web"
)

// Engine renders HTML templates.
type Engine struct {
	templates *template.Template
}

// TemplateData contains values shared across templates.
type TemplateData struct {
	Title       string
	CSRFToken   string
	Flash       *shared.FlashMessage
	CurrentPath string
	User        string
	Data        any
}

// Options tunes the template helpers.
type Options struct {
	PhoneRegion string
}

// NewEngine parses every embedded template once at startup.
func NewEngine(opts Options) (*Engine, error) {
	tpl, err := template.New("root").Funcs(Funcs(opts)).ParseFS(web.Templates, "templates/layouts/*.html", "templates/partials/*.html", "templates/pages/*.html")
	if err != nil {
		return nil, err
	}
	return &Engine{templates: tpl}, nil
}

// Has reports whether a named template exists.
func (e *Engine) Has(name string) bool {
	return e != nil && e.templates.Lookup(name) != nil
}

// Execute renders a named template into any writer, for documents that are
// post-processed rather than served directly.
func (e *Engine) Execute(w io.Writer, name string, data TemplateData) error {
	if e == nil {
		return fmt.Errorf("template engine not initialised")
	}
	return e.templates.ExecuteTemplate(w, name, data)
}
