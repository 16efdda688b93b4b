package view

import (
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/globalwealth/wealthdash/web"
)

// Engine executes the embedded HTML templates.
type Engine struct {
	templates *template.Template
}

// TemplateData contains values shared across templates.
type TemplateData struct {
	Title       string
	CurrentPath string
	Data        any
}

// NewEngine parses the layouts, partials and pages embedded in package web.
// Templates are addressed by their {{define}} name.
func NewEngine() (*Engine, error) {
	funcMap := template.FuncMap{
		"deltaClass": func(delta string) string {
			if strings.HasPrefix(strings.TrimSpace(delta), "-") {
				return "delta-down"
			}
			return "delta-up"
		},
	}
	tpl, err := template.New("root").Funcs(funcMap).ParseFS(web.Templates, "templates/layouts/*.html", "templates/partials/*.html", "templates/pages/*.html")
	if err != nil {
		return nil, err
	}
	return &Engine{templates: tpl}, nil
}

// Execute writes a named template into w.
func (e *Engine) Execute(w io.Writer, name string, data TemplateData) error {
	if e == nil {
		return fmt.Errorf("template engine not initialised")
	}
	return e.templates.ExecuteTemplate(w, name, data)
}
