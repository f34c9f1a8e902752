package server

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

// TemplateRenderer holds the parsed HTML templates. Templates are
// embedded in the binary; there is nothing to hot-reload.
type TemplateRenderer struct {
	templates *template.Template
}

// NewTemplateRenderer parses all embedded templates.
func NewTemplateRenderer() (*TemplateRenderer, error) {
	funcMap := template.FuncMap{
		"truncate": truncateString,
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &TemplateRenderer{templates: tmpl}, nil
}

// Render executes the named template into w.
func (tr *TemplateRenderer) Render(w io.Writer, name string, data interface{}) error {
	return tr.templates.ExecuteTemplate(w, name+".html", data)
}

func truncateString(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := strings.TrimSpace(s[:max])
	return cut + "…"
}
