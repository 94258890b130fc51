package web

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// ParseTemplates parses the embedded page templates
func ParseTemplates() (*template.Template, error) {
	return template.ParseFS(templatesFS, "templates/*.html")
}

// StaticFS returns the embedded static asset tree rooted at static/
func StaticFS() (fs.FS, error) {
	return fs.Sub(staticFS, "static")
}
