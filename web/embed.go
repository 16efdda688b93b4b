// Package web holds the dashboard templates and static assets compiled into
// every binary.
package web

import (
	"embed"
	"io/fs"
)

// StylesheetPath is the dashboard stylesheet inside Static.
const StylesheetPath = "static/css/dashboard.css"

//go:embed templates/layouts/*.html templates/partials/*.html templates/pages/*.html
var Templates embed.FS

//go:embed static/css
var Static embed.FS

// Stylesheet returns the dashboard CSS.
func Stylesheet() ([]byte, error) {
	return fs.ReadFile(Static, StylesheetPath)
}
