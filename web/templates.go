// Package web holds the embedded HTML views for the task pages.
//
// The views are a thin collaborator of the handlers: they receive the task
// data and the pending flash messages and escape all user-supplied text
// through html/template.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var files embed.FS

// Templates parses the embedded views. It panics on a malformed template,
// which only happens at build time.
func Templates() *template.Template {
	return template.Must(template.ParseFS(files, "templates/*.html"))
}
