// Package commands contains the commands for the application to be used for request inputs.
package commands

import (
	"net/http"
	"strings"
)

// TaskForm represents the form-encoded input of the add and edit pages.
type TaskForm struct {
	Title       string
	Description string
}

// ParseTaskForm reads the title and description fields from a form-encoded
// request body. Both values are trimmed of surrounding whitespace.
func ParseTaskForm(req *http.Request) (TaskForm, error) {
	if err := req.ParseForm(); err != nil {
		return TaskForm{}, err
	}
	return TaskForm{
		Title:       strings.TrimSpace(req.PostFormValue("title")),
		Description: strings.TrimSpace(req.PostFormValue("description")),
	}, nil
}
