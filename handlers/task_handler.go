// Package handlers provides the HTTP request handlers for TodoWebService.
//
// This package contains one handler per use case: listing tasks, adding a
// task, editing a task, toggling completion and deleting a task. Each handler
// translates the inbound request into a repository call and answers with a
// redirect or a rendered view carrying the pending flash messages. Validation
// failures become "error" flashes, unknown ids become HTTP 404 and storage
// failures become HTTP 500. The handlers keep per-endpoint call and error
// counts in Prometheus counters.
package handlers

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"TodoWebService/commands"
	"TodoWebService/flash"
	"TodoWebService/repository"
	"TodoWebService/storage"
	"TodoWebService/web"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// Handler owns the route table and the collaborators every route needs.
type Handler struct {
	mux       *http.ServeMux
	repo      *repository.TaskRepository
	store     *storage.Store
	flashes   *flash.Store
	templates *template.Template
	log       *logrus.Logger

	endPointCounter *prometheus.CounterVec
	errorCounter    *prometheus.CounterVec
}

// New wires the handlers to the repository, flash store and metrics counters
// and registers the route table.
func New(repo *repository.TaskRepository, store *storage.Store, flashes *flash.Store, log *logrus.Logger, endPointCounter, errorCounter *prometheus.CounterVec) *Handler {
	h := &Handler{
		mux:             http.NewServeMux(),
		repo:            repo,
		store:           store,
		flashes:         flashes,
		templates:       web.Templates(),
		log:             log,
		endPointCounter: endPointCounter,
		errorCounter:    errorCounter,
	}
	h.routes()
	return h
}

func (h *Handler) routes() {
	h.mux.HandleFunc("GET /{$}", h.ListTasksHandler)
	h.mux.HandleFunc("GET /add", h.AddTaskFormHandler)
	h.mux.HandleFunc("POST /add", h.AddTaskHandler)
	h.mux.HandleFunc("GET /edit/{id}", h.EditTaskFormHandler)
	h.mux.HandleFunc("POST /edit/{id}", h.EditTaskHandler)
	h.mux.HandleFunc("GET /delete/{id}", h.DeleteTaskHandler)
	h.mux.HandleFunc("GET /toggle/{id}", h.ToggleTaskHandler)
	h.mux.HandleFunc("GET /healthz", h.HealthHandler)
}

func (h *Handler) ServeHTTP(res http.ResponseWriter, req *http.Request) {
	h.mux.ServeHTTP(res, req)
}

// taskID reads the {id} path value. A non-integer id is treated like an
// unknown task and answered with 404.
func taskID(req *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(req.PathValue("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func (h *Handler) render(res http.ResponseWriter, req *http.Request, view string, data map[string]any) {
	data["Flashes"] = h.flashes.Pop(res, req)
	res.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(res, view, data); err != nil {
		h.log.WithFields(logrus.Fields{
			"task operation": "render view",
			"view":           view,
		}).Error(err.Error())
	}
}

func (h *Handler) serverError(res http.ResponseWriter, endpoint, operation string, err error) {
	h.errorCounter.WithLabelValues(endpoint).Inc()
	h.log.WithFields(logrus.Fields{
		"task operation": operation,
		"endpoint":       endpoint,
	}).Error(err.Error())
	http.Error(res, "Internal Server Error", http.StatusInternalServerError)
}

// validationMessage maps a repository validation failure to the flash text
// shown to the user.
func validationMessage(form commands.TaskForm) string {
	if form.Title == "" {
		return "Title is required!"
	}
	return "Title or description is too long!"
}

// ListTasksHandler handles the home page. It loads all tasks, most recently
// created first, and renders the list together with any pending flashes.
//
// Example request:
// GET /
func (h *Handler) ListTasksHandler(res http.ResponseWriter, req *http.Request) {
	h.endPointCounter.WithLabelValues("/").Inc()
	tasks, err := h.repo.ListAll()
	if err != nil {
		h.serverError(res, "/", "list all tasks", err)
		return
	}
	h.log.WithFields(logrus.Fields{
		"task operation": "list all tasks",
		"request":        "Get /",
		"count":          len(tasks),
	}).Info("Processing request")
	h.render(res, req, "index.html", map[string]any{"Tasks": tasks})
}

// AddTaskFormHandler renders the empty add-task form.
//
// Example request:
// GET /add
func (h *Handler) AddTaskFormHandler(res http.ResponseWriter, req *http.Request) {
	h.endPointCounter.WithLabelValues("/add").Inc()
	h.render(res, req, "add_task.html", map[string]any{})
}

// AddTaskHandler creates a task from the submitted form.
// On a validation failure the user is flashed an "error" message and sent
// back to the add form; on success a "success" flash is set and the user is
// redirected to the task list.
//
// Example form body:
//
//	title=Buy milk&description=Two bottles
func (h *Handler) AddTaskHandler(res http.ResponseWriter, req *http.Request) {
	h.endPointCounter.WithLabelValues("/add").Inc()
	form, err := commands.ParseTaskForm(req)
	if err != nil {
		h.errorCounter.WithLabelValues("/add").Inc()
		http.Error(res, "Invalid form body", http.StatusBadRequest)
		return
	}
	task, err := h.repo.Create(form.Title, form.Description)
	if err != nil {
		if errors.Is(err, repository.ErrValidation) {
			h.errorCounter.WithLabelValues("/add").Inc()
			h.log.WithFields(logrus.Fields{
				"task operation": "create a task",
				"request":        "Post /add",
			}).Error(err.Error())
			h.flashes.Add(res, req, flash.SeverityError, validationMessage(form))
			http.Redirect(res, req, "/add", http.StatusSeeOther)
			return
		}
		h.serverError(res, "/add", "create a task", err)
		return
	}
	h.log.WithFields(logrus.Fields{
		"task operation": "create a task",
		"request":        "Post /add",
		"task id":        task.Id,
	}).Info("Processing request")
	h.flashes.Add(res, req, flash.SeveritySuccess, "Task added successfully!")
	http.Redirect(res, req, "/", http.StatusSeeOther)
}

// EditTaskFormHandler renders the edit form pre-filled with the task's
// current values, or 404 when the id is unknown.
//
// Example request:
// GET /edit/1
func (h *Handler) EditTaskFormHandler(res http.ResponseWriter, req *http.Request) {
	h.endPointCounter.WithLabelValues("/edit").Inc()
	id, ok := taskID(req)
	if !ok {
		http.NotFound(res, req)
		return
	}
	task, err := h.repo.GetOrFail(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.errorCounter.WithLabelValues("/edit").Inc()
			http.NotFound(res, req)
			return
		}
		h.serverError(res, "/edit", "get task by id", err)
		return
	}
	h.render(res, req, "edit_task.html", map[string]any{"Task": task})
}

// EditTaskHandler updates the task's title and description from the
// submitted form. The completed flag and creation time are untouched.
// Validation failures flash an "error" and redirect back to the same edit
// form; unknown ids answer 404.
//
// Example form body:
//
//	title=Buy oat milk&description=2%25
func (h *Handler) EditTaskHandler(res http.ResponseWriter, req *http.Request) {
	h.endPointCounter.WithLabelValues("/edit").Inc()
	id, ok := taskID(req)
	if !ok {
		http.NotFound(res, req)
		return
	}
	form, err := commands.ParseTaskForm(req)
	if err != nil {
		h.errorCounter.WithLabelValues("/edit").Inc()
		http.Error(res, "Invalid form body", http.StatusBadRequest)
		return
	}
	_, err = h.repo.Update(id, form.Title, form.Description)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			h.errorCounter.WithLabelValues("/edit").Inc()
			http.NotFound(res, req)
		case errors.Is(err, repository.ErrValidation):
			h.errorCounter.WithLabelValues("/edit").Inc()
			h.log.WithFields(logrus.Fields{
				"task operation": "update a task",
				"request":        "Post /edit/{id}",
				"task id":        id,
			}).Error(err.Error())
			h.flashes.Add(res, req, flash.SeverityError, validationMessage(form))
			http.Redirect(res, req, "/edit/"+strconv.FormatInt(id, 10), http.StatusSeeOther)
		default:
			h.serverError(res, "/edit", "update a task", err)
		}
		return
	}
	h.log.WithFields(logrus.Fields{
		"task operation": "update a task",
		"request":        "Post /edit/{id}",
		"task id":        id,
	}).Info("Processing request")
	h.flashes.Add(res, req, flash.SeveritySuccess, "Task updated successfully!")
	http.Redirect(res, req, "/", http.StatusSeeOther)
}

// DeleteTaskHandler removes the task and redirects to the list, or 404 when
// the id is unknown. The removal is a hard delete.
//
// Example request:
// GET /delete/1
func (h *Handler) DeleteTaskHandler(res http.ResponseWriter, req *http.Request) {
	h.endPointCounter.WithLabelValues("/delete").Inc()
	id, ok := taskID(req)
	if !ok {
		http.NotFound(res, req)
		return
	}
	if err := h.repo.Delete(id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.errorCounter.WithLabelValues("/delete").Inc()
			http.NotFound(res, req)
			return
		}
		h.serverError(res, "/delete", "delete a task", err)
		return
	}
	h.log.WithFields(logrus.Fields{
		"task operation": "delete a task",
		"request":        "Get /delete/{id}",
		"task id":        id,
	}).Info("Processing request")
	h.flashes.Add(res, req, flash.SeveritySuccess, "Task deleted successfully!")
	http.Redirect(res, req, "/", http.StatusFound)
}

// ToggleTaskHandler flips the task's completed flag and redirects to the
// list. The flash text reflects the new state.
//
// Example request:
// GET /toggle/1
func (h *Handler) ToggleTaskHandler(res http.ResponseWriter, req *http.Request) {
	h.endPointCounter.WithLabelValues("/toggle").Inc()
	id, ok := taskID(req)
	if !ok {
		http.NotFound(res, req)
		return
	}
	completed, err := h.repo.ToggleCompleted(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.errorCounter.WithLabelValues("/toggle").Inc()
			http.NotFound(res, req)
			return
		}
		h.serverError(res, "/toggle", "toggle a task", err)
		return
	}
	text := "Task reopened!"
	if completed {
		text = "Task completed!"
	}
	h.log.WithFields(logrus.Fields{
		"task operation": "toggle a task",
		"request":        "Get /toggle/{id}",
		"task id":        id,
		"completed":      completed,
	}).Info("Processing request")
	h.flashes.Add(res, req, flash.SeveritySuccess, text)
	http.Redirect(res, req, "/", http.StatusFound)
}

// HealthHandler reports whether the storage file is still reachable.
func (h *Handler) HealthHandler(res http.ResponseWriter, req *http.Request) {
	if err := h.store.Ping(); err != nil {
		http.Error(res, "storage unavailable", http.StatusServiceUnavailable)
		return
	}
	res.WriteHeader(http.StatusOK)
	res.Write([]byte("ok"))
}
