// Package repository enforces the task model's invariants before delegating
// to the storage layer.
//
// The repository is the only writer of tasks: it trims and validates input,
// stamps creation times in UTC and maps storage sentinels through unchanged
// so route handlers can translate them to HTTP statuses.
package repository

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"TodoWebService/models"
	"TodoWebService/storage"
	"TodoWebService/validation"

	"github.com/go-playground/validator/v10"
)

// ErrValidation is returned when a task fails input validation, for example
// an empty or oversized title.
var ErrValidation = errors.New("invalid task")

// TaskRepository validates tasks and persists them through a Store.
type TaskRepository struct {
	store    *storage.Store
	validate *validator.Validate
	now      func() time.Time
}

// New creates a TaskRepository on top of the given store.
func New(store *storage.Store) *TaskRepository {
	return &TaskRepository{
		store:    store,
		validate: validation.New(),
		now:      time.Now,
	}
}

func (r *TaskRepository) check(task models.Task) error {
	if err := r.validate.Struct(task); err != nil {
		if strings.TrimSpace(task.Title) == "" {
			return fmt.Errorf("%w: title is required", ErrValidation)
		}
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

// Create validates the input and inserts a new task. New tasks start as not
// completed with their creation time set to the current UTC time. The
// returned task carries the id assigned by the store.
func (r *TaskRepository) Create(title, description string) (models.Task, error) {
	task := models.Task{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Completed:   false,
		CreatedAt:   r.now().UTC(),
	}
	if err := r.check(task); err != nil {
		return models.Task{}, err
	}
	if err := r.store.Insert(&task); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// GetOrFail fetches a task by id. Unknown ids surface storage.ErrNotFound,
// which callers map to HTTP 404.
func (r *TaskRepository) GetOrFail(id int64) (models.Task, error) {
	return r.store.Get(id)
}

// Update replaces the task's title and description and persists the change.
// The completed flag and creation time are untouched.
func (r *TaskRepository) Update(id int64, title, description string) (models.Task, error) {
	task, err := r.store.Get(id)
	if err != nil {
		return models.Task{}, err
	}
	task.Title = strings.TrimSpace(title)
	task.Description = strings.TrimSpace(description)
	if err := r.check(task); err != nil {
		return models.Task{}, err
	}
	if err := r.store.Update(task); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// ToggleCompleted flips the task's completed flag, persists it and returns
// the new value.
func (r *TaskRepository) ToggleCompleted(id int64) (bool, error) {
	task, err := r.store.Get(id)
	if err != nil {
		return false, err
	}
	task.Completed = !task.Completed
	if err := r.store.Update(task); err != nil {
		return false, err
	}
	return task.Completed, nil
}

// Delete removes the task. Unknown ids surface storage.ErrNotFound.
func (r *TaskRepository) Delete(id int64) error {
	return r.store.Delete(id)
}

// ListAll returns every task ordered by creation time descending, ties
// broken by insertion order.
func (r *TaskRepository) ListAll() ([]models.Task, error) {
	return r.store.List()
}
