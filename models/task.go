// Package models contains the data models for the application to be used in request handling.
package models

import "time"

// Task represents a to-do item in the system.
// Task has the following properties:
// - Id: The unique identifier of the task, assigned by the storage layer on insert.
// - Title: The title of the task. Required, at most 100 characters.
// - Description: The optional description of the task, at most 200 characters.
// - Completed: Whether the task is done. New tasks start as not completed.
// - CreatedAt: The creation time of the task in UTC. Set once, never mutated.
type Task struct {
	Id          int64     `json:"id"`
	Title       string    `json:"title" validate:"required,notblank,max=100"`
	Description string    `json:"description" validate:"max=200"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
}
