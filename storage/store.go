// Package storage provides the durable sqlite-backed storage layer for tasks.
//
// The store owns a single local database file. Every mutating operation runs
// in sqlite autocommit mode, so a write is durably committed before the call
// returns. Schema creation is an idempotent migration step run once at
// startup, separate from request handling.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"TodoWebService/models"

	_ "github.com/mattn/go-sqlite3"
)

var (
	// ErrNotFound is returned when no task exists for the requested id.
	ErrNotFound = errors.New("task not found")
	// ErrUnavailable is returned when the backing database file cannot be
	// opened or written.
	ErrUnavailable = errors.New("storage unavailable")
)

// Store wraps the sqlite connection pool. It is created once at startup and
// shared by all requests; sqlite's own locking makes each single operation
// atomic.
type Store struct {
	db *sql.DB
}

// Open opens the sqlite database at path, creating the file if it does not
// exist yet. The DSN enables WAL journaling, a busy timeout and foreign keys.
// Use ":memory:" for an in-memory database in tests.
func Open(path string) (*Store, error) {
	dsn := path
	if strings.Contains(dsn, "?") {
		dsn += "&"
	} else {
		dsn += "?"
	}
	dsn += "_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	// sqlite allows a single writer; one pooled connection also keeps
	// ":memory:" databases shared across the whole store.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return &Store{db: db}, nil
}

// Migrate creates the task table if it is absent and leaves existing data
// untouched. It must be called once before the store serves traffic.
func (s *Store) Migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS task (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			title       TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			completed   BOOLEAN NOT NULL DEFAULT 0,
			created_at  TIMESTAMP NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Insert stores a new task and assigns its id from the database.
func (s *Store) Insert(task *models.Task) error {
	result, err := s.db.Exec(
		"INSERT INTO task(title, description, completed, created_at) VALUES(?, ?, ?, ?)",
		task.Title, task.Description, task.Completed, task.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to retrieve the last inserted ID: %w", err)
	}
	task.Id = id
	return nil
}

// Get retrieves a task by id. It returns ErrNotFound when the id is unknown.
func (s *Store) Get(id int64) (models.Task, error) {
	row := s.db.QueryRow(
		"SELECT id, title, description, completed, created_at FROM task WHERE id=?", id,
	)
	var task models.Task
	err := row.Scan(&task.Id, &task.Title, &task.Description, &task.Completed, &task.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Task{}, ErrNotFound
		}
		return models.Task{}, fmt.Errorf("failed to scan row into Task struct: %w", err)
	}
	task.CreatedAt = task.CreatedAt.UTC()
	return task, nil
}

// List returns all tasks ordered by creation time, most recent first.
// Tasks created at the same instant keep insertion order.
func (s *Store) List() ([]models.Task, error) {
	rows, err := s.db.Query(
		"SELECT id, title, description, completed, created_at FROM task ORDER BY created_at DESC, id ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var task models.Task
		err := rows.Scan(&task.Id, &task.Title, &task.Description, &task.Completed, &task.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row into Task struct: %w", err)
		}
		task.CreatedAt = task.CreatedAt.UTC()
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// Update persists the task's title, description and completed flag.
// The created_at column is never touched. It returns ErrNotFound when the
// task's id is unknown.
func (s *Store) Update(task models.Task) error {
	result, err := s.db.Exec(
		"UPDATE task SET title=?, description=?, completed=? WHERE id=?",
		task.Title, task.Description, task.Completed, task.Id,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a task by id. The removal is a hard delete. It returns
// ErrNotFound when the id is unknown.
func (s *Store) Delete(id int64) error {
	result, err := s.db.Exec("DELETE FROM task WHERE id=?", id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Ping reports whether the database file is still reachable.
func (s *Store) Ping() error {
	if err := s.db.Ping(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}
