package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"taskboard/models"
)

// PostgresTaskStore persists tasks in Postgres through a pgx pool.
type PostgresTaskStore struct {
	db *pgxpool.Pool
}

func NewPostgresTaskStore(db *pgxpool.Pool) *PostgresTaskStore {
	return &PostgresTaskStore{db: db}
}

// InitSchema creates the tables if they are missing. Run once at startup.
func InitSchema(ctx context.Context, db *pgxpool.Pool) error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS tasks (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		priority TEXT NOT NULL DEFAULT 'medium',
		due_date TIMESTAMPTZ,
		completed BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS tasks_user_created_idx
		ON tasks (user_id, created_at DESC);
	`
	_, err := db.Exec(ctx, schema)
	if err != nil {
		return fmt.Errorf("error creating schema: %w", err)
	}
	return nil
}

func (s *PostgresTaskStore) List(ctx context.Context, ownerID string) ([]models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	stmt := `SELECT id, user_id, title, description, priority, due_date, completed, created_at
		FROM tasks WHERE user_id = $1 ORDER BY created_at DESC, id DESC`
	rows, err := s.db.Query(ctx, stmt, ownerID)
	if err != nil {
		log.Println("Error querying tasks:", err)
		return nil, fmt.Errorf("error querying tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var t models.Task
		err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Priority, &t.DueDate, &t.Completed, &t.CreatedAt)
		if err != nil {
			log.Println("Error scanning task row:", err)
			return nil, fmt.Errorf("error scanning task row: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading task rows: %w", err)
	}
	return tasks, nil
}

func (s *PostgresTaskStore) Create(ctx context.Context, ownerID string, draft models.TaskDraft) (models.Task, error) {
	task, err := normalizeDraft(draft)
	if err != nil {
		return models.Task{}, err
	}

	owner, err := uuid.Parse(ownerID)
	if err != nil {
		return models.Task{}, fmt.Errorf("invalid owner id: %w", err)
	}
	task.ID = uuid.New()
	task.UserID = owner

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	stmt := `INSERT INTO tasks (id, user_id, title, description, priority, due_date, completed)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING created_at`
	row := s.db.QueryRow(ctx, stmt, task.ID, task.UserID, task.Title, task.Description, task.Priority, task.DueDate, task.Completed)
	if err := row.Scan(&task.CreatedAt); err != nil {
		log.Println("Error inserting task:", err)
		return models.Task{}, fmt.Errorf("failed to save task: %w", err)
	}
	return task, nil
}

func (s *PostgresTaskStore) Update(ctx context.Context, ownerID, taskID string, patch models.TaskPatch) (models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// Ownership check first. A miss here is indistinguishable from a
	// record that never existed.
	task, err := s.findByIDAndOwner(ctx, ownerID, taskID)
	if err != nil {
		return models.Task{}, err
	}

	if err := applyPatch(&task, patch); err != nil {
		return models.Task{}, err
	}

	stmt := `UPDATE tasks SET title = $1, description = $2, priority = $3, due_date = $4, completed = $5
		WHERE id = $6 AND user_id = $7`
	_, err = s.db.Exec(ctx, stmt, task.Title, task.Description, task.Priority, task.DueDate, task.Completed, task.ID, task.UserID)
	if err != nil {
		log.Println("Error updating task:", err)
		return models.Task{}, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

func (s *PostgresTaskStore) Delete(ctx context.Context, ownerID, taskID string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := s.findByIDAndOwner(ctx, ownerID, taskID); err != nil {
		return err
	}

	_, err := s.db.Exec(ctx, "DELETE FROM tasks WHERE id = $1 AND user_id = $2", taskID, ownerID)
	if err != nil {
		log.Println("Failed to delete task:", err)
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

func (s *PostgresTaskStore) findByIDAndOwner(ctx context.Context, ownerID, taskID string) (models.Task, error) {
	if _, err := uuid.Parse(taskID); err != nil {
		// Malformed ids can never match a stored record.
		return models.Task{}, ErrNotFound
	}

	stmt := `SELECT id, user_id, title, description, priority, due_date, completed, created_at
		FROM tasks WHERE id = $1 AND user_id = $2`
	row := s.db.QueryRow(ctx, stmt, taskID, ownerID)

	var t models.Task
	err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Priority, &t.DueDate, &t.Completed, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Task{}, ErrNotFound
		}
		return models.Task{}, fmt.Errorf("error fetching task: %w", err)
	}
	return t, nil
}
