package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"taskify/internal/domain"
	"taskify/internal/models"
)

const taskColumns = `id, title, description, status_id, project_id, created_at, updated_at`

// GetTask retrieves a task by id.
func (s *Store) GetTask(ctx context.Context, id string) (models.Task, error) {
	var t models.Task
	err := s.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id).
		Scan(&t.ID, &t.Title, &t.Description, &t.StatusID, &t.ProjectID, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, &domain.NotFoundError{Kind: "task", ID: id}
	}
	if err != nil {
		return models.Task{}, &domain.StoreError{Op: "get task", Err: err}
	}
	return t, nil
}

// CreateTask inserts a task and refreshes the parent project's
// updated_at in the same transaction.
func (s *Store) CreateTask(ctx context.Context, projectID, title string, description *string, statusID string) (models.Task, error) {
	ts := now()
	t := models.Task{
		ID:          uuid.NewString(),
		ProjectID:   projectID,
		Title:       title,
		Description: description,
		StatusID:    statusID,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO tasks(id, title, description, status_id, project_id, created_at, updated_at)
            VALUES(?, ?, ?, ?, ?, ?, ?)`, t.ID, t.Title, t.Description, t.StatusID, t.ProjectID, t.CreatedAt, t.UpdatedAt)
		if err != nil {
			return &domain.StoreError{Op: "insert task", Err: err}
		}
		return touchProject(tx, projectID, ts)
	})
	if err != nil {
		return models.Task{}, err
	}
	return t, nil
}

// UpdateTask writes the full row back with a fresh updated_at and
// touches the parent project in the same transaction. The caller applies
// the patch against the current row first.
func (s *Store) UpdateTask(ctx context.Context, t models.Task) (models.Task, error) {
	ts := now()
	t.UpdatedAt = ts

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.Exec(`UPDATE tasks SET title = ?, description = ?, status_id = ?, updated_at = ? WHERE id = ?`,
			t.Title, t.Description, t.StatusID, t.UpdatedAt, t.ID)
		if err != nil {
			return &domain.StoreError{Op: "update task", Err: err}
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return &domain.StoreError{Op: "update task", Err: err}
		}
		if affected == 0 {
			return &domain.NotFoundError{Kind: "task", ID: t.ID}
		}
		return touchProject(tx, t.ProjectID, ts)
	})
	if err != nil {
		return models.Task{}, err
	}
	return t, nil
}

// DeleteTask removes a task and touches its parent project atomically.
// The parent id is resolved by the caller before deletion so the touch
// still happens once the row is gone.
func (s *Store) DeleteTask(ctx context.Context, taskID, projectID string) error {
	ts := now()
	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.Exec(`DELETE FROM tasks WHERE id = ?`, taskID)
		if err != nil {
			return &domain.StoreError{Op: "delete task", Err: err}
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return &domain.StoreError{Op: "delete task", Err: err}
		}
		if affected == 0 {
			return &domain.NotFoundError{Kind: "task", ID: taskID}
		}
		return touchProject(tx, projectID, ts)
	})
}
