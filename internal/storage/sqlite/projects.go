package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"taskify/internal/domain"
	"taskify/internal/models"
)

const projectColumns = `p.id, p.title, p.description, p.user_id, p.created_at, p.updated_at`

// ListProjectsByUser returns the user's projects annotated with task
// counts, most recently touched first.
func (s *Store) ListProjectsByUser(ctx context.Context, userID string) ([]models.ProjectWithTaskCount, error) {
	return s.queryProjectsByUser(ctx, userID, "")
}

// SearchProjectsByUser narrows ListProjectsByUser to projects whose
// title contains query as a case-insensitive substring. The query is
// always bound as a parameter, never interpolated.
func (s *Store) SearchProjectsByUser(ctx context.Context, userID, query string) ([]models.ProjectWithTaskCount, error) {
	return s.queryProjectsByUser(ctx, userID, query)
}

func (s *Store) queryProjectsByUser(ctx context.Context, userID, query string) ([]models.ProjectWithTaskCount, error) {
	sqlText := `SELECT ` + projectColumns + `, COUNT(t.id)
        FROM projects p
        LEFT JOIN tasks t ON t.project_id = p.id
        WHERE p.user_id = ?`
	args := []any{userID}

	if query != "" {
		sqlText += ` AND p.title LIKE ? ESCAPE '\'`
		args = append(args, "%"+escapeLike(query)+"%")
	}
	sqlText += ` GROUP BY p.id ORDER BY p.updated_at DESC`

	rows, err := s.db.QueryContext(ctx, sqlText, args...)
	if err != nil {
		return nil, &domain.StoreError{Op: "list projects", Err: err}
	}
	defer rows.Close()

	var projects []models.ProjectWithTaskCount
	for rows.Next() {
		var p models.ProjectWithTaskCount
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.UserID, &p.CreatedAt, &p.UpdatedAt, &p.TaskCount); err != nil {
			return nil, &domain.StoreError{Op: "scan project", Err: err}
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StoreError{Op: "list projects", Err: err}
	}
	return projects, nil
}

// escapeLike neutralizes LIKE metacharacters in a user-supplied query so
// it matches literally.
func escapeLike(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(q)
}

// GetProject fetches a single project by id.
func (s *Store) GetProject(ctx context.Context, id string) (models.Project, error) {
	var p models.Project
	err := s.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects p WHERE p.id = ?`, id).
		Scan(&p.ID, &p.Title, &p.Description, &p.UserID, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Project{}, &domain.NotFoundError{Kind: "project", ID: id}
	}
	if err != nil {
		return models.Project{}, &domain.StoreError{Op: "get project", Err: err}
	}
	return p, nil
}

// GetProjectWithTasks fetches a project and its tasks, each joined with
// its status, ordered by status sort order then newest first.
func (s *Store) GetProjectWithTasks(ctx context.Context, id string) (models.ProjectWithTasks, error) {
	project, err := s.GetProject(ctx, id)
	if err != nil {
		return models.ProjectWithTasks{}, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT t.id, t.title, t.description, t.status_id, t.project_id, t.created_at, t.updated_at,
            s.id, s.name, s.sort_order
        FROM tasks t
        JOIN statuses s ON s.id = t.status_id
        WHERE t.project_id = ?
        ORDER BY s.sort_order ASC, t.created_at DESC`, id)
	if err != nil {
		return models.ProjectWithTasks{}, &domain.StoreError{Op: "list project tasks", Err: err}
	}
	defer rows.Close()

	result := models.ProjectWithTasks{Project: project}
	for rows.Next() {
		var t models.TaskWithStatus
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.StatusID, &t.ProjectID, &t.CreatedAt, &t.UpdatedAt,
			&t.Status.ID, &t.Status.Name, &t.Status.SortOrder); err != nil {
			return models.ProjectWithTasks{}, &domain.StoreError{Op: "scan task", Err: err}
		}
		result.Tasks = append(result.Tasks, t)
	}
	if err := rows.Err(); err != nil {
		return models.ProjectWithTasks{}, &domain.StoreError{Op: "list project tasks", Err: err}
	}
	return result, nil
}

// CreateProject persists a new project with created_at = updated_at.
func (s *Store) CreateProject(ctx context.Context, userID, title string, description *string) (models.Project, error) {
	ts := now()
	p := models.Project{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		UserID:      userID,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO projects(id, title, description, user_id, created_at, updated_at)
        VALUES(?, ?, ?, ?, ?, ?)`, p.ID, p.Title, p.Description, p.UserID, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return models.Project{}, &domain.StoreError{Op: "insert project", Err: err}
	}
	return p, nil
}

// UpdateProject writes the full row back with a fresh updated_at. The
// caller applies the patch against the current row first.
func (s *Store) UpdateProject(ctx context.Context, p models.Project) (models.Project, error) {
	p.UpdatedAt = now()
	res, err := s.db.ExecContext(ctx, `UPDATE projects SET title = ?, description = ?, updated_at = ? WHERE id = ?`,
		p.Title, p.Description, p.UpdatedAt, p.ID)
	if err != nil {
		return models.Project{}, &domain.StoreError{Op: "update project", Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.Project{}, &domain.StoreError{Op: "update project", Err: err}
	}
	if affected == 0 {
		return models.Project{}, &domain.NotFoundError{Kind: "project", ID: p.ID}
	}
	return p, nil
}

// DeleteProject removes a project and cascades to its tasks in one
// transaction: no reader may observe the project gone with tasks left.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM tasks WHERE project_id = ?`, id); err != nil {
			return &domain.StoreError{Op: "delete project tasks", Err: err}
		}
		res, err := tx.Exec(`DELETE FROM projects WHERE id = ?`, id)
		if err != nil {
			return &domain.StoreError{Op: "delete project", Err: err}
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return &domain.StoreError{Op: "delete project", Err: err}
		}
		if affected == 0 {
			return &domain.NotFoundError{Kind: "project", ID: id}
		}
		return nil
	})
}
