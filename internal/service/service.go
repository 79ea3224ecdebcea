// Package service implements the domain rules on top of the sqlite
// store: owner-scoped queries, validation, default status assignment and
// the cascade/touch contract between tasks and their projects.
package service

import (
	"context"
	"log/slog"
	"strings"

	"taskify/internal/domain"
	"taskify/internal/models"
	"taskify/internal/storage/sqlite"
)

// defaultStatusName is the catalog entry assigned to new tasks when the
// caller does not pick one.
const defaultStatusName = "Incomplete"

// Service exposes the project/task operations. All owner-scoped
// operations take the caller's user id explicitly; nothing is inferred
// from ambient state.
type Service struct {
	store  *sqlite.Store
	logger *slog.Logger
}

// New constructs a Service over the given store.
func New(store *sqlite.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger}
}

// ListStatuses returns the workflow catalog ascending by sort order.
func (s *Service) ListStatuses(ctx context.Context) ([]models.Status, error) {
	return s.store.ListStatuses(ctx)
}

// DefaultStatus picks the status for new tasks: the entry named
// "Incomplete", falling back to the first catalog entry by sort order.
func (s *Service) DefaultStatus(ctx context.Context) (models.Status, error) {
	statuses, err := s.store.ListStatuses(ctx)
	if err != nil {
		return models.Status{}, err
	}
	if len(statuses) == 0 {
		return models.Status{}, &domain.NotFoundError{Kind: "status", ID: defaultStatusName}
	}
	for _, st := range statuses {
		if st.Name == defaultStatusName {
			return st, nil
		}
	}
	return statuses[0], nil
}

// ListProjects returns the user's projects with task counts, most
// recently touched first.
func (s *Service) ListProjects(ctx context.Context, userID string) ([]models.ProjectWithTaskCount, error) {
	return s.store.ListProjectsByUser(ctx, userID)
}

// SearchProjects returns the user's projects whose title contains query
// as a case-insensitive substring. An empty query returns everything.
func (s *Service) SearchProjects(ctx context.Context, userID, query string) ([]models.ProjectWithTaskCount, error) {
	if query == "" {
		return s.store.ListProjectsByUser(ctx, userID)
	}
	return s.store.SearchProjectsByUser(ctx, userID, query)
}

// GetProject returns a project with its tasks joined with statuses. The
// ownership check happens here: a project owned by someone else yields
// an AuthorizationError, which handlers surface as not-found.
func (s *Service) GetProject(ctx context.Context, userID, projectID string) (models.ProjectWithTasks, error) {
	project, err := s.store.GetProjectWithTasks(ctx, projectID)
	if err != nil {
		return models.ProjectWithTasks{}, err
	}
	if project.UserID != userID {
		return models.ProjectWithTasks{}, &domain.AuthorizationError{Kind: "project", ID: projectID}
	}
	return project, nil
}

// CreateProject creates a project owned by userID.
func (s *Service) CreateProject(ctx context.Context, userID, title string, description *string) (models.Project, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Project{}, &domain.ValidationError{Field: "title", Reason: "must not be empty"}
	}
	project, err := s.store.CreateProject(ctx, userID, title, description)
	if err != nil {
		return models.Project{}, err
	}
	s.logger.Info("project created", slog.String("project_id", project.ID), slog.String("user_id", userID))
	return project, nil
}

// UpdateProject applies a partial patch. Absent fields are left
// untouched, never nulled.
func (s *Service) UpdateProject(ctx context.Context, userID, projectID string, patch models.ProjectPatch) (models.Project, error) {
	project, err := s.ownedProject(ctx, userID, projectID)
	if err != nil {
		return models.Project{}, err
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return models.Project{}, &domain.ValidationError{Field: "title", Reason: "must not be empty"}
		}
		project.Title = title
	}
	if patch.Description != nil {
		project.Description = patch.Description
	}

	return s.store.UpdateProject(ctx, project)
}

// DeleteProject removes the project and all its tasks atomically.
func (s *Service) DeleteProject(ctx context.Context, userID, projectID string) error {
	if _, err := s.ownedProject(ctx, userID, projectID); err != nil {
		return err
	}
	if err := s.store.DeleteProject(ctx, projectID); err != nil {
		return err
	}
	s.logger.Info("project deleted", slog.String("project_id", projectID), slog.String("user_id", userID))
	return nil
}

// CreateTask creates a task under the project, assigning the default
// status when none is given, and touches the parent project's
// updated_at in the same transaction.
func (s *Service) CreateTask(ctx context.Context, userID, projectID, title string, description *string, statusID *string) (models.TaskWithStatus, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.TaskWithStatus{}, &domain.ValidationError{Field: "title", Reason: "must not be empty"}
	}

	if _, err := s.ownedProject(ctx, userID, projectID); err != nil {
		return models.TaskWithStatus{}, err
	}

	var status models.Status
	var err error
	if statusID != nil {
		status, err = s.store.GetStatus(ctx, *statusID)
	} else {
		status, err = s.DefaultStatus(ctx)
	}
	if err != nil {
		return models.TaskWithStatus{}, err
	}

	task, err := s.store.CreateTask(ctx, projectID, title, description, status.ID)
	if err != nil {
		return models.TaskWithStatus{}, err
	}
	return models.TaskWithStatus{Task: task, Status: status}, nil
}

// UpdateTask applies a partial patch to a task, refreshes its
// updated_at and touches the parent project in the same transaction.
func (s *Service) UpdateTask(ctx context.Context, userID, taskID string, patch models.TaskPatch) (models.TaskWithStatus, error) {
	task, err := s.ownedTask(ctx, userID, taskID)
	if err != nil {
		return models.TaskWithStatus{}, err
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return models.TaskWithStatus{}, &domain.ValidationError{Field: "title", Reason: "must not be empty"}
		}
		task.Title = title
	}
	if patch.Description != nil {
		task.Description = patch.Description
	}
	if patch.StatusID != nil {
		// A patched status must resolve before the write happens.
		if _, err := s.store.GetStatus(ctx, *patch.StatusID); err != nil {
			return models.TaskWithStatus{}, err
		}
		task.StatusID = *patch.StatusID
	}

	updated, err := s.store.UpdateTask(ctx, task)
	if err != nil {
		return models.TaskWithStatus{}, err
	}
	status, err := s.store.GetStatus(ctx, updated.StatusID)
	if err != nil {
		return models.TaskWithStatus{}, err
	}
	return models.TaskWithStatus{Task: updated, Status: status}, nil
}

// DeleteTask resolves the task's owning project first so the parent
// touch can still happen after the row is gone, then deletes and touches
// atomically.
func (s *Service) DeleteTask(ctx context.Context, userID, taskID string) error {
	task, err := s.ownedTask(ctx, userID, taskID)
	if err != nil {
		return err
	}
	return s.store.DeleteTask(ctx, task.ID, task.ProjectID)
}

// ownedProject fetches a project and verifies the caller owns it.
func (s *Service) ownedProject(ctx context.Context, userID, projectID string) (models.Project, error) {
	project, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		return models.Project{}, err
	}
	if project.UserID != userID {
		return models.Project{}, &domain.AuthorizationError{Kind: "project", ID: projectID}
	}
	return project, nil
}

// ownedTask fetches a task and verifies the caller owns its project.
func (s *Service) ownedTask(ctx context.Context, userID, taskID string) (models.Task, error) {
	task, err := s.store.GetTask(ctx, taskID)
	if err != nil {
		return models.Task{}, err
	}
	project, err := s.store.GetProject(ctx, task.ProjectID)
	if err != nil {
		return models.Task{}, err
	}
	if project.UserID != userID {
		return models.Task{}, &domain.AuthorizationError{Kind: "task", ID: taskID}
	}
	return task, nil
}
