package models

import "time"

// User is an identity owning zero or more projects. Users are created by
// the auth/seed flows and never mutated by the core.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Status is one entry of the fixed workflow catalog a task can occupy.
type Status struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
}

// Project groups tasks under a single owning user.
type Project struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Task is a single unit of work inside a project. It always references
// exactly one project and one status.
type Task struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	StatusID    string    `json:"status_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TaskWithStatus joins a task with its resolved status row for display.
type TaskWithStatus struct {
	Task
	Status Status `json:"status"`
}

// ProjectWithTaskCount annotates a project with the number of owned
// tasks, computed at read time.
type ProjectWithTaskCount struct {
	Project
	TaskCount int `json:"task_count"`
}

// ProjectWithTasks is a project together with its tasks, each joined
// with its status.
type ProjectWithTasks struct {
	Project
	Tasks []TaskWithStatus `json:"tasks"`
}

// ProjectPatch carries the fields of a partial project update. A nil
// field is left untouched; it never means "set to empty".
type ProjectPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// TaskPatch carries the fields of a partial task update.
type TaskPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	StatusID    *string `json:"status_id"`
}

// Session is the evidence resolved from a session token by the session
// provider.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}
