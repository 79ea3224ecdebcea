package sqlite

import (
	"context"
	"errors"
	"testing"

	"taskify/internal/domain"
	"taskify/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:", nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func seedUser(t *testing.T, store *Store, email string) models.User {
	t.Helper()
	user, err := store.CreateUser(context.Background(), email, "Test User")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func seedProject(t *testing.T, store *Store, userID, title string) models.Project {
	t.Helper()
	project, err := store.CreateProject(context.Background(), userID, title, nil)
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	return project
}

func statusByName(t *testing.T, store *Store, name string) models.Status {
	t.Helper()
	statuses, err := store.ListStatuses(context.Background())
	if err != nil {
		t.Fatalf("list statuses: %v", err)
	}
	for _, st := range statuses {
		if st.Name == name {
			return st
		}
	}
	t.Fatalf("status %q not seeded", name)
	return models.Status{}
}

func TestStatusCatalogSeededInOrder(t *testing.T) {
	store := newTestStore(t)

	statuses, err := store.ListStatuses(context.Background())
	if err != nil {
		t.Fatalf("list statuses: %v", err)
	}

	want := []string{"Incomplete", "In Progress", "Done"}
	if len(statuses) != len(want) {
		t.Fatalf("expected %d statuses, got %d", len(want), len(statuses))
	}
	for i, name := range want {
		if statuses[i].Name != name {
			t.Errorf("statuses[%d] = %q, want %q", i, statuses[i].Name, name)
		}
		if i > 0 && statuses[i].SortOrder <= statuses[i-1].SortOrder {
			t.Errorf("sort order not ascending at %d", i)
		}
	}
}

func TestCreateTaskTouchesParentProject(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := seedUser(t, store, "owner@example.com")
	project := seedProject(t, store, user.ID, "Board")
	status := statusByName(t, store, "Incomplete")

	task, err := store.CreateTask(ctx, project.ID, "First task", nil, status.ID)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	refreshed, err := store.GetProject(ctx, project.ID)
	if err != nil {
		t.Fatalf("get project: %v", err)
	}
	if refreshed.UpdatedAt.Before(project.UpdatedAt) {
		t.Errorf("project updated_at went backwards: %v -> %v", project.UpdatedAt, refreshed.UpdatedAt)
	}
	if refreshed.UpdatedAt.Before(task.CreatedAt) {
		t.Errorf("project updated_at %v predates task creation %v", refreshed.UpdatedAt, task.CreatedAt)
	}
}

func TestUpdateAndDeleteTaskTouchParentProject(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := seedUser(t, store, "owner@example.com")
	project := seedProject(t, store, user.ID, "Board")
	status := statusByName(t, store, "Incomplete")

	task, err := store.CreateTask(ctx, project.ID, "Task", nil, status.ID)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	afterCreate, _ := store.GetProject(ctx, project.ID)

	task.Title = "Renamed"
	if _, err := store.UpdateTask(ctx, task); err != nil {
		t.Fatalf("update task: %v", err)
	}
	afterUpdate, _ := store.GetProject(ctx, project.ID)
	if afterUpdate.UpdatedAt.Before(afterCreate.UpdatedAt) {
		t.Errorf("update did not refresh project timestamp")
	}

	if err := store.DeleteTask(ctx, task.ID, project.ID); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	afterDelete, _ := store.GetProject(ctx, project.ID)
	if afterDelete.UpdatedAt.Before(afterUpdate.UpdatedAt) {
		t.Errorf("delete did not refresh project timestamp")
	}
}

func TestDeleteProjectCascadesToTasks(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := seedUser(t, store, "owner@example.com")
	project := seedProject(t, store, user.ID, "Doomed")
	status := statusByName(t, store, "Incomplete")

	task, err := store.CreateTask(ctx, project.ID, "Orphan candidate", nil, status.ID)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	if err := store.DeleteProject(ctx, project.ID); err != nil {
		t.Fatalf("delete project: %v", err)
	}

	if _, err := store.GetProject(ctx, project.ID); err == nil {
		t.Fatal("project still present after delete")
	}

	_, err = store.GetTask(ctx, task.ID)
	var notFound *domain.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError for cascaded task, got %v", err)
	}
}

func TestDeleteMissingEntitiesReturnNotFound(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	var notFound *domain.NotFoundError
	if err := store.DeleteProject(ctx, "missing"); !errors.As(err, &notFound) {
		t.Errorf("delete project: expected NotFoundError, got %v", err)
	}
	if err := store.DeleteTask(ctx, "missing", "also-missing"); !errors.As(err, &notFound) {
		t.Errorf("delete task: expected NotFoundError, got %v", err)
	}
	if _, err := store.GetStatus(ctx, "missing"); !errors.As(err, &notFound) {
		t.Errorf("get status: expected NotFoundError, got %v", err)
	}
}

func TestProjectListingScopedAndOrdered(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := seedUser(t, store, "alice@example.com")
	bob := seedUser(t, store, "bob@example.com")

	first := seedProject(t, store, alice.ID, "Older")
	second := seedProject(t, store, alice.ID, "Newer")
	seedProject(t, store, bob.ID, "Foreign")

	// Touching the older project moves it to the front of the list.
	status := statusByName(t, store, "Incomplete")
	if _, err := store.CreateTask(ctx, first.ID, "bump", nil, status.ID); err != nil {
		t.Fatalf("create task: %v", err)
	}

	projects, err := store.ListProjectsByUser(ctx, alice.ID)
	if err != nil {
		t.Fatalf("list projects: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(projects))
	}
	if projects[0].ID != first.ID || projects[1].ID != second.ID {
		t.Errorf("projects not ordered by updated_at desc: got [%s, %s]", projects[0].Title, projects[1].Title)
	}
	if projects[0].TaskCount != 1 || projects[1].TaskCount != 0 {
		t.Errorf("task counts wrong: %d, %d", projects[0].TaskCount, projects[1].TaskCount)
	}
	for _, p := range projects {
		if p.UserID != alice.ID {
			t.Errorf("foreign project leaked into listing: %s", p.Title)
		}
	}
}

func TestSearchProjectsMatchesLiteralSubstring(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := seedUser(t, store, "owner@example.com")
	seedProject(t, store, user.ID, "100% complete rewrite")
	seedProject(t, store, user.ID, "Website Redesign")

	matches, err := store.SearchProjectsByUser(ctx, user.ID, "100%")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(matches) != 1 || matches[0].Title != "100% complete rewrite" {
		t.Fatalf("LIKE metacharacters not escaped: got %d matches", len(matches))
	}

	// Case-insensitive substring match.
	matches, err = store.SearchProjectsByUser(ctx, user.ID, "website")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(matches) != 1 || matches[0].Title != "Website Redesign" {
		t.Fatalf("case-insensitive search failed: got %d matches", len(matches))
	}

	matches, err = store.SearchProjectsByUser(ctx, user.ID, "no such project")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("expected no matches, got %d", len(matches))
	}
}

func TestGetProjectWithTasksOrdering(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := seedUser(t, store, "owner@example.com")
	project := seedProject(t, store, user.ID, "Board")

	done := statusByName(t, store, "Done")
	inProgress := statusByName(t, store, "In Progress")

	// A is Done (higher sort order), B is In Progress and newer.
	a, err := store.CreateTask(ctx, project.ID, "A", nil, done.ID)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	b, err := store.CreateTask(ctx, project.ID, "B", nil, inProgress.ID)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	c, err := store.CreateTask(ctx, project.ID, "C", nil, inProgress.ID)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	loaded, err := store.GetProjectWithTasks(ctx, project.ID)
	if err != nil {
		t.Fatalf("get project with tasks: %v", err)
	}
	if len(loaded.Tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(loaded.Tasks))
	}

	// In Progress before Done, and within In Progress newest first.
	wantOrder := []string{c.ID, b.ID, a.ID}
	for i, want := range wantOrder {
		if loaded.Tasks[i].ID != want {
			t.Errorf("tasks[%d] = %s, want %s", i, loaded.Tasks[i].Title, want)
		}
	}
}

func TestUpdateProjectPreservesDescription(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := seedUser(t, store, "owner@example.com")
	desc := "original description"
	project, err := store.CreateProject(ctx, user.ID, "Titled", &desc)
	if err != nil {
		t.Fatalf("create project: %v", err)
	}

	project.Title = "Retitled"
	updated, err := store.UpdateProject(ctx, project)
	if err != nil {
		t.Fatalf("update project: %v", err)
	}
	if updated.Description == nil || *updated.Description != desc {
		t.Errorf("description changed by title-only update")
	}
	if updated.UpdatedAt.Before(updated.CreatedAt) {
		t.Errorf("updated_at %v before created_at %v", updated.UpdatedAt, updated.CreatedAt)
	}
}
