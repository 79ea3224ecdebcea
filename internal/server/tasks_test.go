package server

import (
	"net/http"
	"testing"

	"taskify/internal/models"
)

func TestTaskLifecycleOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	sess := env.signUp(t, "owner@example.com")

	w := env.request(t, http.MethodPost, "/api/projects", sess.Token, map[string]any{"title": "Board"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create project = %d", w.Code)
	}
	var created struct {
		Project models.Project `json:"project"`
	}
	decodeBody(t, w, &created)
	projectID := created.Project.ID

	// Create without a status: the catalog default is assigned.
	w = env.request(t, http.MethodPost, "/api/projects/"+projectID+"/tasks", sess.Token, map[string]any{
		"title": "First task",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create task = %d: %s", w.Code, w.Body.String())
	}
	var taskResp struct {
		Task models.TaskWithStatus `json:"task"`
	}
	decodeBody(t, w, &taskResp)
	if taskResp.Task.Status.Name != "Incomplete" {
		t.Errorf("default status = %q, want Incomplete", taskResp.Task.Status.Name)
	}

	// Move it to Done.
	var statuses struct {
		Statuses []models.Status `json:"statuses"`
	}
	w = env.request(t, http.MethodGet, "/api/statuses", sess.Token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list statuses = %d", w.Code)
	}
	decodeBody(t, w, &statuses)

	var doneID string
	for _, st := range statuses.Statuses {
		if st.Name == "Done" {
			doneID = st.ID
		}
	}
	if doneID == "" {
		t.Fatal("Done status missing from catalog")
	}

	w = env.request(t, http.MethodPut, "/api/tasks/"+taskResp.Task.ID, sess.Token, map[string]any{
		"status_id": doneID,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update task = %d: %s", w.Code, w.Body.String())
	}
	decodeBody(t, w, &taskResp)
	if taskResp.Task.Status.Name != "Done" {
		t.Errorf("status after move = %q, want Done", taskResp.Task.Status.Name)
	}

	// Delete it; the project must survive the touch.
	w = env.request(t, http.MethodDelete, "/api/tasks/"+taskResp.Task.ID, sess.Token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete task = %d", w.Code)
	}
	w = env.request(t, http.MethodGet, "/api/projects/"+projectID, sess.Token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("project gone after task delete: %d", w.Code)
	}
	var loaded struct {
		Project models.ProjectWithTasks `json:"project"`
	}
	decodeBody(t, w, &loaded)
	if len(loaded.Project.Tasks) != 0 {
		t.Errorf("task still listed after delete")
	}
}

func TestCreateTaskEmptyTitleRejected(t *testing.T) {
	env := newTestEnv(t)
	sess := env.signUp(t, "owner@example.com")

	w := env.request(t, http.MethodPost, "/api/projects", sess.Token, map[string]any{"title": "Board"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create project = %d", w.Code)
	}
	var created struct {
		Project models.Project `json:"project"`
	}
	decodeBody(t, w, &created)

	w = env.request(t, http.MethodPost, "/api/projects/"+created.Project.ID+"/tasks", sess.Token, map[string]any{
		"title": "",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty task title = %d, want 400", w.Code)
	}
}
