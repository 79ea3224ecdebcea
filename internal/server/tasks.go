package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskify/internal/models"
)

type createTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	StatusID    *string `json:"status_id"`
}

// handleCreateTask inserts a new task under a project. When no status is
// given the catalog default is assigned.
func (s *Server) handleCreateTask(c *gin.Context) {
	sess, ok := s.currentSession(c)
	if !ok {
		return
	}

	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	task, err := s.svc.CreateTask(c.Request.Context(), sess.UserID, c.Param("id"), req.Title, req.Description, req.StatusID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, gin.H{"task": task})
}

// handleUpdateTask applies a partial patch to a task.
func (s *Server) handleUpdateTask(c *gin.Context) {
	sess, ok := s.currentSession(c)
	if !ok {
		return
	}

	var patch models.TaskPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	task, err := s.svc.UpdateTask(c.Request.Context(), sess.UserID, c.Param("id"), patch)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"task": task})
}

// handleDeleteTask removes a task completely.
func (s *Server) handleDeleteTask(c *gin.Context) {
	sess, ok := s.currentSession(c)
	if !ok {
		return
	}

	if err := s.svc.DeleteTask(c.Request.Context(), sess.UserID, c.Param("id")); err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"status": "deleted"})
}
