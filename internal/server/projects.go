package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskify/internal/models"
)

type createProjectRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

// handleListProjects returns the caller's projects with task counts,
// optionally narrowed by the q search parameter.
func (s *Server) handleListProjects(c *gin.Context) {
	sess, ok := s.currentSession(c)
	if !ok {
		return
	}

	projects, err := s.svc.SearchProjects(c.Request.Context(), sess.UserID, c.Query("q"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	if projects == nil {
		projects = []models.ProjectWithTaskCount{}
	}
	respondSuccess(c, http.StatusOK, gin.H{"projects": projects})
}

// handleGetProject returns one project with its tasks and statuses.
func (s *Server) handleGetProject(c *gin.Context) {
	sess, ok := s.currentSession(c)
	if !ok {
		return
	}

	project, err := s.svc.GetProject(c.Request.Context(), sess.UserID, c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"project": project})
}

// handleCreateProject creates a new project owned by the caller.
func (s *Server) handleCreateProject(c *gin.Context) {
	sess, ok := s.currentSession(c)
	if !ok {
		return
	}

	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	project, err := s.svc.CreateProject(c.Request.Context(), sess.UserID, req.Title, req.Description)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, gin.H{"project": project})
}

// handleUpdateProject applies a partial patch to a project.
func (s *Server) handleUpdateProject(c *gin.Context) {
	sess, ok := s.currentSession(c)
	if !ok {
		return
	}

	var patch models.ProjectPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	project, err := s.svc.UpdateProject(c.Request.Context(), sess.UserID, c.Param("id"), patch)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"project": project})
}

// handleDeleteProject removes a project and all of its tasks.
func (s *Server) handleDeleteProject(c *gin.Context) {
	sess, ok := s.currentSession(c)
	if !ok {
		return
	}

	if err := s.svc.DeleteProject(c.Request.Context(), sess.UserID, c.Param("id")); err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"status": "deleted"})
}
