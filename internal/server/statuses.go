package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// handleListStatuses returns the workflow catalog in display order.
func (s *Server) handleListStatuses(c *gin.Context) {
	if _, ok := s.currentSession(c); !ok {
		return
	}

	statuses, err := s.svc.ListStatuses(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"statuses": statuses})
}
