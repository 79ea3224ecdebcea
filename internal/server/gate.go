package server

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

// accessGate classifies every request before any handler runs:
//
//   - no session cookie on a non-public route: redirect to sign-in,
//     carrying the requested path as callbackUrl;
//   - session cookie present on the sign-in/sign-up pages: redirect home;
//   - anything else passes through.
//
// Only the presence of the cookie is inspected here. Validation is
// delegated to the session provider, consulted lazily by handlers, so
// the gate itself never fails a request.
func (s *Server) accessGate() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		token, err := c.Cookie(s.cfg.CookieName)
		hasSession := err == nil && token != ""

		if !s.isPublic(path) && !hasSession {
			target := s.cfg.SignInPath + "?callbackUrl=" + url.QueryEscape(path)
			c.Redirect(http.StatusFound, target)
			c.Abort()
			return
		}

		if hasSession && (path == s.cfg.SignInPath || path == s.cfg.SignUpPath) {
			c.Redirect(http.StatusFound, s.cfg.HomePath)
			c.Abort()
			return
		}

		c.Next()
	}
}

// isPublic reports whether the path is exempt from authentication.
func (s *Server) isPublic(path string) bool {
	for _, prefix := range s.cfg.PublicRoutes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
