package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taskify/internal/domain"
)

type signInRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// handleSignInPage is a minimal placeholder for the sign-in UI, which
// lives in a separate frontend. It exists so the gate's redirect target
// resolves.
func (s *Server) handleSignInPage(c *gin.Context) {
	c.String(http.StatusOK, "sign in via POST /api/auth/sign-in")
}

func (s *Server) handleSignUpPage(c *gin.Context) {
	c.String(http.StatusOK, "sign up via POST /api/auth/sign-up")
}

// handleSignIn exchanges a registered email for a session cookie.
func (s *Server) handleSignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	sess, err := s.sessions.SignIn(c.Request.Context(), req.Email)
	if err != nil {
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown email"})
			return
		}
		s.respondError(c, err)
		return
	}

	s.setSessionCookie(c, sess.Token, sess.ExpiresAt)
	respondSuccess(c, http.StatusOK, gin.H{"user_id": sess.UserID})
}

// handleSignUp registers a new user and signs them in.
func (s *Server) handleSignUp(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	sess, err := s.sessions.SignUp(c.Request.Context(), req.Email, req.Name)
	if err != nil {
		s.respondError(c, err)
		return
	}

	s.setSessionCookie(c, sess.Token, sess.ExpiresAt)
	respondSuccess(c, http.StatusCreated, gin.H{"user_id": sess.UserID})
}

// handleSignOut revokes the current session and clears the cookie.
func (s *Server) handleSignOut(c *gin.Context) {
	if token, err := c.Cookie(s.cfg.CookieName); err == nil && token != "" {
		_ = s.sessions.Revoke(c.Request.Context(), token)
	}
	c.SetCookie(s.cfg.CookieName, "", -1, "/", "", false, true)
	respondSuccess(c, http.StatusOK, gin.H{"status": "signed out"})
}

func (s *Server) setSessionCookie(c *gin.Context, token string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	c.SetCookie(s.cfg.CookieName, token, maxAge, "/", "", false, true)
}
