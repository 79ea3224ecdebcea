package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskify/internal/auth"
	"taskify/internal/config"
	"taskify/internal/domain"
	"taskify/internal/models"
	"taskify/internal/service"
)

// Server provides the HTTP surface over the domain service.
type Server struct {
	engine   *gin.Engine
	svc      *service.Service
	sessions auth.Provider
	cfg      config.AuthConfig
	logger   *slog.Logger
}

// New constructs the HTTP server with routes and middleware configured.
// The access gate runs before any other handler.
func New(svc *service.Service, sessions auth.Provider, cfg config.AuthConfig, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithWriter(gin.DefaultWriter, "/api/healthz"))

	srv := &Server{
		engine:   router,
		svc:      svc,
		sessions: sessions,
		cfg:      cfg,
		logger:   logger,
	}

	router.Use(srv.accessGate())
	srv.registerRoutes()
	return srv
}

// Engine exposes the underlying Gin engine.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// registerRoutes wires the auth pages and the API together.
func (s *Server) registerRoutes() {
	s.engine.GET(s.cfg.SignInPath, s.handleSignInPage)
	s.engine.GET(s.cfg.SignUpPath, s.handleSignUpPage)

	api := s.engine.Group("/api")
	{
		api.GET("/healthz", s.handleHealth)

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/sign-in", s.handleSignIn)
			authGroup.POST("/sign-up", s.handleSignUp)
			authGroup.POST("/sign-out", s.handleSignOut)
		}

		api.GET("/statuses", s.handleListStatuses)

		projects := api.Group("/projects")
		{
			projects.GET("", s.handleListProjects)
			projects.POST("", s.handleCreateProject)
			projects.GET(":id", s.handleGetProject)
			projects.PUT(":id", s.handleUpdateProject)
			projects.DELETE(":id", s.handleDeleteProject)
			projects.POST(":id/tasks", s.handleCreateTask)
		}

		api.PUT("/tasks/:id", s.handleUpdateTask)
		api.DELETE("/tasks/:id", s.handleDeleteTask)
	}
}

// handleHealth provides a basic readiness endpoint.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// currentSession resolves the session cookie through the provider. The
// gate only checked presence; this is the real validation.
func (s *Server) currentSession(c *gin.Context) (models.Session, bool) {
	token, err := c.Cookie(s.cfg.CookieName)
	if err != nil || token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return models.Session{}, false
	}
	sess, err := s.sessions.Resolve(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
		return models.Session{}, false
	}
	return sess, true
}

// respondError maps the domain error taxonomy to HTTP statuses. An
// authorization failure is reported as not-found so resource existence
// never leaks to non-owners.
func (s *Server) respondError(c *gin.Context, err error) {
	var validationErr *domain.ValidationError
	var notFoundErr *domain.NotFoundError
	var authzErr *domain.AuthorizationError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundErr.Error()})
	case errors.As(err, &authzErr):
		s.logger.Warn("ownership check failed", slog.String("path", c.FullPath()), slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		s.logger.Error("request failed", slog.String("path", c.FullPath()), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// respondSuccess wraps a payload in a JSON envelope for consistency.
func respondSuccess(c *gin.Context, status int, payload any) {
	if payload == nil {
		c.Status(status)
		return
	}
	c.JSON(status, payload)
}
