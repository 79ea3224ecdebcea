package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"taskify/internal/auth"
	"taskify/internal/config"
	"taskify/internal/models"
	"taskify/internal/service"
	"taskify/internal/storage/sqlite"
)

type testEnv struct {
	srv      *Server
	store    *sqlite.Store
	sessions *auth.SessionProvider
	cfg      config.AuthConfig
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := sqlite.Open(":memory:", nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	cfg := config.DefaultConfig().Auth
	svc := service.New(store, nil)
	sessions := auth.NewSessionProvider(store, cfg.SessionTTL)

	return &testEnv{
		srv:      New(svc, sessions, cfg, nil),
		store:    store,
		sessions: sessions,
		cfg:      cfg,
	}
}

// signUp registers a user and returns their session for cookie-based
// requests.
func (e *testEnv) signUp(t *testing.T, email string) models.Session {
	t.Helper()
	sess, err := e.sessions.SignUp(context.Background(), email, "Test User")
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}
	return sess
}

func (e *testEnv) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: e.cfg.CookieName, Value: token})
	}

	w := httptest.NewRecorder()
	e.srv.Engine().ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}
