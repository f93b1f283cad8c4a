package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Lixing-Zhang/course-catalog/internal/repository"
	"github.com/Lixing-Zhang/course-catalog/internal/service"
	"github.com/Lixing-Zhang/course-catalog/pkg/logger"
)

const testCookie = "session_id"

type testServer struct {
	handler  http.Handler
	sessions *service.SessionService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	log := logger.New("error")
	catalog := service.NewCatalogService(repository.NewInMemoryCatalogRepository())
	sessions := service.NewSessionService(catalog, service.SessionOptions{
		MaxSessions: 16,
		TTL:         time.Hour,
	}, log)

	handler := NewRouter(RouterConfig{
		SessionCookie:  testCookie,
		SessionTTL:     time.Hour,
		AllowedOrigins: []string{"*"},
	}, catalog, sessions, log)

	return &testServer{handler: handler, sessions: sessions}
}

// do sends a request as the given session; an empty session sends no cookie
func (s *testServer) do(method, target, session string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if session != "" {
		req.AddCookie(&http.Cookie{Name: testCookie, Value: session})
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	return w
}

func newSession() string {
	return uuid.NewString()
}
