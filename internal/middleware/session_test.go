package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestSession(t *testing.T) {
	var seen string
	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	handler := Session("session_id", 30*time.Minute)(testHandler)
	existing := uuid.NewString()

	tests := []struct {
		name       string
		cookie     *http.Cookie
		wantReused bool
	}{
		{
			name:       "no cookie issues a new session",
			cookie:     nil,
			wantReused: false,
		},
		{
			name:       "valid cookie is reused",
			cookie:     &http.Cookie{Name: "session_id", Value: existing},
			wantReused: true,
		},
		{
			name:       "tampered cookie is replaced",
			cookie:     &http.Cookie{Name: "session_id", Value: "not-a-uuid"},
			wantReused: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = ""
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if _, err := uuid.Parse(seen); err != nil {
				t.Fatalf("session id %q is not a UUID", seen)
			}

			if tt.wantReused && seen != existing {
				t.Errorf("session id = %s, want %s", seen, existing)
			}
			if !tt.wantReused && tt.cookie != nil && seen == tt.cookie.Value {
				t.Errorf("expected a new session id, got %s", seen)
			}

			cookies := w.Result().Cookies()
			if len(cookies) != 1 {
				t.Fatalf("expected 1 cookie, got %d", len(cookies))
			}
			if cookies[0].Value != seen || !cookies[0].HttpOnly || cookies[0].MaxAge != 1800 {
				t.Errorf("unexpected cookie: %+v", cookies[0])
			}
		})
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := Logger(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req = req.WithContext(WithSessionID(req.Context(), "abc"))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	for _, want := range []string{`"status":418`, `"path":"/api/cart"`, `"session_id":"abc"`, `"bytes":15`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %s: %s", want, out)
		}
	}
}
