package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kosbot/kosbot-api/internal/auth"
	"github.com/kosbot/kosbot-api/internal/pkg/i18n"
	"github.com/kosbot/kosbot-api/internal/pkg/logger"
)

const testSecret = "middleware-secret"

func TestAuthMiddleware(t *testing.T) {
	tokens, err := auth.MintTokens("owner-1", "owner@kos.test", testSecret, time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("MintTokens() error = %v", err)
	}

	var seen string
	h := AuthMiddleware(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = GetOwnerID(r)
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name       string
		header     string
		cookie     string
		wantStatus int
		wantOwner  string
	}{
		{name: "bearer token", header: "Bearer " + tokens.AccessToken, wantStatus: http.StatusNoContent, wantOwner: "owner-1"},
		{name: "cookie token", cookie: tokens.AccessToken, wantStatus: http.StatusNoContent, wantOwner: "owner-1"},
		{name: "missing token", wantStatus: http.StatusUnauthorized},
		{name: "malformed header", header: "Token abc", wantStatus: http.StatusUnauthorized},
		{name: "refresh token rejected", header: "Bearer " + tokens.RefreshToken, wantStatus: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer not.a.jwt", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = ""
			req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "accessToken", Value: tt.cookie})
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if seen != tt.wantOwner {
				t.Errorf("owner = %q, want %q", seen, tt.wantOwner)
			}
		})
	}
}

func TestLocale(t *testing.T) {
	var got string
	h := Locale(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = i18n.FromContext(r.Context()).String()
	}))

	for header, want := range map[string]string{
		"":                        "en",
		"id-ID,id;q=0.9,en;q=0.8": "id",
		"fr-CA":                   "fr",
		"de":                      "en",
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Accept-Language", header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if got != want {
			t.Errorf("Accept-Language %q negotiated %q, want %q", header, got, want)
		}
		if rec.Header().Get("Content-Language") != want {
			t.Errorf("Content-Language = %q, want %q", rec.Header().Get("Content-Language"), want)
		}
	}
}

func TestRecovery(t *testing.T) {
	h := Recovery(logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("database handle is nil")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if body := rec.Body.String(); strings.Contains(body, "database handle") {
		t.Errorf("panic value leaked to client: %s", body)
	}
}

func TestRequestID(t *testing.T) {
	var got string
	h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetRequestID(r)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	h.ServeHTTP(httptest.NewRecorder(), req)
	if got != "abc-123" {
		t.Errorf("request id = %q, want caller id", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, string(make([]byte, 200)))
	h.ServeHTTP(httptest.NewRecorder(), req)
	if len(got) != 36 {
		t.Errorf("oversized id should be replaced by a uuid, got %q", got)
	}
}

func TestOwnerRateLimit(t *testing.T) {
	h := OwnerRateLimit(1, 2)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(WithOwner(req.Context(), "owner-1", ""))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("status codes = %v, want [200 200 429]", codes)
	}
}
