package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL + "/", Language: "id"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestLogin_SetsToken(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/auth/login" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Email != "owner@kos.test" {
			t.Errorf("email = %q", body.Email)
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"data": map[string]interface{}{
				"access_token":  "access-1",
				"refresh_token": "refresh-1",
				"profile":       map[string]interface{}{"id": "p1", "plan": "basic", "status": "trial"},
			},
		})
	})

	resp, err := c.Login(context.Background(), "owner@kos.test", "secret123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if c.GetToken() != "access-1" {
		t.Errorf("token = %q, want access-1", c.GetToken())
	}
	if resp.Profile.Plan != "basic" || resp.RefreshToken != "refresh-1" {
		t.Errorf("resp = %+v", resp)
	}
}

func TestRequestHeaders(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.Header.Get("Accept-Language"); got != "id" {
			t.Errorf("Accept-Language = %q", got)
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"data":    []map[string]interface{}{{"id": "prop-1", "name": "Kos Melati", "rooms_total": 4}},
		})
	})
	c.SetToken("tok")

	props, err := c.Properties().List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(props) != 1 || props[0].Name != "Kos Melati" || props[0].RoomsTotal != 4 {
		t.Errorf("props = %+v", props)
	}
}

func TestAPIErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantCode   string
		wantMsg    string
		planLimit  bool
		suggestion string
		wantFields []FieldError
	}{
		{
			name:       "plan limit",
			status:     http.StatusForbidden,
			body:       `{"success":false,"error":{"code":"PLAN_LIMIT_REACHED","message":"limit of 1 property(ies) for the BASIC plan","details":{"suggested_plan":"pro"}}}`,
			wantCode:   "PLAN_LIMIT_REACHED",
			wantMsg:    "limit of 1 property(ies) for the BASIC plan",
			planLimit:  true,
			suggestion: "pro",
		},
		{
			name:       "validation field list",
			status:     http.StatusBadRequest,
			body:       `{"success":false,"error":{"code":"VALIDATION_ERROR","message":"Validation failed","details":[{"field":"name","tag":"required","message":"name is required"}]}}`,
			wantCode:   "VALIDATION_ERROR",
			wantMsg:    "Validation failed",
			wantFields: []FieldError{{Field: "name", Tag: "required", Message: "name is required"}},
		},
		{
			name:     "details of unexpected shape",
			status:   http.StatusConflict,
			body:     `{"success":false,"error":{"code":"CONFLICT","message":"Property still has rooms","details":"rooms"}}`,
			wantCode: "CONFLICT",
			wantMsg:  "Property still has rooms",
		},
		{
			name:    "bare error string",
			status:  http.StatusServiceUnavailable,
			body:    `{"error":"billing is not configured"}`,
			wantMsg: "billing is not configured",
		},
		{
			name:    "not json",
			status:  http.StatusBadGateway,
			body:    "upstream down",
			wantMsg: "upstream down",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := c.Properties().Create(context.Background(), PropertyInput{Name: "Kos Mawar"})
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("error = %v, want *APIError", err)
			}
			if apiErr.StatusCode != tt.status || apiErr.Code != tt.wantCode || apiErr.Message != tt.wantMsg {
				t.Errorf("apiErr = %+v", apiErr)
			}
			if apiErr.IsPlanLimit() != tt.planLimit {
				t.Errorf("IsPlanLimit() = %v, want %v", apiErr.IsPlanLimit(), tt.planLimit)
			}
			if apiErr.SuggestedPlan() != tt.suggestion {
				t.Errorf("SuggestedPlan() = %q, want %q", apiErr.SuggestedPlan(), tt.suggestion)
			}
			if got := apiErr.FieldErrors(); !reflect.DeepEqual(got, tt.wantFields) {
				t.Errorf("FieldErrors() = %+v, want %+v", got, tt.wantFields)
			}
		})
	}
}

func TestBillingLimits(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"data": map[string]interface{}{
				"plan":       "basic",
				"status":     "active",
				"properties": map[string]interface{}{"resource": "property", "used": 1, "limit": 1, "can_add": false},
				"rooms":      map[string]interface{}{"resource": "room", "used": 3, "limit": 10, "can_add": true},
			},
		})
	})

	limits, err := c.Billing().Limits(context.Background())
	if err != nil {
		t.Fatalf("Limits() error = %v", err)
	}
	if limits.Properties.CanAdd || !limits.Rooms.CanAdd || limits.Rooms.Used != 3 {
		t.Errorf("limits = %+v", limits)
	}
}

func TestLogout_ClearsToken(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Logged out"})
	})
	c.SetToken("tok")

	if err := c.Logout(context.Background()); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if c.GetToken() != "" {
		t.Errorf("token = %q, want empty", c.GetToken())
	}
}
