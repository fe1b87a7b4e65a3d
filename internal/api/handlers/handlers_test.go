package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kosbot/kosbot-api/internal/api/middleware"
	"github.com/kosbot/kosbot-api/internal/config"
	"github.com/kosbot/kosbot-api/internal/domain/profile"
	"github.com/kosbot/kosbot-api/internal/pkg/i18n"
	"github.com/kosbot/kosbot-api/internal/pkg/logger"
	"github.com/kosbot/kosbot-api/internal/pkg/validator"
	"github.com/kosbot/kosbot-api/internal/services"
	"github.com/kosbot/kosbot-api/internal/testutil"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

// detailMap decodes object-shaped error details, as sent with plan limits
func (e envelope) detailMap(t *testing.T) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	if err := json.Unmarshal(e.Error.Details, &m); err != nil {
		t.Fatalf("details %s: %v", e.Error.Details, err)
	}
	return m
}

// fieldErrors decodes the field list sent with validation failures
func (e envelope) fieldErrors(t *testing.T) []validator.ValidationError {
	t.Helper()
	var errs []validator.ValidationError
	if err := json.Unmarshal(e.Error.Details, &errs); err != nil {
		t.Fatalf("details %s: %v", e.Error.Details, err)
	}
	return errs
}

type fixture struct {
	profiles   *testutil.MockProfileRepository
	properties *testutil.MockPropertyRepository
	rooms      *testutil.MockRoomRepository
	tenants    *testutil.MockTenantRepository
	gate       *services.EntitlementService
	log        *logger.Logger
	val        *validator.Validator
	cfg        *config.Config
}

func newFixture() *fixture {
	f := &fixture{
		profiles:   testutil.NewMockProfileRepository(),
		properties: testutil.NewMockPropertyRepository(),
		rooms:      testutil.NewMockRoomRepository(),
		tenants:    testutil.NewMockTenantRepository(),
		log:        logger.Nop(),
		val:        validator.New(),
		cfg: &config.Config{
			Server: config.ServerConfig{Environment: "test"},
			Auth: config.AuthConfig{
				JWTSecret:          "handler-test-secret",
				AccessTokenExpiry:  15 * time.Minute,
				RefreshTokenExpiry: time.Hour,
				BCryptCost:         4,
			},
			Billing: config.BillingConfig{TrialDays: 14},
		},
	}
	f.gate = services.NewEntitlementService(f.profiles, f.properties, f.rooms, f.log)
	return f
}

func (f *fixture) owner(plan profile.Plan, status profile.Status) *profile.Profile {
	ref := "cus_" + string(plan)
	return f.profiles.Add(&profile.Profile{
		Email:            string(plan) + "@kos.test",
		Plan:             plan,
		Status:           status,
		BillingReference: &ref,
	})
}

// request builds a request for an authenticated owner. Empty ownerID
// leaves the request anonymous.
func request(method, target, ownerID string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			_ = json.NewEncoder(&buf).Encode(body)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if ownerID != "" {
		req = req.WithContext(middleware.WithOwner(req.Context(), ownerID, "owner@kos.test"))
	}
	return req
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func withLanguage(req *http.Request, accept string) *http.Request {
	return req.WithContext(i18n.WithLanguage(req.Context(), i18n.Negotiate(accept)))
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.NewDecoder(rr.Body).Decode(&env); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return env
}

func TestOwnerRequired(t *testing.T) {
	f := newFixture()
	h := NewPropertyHandler(services.NewPropertyService(f.properties, f.rooms, f.gate, f.log), f.log, f.val)

	rr := httptest.NewRecorder()
	h.List(rr, request(http.MethodGet, "/api/v1/properties", "", nil))

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rr.Code)
	}
	if env := decode(t, rr); env.Success || env.Error.Code != "UNAUTHORIZED" {
		t.Errorf("envelope = %+v", env)
	}
}

func TestDecodeAndValidate(t *testing.T) {
	f := newFixture()
	h := NewPropertyHandler(services.NewPropertyService(f.properties, f.rooms, f.gate, f.log), f.log, f.val)
	owner := f.owner(profile.PlanPro, profile.StatusActive)

	tests := []struct {
		name      string
		body      interface{}
		wantCode  string
		wantField string
		wantTag   string
	}{
		{name: "malformed json", body: `{"name":`, wantCode: "BAD_REQUEST"},
		{name: "missing name", body: map[string]string{"city": "Yogyakarta"}, wantCode: "VALIDATION_ERROR", wantField: "name", wantTag: "required"},
		{name: "name too long", body: map[string]string{"name": strings.Repeat("x", 201)}, wantCode: "VALIDATION_ERROR", wantField: "name", wantTag: "max"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			h.Create(rr, request(http.MethodPost, "/api/v1/properties", owner.ID, tt.body))

			if rr.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rr.Code)
			}
			env := decode(t, rr)
			if env.Error.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", env.Error.Code, tt.wantCode)
			}
			if tt.wantField == "" {
				return
			}

			found := false
			for _, fe := range env.fieldErrors(t) {
				if fe.Field == tt.wantField && fe.Tag == tt.wantTag {
					found = true
				}
			}
			if !found {
				t.Errorf("details = %s, want %s/%s field error", env.Error.Details, tt.wantField, tt.wantTag)
			}
		})
	}
}
