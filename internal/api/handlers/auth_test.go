package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kosbot/kosbot-api/internal/api/dto"
	"github.com/kosbot/kosbot-api/internal/auth"
	"github.com/kosbot/kosbot-api/internal/domain/profile"
	"github.com/kosbot/kosbot-api/internal/services"
)

func (f *fixture) authHandler() *AuthHandler {
	profiles := services.NewProfileService(f.profiles, f.cfg.Billing.TrialDays, f.cfg.Auth.BCryptCost, f.log)
	return NewAuthHandler(profiles, f.gate, f.cfg, f.log, f.val)
}

func TestAuthHandler_RegisterAndLogin(t *testing.T) {
	f := newFixture()
	h := f.authHandler()

	rr := httptest.NewRecorder()
	h.Register(rr, request(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":    "Sari@Kos.Test",
		"password": "rahasia-kos",
		"name":     "Sari",
	}))
	if rr.Code != http.StatusCreated {
		t.Fatalf("register status = %d: %s", rr.Code, rr.Body.String())
	}

	var registered dto.AuthResponse
	if err := json.Unmarshal(decode(t, rr).Data, &registered); err != nil {
		t.Fatal(err)
	}
	if registered.Profile.Plan != profile.PlanBasic || registered.Profile.Status != profile.StatusTrial {
		t.Errorf("new profile = %s/%s, want basic/trial", registered.Profile.Plan, registered.Profile.Status)
	}
	if registered.Profile.TrialDaysRemaining != 14 {
		t.Errorf("trial days remaining = %d, want 14", registered.Profile.TrialDaysRemaining)
	}
	claims, err := auth.ParseClaims(registered.AccessToken, f.cfg.Auth.JWTSecret)
	if err != nil || claims.OwnerID != registered.Profile.ID {
		t.Errorf("access token claims = %+v, err = %v", claims, err)
	}
	if len(rr.Result().Cookies()) != 2 {
		t.Errorf("cookies = %d, want access and refresh", len(rr.Result().Cookies()))
	}

	rr = httptest.NewRecorder()
	h.Register(rr, request(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":    "sari@kos.test",
		"password": "another-pass",
	}))
	if rr.Code != http.StatusConflict {
		t.Errorf("duplicate register status = %d, want 409", rr.Code)
	}

	tests := []struct {
		name       string
		password   string
		wantStatus int
	}{
		{name: "correct password", password: "rahasia-kos", wantStatus: http.StatusOK},
		{name: "wrong password", password: "salah", wantStatus: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			h.Login(rr, request(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
				"email":    "sari@kos.test",
				"password": tt.password,
			}))
			if rr.Code != tt.wantStatus {
				t.Errorf("login status = %d, want %d", rr.Code, tt.wantStatus)
			}
		})
	}
}

func TestAuthHandler_Refresh(t *testing.T) {
	f := newFixture()
	h := f.authHandler()
	owner := f.owner(profile.PlanPro, profile.StatusActive)

	tokens, err := auth.MintTokens(owner.ID, owner.Email, f.cfg.Auth.JWTSecret, time.Minute, time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	h.Refresh(rr, request(http.MethodPost, "/api/v1/auth/refresh", "", map[string]string{"refresh_token": tokens.RefreshToken}))
	if rr.Code != http.StatusOK {
		t.Errorf("refresh status = %d: %s", rr.Code, rr.Body.String())
	}

	// an access token is not accepted as a refresh token
	rr = httptest.NewRecorder()
	h.Refresh(rr, request(http.MethodPost, "/api/v1/auth/refresh", "", map[string]string{"refresh_token": tokens.AccessToken}))
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("refresh with access token status = %d, want 401", rr.Code)
	}

	req := request(http.MethodPost, "/api/v1/auth/refresh", "", nil)
	req.AddCookie(&http.Cookie{Name: refreshCookie, Value: tokens.RefreshToken})
	rr = httptest.NewRecorder()
	h.Refresh(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("cookie refresh status = %d", rr.Code)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	now := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	expiredEnd := now.Add(-24 * time.Hour)
	liveEnd := now.Add(5 * 24 * time.Hour)

	tests := []struct {
		name          string
		profile       profile.Profile
		accept        string
		wantStatus    profile.Status
		wantAttention bool
		wantBanner    string
	}{
		{
			name:       "running trial",
			profile:    profile.Profile{Plan: profile.PlanBasic, Status: profile.StatusTrial, TrialEndAt: &liveEnd},
			wantStatus: profile.StatusTrial,
		},
		{
			name:          "expired trial",
			profile:       profile.Profile{Plan: profile.PlanBasic, Status: profile.StatusTrial, TrialEndAt: &expiredEnd},
			wantStatus:    profile.StatusExpired,
			wantAttention: true,
			wantBanner:    "trial has ended",
		},
		{
			name:          "past due in french",
			profile:       profile.Profile{Plan: profile.PlanPro, Status: profile.StatusPastDue},
			accept:        "fr-FR",
			wantStatus:    profile.StatusPastDue,
			wantAttention: true,
			wantBanner:    "paiement a échoué",
		},
		{
			name:       "canceled",
			profile:    profile.Profile{Plan: profile.PlanBasic, Status: profile.StatusCanceled},
			wantStatus: profile.StatusCanceled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			h := f.authHandler()
			h.now = func() time.Time { return now }
			p := tt.profile
			p.Email = "me@kos.test"
			owner := f.profiles.Add(&p)

			req := request(http.MethodGet, "/api/v1/auth/me", owner.ID, nil)
			if tt.accept != "" {
				req = withLanguage(req, tt.accept)
			}
			rr := httptest.NewRecorder()
			h.Me(rr, req)
			if rr.Code != http.StatusOK {
				t.Fatalf("status = %d: %s", rr.Code, rr.Body.String())
			}

			var me dto.MeResponse
			if err := json.Unmarshal(decode(t, rr).Data, &me); err != nil {
				t.Fatal(err)
			}
			if me.Profile.Status != tt.wantStatus {
				t.Errorf("status = %s, want %s", me.Profile.Status, tt.wantStatus)
			}
			if me.NeedsAttention != tt.wantAttention {
				t.Errorf("needs_attention = %v, want %v", me.NeedsAttention, tt.wantAttention)
			}
			if tt.wantBanner == "" && me.Banner != "" {
				t.Errorf("unexpected banner %q", me.Banner)
			}
			if !strings.Contains(me.Banner, tt.wantBanner) {
				t.Errorf("banner = %q, want it to contain %q", me.Banner, tt.wantBanner)
			}
			if me.Usage == nil || me.Usage.Properties.Limit == 0 {
				t.Errorf("usage = %+v", me.Usage)
			}
		})
	}
}
