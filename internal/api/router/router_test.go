package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kosbot/kosbot-api/internal/api/handlers"
	"github.com/kosbot/kosbot-api/internal/auth"
	"github.com/kosbot/kosbot-api/internal/config"
	"github.com/kosbot/kosbot-api/internal/domain/billing"
	"github.com/kosbot/kosbot-api/internal/domain/profile"
	"github.com/kosbot/kosbot-api/internal/pkg/logger"
	"github.com/kosbot/kosbot-api/internal/pkg/validator"
	"github.com/kosbot/kosbot-api/internal/services"
	"github.com/kosbot/kosbot-api/internal/testutil"
)

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }

func newTestRouter(t *testing.T) (http.Handler, *config.Config, *testutil.MockProfileRepository) {
	t.Helper()
	log := logger.Nop()
	val := validator.New()
	cfg := &config.Config{
		Server: config.ServerConfig{FrontendURL: "http://localhost:5173", Environment: "test", RateLimitRPS: 100, RateLimitBurst: 100},
		Auth:   config.AuthConfig{JWTSecret: "router-secret", AccessTokenExpiry: time.Minute, RefreshTokenExpiry: time.Hour, BCryptCost: 4},
	}

	profiles := testutil.NewMockProfileRepository()
	properties := testutil.NewMockPropertyRepository()
	rooms := testutil.NewMockRoomRepository()
	tenants := testutil.NewMockTenantRepository()
	invoices := testutil.NewMockInvoiceRepository()
	payments := testutil.NewMockPaymentRepository()
	tickets := testutil.NewMockTicketRepository()
	provider := testutil.NewMockBillingProvider()
	provider.ParseError = billing.ErrInvalidSignature

	products, err := billing.NewProductCatalog(map[string]string{"prod_pro": "pro"})
	if err != nil {
		t.Fatal(err)
	}

	gate := services.NewEntitlementService(profiles, properties, rooms, log)
	dash := services.NewDashboardService(services.DashboardRepos{
		Properties: properties,
		Rooms:      rooms,
		Tenants:    tenants,
		Invoices:   invoices,
		Payments:   payments,
		Tickets:    tickets,
	}, log)
	h := &Handlers{
		Health:    handlers.NewHealthHandler(okPinger{}, log),
		Auth:      handlers.NewAuthHandler(services.NewProfileService(profiles, 14, 4, log), gate, cfg, log, val),
		Billing:   handlers.NewBillingHandler(services.NewBillingService(profiles, provider, nil, services.BillingURLs{}, log), gate, log, val),
		Webhook:   handlers.NewWebhookHandler(services.NewSubscriptionReconciler(profiles, provider, products, nil, log), log),
		Property:  handlers.NewPropertyHandler(services.NewPropertyService(properties, rooms, gate, log), log, val),
		Room:      handlers.NewRoomHandler(services.NewRoomService(rooms, properties, tenants, gate, log), log, val),
		Tenant:    handlers.NewTenantHandler(services.NewTenantService(tenants, properties, rooms, log), log, val),
		Invoice:   handlers.NewInvoiceHandler(services.NewInvoiceService(invoices, tenants, log), log, val),
		Payment:   handlers.NewPaymentHandler(services.NewPaymentService(payments, invoices, log), log, val),
		Ticket:    handlers.NewTicketHandler(services.NewTicketService(tickets, properties, rooms, log), log, val),
		Dashboard: handlers.NewDashboardHandler(dash, log),
	}
	return New(cfg, log, h), cfg, profiles
}

func TestRouter_Routes(t *testing.T) {
	r, cfg, profiles := newTestRouter(t)
	owner := profiles.Add(&profile.Profile{Email: "owner@kos.test", Plan: profile.PlanBasic, Status: profile.StatusActive})
	tokens, err := auth.MintTokens(owner.ID, owner.Email, cfg.Auth.JWTSecret, time.Minute, time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		method     string
		path       string
		token      string
		wantStatus int
	}{
		{name: "health", method: http.MethodGet, path: "/health", wantStatus: http.StatusOK},
		{name: "ready", method: http.MethodGet, path: "/ready", wantStatus: http.StatusOK},
		{name: "metrics", method: http.MethodGet, path: "/metrics", wantStatus: http.StatusOK},
		{name: "webhook needs no login", method: http.MethodPost, path: "/webhooks/stripe", wantStatus: http.StatusBadRequest},
		{name: "properties require login", method: http.MethodGet, path: "/api/v1/properties", wantStatus: http.StatusUnauthorized},
		{name: "properties with token", method: http.MethodGet, path: "/api/v1/properties", token: tokens.AccessToken, wantStatus: http.StatusOK},
		{name: "refresh token rejected as access", method: http.MethodGet, path: "/api/v1/auth/me", token: tokens.RefreshToken, wantStatus: http.StatusUnauthorized},
		{name: "me", method: http.MethodGet, path: "/api/v1/auth/me", token: tokens.AccessToken, wantStatus: http.StatusOK},
		{name: "leases route wins over id", method: http.MethodGet, path: "/api/v1/tenants/leases", token: tokens.AccessToken, wantStatus: http.StatusOK},
		{name: "dashboard revenue", method: http.MethodGet, path: "/api/v1/dashboard/revenue", token: tokens.AccessToken, wantStatus: http.StatusOK},
		{name: "unknown route", method: http.MethodGet, path: "/api/v1/nope", token: tokens.AccessToken, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader("{}"))
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Errorf("%s %s = %d, want %d: %s", tt.method, tt.path, rr.Code, tt.wantStatus, rr.Body.String())
			}
		})
	}
}
