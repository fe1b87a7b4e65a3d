package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kosbot/kosbot-api/internal/domain/billing"
	"github.com/kosbot/kosbot-api/internal/domain/profile"
	"github.com/kosbot/kosbot-api/internal/services"
	"github.com/kosbot/kosbot-api/internal/testutil"
)

func (f *fixture) webhookHandler(t *testing.T, provider *testutil.MockBillingProvider) *WebhookHandler {
	t.Helper()
	products, err := billing.NewProductCatalog(map[string]string{"prod_pro": "pro"})
	if err != nil {
		t.Fatal(err)
	}
	rec := services.NewSubscriptionReconciler(f.profiles, provider, products, &testutil.MockNotifier{}, f.log)
	return NewWebhookHandler(rec, f.log)
}

func postWebhook(h *WebhookHandler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhooks/stripe", strings.NewReader(body))
	req.Header.Set("Stripe-Signature", "t=1,v1=abc")
	rr := httptest.NewRecorder()
	h.Stripe(rr, req)
	return rr
}

func TestWebhookHandler_Responses(t *testing.T) {
	created := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		event      billing.Event
		parseErr   error
		wantStatus int
		wantBody   string
		wantStored profile.Status
	}{
		{
			name: "subscription deleted",
			event: billing.SubscriptionDeleted{
				Header:     billing.Header{ID: "evt_1", Type: billing.TypeSubscriptionDeleted, Created: created},
				CustomerID: "cus_pro",
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"received":true}`,
			wantStored: profile.StatusCanceled,
		},
		{
			name:       "unrecognized event",
			event:      billing.Unrecognized{Header: billing.Header{ID: "evt_2", Type: "customer.created", Created: created}},
			wantStatus: http.StatusOK,
			wantBody:   `{"received":true}`,
			wantStored: profile.StatusActive,
		},
		{
			name:       "invalid signature",
			parseErr:   fmt.Errorf("%w: bad hmac", billing.ErrInvalidSignature),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Invalid webhook signature"}`,
			wantStored: profile.StatusActive,
		},
		{
			name:       "not configured",
			parseErr:   billing.ErrNotConfigured,
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   `{"error":"Billing webhooks are not configured"}`,
			wantStored: profile.StatusActive,
		},
		{
			name: "unknown customer",
			event: billing.PaymentFailed{
				Header:     billing.Header{ID: "evt_3", Type: billing.TypePaymentFailed, Created: created},
				CustomerID: "cus_nobody",
			},
			wantStatus: http.StatusInternalServerError,
			wantStored: profile.StatusActive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			owner := f.owner(profile.PlanPro, profile.StatusActive)
			provider := testutil.NewMockBillingProvider()
			provider.Event = tt.event
			provider.ParseError = tt.parseErr

			rr := postWebhook(f.webhookHandler(t, provider), `{}`)

			if rr.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", rr.Code, tt.wantStatus, rr.Body.String())
			}
			if tt.wantBody != "" && strings.TrimSpace(rr.Body.String()) != tt.wantBody {
				t.Errorf("body = %s, want %s", rr.Body.String(), tt.wantBody)
			}
			if tt.wantStatus >= http.StatusBadRequest {
				var body map[string]string
				if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil || body["error"] == "" {
					t.Errorf("error body = %s", rr.Body.String())
				}
			}
			if got := f.profiles.Get(owner.ID).Status; got != tt.wantStored {
				t.Errorf("stored status = %s, want %s", got, tt.wantStored)
			}
		})
	}
}

func TestWebhookHandler_Redelivery(t *testing.T) {
	f := newFixture()
	owner := f.owner(profile.PlanPro, profile.StatusActive)
	provider := testutil.NewMockBillingProvider()
	provider.Event = billing.SubscriptionDeleted{
		Header:     billing.Header{ID: "evt_1", Type: billing.TypeSubscriptionDeleted, Created: time.Now().UTC()},
		CustomerID: "cus_pro",
	}
	h := f.webhookHandler(t, provider)

	first := postWebhook(h, `{}`)
	once := f.profiles.Get(owner.ID)
	second := postWebhook(h, `{}`)
	twice := f.profiles.Get(owner.ID)

	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Fatalf("statuses = %d, %d", first.Code, second.Code)
	}
	if once.Status != profile.StatusCanceled || once.Plan != profile.PlanBasic {
		t.Errorf("after first delivery = %s/%s", once.Status, once.Plan)
	}
	if twice.Status != once.Status || twice.Plan != once.Plan || *twice.BillingReference != *once.BillingReference {
		t.Errorf("redelivery changed profile: %+v -> %+v", once, twice)
	}
}
