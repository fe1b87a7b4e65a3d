package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kosbot/kosbot-api/internal/api/dto"
	"github.com/kosbot/kosbot-api/internal/domain/entitlement"
	"github.com/kosbot/kosbot-api/internal/domain/profile"
	"github.com/kosbot/kosbot-api/internal/services"
	"github.com/kosbot/kosbot-api/internal/testutil"
)

func (f *fixture) billingHandler(provider *testutil.MockBillingProvider) *BillingHandler {
	prices := map[string]string{"basic": "price_basic", "pro": "price_pro", "enterprise": "price_ent"}
	svc := services.NewBillingService(f.profiles, provider, prices, services.BillingURLs{
		Success:      "https://app.test/ok",
		Cancel:       "https://app.test/cancel",
		PortalReturn: "https://app.test/billing",
	}, f.log)
	return NewBillingHandler(svc, f.gate, f.log, f.val)
}

func TestBillingHandler_Checkout(t *testing.T) {
	tests := []struct {
		name       string
		body       interface{}
		wantStatus int
	}{
		{name: "pro plan", body: map[string]string{"plan": "pro"}, wantStatus: http.StatusOK},
		{name: "unknown plan", body: map[string]string{"plan": "platinum"}, wantStatus: http.StatusBadRequest},
		{name: "missing plan", body: map[string]string{}, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			provider := testutil.NewMockBillingProvider()
			h := f.billingHandler(provider)
			owner := f.owner(profile.PlanBasic, profile.StatusActive)

			rr := httptest.NewRecorder()
			h.Checkout(rr, request(http.MethodPost, "/api/v1/billing/checkout", owner.ID, tt.body))
			if rr.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", rr.Code, tt.wantStatus, rr.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				if len(provider.Checkouts) != 0 {
					t.Error("no session should be created for a rejected request")
				}
				return
			}

			var resp dto.SessionResponse
			if err := json.Unmarshal(decode(t, rr).Data, &resp); err != nil {
				t.Fatal(err)
			}
			if resp.URL != provider.CheckoutURL {
				t.Errorf("url = %q", resp.URL)
			}
			if len(provider.Checkouts) != 1 || provider.Checkouts[0].PriceID != "price_pro" || provider.Checkouts[0].OwnerID != owner.ID {
				t.Errorf("checkouts = %+v", provider.Checkouts)
			}
			if got := f.profiles.Get(owner.ID); got.Plan != profile.PlanBasic {
				t.Errorf("checkout must not change the plan, got %s", got.Plan)
			}
		})
	}
}

func TestBillingHandler_PortalWithoutCustomer(t *testing.T) {
	f := newFixture()
	h := f.billingHandler(testutil.NewMockBillingProvider())
	owner := f.profiles.Add(&profile.Profile{Email: "trial@kos.test", Plan: profile.PlanBasic, Status: profile.StatusTrial})

	rr := httptest.NewRecorder()
	h.Portal(rr, request(http.MethodPost, "/api/v1/billing/portal", owner.ID, nil))
	if rr.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rr.Code)
	}
}

func TestBillingHandler_Limits(t *testing.T) {
	f := newFixture()
	h := f.billingHandler(testutil.NewMockBillingProvider())
	owner := f.owner(profile.PlanBasic, profile.StatusActive)
	f.addProperty(t, owner.ID, "Kos Anggrek")

	rr := httptest.NewRecorder()
	h.Limits(rr, request(http.MethodGet, "/api/v1/billing/limits", owner.ID, nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}

	var summary entitlement.Summary
	if err := json.Unmarshal(decode(t, rr).Data, &summary); err != nil {
		t.Fatal(err)
	}
	if summary.Properties.CanAdd || summary.Properties.Used != 1 || summary.Properties.Message == "" {
		t.Errorf("properties = %+v", summary.Properties)
	}
	if !summary.Rooms.CanAdd || summary.Rooms.Limit != 10 {
		t.Errorf("rooms = %+v", summary.Rooms)
	}
	if summary.SuggestedPlan != profile.PlanPro {
		t.Errorf("suggested plan = %s, want pro", summary.SuggestedPlan)
	}

	rr = httptest.NewRecorder()
	h.ListPlans(rr, request(http.MethodGet, "/api/v1/billing/plans", owner.ID, nil))
	var plans []services.PlanOffer
	if err := json.Unmarshal(decode(t, rr).Data, &plans); err != nil {
		t.Fatal(err)
	}
	if len(plans) != 3 || !plans[0].IsCurrent || plans[1].IsCurrent {
		t.Errorf("plans = %+v", plans)
	}
}
