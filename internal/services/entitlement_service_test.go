package services

import (
	"context"
	"testing"
	"time"

	"github.com/kosbot/kosbot-api/internal/domain/entitlement"
	"github.com/kosbot/kosbot-api/internal/domain/profile"
	"github.com/kosbot/kosbot-api/internal/domain/property"
	"github.com/kosbot/kosbot-api/internal/domain/room"
)

func TestEntitlementService_Summary(t *testing.T) {
	ctx := context.Background()
	f := newPropertyFixture()
	ownerID := f.owner(profile.PlanBasic)

	f.properties.Create(ctx, &property.Property{OwnerID: ownerID, Name: "Kos Melati"})
	for i := 0; i < 3; i++ {
		f.rooms.Create(ctx, &room.Room{OwnerID: ownerID, PropertyID: "p", Name: "R"})
	}

	got, err := f.gate.Summary(ctx, ownerID)
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}

	if got.Plan != profile.PlanBasic || got.Status != profile.StatusActive {
		t.Errorf("Summary() plan/status = %s/%s", got.Plan, got.Status)
	}
	wantProps := entitlement.Usage{Resource: entitlement.ResourceProperty, Used: 1, Limit: 1, CanAdd: false}
	if got.Properties.Used != wantProps.Used || got.Properties.Limit != wantProps.Limit || got.Properties.CanAdd {
		t.Errorf("Properties = %+v, want %+v", got.Properties, wantProps)
	}
	if got.Properties.Message == "" {
		t.Error("Properties.Message should explain the limit")
	}
	if got.Rooms.Used != 3 || got.Rooms.Limit != 10 || !got.Rooms.CanAdd || got.Rooms.Message != "" {
		t.Errorf("Rooms = %+v", got.Rooms)
	}
	if got.SuggestedPlan != profile.PlanPro {
		t.Errorf("SuggestedPlan = %q, want pro", got.SuggestedPlan)
	}
}

func TestEntitlementService_Summary_Enterprise(t *testing.T) {
	ctx := context.Background()
	f := newPropertyFixture()
	ownerID := f.owner(profile.PlanEnterprise)
	for i := 0; i < 20; i++ {
		f.properties.Create(ctx, &property.Property{OwnerID: ownerID, Name: "Kos"})
	}

	got, err := f.gate.Summary(ctx, ownerID)
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if got.Properties.Limit != entitlement.Unlimited || !got.Properties.CanAdd {
		t.Errorf("Properties = %+v, want unlimited", got.Properties)
	}
	if got.SuggestedPlan != "" {
		t.Errorf("SuggestedPlan = %q, want none", got.SuggestedPlan)
	}
}

func TestEntitlementService_Summary_ExpiredTrial(t *testing.T) {
	f := newPropertyFixture()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	p := f.profiles.Add(profile.NewTrial("trial@kos.test", "", start, 14))
	f.gate.now = func() time.Time { return start.AddDate(0, 0, 20) }

	got, err := f.gate.Summary(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if got.Status != profile.StatusExpired {
		t.Errorf("Status = %q, want expired", got.Status)
	}
}

func TestEntitlementService_Authorize_IgnoresExpiry(t *testing.T) {
	f := newPropertyFixture()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	p := f.profiles.Add(profile.NewTrial("trial@kos.test", "", start, 14))
	f.gate.now = func() time.Time { return start.AddDate(0, 0, 20) }

	// limits follow the stored plan; expiry only drives the banner
	if err := f.gate.Authorize(context.Background(), p.ID, entitlement.ResourceProperty); err != nil {
		t.Errorf("Authorize() error = %v, want allowed under the basic limit", err)
	}
}

func TestEntitlementService_UnknownOwner(t *testing.T) {
	f := newPropertyFixture()
	if err := f.gate.Authorize(context.Background(), "missing", entitlement.ResourceProperty); err == nil {
		t.Fatal("Authorize() should fail for an unknown owner")
	}
}
