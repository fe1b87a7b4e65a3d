package services

import (
	"context"
	"testing"

	"github.com/kosbot/kosbot-api/internal/domain/profile"
	"github.com/kosbot/kosbot-api/internal/domain/property"
	"github.com/kosbot/kosbot-api/internal/domain/room"
	"github.com/kosbot/kosbot-api/internal/domain/tenant"
	"github.com/kosbot/kosbot-api/internal/pkg/errors"
)

func TestRoomService_Create_PlanLimit(t *testing.T) {
	tests := []struct {
		name     string
		plan     profile.Plan
		existing int
		wantErr  bool
	}{
		{name: "basic tenth room", plan: profile.PlanBasic, existing: 9},
		{name: "basic eleventh room", plan: profile.PlanBasic, existing: 10, wantErr: true},
		{name: "pro hundredth room", plan: profile.PlanPro, existing: 99},
		{name: "pro hundred and first room", plan: profile.PlanPro, existing: 100, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPropertyFixture()
			ctx := context.Background()
			ownerID := f.owner(tt.plan)
			p := &property.Property{OwnerID: ownerID, Name: "Kos"}
			f.properties.Create(ctx, p)
			for i := 0; i < tt.existing; i++ {
				f.rooms.Create(ctx, &room.Room{OwnerID: ownerID, PropertyID: p.ID, Name: "R"})
			}

			err := f.roomSvc.Create(ctx, &room.Room{OwnerID: ownerID, PropertyID: p.ID, Name: "New"})
			if (err != nil) != tt.wantErr {
				t.Fatalf("Create() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.HasCode(err, errors.ErrCodeLimitReached) {
				t.Errorf("Create() error = %v, want plan limit", err)
			}
		})
	}
}

func TestRoomService_Create_UnknownProperty(t *testing.T) {
	f := newPropertyFixture()
	ownerID := f.owner(profile.PlanBasic)

	err := f.roomSvc.Create(context.Background(), &room.Room{OwnerID: ownerID, PropertyID: "missing", Name: "A1"})
	if !errors.IsNotFound(err) {
		t.Errorf("Create() error = %v, want not found", err)
	}
}

func TestRoomService_TenantAssignment(t *testing.T) {
	f := newPropertyFixture()
	ctx := context.Background()
	ownerID := f.owner(profile.PlanBasic)
	p := &property.Property{OwnerID: ownerID, Name: "Kos"}
	f.properties.Create(ctx, p)
	tn := &tenant.Tenant{OwnerID: ownerID, PropertyID: p.ID, FullName: "Budi", StartDate: "2026-01-01"}
	f.tenants.Create(ctx, tn)

	r := &room.Room{OwnerID: ownerID, PropertyID: p.ID, Name: "B2", PriceMonthly: 1500000}
	if err := f.roomSvc.Create(ctx, r); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if r.Status != room.StatusVacant {
		t.Errorf("new room status = %s, want vacant", r.Status)
	}

	updated, err := f.roomSvc.Update(ctx, ownerID, r.ID, room.Update{TenantID: &tn.ID})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Status != room.StatusOccupied {
		t.Errorf("status after assigning tenant = %s, want occupied", updated.Status)
	}

	if err := f.roomSvc.Delete(ctx, ownerID, r.ID); !errors.HasCode(err, errors.ErrCodeConflict) {
		t.Errorf("Delete() occupied room error = %v, want conflict", err)
	}

	empty := ""
	updated, err = f.roomSvc.Update(ctx, ownerID, r.ID, room.Update{TenantID: &empty})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Status != room.StatusVacant || updated.TenantID != nil {
		t.Errorf("after clearing tenant: status = %s tenant = %v", updated.Status, updated.TenantID)
	}
	if err := f.roomSvc.Delete(ctx, ownerID, r.ID); err != nil {
		t.Errorf("Delete() vacant room error = %v", err)
	}
}

func TestRoomService_Update_Validation(t *testing.T) {
	f := newPropertyFixture()
	ctx := context.Background()
	ownerID := f.owner(profile.PlanBasic)
	p := &property.Property{OwnerID: ownerID, Name: "Kos"}
	f.properties.Create(ctx, p)
	r := &room.Room{OwnerID: ownerID, PropertyID: p.ID, Name: "C3"}
	f.roomSvc.Create(ctx, r)

	bad := room.Status("haunted")
	negative := int64(-1)
	tests := []struct {
		name string
		u    room.Update
	}{
		{name: "unknown status", u: room.Update{Status: &bad}},
		{name: "negative price", u: room.Update{PriceMonthly: &negative}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.roomSvc.Update(ctx, ownerID, r.ID, tt.u); !errors.HasCode(err, errors.ErrCodeValidation) {
				t.Errorf("Update() error = %v, want validation error", err)
			}
		})
	}
}
