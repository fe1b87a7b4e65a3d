package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kosbot/kosbot-api/internal/domain/profile"
	"github.com/kosbot/kosbot-api/internal/domain/property"
	"github.com/kosbot/kosbot-api/internal/domain/room"
	"github.com/kosbot/kosbot-api/internal/services"
)

func (f *fixture) propertyHandler() *PropertyHandler {
	return NewPropertyHandler(services.NewPropertyService(f.properties, f.rooms, f.gate, f.log), f.log, f.val)
}

func (f *fixture) addProperty(t *testing.T, ownerID, name string) *property.Property {
	t.Helper()
	p := &property.Property{OwnerID: ownerID, Name: name}
	if err := f.properties.Create(context.Background(), p); err != nil {
		t.Fatalf("seed property: %v", err)
	}
	return p
}

func TestPropertyHandler_Create_PlanLimit(t *testing.T) {
	tests := []struct {
		name        string
		plan        profile.Plan
		existing    int
		accept      string
		wantStatus  int
		wantMessage string
	}{
		{name: "basic first property", plan: profile.PlanBasic, existing: 0, wantStatus: http.StatusCreated},
		{
			name:        "basic second property",
			plan:        profile.PlanBasic,
			existing:    1,
			wantStatus:  http.StatusForbidden,
			wantMessage: "limit of 1 property(ies) for the BASIC plan",
		},
		{
			name:        "basic second property in indonesian",
			plan:        profile.PlanBasic,
			existing:    1,
			accept:      "id-ID,id;q=0.9",
			wantStatus:  http.StatusForbidden,
			wantMessage: "batas 1 properti untuk paket BASIC",
		},
		{name: "pro fifth property", plan: profile.PlanPro, existing: 4, wantStatus: http.StatusCreated},
		{name: "enterprise has no limit", plan: profile.PlanEnterprise, existing: 40, wantStatus: http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			h := f.propertyHandler()
			owner := f.owner(tt.plan, profile.StatusActive)
			for i := 0; i < tt.existing; i++ {
				f.addProperty(t, owner.ID, "Kos")
			}

			req := request(http.MethodPost, "/api/v1/properties", owner.ID, map[string]string{"name": "Kos Melati"})
			if tt.accept != "" {
				req = withLanguage(req, tt.accept)
			}
			rr := httptest.NewRecorder()
			h.Create(rr, req)

			if rr.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", rr.Code, tt.wantStatus, rr.Body.String())
			}

			env := decode(t, rr)
			count, _ := f.properties.Count(context.Background(), owner.ID)
			if tt.wantStatus != http.StatusForbidden {
				if count != tt.existing+1 {
					t.Errorf("property count = %d, want %d", count, tt.existing+1)
				}
				return
			}

			if count != tt.existing {
				t.Errorf("property count = %d, want %d (no row created)", count, tt.existing)
			}
			if env.Error.Code != "PLAN_LIMIT_REACHED" {
				t.Errorf("code = %q", env.Error.Code)
			}
			if !strings.Contains(env.Error.Message, tt.wantMessage) {
				t.Errorf("message = %q, want it to contain %q", env.Error.Message, tt.wantMessage)
			}
			details := env.detailMap(t)
			if details["suggested_plan"] != "pro" {
				t.Errorf("suggested_plan = %v, want pro", details["suggested_plan"])
			}
			if details["limit"] != float64(1) {
				t.Errorf("limit = %v, want 1", details["limit"])
			}
		})
	}
}

func TestPropertyHandler_OwnerScoping(t *testing.T) {
	f := newFixture()
	h := f.propertyHandler()
	alice := f.owner(profile.PlanPro, profile.StatusActive)
	bob := f.owner(profile.PlanEnterprise, profile.StatusActive)
	p := f.addProperty(t, alice.ID, "Kos Alice")

	rr := httptest.NewRecorder()
	h.Get(rr, withURLParam(request(http.MethodGet, "/api/v1/properties/"+p.ID, bob.ID, nil), "id", p.ID))
	if rr.Code != http.StatusNotFound {
		t.Errorf("foreign get status = %d, want 404", rr.Code)
	}

	rr = httptest.NewRecorder()
	h.List(rr, request(http.MethodGet, "/api/v1/properties", alice.ID, nil))
	env := decode(t, rr)
	var props []property.Property
	if err := json.Unmarshal(env.Data, &props); err != nil {
		t.Fatalf("decode properties: %v", err)
	}
	if len(props) != 1 || props[0].Name != "Kos Alice" {
		t.Errorf("properties = %+v", props)
	}
}

func TestPropertyHandler_DeleteWithRooms(t *testing.T) {
	f := newFixture()
	h := f.propertyHandler()
	owner := f.owner(profile.PlanPro, profile.StatusActive)
	p := f.addProperty(t, owner.ID, "Kos Mawar")
	if err := f.rooms.Create(context.Background(), &room.Room{OwnerID: owner.ID, PropertyID: p.ID, Name: "A1", Status: room.StatusVacant}); err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	h.Delete(rr, withURLParam(request(http.MethodDelete, "/api/v1/properties/"+p.ID, owner.ID, nil), "id", p.ID))

	if rr.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rr.Code)
	}
	if _, err := f.properties.GetByID(context.Background(), owner.ID, p.ID); err != nil {
		t.Errorf("property should still exist: %v", err)
	}
}

func TestRoomHandler_Create_PlanLimit(t *testing.T) {
	f := newFixture()
	h := NewRoomHandler(services.NewRoomService(f.rooms, f.properties, f.tenants, f.gate, f.log), f.log, f.val)
	owner := f.owner(profile.PlanBasic, profile.StatusActive)
	p := f.addProperty(t, owner.ID, "Kos Kenanga")

	for i := 0; i < 10; i++ {
		rr := httptest.NewRecorder()
		h.Create(rr, request(http.MethodPost, "/api/v1/rooms", owner.ID, map[string]interface{}{
			"property_id":   p.ID,
			"name":          "R" + string(rune('0'+i)),
			"price_monthly": 750000,
		}))
		if rr.Code != http.StatusCreated {
			t.Fatalf("room %d status = %d: %s", i, rr.Code, rr.Body.String())
		}
	}

	rr := httptest.NewRecorder()
	h.Create(rr, request(http.MethodPost, "/api/v1/rooms", owner.ID, map[string]interface{}{
		"property_id": p.ID,
		"name":        "R10",
	}))
	if rr.Code != http.StatusForbidden {
		t.Fatalf("11th room status = %d, want 403", rr.Code)
	}
	env := decode(t, rr)
	if !strings.Contains(env.Error.Message, "10") {
		t.Errorf("message %q should name the basic room limit", env.Error.Message)
	}
}
