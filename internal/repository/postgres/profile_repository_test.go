package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/kosbot/kosbot-api/internal/domain/profile"
	"github.com/kosbot/kosbot-api/internal/pkg/errors"
	"github.com/kosbot/kosbot-api/internal/testutil"
)

func seedProfile(t *testing.T, db *sql.DB, email string) *profile.Profile {
	t.Helper()
	p := profile.NewTrial(email, "Owner", time.Now().UTC(), 14)
	p.PasswordHash = "hash"
	if err := NewProfileRepository(db).Create(context.Background(), p); err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	return p
}

func TestProfileRepository_Create(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	repo := NewProfileRepository(db)

	tests := []struct {
		name     string
		email    string
		wantCode string
	}{
		{name: "create profile successfully", email: "owner@kos.test"},
		{name: "create another profile", email: "other@kos.test"},
		{name: "duplicate email", email: "owner@kos.test", wantCode: errors.ErrCodeConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := profile.NewTrial(tt.email, "", time.Now(), 14)
			p.PasswordHash = "hash"
			err := repo.Create(context.Background(), p)

			if tt.wantCode != "" {
				if !errors.HasCode(err, tt.wantCode) {
					t.Errorf("Create() error = %v, want code %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			if p.ID == "" {
				t.Error("Create() did not set profile ID")
			}
		})
	}
}

func TestProfileRepository_Lookups(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	repo := NewProfileRepository(db)
	ctx := context.Background()
	p := seedProfile(t, db, "owner@kos.test")

	got, err := repo.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Email != p.Email || got.Status != profile.StatusTrial || got.Plan != profile.PlanBasic {
		t.Errorf("GetByID() = %+v", got)
	}
	if got.TrialEndAt == nil || got.TrialEndAt.Unix() != p.TrialEndAt.Unix() {
		t.Errorf("TrialEndAt = %v, want %v", got.TrialEndAt, p.TrialEndAt)
	}
	if got.BillingReference != nil || got.BillingEventAt != nil {
		t.Error("new profile should have no billing reference or event time")
	}

	if _, err := repo.GetByEmail(ctx, "owner@kos.test"); err != nil {
		t.Errorf("GetByEmail() error = %v", err)
	}
	if _, err := repo.GetByID(ctx, "missing"); !errors.IsNotFound(err) {
		t.Errorf("GetByID(missing) error = %v, want not found", err)
	}
	if _, err := repo.GetByBillingReference(ctx, "cus_none"); !errors.IsNotFound(err) {
		t.Errorf("GetByBillingReference(none) error = %v, want not found", err)
	}
}

func TestProfileRepository_Update(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	repo := NewProfileRepository(db)
	ctx := context.Background()
	p := seedProfile(t, db, "owner@kos.test")

	ref := "cus_123"
	eventAt := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)
	p.Plan = profile.PlanPro
	p.Status = profile.StatusActive
	p.TrialEndAt = nil
	p.BillingReference = &ref
	p.BillingEventAt = &eventAt

	if err := repo.Update(ctx, p); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := repo.GetByBillingReference(ctx, "cus_123")
	if err != nil {
		t.Fatalf("GetByBillingReference() error = %v", err)
	}
	if got.ID != p.ID || got.Plan != profile.PlanPro || got.Status != profile.StatusActive {
		t.Errorf("updated profile = %+v", got)
	}
	if got.TrialEndAt != nil {
		t.Error("TrialEndAt should be cleared")
	}
	if got.BillingEventAt == nil || !got.BillingEventAt.Equal(eventAt) {
		t.Errorf("BillingEventAt = %v, want %v", got.BillingEventAt, eventAt)
	}

	other := seedProfile(t, db, "other@kos.test")
	other.BillingReference = &ref
	if err := repo.Update(ctx, other); !errors.HasCode(err, errors.ErrCodeConflict) {
		t.Errorf("Update() with taken reference error = %v, want conflict", err)
	}

	missing := &profile.Profile{ID: "missing", Plan: profile.PlanBasic, Status: profile.StatusTrial}
	if err := repo.Update(ctx, missing); !errors.IsNotFound(err) {
		t.Errorf("Update(missing) error = %v, want not found", err)
	}
}
