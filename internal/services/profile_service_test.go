package services

import (
	"context"
	"testing"
	"time"

	"github.com/kosbot/kosbot-api/internal/domain/profile"
	"github.com/kosbot/kosbot-api/internal/pkg/errors"
	"github.com/kosbot/kosbot-api/internal/pkg/logger"
	"github.com/kosbot/kosbot-api/internal/testutil"
)

func newTestProfileService(repo profile.Repository, now time.Time) *ProfileService {
	s := NewProfileService(repo, 14, 4, logger.Nop())
	s.now = func() time.Time { return now }
	return s
}

func TestProfileService_Register(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	repo := testutil.NewMockProfileRepository()
	service := newTestProfileService(repo, now)
	ctx := context.Background()

	p, err := service.Register(ctx, "  Owner@Kos.Test ", "s3cret-pass", "Sari")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if p.Email != "owner@kos.test" {
		t.Errorf("Email = %q, want normalized", p.Email)
	}
	if p.Status != profile.StatusTrial || p.Plan != profile.PlanBasic {
		t.Errorf("new profile = %s/%s, want trial/basic", p.Status, p.Plan)
	}
	if p.TrialEndAt == nil || !p.TrialEndAt.Equal(now.AddDate(0, 0, 14)) {
		t.Errorf("TrialEndAt = %v, want %v", p.TrialEndAt, now.AddDate(0, 0, 14))
	}
	if !p.Consistent() {
		t.Error("new profile violates stored-state invariants")
	}
	if p.PasswordHash == "" || p.PasswordHash == "s3cret-pass" {
		t.Error("password was not hashed")
	}

	if _, err := service.Register(ctx, "owner@kos.test", "another", ""); !errors.HasCode(err, errors.ErrCodeConflict) {
		t.Errorf("duplicate Register() error = %v, want conflict", err)
	}
}

func TestProfileService_Authenticate(t *testing.T) {
	repo := testutil.NewMockProfileRepository()
	service := newTestProfileService(repo, time.Now())
	ctx := context.Background()

	if _, err := service.Register(ctx, "owner@kos.test", "correct-horse", "Sari"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  bool
	}{
		{name: "valid credentials", email: "owner@kos.test", password: "correct-horse"},
		{name: "email is case-insensitive", email: "OWNER@kos.test", password: "correct-horse"},
		{name: "wrong password", email: "owner@kos.test", password: "battery-staple", wantErr: true},
		{name: "unknown email", email: "nobody@kos.test", password: "correct-horse", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Authenticate(ctx, tt.email, tt.password)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Authenticate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.HasCode(err, errors.ErrCodeUnauthorized) {
				t.Errorf("Authenticate() error = %v, want unauthorized", err)
			}
		})
	}
}
