package dto

import (
	"time"

	"github.com/kosbot/kosbot-api/internal/domain/entitlement"
	"github.com/kosbot/kosbot-api/internal/domain/profile"
)

// RegisterRequest represents a signup request
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name" validate:"max=120"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshTokenRequest represents a token refresh request. The token may
// also come from the refreshToken cookie.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// ProfileDTO is the owner profile as seen by the owner
type ProfileDTO struct {
	ID                 string         `json:"id"`
	Email              string         `json:"email"`
	Name               string         `json:"name,omitempty"`
	Plan               profile.Plan   `json:"plan"`
	Status             profile.Status `json:"status"`
	TrialEndAt         *time.Time     `json:"trial_end_at,omitempty"`
	TrialDaysRemaining int            `json:"trial_days_remaining"`
	HasBilling         bool           `json:"has_billing"`
	CreatedAt          time.Time      `json:"created_at"`
}

// NewProfileDTO converts a profile, deriving its status at now
func NewProfileDTO(p *profile.Profile, now time.Time) ProfileDTO {
	return ProfileDTO{
		ID:                 p.ID,
		Email:              p.Email,
		Name:               p.Name,
		Plan:               p.Plan,
		Status:             p.EffectiveStatus(now),
		TrialEndAt:         p.TrialEndAt,
		TrialDaysRemaining: p.TrialDaysRemaining(now),
		HasBilling:         p.HasBillingReference(),
		CreatedAt:          p.CreatedAt,
	}
}

// AuthResponse represents an authentication response
type AuthResponse struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
	ExpiresAt    time.Time  `json:"expires_at"`
	Profile      ProfileDTO `json:"profile"`
}

// MeResponse is the signed-in owner with usage and billing state
type MeResponse struct {
	Profile        ProfileDTO           `json:"profile"`
	Usage          *entitlement.Summary `json:"usage"`
	NeedsAttention bool                 `json:"needs_attention"`
	Banner         string               `json:"banner,omitempty"`
}
