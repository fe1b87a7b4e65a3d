package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/kosbot/kosbot-api/internal/api/dto"
	"github.com/kosbot/kosbot-api/internal/auth"
	"github.com/kosbot/kosbot-api/internal/config"
	"github.com/kosbot/kosbot-api/internal/domain/entitlement"
	"github.com/kosbot/kosbot-api/internal/domain/profile"
	"github.com/kosbot/kosbot-api/internal/pkg/errors"
	"github.com/kosbot/kosbot-api/internal/pkg/i18n"
	"github.com/kosbot/kosbot-api/internal/pkg/logger"
	"github.com/kosbot/kosbot-api/internal/pkg/utils"
	"github.com/kosbot/kosbot-api/internal/pkg/validator"
)

const (
	accessCookie  = "accessToken"
	refreshCookie = "refreshToken"
)

// UsageReader reports an owner's usage against plan limits
type UsageReader interface {
	Summary(ctx context.Context, ownerID string) (*entitlement.Summary, error)
}

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	profiles  profile.Service
	usage     UsageReader
	config    *config.Config
	logger    *logger.Logger
	validator *validator.Validator
	now       func() time.Time
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	profiles profile.Service,
	usage UsageReader,
	cfg *config.Config,
	log *logger.Logger,
	val *validator.Validator,
) *AuthHandler {
	return &AuthHandler{
		profiles:  profiles,
		usage:     usage,
		config:    cfg,
		logger:    log,
		validator: val,
		now:       time.Now,
	}
}

// Register creates a trial profile and signs the owner in
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	p, err := h.profiles.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to register")
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"owner_id": p.ID,
		"plan":     p.Plan,
	}).Info("Owner registered")

	h.issueTokens(w, http.StatusCreated, p)
}

// Login authenticates an owner with email and password
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	p, err := h.profiles.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.WithFields(map[string]interface{}{
			"email": req.Email,
		}).Warn("Authentication failed")
		if appErr, ok := errors.AsAppError(err); ok && appErr.StatusCode < http.StatusInternalServerError {
			utils.WriteError(w, appErr)
		} else {
			writeServiceError(w, h.logger, err, "Failed to authenticate")
		}
		return
	}

	h.logger.With("owner_id", p.ID).Info("Owner logged in")
	h.issueTokens(w, http.StatusOK, p)
}

// Refresh exchanges a refresh token for a new token pair
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req dto.RefreshTokenRequest
	if r.ContentLength != 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.WriteError(w, errors.BadRequest("Invalid request body"))
			return
		}
	}
	if req.RefreshToken == "" {
		if c, err := r.Cookie(refreshCookie); err == nil {
			req.RefreshToken = c.Value
		}
	}
	if req.RefreshToken == "" {
		utils.WriteError(w, errors.Unauthorized("Missing refresh token"))
		return
	}

	claims, err := auth.ParseRefreshClaims(req.RefreshToken, h.config.Auth.JWTSecret)
	if err != nil {
		utils.WriteError(w, errors.Unauthorized("Invalid refresh token"))
		return
	}

	p, err := h.profiles.GetByID(r.Context(), claims.OwnerID)
	if err != nil {
		utils.WriteError(w, errors.Unauthorized("Invalid refresh token"))
		return
	}

	h.issueTokens(w, http.StatusOK, p)
}

// Logout clears the auth cookies
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	for _, name := range []string{accessCookie, refreshCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			HttpOnly: true,
			Secure:   h.config.IsProduction(),
			SameSite: http.SameSiteStrictMode,
			Path:     "/",
			MaxAge:   -1,
		})
	}
	utils.WriteSuccessWithMessage(w, http.StatusOK, "Logged out", nil)
}

// Me returns the signed-in owner with plan usage and billing state
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := ownerID(w, r)
	if !ok {
		return
	}

	p, err := h.profiles.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to load profile")
		return
	}
	summary, err := h.usage.Summary(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to load usage")
		return
	}

	now := h.now()
	resp := dto.MeResponse{
		Profile:        dto.NewProfileDTO(p, now),
		Usage:          summary,
		NeedsAttention: p.NeedsAttention(now),
	}
	lang := i18n.FromContext(r.Context())
	switch p.EffectiveStatus(now) {
	case profile.StatusPastDue:
		resp.Banner = i18n.Sprintf(lang, i18n.PastDueNotice)
	case profile.StatusExpired:
		resp.Banner = i18n.Sprintf(lang, i18n.ExpiredNotice)
	}

	utils.WriteSuccess(w, http.StatusOK, resp)
}

func (h *AuthHandler) issueTokens(w http.ResponseWriter, status int, p *profile.Profile) {
	tokens, err := auth.MintTokens(
		p.ID,
		p.Email,
		h.config.Auth.JWTSecret,
		h.config.Auth.AccessTokenExpiry,
		h.config.Auth.RefreshTokenExpiry,
	)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to generate tokens")
		utils.WriteError(w, errors.Internal("Failed to generate tokens", err))
		return
	}

	h.setCookie(w, accessCookie, tokens.AccessToken, h.config.Auth.AccessTokenExpiry)
	h.setCookie(w, refreshCookie, tokens.RefreshToken, h.config.Auth.RefreshTokenExpiry)

	utils.WriteSuccess(w, status, dto.AuthResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresAt:    tokens.ExpiresAt,
		Profile:      dto.NewProfileDTO(p, h.now()),
	})
}

func (h *AuthHandler) setCookie(w http.ResponseWriter, name, value string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		HttpOnly: true,
		Secure:   h.config.IsProduction(),
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
	})
}
