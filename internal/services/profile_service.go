package services

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/kosbot/kosbot-api/internal/auth"
	"github.com/kosbot/kosbot-api/internal/domain/profile"
	"github.com/kosbot/kosbot-api/internal/pkg/errors"
	"github.com/kosbot/kosbot-api/internal/pkg/logger"
)

// ProfileService implements profile.Service
type ProfileService struct {
	repo       profile.Repository
	logger     *logger.Logger
	trialDays  int
	bcryptCost int
	now        func() time.Time
}

// NewProfileService creates a new profile service
func NewProfileService(repo profile.Repository, trialDays, bcryptCost int, log *logger.Logger) *ProfileService {
	return &ProfileService{
		repo:       repo,
		logger:     log,
		trialDays:  trialDays,
		bcryptCost: bcryptCost,
		now:        time.Now,
	}
}

// Register creates a trial profile with a hashed password
func (s *ProfileService) Register(ctx context.Context, email, password, name string) (*profile.Profile, error) {
	email = normalizeEmail(email)

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, errors.Internal("Failed to hash password", err)
	}

	p := profile.NewTrial(email, strings.TrimSpace(name), s.now().UTC(), s.trialDays)
	p.PasswordHash = hash

	if err := s.repo.Create(ctx, p); err != nil {
		if !errors.HasCode(err, errors.ErrCodeConflict) {
			s.logger.ErrorWithErr(err, "Failed to create profile")
		}
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"owner_id":     p.ID,
		"email":        p.Email,
		"trial_end_at": p.TrialEndAt,
	}).Info("Profile registered")

	return p, nil
}

// Authenticate checks credentials and returns the matching profile
func (s *ProfileService) Authenticate(ctx context.Context, email, password string) (*profile.Profile, error) {
	p, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.Unauthorized("Invalid email or password")
		}
		return nil, err
	}

	if err := auth.CheckPassword(p.PasswordHash, password); err != nil {
		if stderrors.Is(err, auth.ErrPasswordMismatch) {
			return nil, errors.Unauthorized("Invalid email or password")
		}
		return nil, errors.Internal("Failed to verify password", err)
	}

	return p, nil
}

// GetByID retrieves a profile by ID
func (s *ProfileService) GetByID(ctx context.Context, id string) (*profile.Profile, error) {
	return s.repo.GetByID(ctx, id)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
