package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/kosbot/kosbot-api/internal/domain/profile"
	"github.com/kosbot/kosbot-api/internal/pkg/errors"
)

// ProfileRepository implements profile.Repository
type ProfileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *sql.DB) profile.Repository {
	return &ProfileRepository{db: db}
}

const profileColumns = `id, email, name, password_hash, plan, status, trial_end_at,
	billing_reference, billing_event_at, created_at, updated_at`

// Create creates a new profile
func (r *ProfileRepository) Create(ctx context.Context, p *profile.Profile) error {
	now := time.Now().UTC().Truncate(time.Second)
	if p.ID == "" {
		p.ID = newID()
	}
	p.CreatedAt = now
	p.UpdatedAt = now

	query := `
		INSERT INTO profiles (` + profileColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.Email, p.Name, p.PasswordHash, string(p.Plan), string(p.Status),
		unixOrNil(p.TrialEndAt), stringOrNil(p.BillingReference), unixOrNil(p.BillingEventAt),
		now.Unix(), now.Unix(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.Conflict("An account with this email already exists")
		}
		return errors.DatabaseError("Failed to create profile", err)
	}

	return nil
}

// GetByID retrieves a profile by ID
func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*profile.Profile, error) {
	return r.getOne(ctx, "id", id)
}

// GetByEmail retrieves a profile by email
func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*profile.Profile, error) {
	return r.getOne(ctx, "email", email)
}

// GetByBillingReference retrieves a profile by its billing customer id
func (r *ProfileRepository) GetByBillingReference(ctx context.Context, ref string) (*profile.Profile, error) {
	return r.getOne(ctx, "billing_reference", ref)
}

func (r *ProfileRepository) getOne(ctx context.Context, column, value string) (*profile.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE ` + column + ` = $1`

	p, err := scanProfile(r.db.QueryRowContext(ctx, query, value))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Profile")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get profile", err)
	}
	return p, nil
}

// Update overwrites the mutable fields of a profile
func (r *ProfileRepository) Update(ctx context.Context, p *profile.Profile) error {
	p.UpdatedAt = time.Now().UTC().Truncate(time.Second)

	query := `
		UPDATE profiles
		SET name = $1, plan = $2, status = $3, trial_end_at = $4,
			billing_reference = $5, billing_event_at = $6, updated_at = $7
		WHERE id = $8
	`

	result, err := r.db.ExecContext(ctx, query,
		p.Name, string(p.Plan), string(p.Status), unixOrNil(p.TrialEndAt),
		stringOrNil(p.BillingReference), unixOrNil(p.BillingEventAt), p.UpdatedAt.Unix(), p.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.Conflict("Billing reference is already linked to another profile")
		}
		return errors.DatabaseError("Failed to update profile", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Profile")
	}

	return nil
}

func scanProfile(row *sql.Row) (*profile.Profile, error) {
	var p profile.Profile
	var plan, status string
	var trialEnd, eventAt sql.NullInt64
	var ref sql.NullString
	var createdAt, updatedAt int64

	err := row.Scan(&p.ID, &p.Email, &p.Name, &p.PasswordHash, &plan, &status,
		&trialEnd, &ref, &eventAt, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	p.Plan = profile.Plan(plan)
	p.Status = profile.Status(status)
	p.TrialEndAt = timeFromNull(trialEnd)
	p.BillingReference = stringFromNull(ref)
	p.BillingEventAt = timeFromNull(eventAt)
	p.CreatedAt = fromUnix(createdAt)
	p.UpdatedAt = fromUnix(updatedAt)
	return &p, nil
}
