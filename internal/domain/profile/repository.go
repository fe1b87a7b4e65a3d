package profile

import "context"

// Repository defines the interface for profile data access
type Repository interface {
	// Create creates a new profile
	Create(ctx context.Context, p *Profile) error

	// GetByID retrieves a profile by ID
	GetByID(ctx context.Context, id string) (*Profile, error)

	// GetByEmail retrieves a profile by email
	GetByEmail(ctx context.Context, email string) (*Profile, error)

	// GetByBillingReference retrieves a profile by its billing customer id
	GetByBillingReference(ctx context.Context, ref string) (*Profile, error)

	// Update overwrites the mutable fields of a profile
	Update(ctx context.Context, p *Profile) error
}
