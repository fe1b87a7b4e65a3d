package profile

import "context"

// Service defines the interface for account business logic
type Service interface {
	// Register creates a trial profile with a hashed password
	Register(ctx context.Context, email, password, name string) (*Profile, error)

	// Authenticate checks credentials and returns the matching profile
	Authenticate(ctx context.Context, email, password string) (*Profile, error)

	// GetByID retrieves a profile by ID
	GetByID(ctx context.Context, id string) (*Profile, error)
}
