package property

import "context"

// Service defines the interface for property business logic
type Service interface {
	// Create adds a property if the owner's plan allows another one
	Create(ctx context.Context, p *Property) error
	GetByID(ctx context.Context, ownerID, id string) (*Property, error)
	List(ctx context.Context, ownerID string) ([]*Property, error)
	Update(ctx context.Context, ownerID, id string, u Update) (*Property, error)
	// Delete removes a property that has no rooms left
	Delete(ctx context.Context, ownerID, id string) error
}
