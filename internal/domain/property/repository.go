package property

import "context"

// Repository defines the interface for property data access
type Repository interface {
	Create(ctx context.Context, p *Property) error
	GetByID(ctx context.Context, ownerID, id string) (*Property, error)
	List(ctx context.Context, ownerID string) ([]*Property, error)
	Update(ctx context.Context, p *Property) error
	Delete(ctx context.Context, ownerID, id string) error
	Count(ctx context.Context, ownerID string) (int, error)
}
