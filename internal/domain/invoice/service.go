package invoice

import "context"

// Service defines the interface for invoice business logic
type Service interface {
	Create(ctx context.Context, inv *Invoice) error
	GetByID(ctx context.Context, ownerID, id string) (*Invoice, error)
	List(ctx context.Context, ownerID string, filter Filter) ([]*Invoice, error)
	Update(ctx context.Context, ownerID, id string, u Update) (*Invoice, error)
	Delete(ctx context.Context, ownerID, id string) error
}
