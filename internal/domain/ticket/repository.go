package ticket

import "context"

// Repository defines the interface for ticket data access
type Repository interface {
	Create(ctx context.Context, t *Ticket) error
	GetByID(ctx context.Context, ownerID, id string) (*Ticket, error)
	List(ctx context.Context, ownerID string, filter Filter) ([]*Ticket, error)
	Update(ctx context.Context, t *Ticket) error
	Delete(ctx context.Context, ownerID, id string) error
	Count(ctx context.Context, ownerID string, filter Filter) (int, error)
}
