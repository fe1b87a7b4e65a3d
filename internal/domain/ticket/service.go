package ticket

import "context"

// Service defines the interface for ticket business logic
type Service interface {
	Create(ctx context.Context, t *Ticket) error
	GetByID(ctx context.Context, ownerID, id string) (*Ticket, error)
	List(ctx context.Context, ownerID string, filter Filter) ([]*Ticket, error)
	Update(ctx context.Context, ownerID, id string, u Update) (*Ticket, error)
	Delete(ctx context.Context, ownerID, id string) error
}
