package tenant

import "context"

// Service defines the interface for tenant business logic
type Service interface {
	Create(ctx context.Context, t *Tenant) error
	GetByID(ctx context.Context, ownerID, id string) (*Tenant, error)
	List(ctx context.Context, ownerID string, filter Filter) ([]*Tenant, error)
	Update(ctx context.Context, ownerID, id string, u Update) (*Tenant, error)
	Delete(ctx context.Context, ownerID, id string) error
	// Leases lists active leases, flagging those that end soon
	Leases(ctx context.Context, ownerID string) ([]Lease, error)
}
