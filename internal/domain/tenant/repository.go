package tenant

import "context"

// Repository defines the interface for tenant data access
type Repository interface {
	Create(ctx context.Context, t *Tenant) error
	GetByID(ctx context.Context, ownerID, id string) (*Tenant, error)
	List(ctx context.Context, ownerID string, filter Filter) ([]*Tenant, error)
	Update(ctx context.Context, t *Tenant) error
	Delete(ctx context.Context, ownerID, id string) error
	CountActive(ctx context.Context, ownerID, day string) (int, error)
}
