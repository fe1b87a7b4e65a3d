package room

import "context"

// Repository defines the interface for room data access
type Repository interface {
	Create(ctx context.Context, r *Room) error
	GetByID(ctx context.Context, ownerID, id string) (*Room, error)
	List(ctx context.Context, ownerID string, filter Filter) ([]*Room, error)
	Update(ctx context.Context, r *Room) error
	Delete(ctx context.Context, ownerID, id string) error
	Count(ctx context.Context, ownerID string, filter Filter) (int, error)
}
