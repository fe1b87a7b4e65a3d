package room

import "context"

// Service defines the interface for room business logic
type Service interface {
	// Create adds a room if the owner's plan allows another one
	Create(ctx context.Context, r *Room) error
	GetByID(ctx context.Context, ownerID, id string) (*Room, error)
	List(ctx context.Context, ownerID string, filter Filter) ([]*Room, error)
	Update(ctx context.Context, ownerID, id string, u Update) (*Room, error)
	// Delete removes a room that is not occupied
	Delete(ctx context.Context, ownerID, id string) error
}
