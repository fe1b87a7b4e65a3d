package invoice

import (
	"context"
	"time"
)

// Repository defines the interface for invoice data access
type Repository interface {
	Create(ctx context.Context, inv *Invoice) error
	GetByID(ctx context.Context, ownerID, id string) (*Invoice, error)
	List(ctx context.Context, ownerID string, filter Filter) ([]*Invoice, error)
	Update(ctx context.Context, inv *Invoice) error
	Delete(ctx context.Context, ownerID, id string) error
	Count(ctx context.Context, ownerID string, filter Filter) (int, error)

	// MarkOverdue flips unpaid invoices due before day to overdue across all owners
	MarkOverdue(ctx context.Context, day string, now time.Time) (int64, error)
}
