package payment

import (
	"context"
	"time"
)

// Repository defines the interface for payment data access
type Repository interface {
	Create(ctx context.Context, p *Payment) error
	List(ctx context.Context, ownerID string, filter Filter) ([]*Payment, error)
	SumByInvoice(ctx context.Context, ownerID, invoiceID string) (int64, error)
	SumSince(ctx context.Context, ownerID string, since time.Time) (int64, error)
}
