package payment

import "context"

// Service defines the interface for payment business logic
type Service interface {
	// Record stores a payment and settles the invoice it pays
	Record(ctx context.Context, p *Payment) error
	List(ctx context.Context, ownerID string, filter Filter) ([]*Payment, error)
}
