package payment

import "time"

// Payment methods
const (
	MethodCash     = "cash"
	MethodTransfer = "transfer"
	MethodEWallet  = "ewallet"
	MethodOther    = "other"
)

// Payment is money received against an invoice
type Payment struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	InvoiceID string    `json:"invoice_id"`
	Amount    int64     `json:"amount"`
	Method    string    `json:"method"`
	Notes     string    `json:"notes,omitempty"`
	PaidAt    time.Time `json:"paid_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Filter narrows payment listings. Zero times are ignored.
type Filter struct {
	InvoiceID string
	Since     time.Time
	Until     time.Time
}
