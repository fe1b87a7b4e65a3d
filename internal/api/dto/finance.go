package dto

import "time"

// CreateInvoiceRequest represents an invoice creation request. Amount is
// checked by the invoice service so the error carries its message.
type CreateInvoiceRequest struct {
	TenantID string `json:"tenant_id" validate:"required"`
	Amount   int64  `json:"amount"`
	DueDate  string `json:"due_date" validate:"required,isodate"`
	Status   string `json:"status" validate:"omitempty,oneof=pending paid overdue partial"`
}

// UpdateInvoiceRequest represents an invoice update request
type UpdateInvoiceRequest struct {
	Amount  *int64  `json:"amount,omitempty"`
	DueDate *string `json:"due_date,omitempty" validate:"omitempty,isodate"`
	Status  *string `json:"status,omitempty" validate:"omitempty,oneof=pending paid overdue partial"`
}

// CreatePaymentRequest records money received against an invoice
type CreatePaymentRequest struct {
	InvoiceID string     `json:"invoice_id" validate:"required"`
	Amount    int64      `json:"amount"`
	Method    string     `json:"method" validate:"omitempty,oneof=cash transfer ewallet other"`
	Notes     string     `json:"notes" validate:"max=500"`
	PaidAt    *time.Time `json:"paid_at,omitempty"`
}
