package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/kosbot/kosbot-api/internal/domain/payment"
	"github.com/kosbot/kosbot-api/internal/pkg/errors"
)

// PaymentRepository implements payment.Repository
type PaymentRepository struct {
	db *sql.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *sql.DB) payment.Repository {
	return &PaymentRepository{db: db}
}

// Create creates a new payment
func (r *PaymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	now := time.Now().UTC().Truncate(time.Second)
	if p.ID == "" {
		p.ID = newID()
	}
	if p.PaidAt.IsZero() {
		p.PaidAt = now
	}
	p.CreatedAt = now

	query := `
		INSERT INTO payments (id, owner_id, invoice_id, amount, method, notes, paid_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.OwnerID, p.InvoiceID, p.Amount, p.Method, p.Notes, p.PaidAt.Unix(), now.Unix(),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create payment", err)
	}
	return nil
}

// List retrieves payments of an owner matching filter, newest first
func (r *PaymentRepository) List(ctx context.Context, ownerID string, filter payment.Filter) ([]*payment.Payment, error) {
	w := &where{}
	w.add("owner_id = ?", ownerID)
	if filter.InvoiceID != "" {
		w.add("invoice_id = ?", filter.InvoiceID)
	}
	if !filter.Since.IsZero() {
		w.add("paid_at >= ?", filter.Since.Unix())
	}
	if !filter.Until.IsZero() {
		w.add("paid_at < ?", filter.Until.Unix())
	}

	query := `
		SELECT id, owner_id, invoice_id, amount, method, notes, paid_at, created_at
		FROM payments` + w.String() + ` ORDER BY paid_at DESC`

	rows, err := r.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list payments", err)
	}
	defer rows.Close()

	payments := []*payment.Payment{}
	for rows.Next() {
		var p payment.Payment
		var paidAt, createdAt int64
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.InvoiceID, &p.Amount, &p.Method, &p.Notes,
			&paidAt, &createdAt); err != nil {
			return nil, errors.DatabaseError("Failed to scan payment", err)
		}
		p.PaidAt = fromUnix(paidAt)
		p.CreatedAt = fromUnix(createdAt)
		payments = append(payments, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to list payments", err)
	}

	return payments, nil
}

// SumByInvoice totals the payments recorded against one invoice
func (r *PaymentRepository) SumByInvoice(ctx context.Context, ownerID, invoiceID string) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE owner_id = $1 AND invoice_id = $2`,
		ownerID, invoiceID).Scan(&total)
	if err != nil {
		return 0, errors.DatabaseError("Failed to sum payments", err)
	}
	return total, nil
}

// SumSince totals the payments received at or after since
func (r *PaymentRepository) SumSince(ctx context.Context, ownerID string, since time.Time) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE owner_id = $1 AND paid_at >= $2`,
		ownerID, since.Unix()).Scan(&total)
	if err != nil {
		return 0, errors.DatabaseError("Failed to sum payments", err)
	}
	return total, nil
}
