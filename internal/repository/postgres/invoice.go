package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/kosbot/kosbot-api/internal/domain/invoice"
	"github.com/kosbot/kosbot-api/internal/pkg/errors"
)

// InvoiceRepository implements invoice.Repository
type InvoiceRepository struct {
	db *sql.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *sql.DB) invoice.Repository {
	return &InvoiceRepository{db: db}
}

const invoiceSelect = `
	SELECT i.id, i.owner_id, i.tenant_id, COALESCE(t.full_name, ''), i.amount, i.due_date,
		i.status, i.paid_at, i.created_at, i.updated_at
	FROM invoices i
	LEFT JOIN tenants t ON t.id = i.tenant_id
`

// Create creates a new invoice
func (r *InvoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) error {
	now := time.Now().UTC().Truncate(time.Second)
	if inv.ID == "" {
		inv.ID = newID()
	}
	if inv.Status == "" {
		inv.Status = invoice.StatusPending
	}
	inv.CreatedAt = now
	inv.UpdatedAt = now

	query := `
		INSERT INTO invoices (id, owner_id, tenant_id, amount, due_date, status, paid_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		inv.ID, inv.OwnerID, inv.TenantID, inv.Amount, inv.DueDate, string(inv.Status),
		unixOrNil(inv.PaidAt), now.Unix(), now.Unix(),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create invoice", err)
	}
	return nil
}

// GetByID retrieves an invoice owned by ownerID
func (r *InvoiceRepository) GetByID(ctx context.Context, ownerID, id string) (*invoice.Invoice, error) {
	w := invoiceWhere(ownerID, invoice.Filter{})
	w.add("i.id = ?", id)

	invoices, err := r.query(ctx, w, "")
	if err != nil {
		return nil, err
	}
	if len(invoices) == 0 {
		return nil, errors.NotFound("Invoice")
	}
	return invoices[0], nil
}

// List retrieves invoices of an owner matching filter, earliest due first
func (r *InvoiceRepository) List(ctx context.Context, ownerID string, filter invoice.Filter) ([]*invoice.Invoice, error) {
	return r.query(ctx, invoiceWhere(ownerID, filter), " ORDER BY i.due_date, i.created_at")
}

func (r *InvoiceRepository) query(ctx context.Context, w *where, order string) ([]*invoice.Invoice, error) {
	rows, err := r.db.QueryContext(ctx, invoiceSelect+w.String()+order, w.args...)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list invoices", err)
	}
	defer rows.Close()

	invoices := []*invoice.Invoice{}
	for rows.Next() {
		var inv invoice.Invoice
		var status string
		var paidAt sql.NullInt64
		var createdAt, updatedAt int64

		if err := rows.Scan(&inv.ID, &inv.OwnerID, &inv.TenantID, &inv.TenantName, &inv.Amount,
			&inv.DueDate, &status, &paidAt, &createdAt, &updatedAt); err != nil {
			return nil, errors.DatabaseError("Failed to scan invoice", err)
		}

		inv.Status = invoice.Status(status)
		inv.PaidAt = timeFromNull(paidAt)
		inv.CreatedAt = fromUnix(createdAt)
		inv.UpdatedAt = fromUnix(updatedAt)
		invoices = append(invoices, &inv)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to list invoices", err)
	}

	return invoices, nil
}

// Update updates an invoice
func (r *InvoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	inv.UpdatedAt = time.Now().UTC().Truncate(time.Second)

	query := `
		UPDATE invoices
		SET amount = $1, due_date = $2, status = $3, paid_at = $4, updated_at = $5
		WHERE owner_id = $6 AND id = $7
	`

	result, err := r.db.ExecContext(ctx, query,
		inv.Amount, inv.DueDate, string(inv.Status), unixOrNil(inv.PaidAt),
		inv.UpdatedAt.Unix(), inv.OwnerID, inv.ID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update invoice", err)
	}
	return expectAffected(result, "Invoice")
}

// Delete deletes an invoice
func (r *InvoiceRepository) Delete(ctx context.Context, ownerID, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM invoices WHERE owner_id = $1 AND id = $2`, ownerID, id)
	if err != nil {
		return errors.DatabaseError("Failed to delete invoice", err)
	}
	return expectAffected(result, "Invoice")
}

// Count returns how many invoices of an owner match filter
func (r *InvoiceRepository) Count(ctx context.Context, ownerID string, filter invoice.Filter) (int, error) {
	w := invoiceWhere(ownerID, filter)

	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM invoices i`+w.String(), w.args...).Scan(&n); err != nil {
		return 0, errors.DatabaseError("Failed to count invoices", err)
	}
	return n, nil
}

// MarkOverdue flips unpaid invoices due before day to overdue across all owners
func (r *InvoiceRepository) MarkOverdue(ctx context.Context, day string, now time.Time) (int64, error) {
	query := `
		UPDATE invoices
		SET status = $1, updated_at = $2
		WHERE status IN ($3, $4) AND due_date < $5
	`

	result, err := r.db.ExecContext(ctx, query,
		string(invoice.StatusOverdue), now.Unix(),
		string(invoice.StatusPending), string(invoice.StatusPartial), day,
	)
	if err != nil {
		return 0, errors.DatabaseError("Failed to mark overdue invoices", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, errors.DatabaseError("Failed to get affected rows", err)
	}
	return n, nil
}

func invoiceWhere(ownerID string, filter invoice.Filter) *where {
	w := &where{}
	w.add("i.owner_id = ?", ownerID)
	if filter.TenantID != "" {
		w.add("i.tenant_id = ?", filter.TenantID)
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		w.in("i.status", statuses)
	}
	if filter.DueDate != "" {
		w.add("i.due_date = ?", filter.DueDate)
	}
	if filter.ExcludePaid {
		w.add("i.status <> ?", string(invoice.StatusPaid))
	}
	return w
}
