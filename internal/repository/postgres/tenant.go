package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/kosbot/kosbot-api/internal/domain/tenant"
	"github.com/kosbot/kosbot-api/internal/pkg/errors"
)

// TenantRepository implements tenant.Repository
type TenantRepository struct {
	db *sql.DB
}

// NewTenantRepository creates a new tenant repository
func NewTenantRepository(db *sql.DB) tenant.Repository {
	return &TenantRepository{db: db}
}

const tenantColumns = `id, owner_id, property_id, room_id, full_name, phone, start_date, end_date,
	deposit_amount, created_at, updated_at`

// Create creates a new tenant
func (r *TenantRepository) Create(ctx context.Context, t *tenant.Tenant) error {
	now := time.Now().UTC().Truncate(time.Second)
	if t.ID == "" {
		t.ID = newID()
	}
	t.CreatedAt = now
	t.UpdatedAt = now

	query := `
		INSERT INTO tenants (` + tenantColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.OwnerID, t.PropertyID, stringOrNil(t.RoomID), t.FullName, t.Phone,
		t.StartDate, stringOrNil(t.EndDate), t.DepositAmount, now.Unix(), now.Unix(),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create tenant", err)
	}
	return nil
}

// GetByID retrieves a tenant owned by ownerID
func (r *TenantRepository) GetByID(ctx context.Context, ownerID, id string) (*tenant.Tenant, error) {
	w := tenantWhere(ownerID, tenant.Filter{})
	w.add("id = ?", id)

	tenants, err := r.query(ctx, w)
	if err != nil {
		return nil, err
	}
	if len(tenants) == 0 {
		return nil, errors.NotFound("Tenant")
	}
	return tenants[0], nil
}

// List retrieves tenants of an owner matching filter
func (r *TenantRepository) List(ctx context.Context, ownerID string, filter tenant.Filter) ([]*tenant.Tenant, error) {
	return r.query(ctx, tenantWhere(ownerID, filter))
}

func (r *TenantRepository) query(ctx context.Context, w *where) ([]*tenant.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants` + w.String() + ` ORDER BY full_name`

	rows, err := r.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list tenants", err)
	}
	defer rows.Close()

	tenants := []*tenant.Tenant{}
	for rows.Next() {
		var t tenant.Tenant
		var roomID, endDate sql.NullString
		var createdAt, updatedAt int64

		if err := rows.Scan(&t.ID, &t.OwnerID, &t.PropertyID, &roomID, &t.FullName, &t.Phone,
			&t.StartDate, &endDate, &t.DepositAmount, &createdAt, &updatedAt); err != nil {
			return nil, errors.DatabaseError("Failed to scan tenant", err)
		}

		t.RoomID = stringFromNull(roomID)
		t.EndDate = stringFromNull(endDate)
		t.CreatedAt = fromUnix(createdAt)
		t.UpdatedAt = fromUnix(updatedAt)
		tenants = append(tenants, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to list tenants", err)
	}

	return tenants, nil
}

// Update updates a tenant
func (r *TenantRepository) Update(ctx context.Context, t *tenant.Tenant) error {
	t.UpdatedAt = time.Now().UTC().Truncate(time.Second)

	query := `
		UPDATE tenants
		SET room_id = $1, full_name = $2, phone = $3, start_date = $4, end_date = $5,
			deposit_amount = $6, updated_at = $7
		WHERE owner_id = $8 AND id = $9
	`

	result, err := r.db.ExecContext(ctx, query,
		stringOrNil(t.RoomID), t.FullName, t.Phone, t.StartDate, stringOrNil(t.EndDate),
		t.DepositAmount, t.UpdatedAt.Unix(), t.OwnerID, t.ID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update tenant", err)
	}
	return expectAffected(result, "Tenant")
}

// Delete deletes a tenant
func (r *TenantRepository) Delete(ctx context.Context, ownerID, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM tenants WHERE owner_id = $1 AND id = $2`, ownerID, id)
	if err != nil {
		return errors.DatabaseError("Failed to delete tenant", err)
	}
	return expectAffected(result, "Tenant")
}

// CountActive counts leases running on day
func (r *TenantRepository) CountActive(ctx context.Context, ownerID, day string) (int, error) {
	w := tenantWhere(ownerID, tenant.Filter{ActiveOn: day})

	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tenants`+w.String(), w.args...).Scan(&n); err != nil {
		return 0, errors.DatabaseError("Failed to count tenants", err)
	}
	return n, nil
}

func tenantWhere(ownerID string, filter tenant.Filter) *where {
	w := &where{}
	w.add("owner_id = ?", ownerID)
	if filter.PropertyID != "" {
		w.add("property_id = ?", filter.PropertyID)
	}
	if filter.ActiveOn != "" {
		w.add("(end_date IS NULL OR end_date >= ?)", filter.ActiveOn)
	}
	return w
}
