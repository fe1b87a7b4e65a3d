package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/kosbot/kosbot-api/internal/domain/property"
	"github.com/kosbot/kosbot-api/internal/pkg/errors"
)

// PropertyRepository implements property.Repository
type PropertyRepository struct {
	db *sql.DB
}

// NewPropertyRepository creates a new property repository
func NewPropertyRepository(db *sql.DB) property.Repository {
	return &PropertyRepository{db: db}
}

// rooms_total is derived, never stored
const propertySelect = `
	SELECT p.id, p.owner_id, p.name, p.address, p.city,
		(SELECT COUNT(*) FROM rooms r WHERE r.property_id = p.id) AS rooms_total,
		p.created_at, p.updated_at
	FROM properties p
`

// Create creates a new property
func (r *PropertyRepository) Create(ctx context.Context, p *property.Property) error {
	now := time.Now().UTC().Truncate(time.Second)
	if p.ID == "" {
		p.ID = newID()
	}
	p.CreatedAt = now
	p.UpdatedAt = now
	p.RoomsTotal = 0

	query := `
		INSERT INTO properties (id, owner_id, name, address, city, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.OwnerID, p.Name, p.Address, p.City, now.Unix(), now.Unix(),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create property", err)
	}
	return nil
}

// GetByID retrieves a property owned by ownerID
func (r *PropertyRepository) GetByID(ctx context.Context, ownerID, id string) (*property.Property, error) {
	query := propertySelect + ` WHERE p.owner_id = $1 AND p.id = $2`

	rows, err := r.db.QueryContext(ctx, query, ownerID, id)
	if err != nil {
		return nil, errors.DatabaseError("Failed to get property", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, errors.DatabaseError("Failed to get property", err)
		}
		return nil, errors.NotFound("Property")
	}
	p, err := scanProperty(rows)
	if err != nil {
		return nil, errors.DatabaseError("Failed to scan property", err)
	}
	return p, nil
}

// List retrieves all properties of an owner, newest first
func (r *PropertyRepository) List(ctx context.Context, ownerID string) ([]*property.Property, error) {
	query := propertySelect + ` WHERE p.owner_id = $1 ORDER BY p.created_at DESC, p.name`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list properties", err)
	}
	defer rows.Close()

	properties := []*property.Property{}
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan property", err)
		}
		properties = append(properties, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to list properties", err)
	}

	return properties, nil
}

// Update updates a property
func (r *PropertyRepository) Update(ctx context.Context, p *property.Property) error {
	p.UpdatedAt = time.Now().UTC().Truncate(time.Second)

	query := `
		UPDATE properties
		SET name = $1, address = $2, city = $3, updated_at = $4
		WHERE owner_id = $5 AND id = $6
	`

	result, err := r.db.ExecContext(ctx, query,
		p.Name, p.Address, p.City, p.UpdatedAt.Unix(), p.OwnerID, p.ID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update property", err)
	}
	return expectAffected(result, "Property")
}

// Delete deletes a property
func (r *PropertyRepository) Delete(ctx context.Context, ownerID, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM properties WHERE owner_id = $1 AND id = $2`, ownerID, id)
	if err != nil {
		return errors.DatabaseError("Failed to delete property", err)
	}
	return expectAffected(result, "Property")
}

// Count returns how many properties an owner has
func (r *PropertyRepository) Count(ctx context.Context, ownerID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM properties WHERE owner_id = $1`, ownerID).Scan(&n)
	if err != nil {
		return 0, errors.DatabaseError("Failed to count properties", err)
	}
	return n, nil
}

func scanProperty(rows *sql.Rows) (*property.Property, error) {
	var p property.Property
	var createdAt, updatedAt int64
	if err := rows.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Address, &p.City,
		&p.RoomsTotal, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	p.CreatedAt = fromUnix(createdAt)
	p.UpdatedAt = fromUnix(updatedAt)
	return &p, nil
}
