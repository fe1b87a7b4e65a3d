package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/kosbot/kosbot-api/internal/domain/room"
	"github.com/kosbot/kosbot-api/internal/pkg/errors"
)

// RoomRepository implements room.Repository
type RoomRepository struct {
	db *sql.DB
}

// NewRoomRepository creates a new room repository
func NewRoomRepository(db *sql.DB) room.Repository {
	return &RoomRepository{db: db}
}

const roomColumns = `id, owner_id, property_id, name, price_monthly, status, tenant_id, created_at, updated_at`

// Create creates a new room
func (r *RoomRepository) Create(ctx context.Context, rm *room.Room) error {
	now := time.Now().UTC().Truncate(time.Second)
	if rm.ID == "" {
		rm.ID = newID()
	}
	if rm.Status == "" {
		rm.Status = room.StatusVacant
	}
	rm.CreatedAt = now
	rm.UpdatedAt = now

	query := `
		INSERT INTO rooms (` + roomColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		rm.ID, rm.OwnerID, rm.PropertyID, rm.Name, rm.PriceMonthly, string(rm.Status),
		stringOrNil(rm.TenantID), now.Unix(), now.Unix(),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create room", err)
	}
	return nil
}

// GetByID retrieves a room owned by ownerID
func (r *RoomRepository) GetByID(ctx context.Context, ownerID, id string) (*room.Room, error) {
	rooms, err := r.query(ctx, ownerID, room.Filter{}, id)
	if err != nil {
		return nil, err
	}
	if len(rooms) == 0 {
		return nil, errors.NotFound("Room")
	}
	return rooms[0], nil
}

// List retrieves rooms of an owner matching filter
func (r *RoomRepository) List(ctx context.Context, ownerID string, filter room.Filter) ([]*room.Room, error) {
	return r.query(ctx, ownerID, filter, "")
}

func (r *RoomRepository) query(ctx context.Context, ownerID string, filter room.Filter, id string) ([]*room.Room, error) {
	w := roomWhere(ownerID, filter)
	if id != "" {
		w.add("id = ?", id)
	}

	query := `SELECT ` + roomColumns + ` FROM rooms` + w.String() + ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list rooms", err)
	}
	defer rows.Close()

	rooms := []*room.Room{}
	for rows.Next() {
		var rm room.Room
		var status string
		var tenantID sql.NullString
		var createdAt, updatedAt int64

		if err := rows.Scan(&rm.ID, &rm.OwnerID, &rm.PropertyID, &rm.Name, &rm.PriceMonthly,
			&status, &tenantID, &createdAt, &updatedAt); err != nil {
			return nil, errors.DatabaseError("Failed to scan room", err)
		}

		rm.Status = room.Status(status)
		rm.TenantID = stringFromNull(tenantID)
		rm.CreatedAt = fromUnix(createdAt)
		rm.UpdatedAt = fromUnix(updatedAt)
		rooms = append(rooms, &rm)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to list rooms", err)
	}

	return rooms, nil
}

// Update updates a room
func (r *RoomRepository) Update(ctx context.Context, rm *room.Room) error {
	rm.UpdatedAt = time.Now().UTC().Truncate(time.Second)

	query := `
		UPDATE rooms
		SET name = $1, price_monthly = $2, status = $3, tenant_id = $4, updated_at = $5
		WHERE owner_id = $6 AND id = $7
	`

	result, err := r.db.ExecContext(ctx, query,
		rm.Name, rm.PriceMonthly, string(rm.Status), stringOrNil(rm.TenantID),
		rm.UpdatedAt.Unix(), rm.OwnerID, rm.ID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update room", err)
	}
	return expectAffected(result, "Room")
}

// Delete deletes a room
func (r *RoomRepository) Delete(ctx context.Context, ownerID, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM rooms WHERE owner_id = $1 AND id = $2`, ownerID, id)
	if err != nil {
		return errors.DatabaseError("Failed to delete room", err)
	}
	return expectAffected(result, "Room")
}

// Count returns how many rooms of an owner match filter
func (r *RoomRepository) Count(ctx context.Context, ownerID string, filter room.Filter) (int, error) {
	w := roomWhere(ownerID, filter)

	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM rooms`+w.String(), w.args...).Scan(&n); err != nil {
		return 0, errors.DatabaseError("Failed to count rooms", err)
	}
	return n, nil
}

func roomWhere(ownerID string, filter room.Filter) *where {
	w := &where{}
	w.add("owner_id = ?", ownerID)
	if filter.PropertyID != "" {
		w.add("property_id = ?", filter.PropertyID)
	}
	if filter.Status != "" {
		w.add("status = ?", string(filter.Status))
	}
	return w
}
