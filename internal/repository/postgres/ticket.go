package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/kosbot/kosbot-api/internal/domain/ticket"
	"github.com/kosbot/kosbot-api/internal/pkg/errors"
)

// TicketRepository implements ticket.Repository
type TicketRepository struct {
	db *sql.DB
}

// NewTicketRepository creates a new ticket repository
func NewTicketRepository(db *sql.DB) ticket.Repository {
	return &TicketRepository{db: db}
}

const ticketColumns = `id, owner_id, property_id, room_id, description, priority, status, assignee, created_at, updated_at`

// Create creates a new ticket
func (r *TicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	now := time.Now().UTC().Truncate(time.Second)
	if t.ID == "" {
		t.ID = newID()
	}
	if t.Priority == "" {
		t.Priority = ticket.PriorityMedium
	}
	if t.Status == "" {
		t.Status = ticket.StatusOpen
	}
	t.CreatedAt = now
	t.UpdatedAt = now

	query := `
		INSERT INTO tickets (` + ticketColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.OwnerID, t.PropertyID, stringOrNil(t.RoomID), t.Description,
		string(t.Priority), string(t.Status), stringOrNil(t.Assignee), now.Unix(), now.Unix(),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create ticket", err)
	}
	return nil
}

// GetByID retrieves a ticket owned by ownerID
func (r *TicketRepository) GetByID(ctx context.Context, ownerID, id string) (*ticket.Ticket, error) {
	w := ticketWhere(ownerID, ticket.Filter{})
	w.add("id = ?", id)

	tickets, err := r.query(ctx, w, "")
	if err != nil {
		return nil, err
	}
	if len(tickets) == 0 {
		return nil, errors.NotFound("Ticket")
	}
	return tickets[0], nil
}

// List retrieves tickets of an owner matching filter, high priority and oldest first
func (r *TicketRepository) List(ctx context.Context, ownerID string, filter ticket.Filter) ([]*ticket.Ticket, error) {
	w := ticketWhere(ownerID, filter)
	order := ` ORDER BY CASE priority WHEN 'high' THEN 0 WHEN 'medium' THEN 1 ELSE 2 END, created_at`
	if filter.Limit > 0 {
		order += " LIMIT " + w.arg(filter.Limit)
	}
	return r.query(ctx, w, order)
}

func (r *TicketRepository) query(ctx context.Context, w *where, order string) ([]*ticket.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets` + w.String() + order

	rows, err := r.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list tickets", err)
	}
	defer rows.Close()

	tickets := []*ticket.Ticket{}
	for rows.Next() {
		var t ticket.Ticket
		var priority, status string
		var roomID, assignee sql.NullString
		var createdAt, updatedAt int64

		if err := rows.Scan(&t.ID, &t.OwnerID, &t.PropertyID, &roomID, &t.Description,
			&priority, &status, &assignee, &createdAt, &updatedAt); err != nil {
			return nil, errors.DatabaseError("Failed to scan ticket", err)
		}

		t.RoomID = stringFromNull(roomID)
		t.Assignee = stringFromNull(assignee)
		t.Priority = ticket.Priority(priority)
		t.Status = ticket.Status(status)
		t.CreatedAt = fromUnix(createdAt)
		t.UpdatedAt = fromUnix(updatedAt)
		tickets = append(tickets, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to list tickets", err)
	}

	return tickets, nil
}

// Update updates a ticket
func (r *TicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	t.UpdatedAt = time.Now().UTC().Truncate(time.Second)

	query := `
		UPDATE tickets
		SET description = $1, priority = $2, status = $3, assignee = $4, updated_at = $5
		WHERE owner_id = $6 AND id = $7
	`

	result, err := r.db.ExecContext(ctx, query,
		t.Description, string(t.Priority), string(t.Status), stringOrNil(t.Assignee),
		t.UpdatedAt.Unix(), t.OwnerID, t.ID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update ticket", err)
	}
	return expectAffected(result, "Ticket")
}

// Delete deletes a ticket
func (r *TicketRepository) Delete(ctx context.Context, ownerID, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM tickets WHERE owner_id = $1 AND id = $2`, ownerID, id)
	if err != nil {
		return errors.DatabaseError("Failed to delete ticket", err)
	}
	return expectAffected(result, "Ticket")
}

// Count returns how many tickets of an owner match filter
func (r *TicketRepository) Count(ctx context.Context, ownerID string, filter ticket.Filter) (int, error) {
	w := ticketWhere(ownerID, filter)

	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tickets`+w.String(), w.args...).Scan(&n); err != nil {
		return 0, errors.DatabaseError("Failed to count tickets", err)
	}
	return n, nil
}

func ticketWhere(ownerID string, filter ticket.Filter) *where {
	w := &where{}
	w.add("owner_id = ?", ownerID)
	if filter.PropertyID != "" {
		w.add("property_id = ?", filter.PropertyID)
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		w.in("status", statuses)
	}
	if filter.Priority != "" {
		w.add("priority = ?", string(filter.Priority))
	}
	return w
}
