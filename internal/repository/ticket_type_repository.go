package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/event-ticket-reservation/internal/model"
)

// TicketTypeRepo provides data access to the ticket_types table.  Tiers
// are owned exclusively by their event and have no stable identity
// across edits: the admin flow replaces them as a batch via
// ReplaceForEventTx rather than patching individual rows.
type TicketTypeRepo struct {
	db *sql.DB
}

// NewTicketTypeRepo returns a new TicketTypeRepo bound to the given database.
func NewTicketTypeRepo(db *sql.DB) *TicketTypeRepo { return &TicketTypeRepo{db: db} }

const ticketTypeColumns = `id, event_id, name, description, price_cents, currency,
       quantity, max_per_order, is_free, sort_order, created_at`

// scanTicketType reads one tier row from any row scanner.
func scanTicketType(row interface {
	Scan(dest ...interface{}) error
}) (*model.TicketType, error) {
	var tt model.TicketType
	var desc sql.NullString
	var qty sql.NullInt64
	if err := row.Scan(
		&tt.ID, &tt.EventID, &tt.Name, &desc, &tt.PriceCents, &tt.Currency,
		&qty, &tt.MaxPerOrder, &tt.IsFree, &tt.SortOrder, &tt.CreatedAt,
	); err != nil {
		return nil, err
	}
	if desc.Valid {
		d := desc.String
		tt.Description = &d
	}
	if qty.Valid {
		q := uint32(qty.Int64)
		tt.Quantity = &q
	}
	return &tt, nil
}

// GetByIDForEvent returns the tier with the given ID only when it
// belongs to the given event; otherwise ErrTicketTypeNotFound.  The
// event scoping rejects requests that reference a tier from a
// different event.
func (r *TicketTypeRepo) GetByIDForEvent(ctx context.Context, id, eventID uint64) (*model.TicketType, error) {
	const q = `SELECT ` + ticketTypeColumns + ` FROM ticket_types WHERE id = ? AND event_id = ?`
	tt, err := scanTicketType(r.db.QueryRowContext(ctx, q, id, eventID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTicketTypeNotFound
		}
		return nil, err
	}
	return tt, nil
}

// ListByEvent returns all tiers of an event ordered by sort order.
// When the event has no tiers an empty slice is returned.
func (r *TicketTypeRepo) ListByEvent(ctx context.Context, eventID uint64) ([]model.TicketType, error) {
	const q = `SELECT ` + ticketTypeColumns + ` FROM ticket_types WHERE event_id = ? ORDER BY sort_order, id`
	rows, err := r.db.QueryContext(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	tiers := make([]model.TicketType, 0)
	for rows.Next() {
		tt, err := scanTicketType(rows)
		if err != nil {
			return nil, err
		}
		tiers = append(tiers, *tt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tiers, nil
}

// ReplaceForEventTx deletes every tier of the event and inserts the
// provided batch in a single transaction scope, so concurrent readers
// observe either the old tier set or the new one but never a mix.  The
// caller must commit or roll back the transaction.  Passing an empty
// slice clears the event's tiers.
func (r *TicketTypeRepo) ReplaceForEventTx(ctx context.Context, tx *sql.Tx, eventID uint64, tiers []model.TicketType) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM ticket_types WHERE event_id = ?`, eventID); err != nil {
		return err
	}
	if len(tiers) == 0 {
		return nil
	}
	query := `INSERT INTO ticket_types (event_id, name, description, price_cents, currency,
	                                    quantity, max_per_order, is_free, sort_order) VALUES `
	args := make([]interface{}, 0, len(tiers)*9)
	for i, tt := range tiers {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?, ?, ?, ?, ?)"
		var desc interface{}
		if tt.Description != nil {
			desc = *tt.Description
		}
		var qty interface{}
		if tt.Quantity != nil {
			qty = *tt.Quantity
		}
		args = append(args, eventID, tt.Name, desc, tt.PriceCents, tt.Currency,
			qty, tt.MaxPerOrder, tt.IsFree, tt.SortOrder)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}
