package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/event-ticket-reservation/internal/model"
)

// EventRepo provides read access to events plus the row lock used to
// serialize concurrent registrations.  Events are read-mostly reference
// data; the admin edit flow that mutates them lives outside this
// service and replaces tiers wholesale in its own transaction.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo returns a new EventRepo bound to the given database.
func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// that span multiple repositories.
func (r *EventRepo) DB() *sql.DB { return r.db }

const eventColumns = `id, title, starts_at, ends_at, max_capacity, registration_open,
       registration_deadline, require_approval, created_at, updated_at`

// scanEvent reads one event row from any row scanner.  Nullable columns
// are mapped onto pointer fields.
func scanEvent(row interface {
	Scan(dest ...interface{}) error
}) (*model.Event, error) {
	var ev model.Event
	var maxCap sql.NullInt64
	var deadline sql.NullTime
	if err := row.Scan(
		&ev.ID, &ev.Title, &ev.StartsAt, &ev.EndsAt, &maxCap, &ev.RegistrationOpen,
		&deadline, &ev.RequireApproval, &ev.CreatedAt, &ev.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if maxCap.Valid {
		mc := uint32(maxCap.Int64)
		ev.MaxCapacity = &mc
	}
	if deadline.Valid {
		d := deadline.Time.UTC()
		ev.RegistrationDeadline = &d
	}
	return &ev, nil
}

// GetByID returns a single event or ErrEventNotFound.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (*model.Event, error) {
	const q = `SELECT ` + eventColumns + ` FROM events WHERE id = ?`
	ev, err := scanEvent(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return ev, nil
}

// LockTx acquires an exclusive row lock on the event within the given
// transaction.  Every registration for the event takes this lock before
// computing capacity sums, so two transactions can never both read
// "room available" and both insert.  Returns ErrEventNotFound when the
// event row has disappeared since the fail-fast read.
func (r *EventRepo) LockTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	const q = `SELECT id FROM events WHERE id = ? FOR UPDATE`
	var got uint64
	if err := tx.QueryRowContext(ctx, q, id).Scan(&got); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrEventNotFound
		}
		return err
	}
	return nil
}

// CreateTx inserts a new event within the scope of an existing
// transaction and populates the generated ID and timestamps on the
// provided model.  It exists for the external admin collaborator and
// for test fixtures; this service itself never creates events.
func (r *EventRepo) CreateTx(ctx context.Context, tx *sql.Tx, ev *model.Event) error {
	const q = `INSERT INTO events (title, starts_at, ends_at, max_capacity, registration_open,
	                               registration_deadline, require_approval)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	var maxCap interface{}
	if ev.MaxCapacity != nil {
		maxCap = *ev.MaxCapacity
	}
	var deadline interface{}
	if ev.RegistrationDeadline != nil {
		deadline = ev.RegistrationDeadline.UTC().Format("2006-01-02 15:04:05")
	}
	result, err := tx.ExecContext(ctx, q,
		ev.Title, ev.StartsAt.UTC(), ev.EndsAt.UTC(), maxCap, ev.RegistrationOpen,
		deadline, ev.RequireApproval,
	)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	ev.ID = uint64(id)
	// Query back the full row to populate timestamps and defaults
	const sel = `SELECT ` + eventColumns + ` FROM events WHERE id = ?`
	full, err := scanEvent(tx.QueryRowContext(ctx, sel, ev.ID))
	if err != nil {
		return err
	}
	*ev = *full
	return nil
}
