package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/event-ticket-reservation/internal/model"
)

// RegistrationRepo provides data access to the registrations table.  It
// carries both the capacity ledger (transaction-scoped sums of
// non-cancelled ticket counts) and the CRUD operations used by the
// lifecycle and lookup components.  All timestamp fields are stored in
// UTC.
type RegistrationRepo struct {
	db *sql.DB
}

// NewRegistrationRepo returns a new RegistrationRepo bound to the given database.
func NewRegistrationRepo(db *sql.DB) *RegistrationRepo { return &RegistrationRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// around lifecycle updates.
func (r *RegistrationRepo) DB() *sql.DB { return r.db }

const registrationColumns = `id, event_id, ticket_type_id, ticket_code, first_name, last_name,
       email, phone, number_of_tickets, status, checked_in, checked_in_at, notes,
       created_at, updated_at`

// scanRegistration reads one registration row from any row scanner.
func scanRegistration(row interface {
	Scan(dest ...interface{}) error
}) (*model.Registration, error) {
	var reg model.Registration
	var phone, notes sql.NullString
	var checkedInAt sql.NullTime
	if err := row.Scan(
		&reg.ID, &reg.EventID, &reg.TicketTypeID, &reg.TicketCode, &reg.FirstName, &reg.LastName,
		&reg.Email, &phone, &reg.NumberOfTickets, &reg.Status, &reg.CheckedIn, &checkedInAt, &notes,
		&reg.CreatedAt, &reg.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if phone.Valid {
		p := phone.String
		reg.Phone = &p
	}
	if notes.Valid {
		n := notes.String
		reg.Notes = &n
	}
	if checkedInAt.Valid {
		t := checkedInAt.Time.UTC()
		reg.CheckedInAt = &t
	}
	return &reg, nil
}

// SumActiveByTicketTypeTx returns the number of tickets currently
// issued for one tier: SUM(number_of_tickets) over the tier's
// non-cancelled registrations.  It must run inside the transaction that
// holds the event row lock so the sum cannot go stale before the
// accompanying insert commits.
func (r *RegistrationRepo) SumActiveByTicketTypeTx(ctx context.Context, tx *sql.Tx, ticketTypeID uint64) (uint32, error) {
	const q = `SELECT COALESCE(SUM(number_of_tickets), 0)
	           FROM registrations
	           WHERE ticket_type_id = ? AND status <> 'cancelled'`
	var sum uint32
	if err := tx.QueryRowContext(ctx, q, ticketTypeID).Scan(&sum); err != nil {
		return 0, err
	}
	return sum, nil
}

// SumActiveByEventTx returns the number of tickets currently issued
// across all tiers of an event.  Same locking requirement as
// SumActiveByTicketTypeTx.
func (r *RegistrationRepo) SumActiveByEventTx(ctx context.Context, tx *sql.Tx, eventID uint64) (uint32, error) {
	const q = `SELECT COALESCE(SUM(number_of_tickets), 0)
	           FROM registrations
	           WHERE event_id = ? AND status <> 'cancelled'`
	var sum uint32
	if err := tx.QueryRowContext(ctx, q, eventID).Scan(&sum); err != nil {
		return 0, err
	}
	return sum, nil
}

// CodeExistsTx reports whether a ticket code is already present.  The
// check runs inside the caller's transaction so the code generator
// never validates a candidate against a stale read.
func (r *RegistrationRepo) CodeExistsTx(ctx context.Context, tx *sql.Tx, code string) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM registrations WHERE ticket_code = ?)`
	var exists bool
	if err := tx.QueryRowContext(ctx, q, code).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// isDuplicateKey reports whether err is a MySQL duplicate-entry error
// (code 1062), raised when an insert violates the unique ticket_code
// index.
func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}

// CreateTx inserts a new registration within the scope of an existing
// transaction and populates the generated ID and timestamps on the
// provided model.  The caller must commit or roll back the
// transaction.  Status must be one of the model.Status* values.  A
// collision on the ticket_code unique index is returned as
// ErrDuplicateCode.
func (r *RegistrationRepo) CreateTx(ctx context.Context, tx *sql.Tx, reg *model.Registration) error {
	const q = `INSERT INTO registrations (event_id, ticket_type_id, ticket_code, first_name, last_name,
	                                      email, phone, number_of_tickets, status)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	var phone interface{}
	if reg.Phone != nil {
		phone = *reg.Phone
	}
	result, err := tx.ExecContext(ctx, q,
		reg.EventID, reg.TicketTypeID, reg.TicketCode, reg.FirstName, reg.LastName,
		reg.Email, phone, reg.NumberOfTickets, reg.Status,
	)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateCode
		}
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	reg.ID = uint64(id)
	// Query back the full row to populate timestamps and defaults
	const sel = `SELECT ` + registrationColumns + ` FROM registrations WHERE id = ?`
	full, err := scanRegistration(tx.QueryRowContext(ctx, sel, reg.ID))
	if err != nil {
		return err
	}
	*reg = *full
	return nil
}

// GetByIDForEventTx returns a registration scoped to its event, locked
// for update so the lifecycle transition check and the subsequent write
// are atomic.  Returns ErrRegistrationNotFound when the registration
// does not exist under the given event.
func (r *RegistrationRepo) GetByIDForEventTx(ctx context.Context, tx *sql.Tx, id, eventID uint64) (*model.Registration, error) {
	const q = `SELECT ` + registrationColumns + ` FROM registrations
	           WHERE id = ? AND event_id = ? FOR UPDATE`
	reg, err := scanRegistration(tx.QueryRowContext(ctx, q, id, eventID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}
	return reg, nil
}

// UpdateTx persists the mutable lifecycle fields of a registration
// (status, check-in flag and timestamp, notes) within the provided
// transaction.  All other columns are deliberately not part of the
// statement, so nothing outside the whitelisted field set can be
// patched through this path.
func (r *RegistrationRepo) UpdateTx(ctx context.Context, tx *sql.Tx, reg *model.Registration) error {
	const q = `UPDATE registrations
	           SET status = ?, checked_in = ?, checked_in_at = ?, notes = ?
	           WHERE id = ?`
	var checkedInAt interface{}
	if reg.CheckedInAt != nil {
		checkedInAt = reg.CheckedInAt.UTC().Format("2006-01-02 15:04:05")
	}
	var notes interface{}
	if reg.Notes != nil {
		notes = *reg.Notes
	}
	if _, err := tx.ExecContext(ctx, q, reg.Status, reg.CheckedIn, checkedInAt, notes, reg.ID); err != nil {
		return err
	}
	// Query back the row so updated_at reflects the write
	const sel = `SELECT ` + registrationColumns + ` FROM registrations WHERE id = ?`
	full, err := scanRegistration(tx.QueryRowContext(ctx, sel, reg.ID))
	if err != nil {
		return err
	}
	*reg = *full
	return nil
}

// RegistrationSummary is one row of the admin listing: the registration
// plus the name of its tier for display.
type RegistrationSummary struct {
	ID              uint64  `json:"id"`
	TicketTypeID    uint64  `json:"ticketTypeId"`
	TicketTypeName  string  `json:"ticketTypeName"`
	TicketCode      string  `json:"ticketCode"`
	FirstName       string  `json:"firstName"`
	LastName        string  `json:"lastName"`
	Email           string  `json:"email"`
	Phone           *string `json:"phone,omitempty"`
	NumberOfTickets uint32  `json:"numberOfTickets"`
	Status          string  `json:"status"`
	CheckedIn       bool    `json:"checkedIn"`
	CheckedInAt     *string `json:"checkedInAt,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
}

// ListByEvent returns all registrations of an event with their tier
// names, newest first.  When no registrations exist, an empty slice is
// returned.
func (r *RegistrationRepo) ListByEvent(ctx context.Context, eventID uint64) ([]RegistrationSummary, error) {
	const q = `SELECT r.id, r.ticket_type_id, tt.name, r.ticket_code, r.first_name, r.last_name,
	                  r.email, r.phone, r.number_of_tickets, r.status, r.checked_in, r.checked_in_at,
	                  r.notes, r.created_at
	           FROM registrations r
	           JOIN ticket_types tt ON tt.id = r.ticket_type_id
	           WHERE r.event_id = ?
	           ORDER BY r.created_at DESC, r.id DESC`
	rows, err := r.db.QueryContext(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]RegistrationSummary, 0)
	for rows.Next() {
		var s RegistrationSummary
		var phone, notes sql.NullString
		var checkedInAt sql.NullTime
		var createdAt time.Time
		if err := rows.Scan(
			&s.ID, &s.TicketTypeID, &s.TicketTypeName, &s.TicketCode, &s.FirstName, &s.LastName,
			&s.Email, &phone, &s.NumberOfTickets, &s.Status, &s.CheckedIn, &checkedInAt,
			&notes, &createdAt,
		); err != nil {
			return nil, err
		}
		if phone.Valid {
			p := phone.String
			s.Phone = &p
		}
		if notes.Valid {
			n := notes.String
			s.Notes = &n
		}
		if checkedInAt.Valid {
			iso := checkedInAt.Time.UTC().Format(time.RFC3339)
			s.CheckedInAt = &iso
		}
		s.CreatedAt = createdAt.UTC().Format(time.RFC3339)
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// DeleteByIDForEvent hard-deletes a registration scoped to its event.
// Returns ErrRegistrationNotFound when no row matched.
func (r *RegistrationRepo) DeleteByIDForEvent(ctx context.Context, id, eventID uint64) error {
	const q = `DELETE FROM registrations WHERE id = ? AND event_id = ?`
	result, err := r.db.ExecContext(ctx, q, id, eventID)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRegistrationNotFound
	}
	return nil
}

// TicketDetail is the public ticket view resolved from a code: the
// registration joined with its event and tier for display.  It is a
// pure read with no side effects, so it is always safe to retry.
type TicketDetail struct {
	RegistrationID  uint64  `json:"registrationId"`
	TicketCode      string  `json:"ticketCode"`
	FirstName       string  `json:"firstName"`
	LastName        string  `json:"lastName"`
	Email           string  `json:"email"`
	NumberOfTickets uint32  `json:"numberOfTickets"`
	Status          string  `json:"status"`
	CheckedIn       bool    `json:"checkedIn"`
	CheckedInAt     *string `json:"checkedInAt,omitempty"`
	EventID         uint64  `json:"eventId"`
	EventTitle      string  `json:"eventTitle"`
	EventStartsAt   string  `json:"eventStartsAt"`
	EventEndsAt     string  `json:"eventEndsAt"`
	TicketTypeID    uint64  `json:"ticketTypeId"`
	TicketTypeName  string  `json:"ticketTypeName"`
	PriceCents      uint32  `json:"priceCents"`
	Currency        string  `json:"currency"`
	IsFree          bool    `json:"isFree"`
	RegisteredAt    string  `json:"registeredAt"`
}

// GetDetailByCode resolves a ticket code to its full detail.  Returns
// ErrRegistrationNotFound for unknown codes.
func (r *RegistrationRepo) GetDetailByCode(ctx context.Context, code string) (*TicketDetail, error) {
	const q = `SELECT r.id, r.ticket_code, r.first_name, r.last_name, r.email,
	                  r.number_of_tickets, r.status, r.checked_in, r.checked_in_at,
	                  e.id, e.title, e.starts_at, e.ends_at,
	                  tt.id, tt.name, tt.price_cents, tt.currency, tt.is_free,
	                  r.created_at
	           FROM registrations r
	           JOIN events e ON e.id = r.event_id
	           JOIN ticket_types tt ON tt.id = r.ticket_type_id
	           WHERE r.ticket_code = ?`
	var det TicketDetail
	var checkedInAt sql.NullTime
	var startsAt, endsAt, createdAt time.Time
	err := r.db.QueryRowContext(ctx, q, code).Scan(
		&det.RegistrationID, &det.TicketCode, &det.FirstName, &det.LastName, &det.Email,
		&det.NumberOfTickets, &det.Status, &det.CheckedIn, &checkedInAt,
		&det.EventID, &det.EventTitle, &startsAt, &endsAt,
		&det.TicketTypeID, &det.TicketTypeName, &det.PriceCents, &det.Currency, &det.IsFree,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}
	if checkedInAt.Valid {
		iso := checkedInAt.Time.UTC().Format(time.RFC3339)
		det.CheckedInAt = &iso
	}
	det.EventStartsAt = startsAt.UTC().Format(time.RFC3339)
	det.EventEndsAt = endsAt.UTC().Format(time.RFC3339)
	det.RegisteredAt = createdAt.UTC().Format(time.RFC3339)
	return &det, nil
}
