package model

import "time"

// Registration statuses.  The four values below are the only accepted
// states; anything else is rejected at the boundary rather than coerced.
const (
	StatusPending    = "pending"    // awaiting administrative approval
	StatusConfirmed  = "confirmed"  // ticket issued and valid
	StatusCancelled  = "cancelled"  // terminal; frees reserved capacity
	StatusWaitlisted = "waitlisted" // held without guaranteed attendance
)

// Registration records one reservation of tickets for an event tier.
// A cancelled registration's tickets are excluded from all capacity
// sums, so cancellation acts as a capacity release with no further
// compensating action.
//
// Fields:
//  ID              – primary key identifier.
//  EventID         – event being registered for.
//  TicketTypeID    – tier the tickets belong to.
//  TicketCode      – globally unique code used for lookup and check-in.
//  FirstName       – attendee first name.
//  LastName        – attendee last name.
//  Email           – attendee email address.
//  Phone           – optional attendee phone number.
//  NumberOfTickets – tickets reserved under this registration (>= 1).
//  Status          – one of the Status* constants above.
//  CheckedIn       – whether the attendee has checked in.
//  CheckedInAt     – when check-in happened (nil when not checked in).
//  Notes           – free-form administrative notes.
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
type Registration struct {
	ID              uint64     // registrations.id
	EventID         uint64     // registrations.event_id
	TicketTypeID    uint64     // registrations.ticket_type_id
	TicketCode      string     // registrations.ticket_code
	FirstName       string     // registrations.first_name
	LastName        string     // registrations.last_name
	Email           string     // registrations.email
	Phone           *string    // registrations.phone (nullable)
	NumberOfTickets uint32     // registrations.number_of_tickets
	Status          string     // registrations.status
	CheckedIn       bool       // registrations.checked_in
	CheckedInAt     *time.Time // registrations.checked_in_at (nullable)
	Notes           *string    // registrations.notes (nullable)
	CreatedAt       time.Time  // registrations.created_at
	UpdatedAt       time.Time  // registrations.updated_at
}

// IsValidStatus reports whether s is one of the four accepted status values.
func IsValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusWaitlisted:
		return true
	}
	return false
}

// statusTransitions encodes the lifecycle state machine.  Cancelled is
// terminal.  Waitlisted registrations may be promoted to confirmed by
// administrative override without re-running the capacity gate.
var statusTransitions = map[string]map[string]bool{
	StatusPending:    {StatusConfirmed: true, StatusCancelled: true},
	StatusConfirmed:  {StatusCancelled: true},
	StatusWaitlisted: {StatusConfirmed: true, StatusCancelled: true},
	StatusCancelled:  {},
}

// CanTransition reports whether a registration may move from one status
// to another.  Setting the current status again is treated as a no-op
// and allowed, so an admin PATCH can repeat the status alongside other
// field changes.
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	return statusTransitions[from][to]
}
