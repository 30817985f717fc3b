// Package queue defines message payloads exchanged over the message broker.
package queue

// RegistrationConfirmedEvent is published after a registration commits.
// It carries enough information for the external notification
// collaborator to compose a confirmation email without querying the
// primary database.  Publishing is best-effort: the registration is
// already durable by the time this event exists.
type RegistrationConfirmedEvent struct {
	RegistrationID  uint64 `json:"registration_id"`
	EventID         uint64 `json:"event_id"`
	EventTitle      string `json:"event_title"`
	TicketTypeID    uint64 `json:"ticket_type_id"`
	TicketTypeName  string `json:"ticket_type_name"`
	TicketCode      string `json:"ticket_code"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	NumberOfTickets uint32 `json:"number_of_tickets"`
	Status          string `json:"status"`
	RegisteredAt    string `json:"registered_at"`
}
