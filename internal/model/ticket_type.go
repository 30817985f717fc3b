package model

import "time"

// TicketType is a purchasable tier within a single event.  Tiers have
// no stable identity across event edits: the admin flow deletes and
// recreates them as a batch.  Quantity limits the total number of
// tickets issued for the tier; MaxPerOrder caps a single request.
//
// Fields:
//  ID          – primary key identifier.
//  EventID     – event that owns this tier.
//  Name        – tier name shown to attendees.
//  Description – optional longer description.
//  PriceCents  – price in cents (zero when free).
//  Currency    – ISO currency code for the price.
//  Quantity    – total tickets available for this tier (nil = unlimited).
//  MaxPerOrder – hard per-request ticket cap.
//  IsFree      – marks a free tier.
//  SortOrder   – display ordering within the event.
//  CreatedAt   – creation timestamp.
type TicketType struct {
	ID          uint64    // ticket_types.id
	EventID     uint64    // ticket_types.event_id
	Name        string    // ticket_types.name
	Description *string   // ticket_types.description (nullable)
	PriceCents  uint32    // ticket_types.price_cents
	Currency    string    // ticket_types.currency
	Quantity    *uint32   // ticket_types.quantity (nullable)
	MaxPerOrder uint32    // ticket_types.max_per_order
	IsFree      bool      // ticket_types.is_free
	SortOrder   uint32    // ticket_types.sort_order
	CreatedAt   time.Time // ticket_types.created_at
}
