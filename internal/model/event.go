package model

import "time"

// Event represents a schedulable happening that attendees can register
// for.  An event owns a set of ticket types which are created together
// and replaced wholesale whenever the event is edited.  Capacity may be
// limited overall via MaxCapacity in addition to per-tier quantities.
//
// Fields:
//  ID                   – primary key identifier.
//  Title                – human readable event title.
//  StartsAt             – when the event begins.
//  EndsAt               – when the event ends.
//  MaxCapacity          – overall ticket cap across all tiers (nil = unlimited).
//  RegistrationOpen     – whether new registrations are accepted.
//  RegistrationDeadline – cutoff for registrations (nil = no deadline).
//  RequireApproval      – new registrations start as pending when true.
//  CreatedAt            – creation timestamp.
//  UpdatedAt            – last update timestamp.
type Event struct {
	ID                   uint64     // events.id
	Title                string     // events.title
	StartsAt             time.Time  // events.starts_at
	EndsAt               time.Time  // events.ends_at
	MaxCapacity          *uint32    // events.max_capacity (nullable)
	RegistrationOpen     bool       // events.registration_open
	RegistrationDeadline *time.Time // events.registration_deadline (nullable)
	RequireApproval      bool       // events.require_approval
	CreatedAt            time.Time  // events.created_at
	UpdatedAt            time.Time  // events.updated_at
}
