// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// inspecting datastore-specific error types. Nothing below the handler
// layer should leak driver errors to callers.
package repository

import "errors"

// ErrEventNotFound is returned when no event exists with the requested
// identifier. Handlers should translate this into an HTTP 404 response.
var ErrEventNotFound = errors.New("event not found")

// ErrTicketTypeNotFound is returned when the requested tier does not
// exist on the given event. Handlers should translate this into an
// HTTP 400 response, since it points at a bad tier choice rather than
// a missing top-level resource.
var ErrTicketTypeNotFound = errors.New("ticket type not found")

// ErrRegistrationNotFound is returned when a registration does not
// exist under the given event. Handlers should translate this into an
// HTTP 404 response.
var ErrRegistrationNotFound = errors.New("registration not found")

// ErrDuplicateCode is returned when an insert trips the unique index on
// ticket_code. The in-transaction existence check makes this nearly
// impossible, but two transactions for different events can race on the
// global code space; the duplicate then fails loudly here instead of
// committing.
var ErrDuplicateCode = errors.New("duplicate ticket code")
