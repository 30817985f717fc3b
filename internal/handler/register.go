package handler

import (
	"context"       // background context for the post-commit notification
	"database/sql"  // transaction options and sentinel errors
	"errors"        // errors.Is comparisons
	"log"           // loud logging for code generation exhaustion
	"net/http"      // HTTP status codes
	"strconv"       // parsing path parameters
	"strings"       // input normalization
	"time"          // deadline comparisons

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/event-ticket-reservation/internal/model"
	"github.com/iliyamo/event-ticket-reservation/internal/queue"
	"github.com/iliyamo/event-ticket-reservation/internal/repository"
	queue_publisher "github.com/iliyamo/event-ticket-reservation/internal/service"
	"github.com/iliyamo/event-ticket-reservation/internal/ticketcode"
)

// maxTicketsPerRequest is the absolute ceiling on tickets per
// registration, applied on top of each tier's own max_per_order.
// Requests above a tier's max_per_order are rejected outright, while
// requests above this global ceiling are silently clamped.
const maxTicketsPerRequest = 20

// RegistrationHandler implements the registration engine: it validates
// a request, gates it against tier and event capacity inside a single
// transaction, issues a unique ticket code and persists the
// registration atomically.  Concurrency safety comes entirely from the
// datastore transaction plus the event row lock; there is no shared
// in-process state.
type RegistrationHandler struct {
	EventRepo        *repository.EventRepo        // access to events and the event row lock
	TicketTypeRepo   *repository.TicketTypeRepo   // access to ticket tiers
	RegistrationRepo *repository.RegistrationRepo // capacity sums, code checks and inserts

	// Notify publishes the post-commit confirmation event.  It is a
	// field so tests can substitute a fake; failures are logged and
	// never surfaced to the caller.
	Notify func(ctx context.Context, ev queue.RegistrationConfirmedEvent) error
}

// NewRegistrationHandler constructs a RegistrationHandler with the
// provided repositories.  All dependencies must be non-nil.
func NewRegistrationHandler(eventRepo *repository.EventRepo, ticketTypeRepo *repository.TicketTypeRepo, registrationRepo *repository.RegistrationRepo) *RegistrationHandler {
	if eventRepo == nil || ticketTypeRepo == nil || registrationRepo == nil {
		panic("nil repository passed to NewRegistrationHandler")
	}
	return &RegistrationHandler{
		EventRepo:        eventRepo,
		TicketTypeRepo:   ticketTypeRepo,
		RegistrationRepo: registrationRepo,
		Notify:           queue_publisher.PublishRegistrationConfirmed,
	}
}

// registerRequest is the JSON body of POST /events/:id/register.
type registerRequest struct {
	TicketTypeID    uint64  `json:"ticketTypeId"`
	FirstName       string  `json:"firstName"`
	LastName        string  `json:"lastName"`
	Email           string  `json:"email"`
	Phone           *string `json:"phone"`
	NumberOfTickets *uint32 `json:"numberOfTickets"`
}

// isValidEmail does a basic structural check; deliverability is the
// notification collaborator's problem.
func isValidEmail(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	return len(parts[0]) > 0 && strings.Contains(parts[1], ".")
}

// Register handles POST /events/:id/register.  Cheap validations run
// first and fail fast without touching a transaction.  The capacity
// gate, code generation and insert then execute as one atomic unit: the
// transaction locks the event row before summing issued tickets, so two
// concurrent requests can never both observe the last free seat.  On
// commit a confirmation event is published fire-and-forget.
func (h *RegistrationHandler) Register(c echo.Context) error {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || eventID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_event_id"})
	}
	var body registerRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_request_body"})
	}
	body.FirstName = strings.TrimSpace(body.FirstName)
	body.LastName = strings.TrimSpace(body.LastName)
	body.Email = strings.TrimSpace(strings.ToLower(body.Email))
	if body.FirstName == "" || body.LastName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name_required"})
	}
	if body.Email == "" || !isValidEmail(body.Email) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_email"})
	}
	if body.TicketTypeID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_ticket_type"})
	}
	qty := uint32(1)
	if body.NumberOfTickets != nil {
		if *body.NumberOfTickets < 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_quantity"})
		}
		qty = *body.NumberOfTickets
	}

	ctx := c.Request().Context()
	// Fail-fast checks outside any transaction.  Event and tier rows are
	// read-mostly reference data; re-reading them inside the critical
	// section would only widen the lock window.
	ev, err := h.EventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event_not_found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}
	if !ev.RegistrationOpen {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "registration_closed"})
	}
	if ev.RegistrationDeadline != nil && time.Now().UTC().After(*ev.RegistrationDeadline) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "deadline_passed"})
	}
	tier, err := h.TicketTypeRepo.GetByIDForEvent(ctx, body.TicketTypeID, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrTicketTypeNotFound) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_ticket_type"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}
	// Exceeding the tier's per-order cap is a hard rejection; exceeding
	// the global ceiling is clamped silently.
	if qty > tier.MaxPerOrder {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "too_many_tickets"})
	}
	if qty > maxTicketsPerRequest {
		qty = maxTicketsPerRequest
	}

	// Transactional phase.  Isolation is pinned explicitly rather than
	// inherited from the driver default; the FOR UPDATE lock on the
	// event row is what actually serializes competing registrations.
	tx, err := h.EventRepo.DB().BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed_to_start_transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := h.EventRepo.LockTx(ctx, tx, eventID); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event_not_found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}
	// Tier gate: issued + requested must not exceed the tier quantity.
	if tier.Quantity != nil {
		issued, err := h.RegistrationRepo.SumActiveByTicketTypeTx(ctx, tx, tier.ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
		}
		if issued+qty > *tier.Quantity {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "not_enough_tickets"})
		}
	}
	// Event gate: issued across all tiers must not exceed max capacity.
	if ev.MaxCapacity != nil {
		issued, err := h.RegistrationRepo.SumActiveByEventTx(ctx, tx, eventID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
		}
		if issued+qty > *ev.MaxCapacity {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "event_full"})
		}
	}
	code, err := ticketcode.GenerateUnique(ctx, func(ctx context.Context, candidate string) (bool, error) {
		return h.RegistrationRepo.CodeExistsTx(ctx, tx, candidate)
	})
	if err != nil {
		if errors.Is(err, ticketcode.ErrExhausted) {
			// Either pathological collision luck or a corrupted uniqueness
			// index; this is the one failure worth alerting on.
			log.Printf("register: ticket code generation exhausted for event %d: %v", eventID, err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "code_generation_failed"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}
	status := model.StatusConfirmed
	if ev.RequireApproval {
		status = model.StatusPending
	}
	reg := &model.Registration{
		EventID:         eventID,
		TicketTypeID:    tier.ID,
		TicketCode:      code,
		FirstName:       body.FirstName,
		LastName:        body.LastName,
		Email:           body.Email,
		Phone:           body.Phone,
		NumberOfTickets: qty,
		Status:          status,
	}
	if err := h.RegistrationRepo.CreateTx(ctx, tx, reg); err != nil {
		if errors.Is(err, repository.ErrDuplicateCode) {
			log.Printf("register: duplicate ticket code on insert for event %d", eventID)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "code_generation_failed"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed_to_create_registration"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed_to_commit_transaction"})
	}
	committed = true

	// The registration is durable; the confirmation notification is
	// best-effort and must never roll it back or surface an error.
	if h.Notify != nil {
		event := queue.RegistrationConfirmedEvent{
			RegistrationID:  reg.ID,
			EventID:         ev.ID,
			EventTitle:      ev.Title,
			TicketTypeID:    tier.ID,
			TicketTypeName:  tier.Name,
			TicketCode:      reg.TicketCode,
			FirstName:       reg.FirstName,
			LastName:        reg.LastName,
			Email:           reg.Email,
			NumberOfTickets: reg.NumberOfTickets,
			Status:          reg.Status,
			RegisteredAt:    reg.CreatedAt.UTC().Format(time.RFC3339),
		}
		go func() {
			if err := h.Notify(context.Background(), event); err != nil {
				log.Printf("register: confirmation notification failed for %s: %v", event.TicketCode, err)
			}
		}()
	}
	return c.JSON(http.StatusCreated, newRegistrationResponse(reg))
}
