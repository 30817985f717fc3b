package handler

import (
	"errors"   // errors.Is comparisons
	"net/http" // HTTP status codes
	"strconv"  // parsing path parameters
	"time"     // check-in timestamps

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/event-ticket-reservation/internal/model"
	"github.com/iliyamo/event-ticket-reservation/internal/repository"
)

// AdminRegistrationHandler exposes the post-issuance lifecycle to the
// administrative collaborator: listing, status transitions, check-in
// and hard deletion.  None of these operations re-enter the capacity
// gate; in particular, promoting a waitlisted registration to confirmed
// is an administrative override that may temporarily exceed the
// original capacity.
type AdminRegistrationHandler struct {
	EventRepo        *repository.EventRepo        // event existence checks
	RegistrationRepo *repository.RegistrationRepo // registration lifecycle persistence
}

// NewAdminRegistrationHandler constructs an AdminRegistrationHandler
// with the provided repositories.  All dependencies must be non-nil.
func NewAdminRegistrationHandler(eventRepo *repository.EventRepo, registrationRepo *repository.RegistrationRepo) *AdminRegistrationHandler {
	if eventRepo == nil || registrationRepo == nil {
		panic("nil repository passed to NewAdminRegistrationHandler")
	}
	return &AdminRegistrationHandler{
		EventRepo:        eventRepo,
		RegistrationRepo: registrationRepo,
	}
}

// registrationPatch is the JSON body of the PATCH endpoint.  Pointer
// fields distinguish "absent" from zero values, and the struct itself
// is the whitelist: columns outside these three fields cannot be
// touched through this endpoint.
type registrationPatch struct {
	Status    *string `json:"status"`
	CheckedIn *bool   `json:"checkedIn"`
	Notes     *string `json:"notes"`
}

// pathIDs parses the event and registration identifiers shared by the
// lifecycle endpoints.
func pathIDs(c echo.Context) (eventID, regID uint64, ok bool) {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || eventID == 0 {
		return 0, 0, false
	}
	regID, err = strconv.ParseUint(c.Param("regId"), 10, 64)
	if err != nil || regID == 0 {
		return 0, 0, false
	}
	return eventID, regID, true
}

// ListRegistrations handles GET /events/:id/registrations.  It returns
// every registration of the event with tier names, newest first, or 404
// when the event does not exist.
func (h *AdminRegistrationHandler) ListRegistrations(c echo.Context) error {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || eventID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_event_id"})
	}
	ctx := c.Request().Context()
	if _, err := h.EventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event_not_found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}
	items, err := h.RegistrationRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed_to_load_registrations"})
	}
	return c.JSON(http.StatusOK, items)
}

// UpdateRegistration handles PATCH /events/:id/registrations/:regId.
// The status state machine is enforced strictly: pending may become
// confirmed or cancelled, confirmed may only be cancelled, waitlisted
// may become confirmed or cancelled, and cancelled is terminal.  A
// value outside the four enum strings is rejected as invalid_status; an
// enum value that breaks adjacency is rejected as invalid_transition.
// Check-in toggles independently of status and sets or clears the
// timestamp.  The read-validate-write sequence runs in one short
// transaction with the row locked.
func (h *AdminRegistrationHandler) UpdateRegistration(c echo.Context) error {
	eventID, regID, ok := pathIDs(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_id"})
	}
	var patch registrationPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_request_body"})
	}
	if patch.Status != nil && !model.IsValidStatus(*patch.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_status"})
	}

	ctx := c.Request().Context()
	tx, err := h.RegistrationRepo.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed_to_start_transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	reg, err := h.RegistrationRepo.GetByIDForEventTx(ctx, tx, regID, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrRegistrationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "registration_not_found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}
	if patch.Status != nil {
		if !model.CanTransition(reg.Status, *patch.Status) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_transition"})
		}
		reg.Status = *patch.Status
	}
	if patch.CheckedIn != nil {
		if *patch.CheckedIn {
			now := time.Now().UTC()
			reg.CheckedIn = true
			reg.CheckedInAt = &now
		} else {
			reg.CheckedIn = false
			reg.CheckedInAt = nil
		}
	}
	if patch.Notes != nil {
		reg.Notes = patch.Notes
	}
	if err := h.RegistrationRepo.UpdateTx(ctx, tx, reg); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed_to_update_registration"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed_to_commit_transaction"})
	}
	committed = true
	return c.JSON(http.StatusOK, newRegistrationResponse(reg))
}

// DeleteRegistration handles DELETE /events/:id/registrations/:regId.
// It hard-deletes a registration and returns 404 when the registration
// is not under the given event.
func (h *AdminRegistrationHandler) DeleteRegistration(c echo.Context) error {
	eventID, regID, ok := pathIDs(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_id"})
	}
	ctx := c.Request().Context()
	if err := h.RegistrationRepo.DeleteByIDForEvent(ctx, regID, eventID); err != nil {
		if errors.Is(err, repository.ErrRegistrationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "registration_not_found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed_to_delete_registration"})
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": true})
}
