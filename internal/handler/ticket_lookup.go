package handler

import (
	"errors"   // errors.Is comparisons
	"net/http" // HTTP status codes
	"strings"  // code normalization

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/event-ticket-reservation/internal/repository"
)

// LookupHandler serves the public ticket-view page: it resolves a
// ticket code to the full registration, event and tier detail.  Pure
// read, no locking, safe to retry.
type LookupHandler struct {
	RegistrationRepo *repository.RegistrationRepo // ticket detail lookups
}

// NewLookupHandler constructs a LookupHandler.  The repository must be non-nil.
func NewLookupHandler(registrationRepo *repository.RegistrationRepo) *LookupHandler {
	if registrationRepo == nil {
		panic("nil repository passed to NewLookupHandler")
	}
	return &LookupHandler{RegistrationRepo: registrationRepo}
}

// GetTicket handles GET /tickets/:code.  Codes are matched verbatim
// apart from surrounding whitespace and case: the alphabet is
// upper-case only, so a lower-cased code from a hand-typed URL still
// resolves.
func (h *LookupHandler) GetTicket(c echo.Context) error {
	code := strings.ToUpper(strings.TrimSpace(c.Param("code")))
	if code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_code"})
	}
	detail, err := h.RegistrationRepo.GetDetailByCode(c.Request().Context(), code)
	if err != nil {
		if errors.Is(err, repository.ErrRegistrationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket_not_found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed_to_fetch_ticket"})
	}
	return c.JSON(http.StatusOK, detail)
}
