package handler

import (
	"database/sql"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/event-ticket-reservation/internal/repository"
)

// fixedNow keeps row timestamps stable across a test run.
var fixedNow = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func newRegistrationHandler(db *sql.DB) *RegistrationHandler {
	h := NewRegistrationHandler(
		repository.NewEventRepo(db),
		repository.NewTicketTypeRepo(db),
		repository.NewRegistrationRepo(db),
	)
	// Tests that care about the notification replace this with a
	// channel-backed fake; everything else must not touch the broker.
	h.Notify = nil
	return h
}

// newJSONContext builds an echo context around a JSON request body.
func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

var eventCols = []string{
	"id", "title", "starts_at", "ends_at", "max_capacity", "registration_open",
	"registration_deadline", "require_approval", "created_at", "updated_at",
}

type eventRowOpts struct {
	maxCapacity     interface{} // nil or uint32
	open            bool
	deadline        interface{} // nil or time.Time
	requireApproval bool
}

func eventRows(id uint64, opts eventRowOpts) *sqlmock.Rows {
	return sqlmock.NewRows(eventCols).AddRow(
		id, "GopherCon", fixedNow.Add(24*time.Hour), fixedNow.Add(32*time.Hour),
		opts.maxCapacity, opts.open, opts.deadline, opts.requireApproval,
		fixedNow, fixedNow,
	)
}

var tierCols = []string{
	"id", "event_id", "name", "description", "price_cents", "currency",
	"quantity", "max_per_order", "is_free", "sort_order", "created_at",
}

func tierRows(id, eventID uint64, quantity interface{}, maxPerOrder uint32) *sqlmock.Rows {
	return sqlmock.NewRows(tierCols).AddRow(
		id, eventID, "Early Bird", nil, 2500, "USD",
		quantity, maxPerOrder, false, 0, fixedNow,
	)
}

var registrationCols = []string{
	"id", "event_id", "ticket_type_id", "ticket_code", "first_name", "last_name",
	"email", "phone", "number_of_tickets", "status", "checked_in", "checked_in_at", "notes",
	"created_at", "updated_at",
}

func registrationRows(id uint64, qty uint32, status string) *sqlmock.Rows {
	return sqlmock.NewRows(registrationCols).AddRow(
		id, 7, 3, "TKT-ABCDEFGH", "Ada", "Lovelace",
		"ada@example.com", nil, qty, status, false, nil, nil,
		fixedNow, fixedNow,
	)
}
