package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/event-ticket-reservation/internal/model"
	"github.com/iliyamo/event-ticket-reservation/internal/queue"
)

const registerBody = `{"ticketTypeId":3,"firstName":"Ada","lastName":"Lovelace","email":"Ada@Example.com","numberOfTickets":2}`

func decodeError(t *testing.T, body []byte) string {
	t.Helper()
	var m map[string]string
	require.NoError(t, json.Unmarshal(body, &m))
	return m["error"]
}

func TestRegisterSuccessConfirmed(t *testing.T) {
	db, mock := newMockDB(t)
	h := newRegistrationHandler(db)

	notified := make(chan queue.RegistrationConfirmedEvent, 1)
	h.Notify = func(ctx context.Context, ev queue.RegistrationConfirmedEvent) error {
		notified <- ev
		return nil
	}

	maxCap := uint32(100)
	qty := uint32(50)
	mock.ExpectQuery(`SELECT id, title, starts_at, ends_at, max_capacity`).
		WithArgs(uint64(7)).
		WillReturnRows(eventRows(7, eventRowOpts{maxCapacity: maxCap, open: true}))
	mock.ExpectQuery(`FROM ticket_types WHERE id = \? AND event_id = \?`).
		WithArgs(uint64(3), uint64(7)).
		WillReturnRows(tierRows(3, 7, qty, 5))

	// The gate sequence is ordered: lock first, then both sums, then the
	// uniqueness probe and the insert, all inside one transaction.
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM events WHERE id = \? FOR UPDATE`).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery(`WHERE ticket_type_id = \? AND status <> 'cancelled'`).
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(10))
	mock.ExpectQuery(`WHERE event_id = \? AND status <> 'cancelled'`).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(20))
	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM registrations`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(`INSERT INTO registrations`).
		WithArgs(uint64(7), uint64(3), sqlmock.AnyArg(), "Ada", "Lovelace",
			"ada@example.com", nil, uint32(2), model.StatusConfirmed).
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectQuery(`FROM registrations WHERE id = \?`).
		WithArgs(uint64(42)).
		WillReturnRows(registrationRows(42, 2, model.StatusConfirmed))
	mock.ExpectCommit()

	c, rec := newJSONContext(http.MethodPost, "/events/7/register", registerBody)
	c.SetParamNames("id")
	c.SetParamValues("7")
	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp registrationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, uint64(42), resp.ID)
	require.Equal(t, model.StatusConfirmed, resp.Status)
	require.Equal(t, uint32(2), resp.NumberOfTickets)
	require.Equal(t, "TKT-ABCDEFGH", resp.TicketCode)
	require.Equal(t, "ada@example.com", resp.Email)

	select {
	case ev := <-notified:
		require.Equal(t, uint64(42), ev.RegistrationID)
		require.Equal(t, "TKT-ABCDEFGH", ev.TicketCode)
		require.Equal(t, "GopherCon", ev.EventTitle)
		require.Equal(t, "Early Bird", ev.TicketTypeName)
	case <-time.After(2 * time.Second):
		t.Fatal("confirmation event was not published")
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterRequireApprovalStartsPending(t *testing.T) {
	db, mock := newMockDB(t)
	h := newRegistrationHandler(db)

	// No capacity limits anywhere, so neither sum query runs.  Quantity
	// is absent and defaults to one ticket.
	mock.ExpectQuery(`SELECT id, title, starts_at, ends_at, max_capacity`).
		WithArgs(uint64(7)).
		WillReturnRows(eventRows(7, eventRowOpts{open: true, requireApproval: true}))
	mock.ExpectQuery(`FROM ticket_types WHERE id = \? AND event_id = \?`).
		WithArgs(uint64(3), uint64(7)).
		WillReturnRows(tierRows(3, 7, nil, 5))
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM events WHERE id = \? FOR UPDATE`).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM registrations`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(`INSERT INTO registrations`).
		WithArgs(uint64(7), uint64(3), sqlmock.AnyArg(), "Ada", "Lovelace",
			"ada@example.com", nil, uint32(1), model.StatusPending).
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectQuery(`FROM registrations WHERE id = \?`).
		WithArgs(uint64(42)).
		WillReturnRows(registrationRows(42, 1, model.StatusPending))
	mock.ExpectCommit()

	body := `{"ticketTypeId":3,"firstName":"Ada","lastName":"Lovelace","email":"ada@example.com"}`
	c, rec := newJSONContext(http.MethodPost, "/events/7/register", body)
	c.SetParamNames("id")
	c.SetParamValues("7")
	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp registrationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, model.StatusPending, resp.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterTierSoldOut(t *testing.T) {
	db, mock := newMockDB(t)
	h := newRegistrationHandler(db)

	maxCap := uint32(100)
	mock.ExpectQuery(`SELECT id, title, starts_at, ends_at, max_capacity`).
		WithArgs(uint64(7)).
		WillReturnRows(eventRows(7, eventRowOpts{maxCapacity: maxCap, open: true}))
	mock.ExpectQuery(`FROM ticket_types WHERE id = \? AND event_id = \?`).
		WithArgs(uint64(3), uint64(7)).
		WillReturnRows(tierRows(3, 7, uint32(50), 5))
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM events WHERE id = \? FOR UPDATE`).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	// 49 issued + 2 requested exceeds the 50-ticket tier.
	mock.ExpectQuery(`WHERE ticket_type_id = \? AND status <> 'cancelled'`).
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(49))
	mock.ExpectRollback()

	c, rec := newJSONContext(http.MethodPost, "/events/7/register", registerBody)
	c.SetParamNames("id")
	c.SetParamValues("7")
	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "not_enough_tickets", decodeError(t, rec.Body.Bytes()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterEventFull(t *testing.T) {
	db, mock := newMockDB(t)
	h := newRegistrationHandler(db)

	// The tier has room but the event-wide cap does not: both gates must
	// hold independently.
	maxCap := uint32(30)
	mock.ExpectQuery(`SELECT id, title, starts_at, ends_at, max_capacity`).
		WithArgs(uint64(7)).
		WillReturnRows(eventRows(7, eventRowOpts{maxCapacity: maxCap, open: true}))
	mock.ExpectQuery(`FROM ticket_types WHERE id = \? AND event_id = \?`).
		WithArgs(uint64(3), uint64(7)).
		WillReturnRows(tierRows(3, 7, uint32(50), 5))
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM events WHERE id = \? FOR UPDATE`).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery(`WHERE ticket_type_id = \? AND status <> 'cancelled'`).
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(10))
	mock.ExpectQuery(`WHERE event_id = \? AND status <> 'cancelled'`).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(29))
	mock.ExpectRollback()

	c, rec := newJSONContext(http.MethodPost, "/events/7/register", registerBody)
	c.SetParamNames("id")
	c.SetParamValues("7")
	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "event_full", decodeError(t, rec.Body.Bytes()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterClosedAndDeadline(t *testing.T) {
	db, mock := newMockDB(t)
	h := newRegistrationHandler(db)

	mock.ExpectQuery(`SELECT id, title, starts_at, ends_at, max_capacity`).
		WithArgs(uint64(7)).
		WillReturnRows(eventRows(7, eventRowOpts{open: false}))

	c, rec := newJSONContext(http.MethodPost, "/events/7/register", registerBody)
	c.SetParamNames("id")
	c.SetParamValues("7")
	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "registration_closed", decodeError(t, rec.Body.Bytes()))

	passed := time.Now().UTC().Add(-time.Hour)
	mock.ExpectQuery(`SELECT id, title, starts_at, ends_at, max_capacity`).
		WithArgs(uint64(7)).
		WillReturnRows(eventRows(7, eventRowOpts{open: true, deadline: passed}))

	c, rec = newJSONContext(http.MethodPost, "/events/7/register", registerBody)
	c.SetParamNames("id")
	c.SetParamValues("7")
	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "deadline_passed", decodeError(t, rec.Body.Bytes()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterRejectsAboveTierMax(t *testing.T) {
	db, mock := newMockDB(t)
	h := newRegistrationHandler(db)

	// Five tickets against a per-order cap of four is a hard rejection,
	// not a clamp, and no transaction is opened.
	mock.ExpectQuery(`SELECT id, title, starts_at, ends_at, max_capacity`).
		WithArgs(uint64(7)).
		WillReturnRows(eventRows(7, eventRowOpts{open: true}))
	mock.ExpectQuery(`FROM ticket_types WHERE id = \? AND event_id = \?`).
		WithArgs(uint64(3), uint64(7)).
		WillReturnRows(tierRows(3, 7, nil, 4))

	body := `{"ticketTypeId":3,"firstName":"Ada","lastName":"Lovelace","email":"ada@example.com","numberOfTickets":5}`
	c, rec := newJSONContext(http.MethodPost, "/events/7/register", body)
	c.SetParamNames("id")
	c.SetParamValues("7")
	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "too_many_tickets", decodeError(t, rec.Body.Bytes()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterClampsToGlobalCeiling(t *testing.T) {
	db, mock := newMockDB(t)
	h := newRegistrationHandler(db)

	// A tier may allow 50 per order, but 25 requested still lands as 20:
	// the global ceiling clamps silently instead of rejecting.
	mock.ExpectQuery(`SELECT id, title, starts_at, ends_at, max_capacity`).
		WithArgs(uint64(7)).
		WillReturnRows(eventRows(7, eventRowOpts{open: true}))
	mock.ExpectQuery(`FROM ticket_types WHERE id = \? AND event_id = \?`).
		WithArgs(uint64(3), uint64(7)).
		WillReturnRows(tierRows(3, 7, nil, 50))
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM events WHERE id = \? FOR UPDATE`).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM registrations`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(`INSERT INTO registrations`).
		WithArgs(uint64(7), uint64(3), sqlmock.AnyArg(), "Ada", "Lovelace",
			"ada@example.com", nil, uint32(20), model.StatusConfirmed).
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectQuery(`FROM registrations WHERE id = \?`).
		WithArgs(uint64(42)).
		WillReturnRows(registrationRows(42, 20, model.StatusConfirmed))
	mock.ExpectCommit()

	body := `{"ticketTypeId":3,"firstName":"Ada","lastName":"Lovelace","email":"ada@example.com","numberOfTickets":25}`
	c, rec := newJSONContext(http.MethodPost, "/events/7/register", body)
	c.SetParamNames("id")
	c.SetParamValues("7")
	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterSucceedsAfterCancellationFreesCapacity(t *testing.T) {
	db, mock := newMockDB(t)
	reg := newRegistrationHandler(db)
	admin := newAdminHandler(db)

	body := `{"ticketTypeId":3,"firstName":"Ada","lastName":"Lovelace","email":"ada@example.com","numberOfTickets":1}`

	// The tier's single ticket is held by registration 41: a new
	// registration bounces off the capacity gate.
	mock.ExpectQuery(`SELECT id, title, starts_at, ends_at, max_capacity`).
		WithArgs(uint64(7)).
		WillReturnRows(eventRows(7, eventRowOpts{open: true}))
	mock.ExpectQuery(`FROM ticket_types WHERE id = \? AND event_id = \?`).
		WithArgs(uint64(3), uint64(7)).
		WillReturnRows(tierRows(3, 7, uint32(1), 5))
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM events WHERE id = \? FOR UPDATE`).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery(`WHERE ticket_type_id = \? AND status <> 'cancelled'`).
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(1))
	mock.ExpectRollback()

	c, rec := newJSONContext(http.MethodPost, "/events/7/register", body)
	c.SetParamNames("id")
	c.SetParamValues("7")
	require.NoError(t, reg.Register(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "not_enough_tickets", decodeError(t, rec.Body.Bytes()))

	// An admin cancels the holder.
	mock.ExpectBegin()
	mock.ExpectQuery(`WHERE id = \? AND event_id = \? FOR UPDATE`).
		WithArgs(uint64(41), uint64(7)).
		WillReturnRows(registrationRows(41, 1, model.StatusConfirmed))
	mock.ExpectExec(`UPDATE registrations SET status = \?`).
		WithArgs(model.StatusCancelled, false, nil, nil, uint64(41)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`FROM registrations WHERE id = \?`).
		WithArgs(uint64(41)).
		WillReturnRows(registrationRows(41, 1, model.StatusCancelled))
	mock.ExpectCommit()

	c, rec = newJSONContext(http.MethodPatch, "/events/7/registrations/41", `{"status":"cancelled"}`)
	c.SetParamNames("id", "regId")
	c.SetParamValues("7", "41")
	require.NoError(t, admin.UpdateRegistration(c))
	require.Equal(t, http.StatusOK, rec.Code)

	// The cancelled row no longer counts toward the sum, so the retry
	// takes the freed ticket.
	mock.ExpectQuery(`SELECT id, title, starts_at, ends_at, max_capacity`).
		WithArgs(uint64(7)).
		WillReturnRows(eventRows(7, eventRowOpts{open: true}))
	mock.ExpectQuery(`FROM ticket_types WHERE id = \? AND event_id = \?`).
		WithArgs(uint64(3), uint64(7)).
		WillReturnRows(tierRows(3, 7, uint32(1), 5))
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM events WHERE id = \? FOR UPDATE`).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery(`WHERE ticket_type_id = \? AND status <> 'cancelled'`).
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(0))
	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM registrations`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(`INSERT INTO registrations`).
		WithArgs(uint64(7), uint64(3), sqlmock.AnyArg(), "Ada", "Lovelace",
			"ada@example.com", nil, uint32(1), model.StatusConfirmed).
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectQuery(`FROM registrations WHERE id = \?`).
		WithArgs(uint64(42)).
		WillReturnRows(registrationRows(42, 1, model.StatusConfirmed))
	mock.ExpectCommit()

	c, rec = newJSONContext(http.MethodPost, "/events/7/register", body)
	c.SetParamNames("id")
	c.SetParamValues("7")
	require.NoError(t, reg.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterUnknownEventAndTier(t *testing.T) {
	db, mock := newMockDB(t)
	h := newRegistrationHandler(db)

	mock.ExpectQuery(`SELECT id, title, starts_at, ends_at, max_capacity`).
		WithArgs(uint64(999)).
		WillReturnRows(sqlmock.NewRows(eventCols))

	c, rec := newJSONContext(http.MethodPost, "/events/999/register", registerBody)
	c.SetParamNames("id")
	c.SetParamValues("999")
	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "event_not_found", decodeError(t, rec.Body.Bytes()))

	// A tier belonging to a different event scans as no rows and reads
	// the same as a nonexistent tier.
	mock.ExpectQuery(`SELECT id, title, starts_at, ends_at, max_capacity`).
		WithArgs(uint64(7)).
		WillReturnRows(eventRows(7, eventRowOpts{open: true}))
	mock.ExpectQuery(`FROM ticket_types WHERE id = \? AND event_id = \?`).
		WithArgs(uint64(3), uint64(7)).
		WillReturnRows(sqlmock.NewRows(tierCols))

	c, rec = newJSONContext(http.MethodPost, "/events/7/register", registerBody)
	c.SetParamNames("id")
	c.SetParamValues("7")
	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "invalid_ticket_type", decodeError(t, rec.Body.Bytes()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterCodeGenerationExhausted(t *testing.T) {
	db, mock := newMockDB(t)
	h := newRegistrationHandler(db)

	mock.ExpectQuery(`SELECT id, title, starts_at, ends_at, max_capacity`).
		WithArgs(uint64(7)).
		WillReturnRows(eventRows(7, eventRowOpts{open: true}))
	mock.ExpectQuery(`FROM ticket_types WHERE id = \? AND event_id = \?`).
		WithArgs(uint64(3), uint64(7)).
		WillReturnRows(tierRows(3, 7, nil, 5))
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM events WHERE id = \? FOR UPDATE`).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	// Every candidate collides; after the retry budget the request fails
	// loudly instead of looping forever.
	for i := 0; i < 20; i++ {
		mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM registrations`).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	}
	mock.ExpectRollback()

	c, rec := newJSONContext(http.MethodPost, "/events/7/register", registerBody)
	c.SetParamNames("id")
	c.SetParamValues("7")
	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "code_generation_failed", decodeError(t, rec.Body.Bytes()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterDuplicateCodeOnInsert(t *testing.T) {
	db, mock := newMockDB(t)
	h := newRegistrationHandler(db)

	mock.ExpectQuery(`SELECT id, title, starts_at, ends_at, max_capacity`).
		WithArgs(uint64(7)).
		WillReturnRows(eventRows(7, eventRowOpts{open: true}))
	mock.ExpectQuery(`FROM ticket_types WHERE id = \? AND event_id = \?`).
		WithArgs(uint64(3), uint64(7)).
		WillReturnRows(tierRows(3, 7, nil, 5))
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM events WHERE id = \? FOR UPDATE`).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM registrations`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	// The unique index catches a code inserted by a concurrent
	// transaction between the probe and the insert.
	mock.ExpectExec(`INSERT INTO registrations`).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	mock.ExpectRollback()

	c, rec := newJSONContext(http.MethodPost, "/events/7/register", registerBody)
	c.SetParamNames("id")
	c.SetParamValues("7")
	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "code_generation_failed", decodeError(t, rec.Body.Bytes()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterInputValidation(t *testing.T) {
	db, _ := newMockDB(t)
	h := newRegistrationHandler(db)

	cases := []struct {
		name string
		body string
		want string
	}{
		{"zero quantity", `{"ticketTypeId":3,"firstName":"Ada","lastName":"Lovelace","email":"ada@example.com","numberOfTickets":0}`, "invalid_quantity"},
		{"missing name", `{"ticketTypeId":3,"firstName":"  ","lastName":"Lovelace","email":"ada@example.com"}`, "name_required"},
		{"bad email", `{"ticketTypeId":3,"firstName":"Ada","lastName":"Lovelace","email":"not-an-email"}`, "invalid_email"},
		{"missing tier", `{"firstName":"Ada","lastName":"Lovelace","email":"ada@example.com"}`, "invalid_ticket_type"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newJSONContext(http.MethodPost, "/events/7/register", tc.body)
			c.SetParamNames("id")
			c.SetParamValues("7")
			require.NoError(t, h.Register(c))
			require.Equal(t, http.StatusBadRequest, rec.Code)
			require.Equal(t, tc.want, decodeError(t, rec.Body.Bytes()))
		})
	}

	c, rec := newJSONContext(http.MethodPost, "/events/abc/register", registerBody)
	c.SetParamNames("id")
	c.SetParamValues("abc")
	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "invalid_event_id", decodeError(t, rec.Body.Bytes()))
}
