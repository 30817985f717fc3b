package handler

import (
	"time"

	"github.com/iliyamo/event-ticket-reservation/internal/model"
)

// registrationResponse is the JSON shape of a registration returned by
// the register and lifecycle endpoints.
type registrationResponse struct {
	ID              uint64  `json:"id"`
	EventID         uint64  `json:"eventId"`
	TicketTypeID    uint64  `json:"ticketTypeId"`
	TicketCode      string  `json:"ticketCode"`
	FirstName       string  `json:"firstName"`
	LastName        string  `json:"lastName"`
	Email           string  `json:"email"`
	Phone           *string `json:"phone,omitempty"`
	NumberOfTickets uint32  `json:"numberOfTickets"`
	Status          string  `json:"status"`
	CheckedIn       bool    `json:"checkedIn"`
	CheckedInAt     *string `json:"checkedInAt,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// newRegistrationResponse maps a model registration onto its JSON shape.
// Timestamps are rendered as RFC3339 in UTC.
func newRegistrationResponse(reg *model.Registration) registrationResponse {
	resp := registrationResponse{
		ID:              reg.ID,
		EventID:         reg.EventID,
		TicketTypeID:    reg.TicketTypeID,
		TicketCode:      reg.TicketCode,
		FirstName:       reg.FirstName,
		LastName:        reg.LastName,
		Email:           reg.Email,
		Phone:           reg.Phone,
		NumberOfTickets: reg.NumberOfTickets,
		Status:          reg.Status,
		CheckedIn:       reg.CheckedIn,
		Notes:           reg.Notes,
		CreatedAt:       reg.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:       reg.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if reg.CheckedInAt != nil {
		iso := reg.CheckedInAt.UTC().Format(time.RFC3339)
		resp.CheckedInAt = &iso
	}
	return resp
}
