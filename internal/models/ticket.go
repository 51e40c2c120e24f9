package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Ticket pairs one guest with one event. The unique:event_guest group backs
// the at-most-one-ticket-per-(event,guest) invariant at the storage layer.
type Ticket struct {
	bun.BaseModel `bun:"table:tickets"`

	ID        int64     `bun:"ticket_id,pk,autoincrement" json:"ticket_id"`
	EventID   int64     `bun:"event_id,notnull,unique:event_guest" json:"event_id"`
	GuestID   int64     `bun:"guest_id,notnull,unique:event_guest" json:"guest_id"`
	QRCode    string    `bun:"qr_code_text,notnull" json:"qr_code"`
	VVIP      bool      `bun:"vvip,notnull" json:"vvip"`
	Accepted  bool      `bun:"accepted,notnull" json:"accepted"`
	Scanned   int       `bun:"scanned,notnull" json:"scanned"`
	Comments  string    `bun:"comments" json:"comments"`
	CreatedOn time.Time `bun:"ticket_created_on,notnull" json:"created_on"`
	UpdatedOn time.Time `bun:"ticket_updated_on,notnull" json:"modified_on"`
}

// TicketPatch carries new field values for a partial ticket update.
//
// Falsy values (0, false, "") mean "leave unchanged", matching the update
// endpoint's contract: scanned, accepted and vvip can only be raised to a
// truthy value through a patch, never explicitly cleared. This is a documented
// limitation of the update path, not an oversight.
type TicketPatch struct {
	Scanned  int
	Accepted bool
	VVIP     bool
	Comments string
}

func (p TicketPatch) Empty() bool {
	return p.Scanned == 0 && !p.Accepted && !p.VVIP && p.Comments == ""
}
