package tickets

import (
	"context"
	"errors"
	"time"

	"guestlist/internal/domain"
	"guestlist/internal/models"
	"guestlist/internal/pagination"
)

type TicketDBLayer interface {
	CreateTicket(ctx context.Context, ticket *models.Ticket) error
	GetEventTicket(ctx context.Context, eventID, ticketID int64) (*models.Ticket, error)
	GetTicketByPair(ctx context.Context, eventID, guestID int64) (*models.Ticket, error)
	ListEventTickets(ctx context.Context, eventID int64, q string, offset, limit int) ([]models.Ticket, int, error)
	UpdateTicket(ctx context.Context, ticket *models.Ticket) error
	DeleteTicket(ctx context.Context, ticketID int64) error
}

// EventResolver and GuestResolver confirm that a referenced entity belongs to
// the requesting user, reporting cross-tenant entities as not found.
type EventResolver interface {
	GetOwnedEvent(ctx context.Context, userID, eventID int64) (*models.Event, error)
}

type GuestResolver interface {
	GetOwnedGuest(ctx context.Context, userID, guestID int64) (*models.Guest, error)
}

// AuditLayer receives ticket lifecycle records. May be nil.
type AuditLayer interface {
	TicketIssued(ctx context.Context, ticket *models.Ticket)
	TicketUpdated(ctx context.Context, ticket *models.Ticket)
	TicketDeleted(ctx context.Context, ticket *models.Ticket)
}

type Service struct {
	DB     TicketDBLayer
	Events EventResolver
	Guests GuestResolver
	Pager  *pagination.Pager
	Audit  AuditLayer
}

func NewService(db TicketDBLayer, events EventResolver, guests GuestResolver, pager *pagination.Pager) *Service {
	return &Service{DB: db, Events: events, Guests: guests, Pager: pager}
}

// TicketFields carries the caller-supplied attributes of a new ticket.
// VVIP, Accepted and Scanned arrive as integers; zero means false.
type TicketFields struct {
	QRCode   string
	VVIP     int
	Accepted int
	Scanned  int
	Comments string
}

// Issue creates the unique ticket pairing a guest with an event. The checks
// run in a fixed order, each short-circuiting: id syntax, event ownership,
// guest ownership, then the duplicate-pair check. Ownership is verified before
// the duplicate check so a pairing created by another tenant never reveals its
// existence to this caller. The store's unique constraint remains the final
// guard against a concurrent duplicate insert.
func (s *Service) Issue(ctx context.Context, userID int64, rawEventID, rawGuestID string, fields TicketFields) (*models.Ticket, error) {
	eventID, err := domain.ParseID(rawEventID)
	if err != nil {
		return nil, err
	}
	guestID, err := domain.ParseID(rawGuestID)
	if err != nil {
		return nil, err
	}
	if fields.QRCode == "" {
		return nil, domain.Validationf("no ticket value attribute found")
	}

	event, err := s.Events.GetOwnedEvent(ctx, userID, eventID)
	if err != nil {
		return nil, err
	}
	guest, err := s.Guests.GetOwnedGuest(ctx, userID, guestID)
	if err != nil {
		return nil, err
	}

	if _, err := s.DB.GetTicketByPair(ctx, event.ID, guest.ID); err == nil {
		return nil, domain.ErrDuplicateTicket
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	ticket := &models.Ticket{
		EventID:   event.ID,
		GuestID:   guest.ID,
		QRCode:    fields.QRCode,
		VVIP:      fields.VVIP != 0,
		Accepted:  fields.Accepted != 0,
		Scanned:   fields.Scanned,
		Comments:  fields.Comments,
		CreatedOn: now,
		UpdatedOn: now,
	}
	if err := s.DB.CreateTicket(ctx, ticket); err != nil {
		return nil, err
	}
	if s.Audit != nil {
		s.Audit.TicketIssued(ctx, ticket)
	}
	return ticket, nil
}

// Get returns one ticket, scoped through an event the user owns.
func (s *Service) Get(ctx context.Context, userID int64, rawEventID, rawTicketID string) (*models.Ticket, error) {
	ticketID, err := domain.ParseID(rawTicketID)
	if err != nil {
		return nil, err
	}
	event, err := s.resolveEvent(ctx, userID, rawEventID)
	if err != nil {
		return nil, err
	}
	return s.DB.GetEventTicket(ctx, event.ID, ticketID)
}

// List pages through an event's tickets, most recent first.
func (s *Service) List(ctx context.Context, userID int64, rawEventID string, page int, q string) ([]models.Ticket, pagination.Info, error) {
	event, err := s.resolveEvent(ctx, userID, rawEventID)
	if err != nil {
		return nil, pagination.Info{}, err
	}
	q = pagination.NormalizeQuery(q)
	offset, limit := s.Pager.Window(page)
	items, total, err := s.DB.ListEventTickets(ctx, event.ID, q, offset, limit)
	if err != nil {
		return nil, pagination.Info{}, err
	}
	return items, s.Pager.Describe(page, total), nil
}

// Update applies a partial ticket update. Falsy patch values leave the stored
// field untouched, so scanned, accepted and vvip can only be raised to a
// truthy value here, never cleared. That asymmetry is kept intentionally.
func (s *Service) Update(ctx context.Context, userID int64, rawEventID, rawTicketID string, patch models.TicketPatch) (*models.Ticket, error) {
	if patch.Empty() {
		return nil, domain.ErrNoChange
	}
	ticket, err := s.Get(ctx, userID, rawEventID, rawTicketID)
	if err != nil {
		return nil, err
	}
	if patch.Scanned != 0 {
		ticket.Scanned = patch.Scanned
	}
	if patch.Accepted {
		ticket.Accepted = true
	}
	if patch.VVIP {
		ticket.VVIP = true
	}
	if patch.Comments != "" {
		ticket.Comments = patch.Comments
	}
	ticket.UpdatedOn = time.Now().UTC()
	if err := s.DB.UpdateTicket(ctx, ticket); err != nil {
		return nil, err
	}
	if s.Audit != nil {
		s.Audit.TicketUpdated(ctx, ticket)
	}
	return ticket, nil
}

func (s *Service) Delete(ctx context.Context, userID int64, rawEventID, rawTicketID string) error {
	ticket, err := s.Get(ctx, userID, rawEventID, rawTicketID)
	if err != nil {
		return err
	}
	if err := s.DB.DeleteTicket(ctx, ticket.ID); err != nil {
		return err
	}
	if s.Audit != nil {
		s.Audit.TicketDeleted(ctx, ticket)
	}
	return nil
}

func (s *Service) resolveEvent(ctx context.Context, userID int64, rawEventID string) (*models.Event, error) {
	eventID, err := domain.ParseID(rawEventID)
	if err != nil {
		return nil, err
	}
	return s.Events.GetOwnedEvent(ctx, userID, eventID)
}
