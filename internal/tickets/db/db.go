package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"guestlist/internal/database"
	"guestlist/internal/domain"
	"guestlist/internal/models"
)

type DB struct {
	Bun *bun.DB
}

// CreateTicket inserts a ticket. The (event_id, guest_id) unique constraint is
// the authoritative guard against two concurrent issuances of the same pair;
// a violation is translated into domain.ErrDuplicateTicket.
func (d *DB) CreateTicket(ctx context.Context, ticket *models.Ticket) error {
	_, err := d.Bun.NewInsert().Model(ticket).Exec(ctx)
	if database.IsUniqueViolation(err) {
		return domain.ErrDuplicateTicket
	}
	return err
}

// GetEventTicket fetches a ticket scoped through its event. Callers resolve
// event ownership first; ticket ownership is transitive through the event.
func (d *DB) GetEventTicket(ctx context.Context, eventID, ticketID int64) (*models.Ticket, error) {
	var ticket models.Ticket
	err := d.Bun.NewSelect().
		Model(&ticket).
		Where("ticket_id = ?", ticketID).
		Where("event_id = ?", eventID).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrTicketNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

// GetTicketByPair looks up the ticket for an exact (event, guest) pairing.
func (d *DB) GetTicketByPair(ctx context.Context, eventID, guestID int64) (*models.Ticket, error) {
	var ticket models.Ticket
	err := d.Bun.NewSelect().
		Model(&ticket).
		Where("event_id = ?", eventID).
		Where("guest_id = ?", guestID).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrTicketNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

// ListEventTickets pages through one event's tickets, most recent first; q
// filters by substring on the lower-cased QR code text.
func (d *DB) ListEventTickets(ctx context.Context, eventID int64, q string, offset, limit int) ([]models.Ticket, int, error) {
	var tickets []models.Ticket
	query := d.Bun.NewSelect().
		Model(&tickets).
		Where("event_id = ?", eventID)
	if q != "" {
		query = query.Where("LOWER(qr_code_text) LIKE ?", "%"+q+"%")
	}
	total, err := query.
		Order("ticket_created_on DESC").
		Offset(offset).
		Limit(limit).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}
	return tickets, total, nil
}

func (d *DB) UpdateTicket(ctx context.Context, ticket *models.Ticket) error {
	_, err := d.Bun.NewUpdate().
		Model(ticket).
		Column("scanned", "accepted", "vvip", "comments", "ticket_updated_on").
		Where("ticket_id = ?", ticket.ID).
		Exec(ctx)
	return err
}

func (d *DB) DeleteTicket(ctx context.Context, ticketID int64) error {
	_, err := d.Bun.NewDelete().
		Model((*models.Ticket)(nil)).
		Where("ticket_id = ?", ticketID).
		Exec(ctx)
	return err
}
