package db

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"guestlist/internal/domain"
	"guestlist/internal/models"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	sqldb, err := sql.Open(sqliteshim.ShimName, "file::memory:?cache=shared")
	require.NoError(t, err)

	bunDB := bun.NewDB(sqldb, sqlitedialect.New())
	err = bunDB.ResetModel(context.Background(), (*models.Ticket)(nil))
	require.NoError(t, err)

	return &DB{Bun: bunDB}
}

func newTicket(eventID, guestID int64, qrCode string, createdOn time.Time) *models.Ticket {
	return &models.Ticket{
		EventID:   eventID,
		GuestID:   guestID,
		QRCode:    qrCode,
		CreatedOn: createdOn,
		UpdatedOn: createdOn,
	}
}

func TestCreateTicketRejectsDuplicatePair(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, db.CreateTicket(ctx, newTicket(1, 1, "qr-1", now)))

	// The unique index is the backstop for a concurrent duplicate insert;
	// it must come back as the same duplicate outcome.
	err := db.CreateTicket(ctx, newTicket(1, 1, "qr-2", now))
	require.ErrorIs(t, err, domain.ErrDuplicateTicket)

	// Different pairings are fine.
	require.NoError(t, db.CreateTicket(ctx, newTicket(1, 2, "qr-3", now)))
	require.NoError(t, db.CreateTicket(ctx, newTicket(2, 1, "qr-4", now)))
}

func TestGetTicketByPair(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	now := time.Now().UTC()

	ticket := newTicket(1, 1, "qr-1", now)
	require.NoError(t, db.CreateTicket(ctx, ticket))

	got, err := db.GetTicketByPair(ctx, 1, 1)
	require.NoError(t, err)
	require.Equal(t, ticket.ID, got.ID)

	_, err = db.GetTicketByPair(ctx, 1, 2)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetEventTicketScopesThroughEvent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	now := time.Now().UTC()

	ticket := newTicket(1, 1, "qr-1", now)
	require.NoError(t, db.CreateTicket(ctx, ticket))

	_, err := db.GetEventTicket(ctx, 1, ticket.ID)
	require.NoError(t, err)

	// The same ticket id through a different event does not resolve.
	_, err = db.GetEventTicket(ctx, 2, ticket.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListEventTicketsOrdersByCreationDesc(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, db.CreateTicket(ctx, newTicket(1, 1, "qr-old", base)))
	require.NoError(t, db.CreateTicket(ctx, newTicket(1, 2, "qr-mid", base.Add(time.Hour))))
	require.NoError(t, db.CreateTicket(ctx, newTicket(1, 3, "qr-new", base.Add(2*time.Hour))))

	items, total, err := db.ListEventTickets(ctx, 1, "", 0, 10)
	require.NoError(t, err)
	require.Equal(t, 3, total)
	require.Equal(t, "qr-new", items[0].QRCode)
	require.Equal(t, "qr-old", items[2].QRCode)
}

func TestListEventTicketsSearchesQRText(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, db.CreateTicket(ctx, newTicket(1, 1, "VIP-ALPHA", now)))
	require.NoError(t, db.CreateTicket(ctx, newTicket(1, 2, "STD-BETA", now)))

	items, total, err := db.ListEventTickets(ctx, 1, "alpha", 0, 10)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Equal(t, "VIP-ALPHA", items[0].QRCode)
}

func TestDeleteTicketAllowsReissue(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	now := time.Now().UTC()

	ticket := newTicket(1, 1, "qr-1", now)
	require.NoError(t, db.CreateTicket(ctx, ticket))
	require.NoError(t, db.DeleteTicket(ctx, ticket.ID))

	// The pair is free again once the ticket is gone.
	require.NoError(t, db.CreateTicket(ctx, newTicket(1, 1, "qr-2", now)))
}
