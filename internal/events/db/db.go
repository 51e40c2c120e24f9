package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"guestlist/internal/domain"
	"guestlist/internal/models"
)

type DB struct {
	Bun *bun.DB
}

func (d *DB) CreateEvent(ctx context.Context, event *models.Event) error {
	_, err := d.Bun.NewInsert().Model(event).Exec(ctx)
	return err
}

// GetOwnedEvent fetches an event only when it belongs to the given user. An
// event owned by someone else is reported exactly like a nonexistent one.
func (d *DB) GetOwnedEvent(ctx context.Context, userID, eventID int64) (*models.Event, error) {
	var event models.Event
	err := d.Bun.NewSelect().
		Model(&event).
		Where("event_id = ?", eventID).
		Where("user_id = ?", userID).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// ListOwnedEvents returns one page of the user's events plus the total count
// of matching rows. A non-empty q filters by case-insensitive substring on the
// event name.
func (d *DB) ListOwnedEvents(ctx context.Context, userID int64, q string, offset, limit int) ([]models.Event, int, error) {
	var events []models.Event
	query := d.Bun.NewSelect().
		Model(&events).
		Where("user_id = ?", userID)
	if q != "" {
		query = query.Where("LOWER(event_name) LIKE ?", "%"+q+"%")
	}
	total, err := query.Offset(offset).Limit(limit).ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

func (d *DB) UpdateEvent(ctx context.Context, event *models.Event) error {
	_, err := d.Bun.NewUpdate().
		Model(event).
		Column("event_name", "event_location", "event_eval_link", "event_time", "event_updated_on").
		Where("event_id = ?", event.ID).
		Exec(ctx)
	return err
}

func (d *DB) DeleteEvent(ctx context.Context, eventID int64) error {
	_, err := d.Bun.NewDelete().
		Model((*models.Event)(nil)).
		Where("event_id = ?", eventID).
		Exec(ctx)
	return err
}
