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

// CreateGuest inserts a guest. The guests.email unique constraint is global
// across all users; a violation surfaces as domain.ErrEmailExists.
func (d *DB) CreateGuest(ctx context.Context, guest *models.Guest) error {
	_, err := d.Bun.NewInsert().Model(guest).Exec(ctx)
	if database.IsUniqueViolation(err) {
		return domain.ErrEmailExists
	}
	return err
}

func (d *DB) GetOwnedGuest(ctx context.Context, userID, guestID int64) (*models.Guest, error) {
	var guest models.Guest
	err := d.Bun.NewSelect().
		Model(&guest).
		Where("guest_id = ?", guestID).
		Where("user_id = ?", userID).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrGuestNotFound
	}
	if err != nil {
		return nil, err
	}
	return &guest, nil
}

// ListOwnedGuests pages through the user's guests; q filters by substring on
// the lower-cased last name.
func (d *DB) ListOwnedGuests(ctx context.Context, userID int64, q string, offset, limit int) ([]models.Guest, int, error) {
	var guests []models.Guest
	query := d.Bun.NewSelect().
		Model(&guests).
		Where("user_id = ?", userID)
	if q != "" {
		query = query.Where("LOWER(last_name) LIKE ?", "%"+q+"%")
	}
	total, err := query.Offset(offset).Limit(limit).ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}
	return guests, total, nil
}

func (d *DB) UpdateGuest(ctx context.Context, guest *models.Guest) error {
	_, err := d.Bun.NewUpdate().
		Model(guest).
		Column("first_name", "last_name", "organization", "email", "guest_updated_on").
		Where("guest_id = ?", guest.ID).
		Exec(ctx)
	if database.IsUniqueViolation(err) {
		return domain.ErrEmailExists
	}
	return err
}

func (d *DB) DeleteGuest(ctx context.Context, guestID int64) error {
	_, err := d.Bun.NewDelete().
		Model((*models.Guest)(nil)).
		Where("guest_id = ?", guestID).
		Exec(ctx)
	return err
}
