package auth

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/uptrace/bun"

	"guestlist/internal/database"
	"guestlist/internal/domain"
	"guestlist/internal/models"
)

// UserDB persists accounts. Emails are stored lower-cased so uniqueness is
// case-insensitive.
type UserDB struct {
	Bun *bun.DB
}

func (d *UserDB) CreateUser(ctx context.Context, user *models.User) error {
	user.Email = strings.ToLower(user.Email)
	_, err := d.Bun.NewInsert().Model(user).Exec(ctx)
	if database.IsUniqueViolation(err) {
		return domain.ErrEmailExists
	}
	return err
}

func (d *UserDB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := d.Bun.NewSelect().
		Model(&user).
		Where("email = ?", strings.ToLower(email)).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
