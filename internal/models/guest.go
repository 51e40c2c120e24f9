package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Guest email uniqueness is global across all users, not per-tenant.
type Guest struct {
	bun.BaseModel `bun:"table:guests"`

	ID           int64     `bun:"guest_id,pk,autoincrement" json:"guest_id"`
	UserID       int64     `bun:"user_id,notnull" json:"-"`
	FirstName    string    `bun:"first_name,notnull" json:"first_name"`
	LastName     string    `bun:"last_name,notnull" json:"last_name"`
	Organization string    `bun:"organization,notnull" json:"organization"`
	Email        string    `bun:"email,unique,notnull" json:"email"`
	CreatedOn    time.Time `bun:"guest_created_on,notnull" json:"created_on"`
	UpdatedOn    time.Time `bun:"guest_updated_on,notnull" json:"modified_on"`
}

// GuestPatch carries new field values for a partial update. Zero values mean
// "leave unchanged".
type GuestPatch struct {
	FirstName    string
	LastName     string
	Organization string
	Email        string
}

func (p GuestPatch) Empty() bool {
	return p.FirstName == "" && p.LastName == "" && p.Organization == "" && p.Email == ""
}
