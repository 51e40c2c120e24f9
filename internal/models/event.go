package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Event belongs to exactly one user; the user_id column is never exposed in
// JSON, ownership is enforced by scoping every query to it.
type Event struct {
	bun.BaseModel `bun:"table:events"`

	ID        int64     `bun:"event_id,pk,autoincrement" json:"event_id"`
	Name      string    `bun:"event_name,notnull" json:"event_name"`
	Location  string    `bun:"event_location,notnull" json:"event_location"`
	EvalLink  string    `bun:"event_eval_link" json:"event_eval_link"`
	StartTime time.Time `bun:"event_time,notnull" json:"event_time"`
	UserID    int64     `bun:"user_id,notnull" json:"-"`
	CreatedOn time.Time `bun:"event_created_on,notnull" json:"created_on"`
	UpdatedOn time.Time `bun:"event_updated_on,notnull" json:"modified_on"`
}

// EventPatch carries new field values for a partial update. Zero values mean
// "leave unchanged".
type EventPatch struct {
	Name     string
	Location string
	Time     time.Time
	EvalLink string
}

func (p EventPatch) Empty() bool {
	return p.Name == "" && p.Location == "" && p.Time.IsZero() && p.EvalLink == ""
}
