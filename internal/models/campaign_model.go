package models

import (
	"time"

	"cloud.google.com/go/civil"
)

// Campaign is a marketing initiative active over an inclusive date window.
type Campaign struct {
	ID          string     `db:"id" json:"id"`
	Name        string     `db:"name" json:"name"`
	StartDate   civil.Date `db:"start_date" json:"start_date"`
	EndDate     civil.Date `db:"end_date" json:"end_date"`
	Color       string     `db:"color" json:"color"`
	Description string     `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// Covers reports whether d falls inside the campaign window.
func (c *Campaign) Covers(d civil.Date) bool {
	return !d.Before(c.StartDate) && !d.After(c.EndDate)
}

// Overlaps reports whether the campaign window intersects [from, to].
func (c *Campaign) Overlaps(from, to civil.Date) bool {
	return !c.EndDate.Before(from) && !c.StartDate.After(to)
}
