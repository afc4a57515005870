package models

import "time"

// Settings holds per-user calendar preferences.
type Settings struct {
	UserID       string    `db:"user_id" json:"user_id"`
	WeekStartsOn Weekday   `db:"week_starts_on" json:"week_starts_on"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
