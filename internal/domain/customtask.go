package domain

import "time"

// CustomTask is an ad-hoc timeline entry with no duration model of its
// own; unset dates default to a short window after the order date.
type CustomTask struct {
	ID        string
	ProjectID string
	Name      string
	StartDate *time.Time
	EndDate   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
