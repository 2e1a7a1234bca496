package domain

import "time"

// Timestamps holds the creation and last-modification instants of a stored record.
type Timestamps struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}
