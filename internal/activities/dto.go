package activities

import "time"

// CreateActivityDTO is the creation payload. The date must be in the
// future; the service checks that since validator tags cannot.
type CreateActivityDTO struct {
	Title           string    `json:"title" validate:"required,min=3,max=100"`
	Description     string    `json:"description" validate:"required,min=10,max=1000"`
	Category        string    `json:"category" validate:"required,oneof=Sports Music Arts Food Gaming Study Travel Social Other"`
	Interests       []string  `json:"interests,omitempty" validate:"omitempty,max=10,dive,min=1,max=50"`
	Date            time.Time `json:"date" validate:"required"`
	Latitude        *float64  `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude       *float64  `json:"longitude,omitempty" validate:"omitempty,longitude"`
	MaxParticipants int       `json:"max_participants,omitempty" validate:"omitempty,min=2,max=100"`
}

// UpdateActivityDTO carries the editable fields; everything outside
// this allow-list is ignored. Nil means "leave unchanged".
type UpdateActivityDTO struct {
	Title           *string    `json:"title,omitempty" validate:"omitempty,min=3,max=100"`
	Description     *string    `json:"description,omitempty" validate:"omitempty,min=10,max=1000"`
	Category        *string    `json:"category,omitempty" validate:"omitempty,oneof=Sports Music Arts Food Gaming Study Travel Social Other"`
	Interests       []string   `json:"interests,omitempty" validate:"omitempty,max=10,dive,min=1,max=50"`
	Date            *time.Time `json:"date,omitempty"`
	Latitude        *float64   `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude       *float64   `json:"longitude,omitempty" validate:"omitempty,longitude"`
	MaxParticipants *int       `json:"max_participants,omitempty" validate:"omitempty,min=2,max=100"`
	Status          *string    `json:"status,omitempty" validate:"omitempty,oneof=upcoming ongoing completed cancelled"`
}

// ListFilters narrows a creator's activity listing.
type ListFilters struct {
	Status string // empty means all
	Sort   string // "date", "oldest", default newest first
}
