package activities

import (
	"time"

	"github.com/lib/pq"

	"github.com/gathrhq/gathr-backend/internal/matching"
)

// Activity statuses. New activities start as StatusUpcoming.
const (
	StatusUpcoming  = "upcoming"
	StatusOngoing   = "ongoing"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Activity is the persisted activity record. The creator is always a
// participant, and len(ParticipantIDs) never exceeds MaxParticipants;
// the repository enforces both.
type Activity struct {
	ID              int64          `json:"id" db:"id"`
	Title           string         `json:"title" db:"title"`
	Description     string         `json:"description" db:"description"`
	Category        string         `json:"category" db:"category"`
	Interests       pq.StringArray `json:"interests" db:"interests"`
	Date            time.Time      `json:"date" db:"date"`
	Latitude        *float64       `json:"latitude,omitempty" db:"latitude"`
	Longitude       *float64       `json:"longitude,omitempty" db:"longitude"`
	MaxParticipants int            `json:"max_participants" db:"max_participants"`
	CreatorID       int64          `json:"creator_id" db:"creator_id"`
	Status          string         `json:"status" db:"status"`
	CreatedAt       time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at" db:"updated_at"`

	// Loaded from activity_participants
	ParticipantIDs pq.Int64Array `json:"participant_ids" db:"participant_ids"`
}

// Stats summarizes a creator's activities.
type Stats struct {
	Total    int            `json:"total"`
	Upcoming int            `json:"upcoming"`
	ByStatus map[string]int `json:"by_status"`
}

// ToMatching converts the record into the matcher's read-only view.
func (a *Activity) ToMatching() *matching.Activity {
	var location *matching.Coordinate
	if a.Latitude != nil && a.Longitude != nil {
		location = &matching.Coordinate{Lat: *a.Latitude, Lng: *a.Longitude}
	}

	return &matching.Activity{
		ID:              a.ID,
		Title:           a.Title,
		Description:     a.Description,
		Interests:       []string(a.Interests),
		Date:            a.Date,
		Location:        location,
		MaxParticipants: a.MaxParticipants,
		ParticipantIDs:  []int64(a.ParticipantIDs),
		CreatorID:       a.CreatorID,
		CreatedAt:       a.CreatedAt,
		Status:          a.Status,
	}
}
