package users

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/lib/pq"

	"github.com/gathrhq/gathr-backend/internal/matching"
)

// User is the persisted user record, including the questionnaire
// answers the matcher consumes.
type User struct {
	ID                     int64          `json:"id" db:"id"`
	Username               string         `json:"username" db:"username"`
	Email                  string         `json:"email" db:"email"`
	DisplayName            string         `json:"display_name" db:"display_name"`
	Bio                    *string        `json:"bio,omitempty" db:"bio"`
	Latitude               *float64       `json:"latitude,omitempty" db:"latitude"`
	Longitude              *float64       `json:"longitude,omitempty" db:"longitude"`
	Interests              pq.StringArray `json:"interests" db:"interests"`
	Preferences            *Preferences   `json:"preferences,omitempty" db:"preferences"`
	QuestionnaireCompleted bool           `json:"questionnaire_completed" db:"questionnaire_completed"`
	CreatedAt              time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt              time.Time      `json:"updated_at" db:"updated_at"`

	// Loaded from activity_participants, not a users column
	JoinedActivityIDs []int64 `json:"joined_activity_ids,omitempty" db:"-"`
}

// Preferences is the questionnaire profile, stored as JSONB.
type Preferences matching.Preferences

// Scan implements sql.Scanner for Preferences
func (p *Preferences) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	if bytes, ok := value.([]byte); ok {
		return json.Unmarshal(bytes, p)
	}
	return nil
}

// Value implements driver.Valuer for Preferences
func (p Preferences) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// ToMatching converts the record into the matcher's read-only view.
func (u *User) ToMatching() *matching.User {
	var location *matching.Coordinate
	if u.Latitude != nil && u.Longitude != nil {
		location = &matching.Coordinate{Lat: *u.Latitude, Lng: *u.Longitude}
	}

	var prefs *matching.Preferences
	if u.Preferences != nil {
		p := matching.Preferences(*u.Preferences)
		prefs = &p
	}

	return &matching.User{
		ID:                u.ID,
		Interests:         []string(u.Interests),
		Location:          location,
		Preferences:       prefs,
		JoinedActivityIDs: u.JoinedActivityIDs,
	}
}
