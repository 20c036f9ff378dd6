package matching

import "time"

// Coordinate is a point on the globe. A nil *Coordinate means the
// location is unknown.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Preferences holds the questionnaire answers used for user-to-user
// compatibility. Empty fields mean the axis was not answered and is
// skipped during scoring.
type Preferences struct {
	SocialStyle        string `json:"social_style,omitempty"`
	ActivityLevel      string `json:"activity_level,omitempty"`
	BudgetLevel        string `json:"budget_level,omitempty"`
	TimePreference     string `json:"time_preference,omitempty"`
	DayPreference      string `json:"day_preference,omitempty"`
	PreferredGroupSize string `json:"preferred_group_size,omitempty"`
}

// User is the matching view of a user record. It is read-only input
// to the scoring functions; the storage layer owns the persisted row.
type User struct {
	ID                int64        `json:"id"`
	Interests         []string     `json:"interests"`
	Location          *Coordinate  `json:"location,omitempty"`
	Preferences       *Preferences `json:"preferences,omitempty"`
	JoinedActivityIDs []int64      `json:"joined_activity_ids,omitempty"`
}

// Activity is the matching view of an activity record.
type Activity struct {
	ID              int64       `json:"id"`
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	Interests       []string    `json:"interests"`
	Date            time.Time   `json:"date"`
	Location        *Coordinate `json:"location,omitempty"`
	MaxParticipants int         `json:"max_participants"`
	ParticipantIDs  []int64     `json:"participant_ids"`
	CreatorID       int64       `json:"creator_id"`
	CreatedAt       time.Time   `json:"created_at"`
	Status          string      `json:"status"`
}

// Overlap is the result of comparing two interest sets.
type Overlap struct {
	Score            int      `json:"score"`
	MatchedInterests []string `json:"matched_interests"`
	Percentage       int      `json:"percentage"`
	TotalMatches     int      `json:"total_matches"`
}

// ScoreBreakdown is the per-activity scoring result. It is computed
// fresh on every call and never persisted.
//
// DistanceKm is -1 when either location is unknown.
type ScoreBreakdown struct {
	InterestScore    int      `json:"interest_score"`
	DistanceScore    int      `json:"distance_score"`
	TimeScore        int      `json:"time_score"`
	PopularityScore  int      `json:"popularity_score"`
	RecencyScore     int      `json:"recency_score"`
	TotalScore       int      `json:"total_score"`
	MatchedInterests []string `json:"matched_interests"`
	DistanceKm       float64  `json:"distance_km"`
	DaysUntil        int      `json:"days_until"`
}

// RankedActivity pairs an activity with its score for the requesting user.
type RankedActivity struct {
	Activity  *Activity       `json:"activity"`
	Breakdown *ScoreBreakdown `json:"match_data"`
}

// UserMatch pairs a candidate user with the overlap that ranked them.
type UserMatch struct {
	User               *User    `json:"user"`
	SharedInterests    []string `json:"shared_interests"`
	TotalMatches       int      `json:"total_matches"`
	InterestPercentage int      `json:"interest_percentage"`
	PreferenceScore    int      `json:"preference_score"`
	CombinedPercentage int      `json:"combined_percentage"`
}

// MatchReason is one human-readable line of a match explanation.
type MatchReason struct {
	Type    string   `json:"type"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// MatchExplanation reports why two users were matched. It is a view
// over the same primitive scores, no new computation.
type MatchExplanation struct {
	OverallMatch int           `json:"overall_match"`
	Label        string        `json:"label"`
	Reasons      []MatchReason `json:"reasons"`
}
