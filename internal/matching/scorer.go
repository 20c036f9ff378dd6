package matching

import (
	"math"
	"time"
)

// Weights for the per-activity score. They sum to 1.0.
const (
	weightInterests  = 0.45
	weightDistance   = 0.25
	weightTime       = 0.15
	weightPopularity = 0.10
	weightRecency    = 0.05
)

// defaultMaxParticipants is assumed when an activity has no capacity set.
const defaultMaxParticipants = 20

// ScoreActivity rates an activity for a user at a given instant. It is
// a pure function: same inputs and the same "now" always produce the
// same breakdown. Missing optional fields degrade to worst-case
// sub-scores instead of raising errors.
func ScoreActivity(user *User, activity *Activity, now time.Time) *ScoreBreakdown {
	// 1. Interests (45% weight), clamped at 100
	overlap := InterestOverlap(user.Interests, activity.Interests)
	interestScore := math.Min(100, float64(overlap.Score))

	// 2. Distance (25% weight): 2 points per km, so anything beyond
	// 50 km scores 0. Unknown distance also scores 0.
	distanceKm := Distance(user.Location, activity.Location)
	distanceScore := 0.0
	if !math.IsInf(distanceKm, 1) {
		distanceScore = math.Max(0, 100-distanceKm*2)
	}

	// 3. Temporal relevance (15% weight)
	timeScore := TimeScore(activity.Date, now)

	// 4. Popularity (10% weight): 150x the fill ratio, clamped, so a
	// half-full activity already scores 75
	maxParticipants := activity.MaxParticipants
	if maxParticipants <= 0 {
		maxParticipants = defaultMaxParticipants
	}
	popularityScore := math.Min(100, float64(len(activity.ParticipantIDs))/float64(maxParticipants)*150)

	// 5. Recency (5% weight): 10 points lost per day since creation
	daysOld := now.Sub(activity.CreatedAt).Hours() / hoursPerDay
	recencyScore := math.Max(0, 100-daysOld*10)

	totalScore := interestScore*weightInterests +
		distanceScore*weightDistance +
		timeScore*weightTime +
		popularityScore*weightPopularity +
		recencyScore*weightRecency

	reportedDistance := -1.0
	if !math.IsInf(distanceKm, 1) {
		reportedDistance = math.Round(distanceKm*10) / 10
	}

	daysUntil := activity.Date.Sub(now).Hours() / hoursPerDay

	return &ScoreBreakdown{
		InterestScore:    int(math.Round(interestScore)),
		DistanceScore:    int(math.Round(distanceScore)),
		TimeScore:        int(math.Round(timeScore)),
		PopularityScore:  int(math.Round(popularityScore)),
		RecencyScore:     int(math.Round(recencyScore)),
		TotalScore:       int(math.Round(totalScore)),
		MatchedInterests: overlap.MatchedInterests,
		DistanceKm:       reportedDistance,
		DaysUntil:        int(math.Round(daysUntil)),
	}
}
