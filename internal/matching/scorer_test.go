package matching

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreActivity(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("worst case except timing and recency scores 20", func(t *testing.T) {
		user := &User{ID: 1}
		activity := &Activity{
			ID:        10,
			Date:      now.Add(7 * 24 * time.Hour),
			CreatedAt: now,
		}

		breakdown := ScoreActivity(user, activity, now)

		// 0*0.45 + 0*0.25 + 100*0.15 + 0*0.10 + 100*0.05 = 20
		assert.Equal(t, 20, breakdown.TotalScore)
		assert.Equal(t, 0, breakdown.InterestScore)
		assert.Equal(t, 0, breakdown.DistanceScore)
		assert.Equal(t, 100, breakdown.TimeScore)
		assert.Equal(t, 0, breakdown.PopularityScore)
		assert.Equal(t, 100, breakdown.RecencyScore)
		assert.Equal(t, -1.0, breakdown.DistanceKm)
		assert.Equal(t, 7, breakdown.DaysUntil)
	})

	t.Run("idempotent for a fixed now", func(t *testing.T) {
		user := &User{
			ID:        1,
			Interests: []string{"hiking", "yoga"},
			Location:  &Coordinate{Lat: 1.3521, Lng: 103.8198},
		}
		activity := &Activity{
			ID:              10,
			Interests:       []string{"yoga", "meditation"},
			Date:            now.Add(5 * 24 * time.Hour),
			Location:        &Coordinate{Lat: 1.3000, Lng: 103.8000},
			MaxParticipants: 10,
			ParticipantIDs:  []int64{2, 3, 4},
			CreatedAt:       now.Add(-2 * 24 * time.Hour),
		}

		first := ScoreActivity(user, activity, now)
		second := ScoreActivity(user, activity, now)

		assert.Equal(t, first, second)
	})

	t.Run("interest score clamps at 100", func(t *testing.T) {
		interests := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
		user := &User{ID: 1, Interests: interests}
		activity := &Activity{
			ID:        10,
			Interests: interests, // overlap score 10*10 + 100 = 200 pre-clamp
			Date:      now.Add(7 * 24 * time.Hour),
			CreatedAt: now,
		}

		breakdown := ScoreActivity(user, activity, now)
		assert.Equal(t, 100, breakdown.InterestScore)
	})

	t.Run("distance penalty is 2 points per km", func(t *testing.T) {
		user := &User{ID: 1, Location: &Coordinate{Lat: 1.3521, Lng: 103.8198}}
		activity := &Activity{
			ID:        10,
			Location:  &Coordinate{Lat: 1.3000, Lng: 103.8000}, // ~6.2 km
			Date:      now.Add(7 * 24 * time.Hour),
			CreatedAt: now,
		}

		breakdown := ScoreActivity(user, activity, now)
		assert.InDelta(t, 88, breakdown.DistanceScore, 1)
		assert.InDelta(t, 6.2, breakdown.DistanceKm, 0.1)
	})

	t.Run("activities beyond 50 km score zero on distance", func(t *testing.T) {
		user := &User{ID: 1, Location: &Coordinate{Lat: 1.3521, Lng: 103.8198}}
		activity := &Activity{
			ID:        10,
			Location:  &Coordinate{Lat: 3.1390, Lng: 101.6869}, // Kuala Lumpur, ~300 km
			Date:      now.Add(7 * 24 * time.Hour),
			CreatedAt: now,
		}

		breakdown := ScoreActivity(user, activity, now)
		assert.Equal(t, 0, breakdown.DistanceScore)
	})

	t.Run("popularity rewards momentum and clamps", func(t *testing.T) {
		user := &User{ID: 1}
		activity := &Activity{
			ID:              10,
			Date:            now.Add(7 * 24 * time.Hour),
			CreatedAt:       now,
			MaxParticipants: 10,
			ParticipantIDs:  []int64{2, 3, 4, 5, 6},
		}

		// half full -> 150 * 0.5 = 75
		breakdown := ScoreActivity(user, activity, now)
		assert.Equal(t, 75, breakdown.PopularityScore)

		activity.ParticipantIDs = []int64{2, 3, 4, 5, 6, 7, 8}
		breakdown = ScoreActivity(user, activity, now)
		assert.Equal(t, 100, breakdown.PopularityScore)
	})

	t.Run("capacity defaults to 20 when unset", func(t *testing.T) {
		user := &User{ID: 1}
		activity := &Activity{
			ID:             10,
			Date:           now.Add(7 * 24 * time.Hour),
			CreatedAt:      now,
			ParticipantIDs: []int64{2, 3, 4, 5, 6, 7, 8, 9, 10, 11}, // 10 of 20
		}

		breakdown := ScoreActivity(user, activity, now)
		assert.Equal(t, 75, breakdown.PopularityScore)
	})

	t.Run("recency fades 10 points per day", func(t *testing.T) {
		user := &User{ID: 1}
		activity := &Activity{
			ID:        10,
			Date:      now.Add(7 * 24 * time.Hour),
			CreatedAt: now.Add(-3 * 24 * time.Hour),
		}

		breakdown := ScoreActivity(user, activity, now)
		assert.Equal(t, 70, breakdown.RecencyScore)

		activity.CreatedAt = now.Add(-15 * 24 * time.Hour)
		breakdown = ScoreActivity(user, activity, now)
		assert.Equal(t, 0, breakdown.RecencyScore)
	})

	t.Run("matched interests surface in the breakdown", func(t *testing.T) {
		user := &User{ID: 1, Interests: []string{"Hiking", "yoga"}}
		activity := &Activity{
			ID:        10,
			Interests: []string{"hiking", "climbing"},
			Date:      now.Add(7 * 24 * time.Hour),
			CreatedAt: now,
		}

		breakdown := ScoreActivity(user, activity, now)
		require.Len(t, breakdown.MatchedInterests, 1)
		assert.Equal(t, "hiking", breakdown.MatchedInterests[0])
	})
}
