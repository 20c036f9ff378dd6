package matching

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// ErrInvalidOptions marks option values outside their domain. Callers
// should fail fast on these rather than silently clamping.
var ErrInvalidOptions = errors.New("invalid options")

// RecommendOptions controls the activity recommendation pipeline.
type RecommendOptions struct {
	Limit         int
	MinScore      int
	ExcludeJoined bool
	ExcludePast   bool
}

// DefaultRecommendOptions returns the standard pipeline settings.
func DefaultRecommendOptions() RecommendOptions {
	return RecommendOptions{
		Limit:         20,
		MinScore:      30,
		ExcludeJoined: true,
		ExcludePast:   true,
	}
}

func (o RecommendOptions) validate() error {
	if o.Limit < 0 {
		return fmt.Errorf("%w: limit must not be negative, got %d", ErrInvalidOptions, o.Limit)
	}
	if o.MinScore < 0 || o.MinScore > 100 {
		return fmt.Errorf("%w: min score must be within [0, 100], got %d", ErrInvalidOptions, o.MinScore)
	}
	return nil
}

// RecommendActivities filters the candidate activities for a user,
// scores the survivors, and returns them ranked best-first.
//
// The pipeline is re-run on every request: scores depend on "now" and
// on live participant counts, so there is nothing worth caching.
// Candidates are never mutated.
func RecommendActivities(user *User, candidates []*Activity, now time.Time, opts RecommendOptions) ([]*RankedActivity, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	joined := make(map[int64]bool, len(user.JoinedActivityIDs))
	for _, id := range user.JoinedActivityIDs {
		joined[id] = true
	}

	// Filter stage: past, own, already joined, full
	filtered := make([]*Activity, 0, len(candidates))
	for _, activity := range candidates {
		if opts.ExcludePast && activity.Date.Before(now) {
			continue
		}
		if activity.CreatorID == user.ID {
			continue
		}
		if opts.ExcludeJoined && joined[activity.ID] {
			continue
		}
		if activity.MaxParticipants > 0 && len(activity.ParticipantIDs) >= activity.MaxParticipants {
			continue
		}
		filtered = append(filtered, activity)
	}

	// Scoring stage
	ranked := make([]*RankedActivity, 0, len(filtered))
	for _, activity := range filtered {
		breakdown := ScoreActivity(user, activity, now)
		if breakdown.TotalScore < opts.MinScore {
			continue
		}
		ranked = append(ranked, &RankedActivity{
			Activity:  activity,
			Breakdown: breakdown,
		})
	}

	// Selection stage: stable sort keeps filter order between ties
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Breakdown.TotalScore > ranked[j].Breakdown.TotalScore
	})

	if len(ranked) > opts.Limit {
		ranked = ranked[:opts.Limit]
	}

	return ranked, nil
}
