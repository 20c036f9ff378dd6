package matching

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Ranking mixes interests and preferences 60/40.
const (
	weightInterestPct   = 0.6
	weightPreferencePct = 0.4
)

// A candidate is admitted when either threshold passes; the two axes
// are independent on purpose so users without interests can still
// match on questionnaire answers.
const admitPreferenceScore = 60

// MatchOptions controls user-to-user matching.
type MatchOptions struct {
	Limit      int
	MinOverlap int
}

// DefaultMatchOptions returns the standard matcher settings.
func DefaultMatchOptions() MatchOptions {
	return MatchOptions{
		Limit:      10,
		MinOverlap: 1,
	}
}

func (o MatchOptions) validate() error {
	if o.Limit < 0 {
		return fmt.Errorf("%w: limit must not be negative, got %d", ErrInvalidOptions, o.Limit)
	}
	if o.MinOverlap < 0 {
		return fmt.Errorf("%w: min overlap must not be negative, got %d", ErrInvalidOptions, o.MinOverlap)
	}
	return nil
}

// MatchUsers ranks candidate users against a reference user by a
// combined interest/preference percentage. A candidate is admitted by
// sharing at least MinOverlap interests OR by a preference score of 60
// and above. The reference user is never part of the output.
func MatchUsers(reference *User, candidates []*User, opts MatchOptions) ([]*UserMatch, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	matches := make([]*UserMatch, 0, len(candidates))

	for _, candidate := range candidates {
		if candidate.ID == reference.ID {
			continue
		}

		overlap := InterestOverlap(reference.Interests, candidate.Interests)
		preferenceScore := PreferenceCompatibility(reference.Preferences, candidate.Preferences)

		if overlap.TotalMatches < opts.MinOverlap && preferenceScore < admitPreferenceScore {
			continue
		}

		combined := int(math.Round(float64(overlap.Percentage)*weightInterestPct +
			float64(preferenceScore)*weightPreferencePct))

		matches = append(matches, &UserMatch{
			User:               candidate,
			SharedInterests:    overlap.MatchedInterests,
			TotalMatches:       overlap.TotalMatches,
			InterestPercentage: overlap.Percentage,
			PreferenceScore:    preferenceScore,
			CombinedPercentage: combined,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].CombinedPercentage > matches[j].CombinedPercentage
	})

	if len(matches) > opts.Limit {
		matches = matches[:opts.Limit]
	}

	return matches, nil
}

// ExplainMatch builds the human-readable reasons two users were
// matched. It reuses the primitive scores; nothing new is computed.
func ExplainMatch(a, b *User) *MatchExplanation {
	overlap := InterestOverlap(a.Interests, b.Interests)
	preferenceScore := PreferenceCompatibility(a.Preferences, b.Preferences)

	overall := int(math.Round(float64(overlap.Percentage)*weightInterestPct +
		float64(preferenceScore)*weightPreferencePct))

	explanation := &MatchExplanation{
		OverallMatch: overall,
		Label:        CompatibilityLabel(overall),
		Reasons:      []MatchReason{},
	}

	if overlap.TotalMatches > 0 {
		details := overlap.MatchedInterests
		if len(details) > 5 {
			details = details[:5]
		}
		explanation.Reasons = append(explanation.Reasons, MatchReason{
			Type:    "interests",
			Message: fmt.Sprintf("You share %d interests", overlap.TotalMatches),
			Details: details,
		})
	}

	if a.Preferences != nil && b.Preferences != nil {
		if a.Preferences.SocialStyle != "" && a.Preferences.SocialStyle == b.Preferences.SocialStyle {
			explanation.Reasons = append(explanation.Reasons, MatchReason{
				Type:    "social",
				Message: fmt.Sprintf("Both prefer %s settings", a.Preferences.SocialStyle),
			})
		}

		if a.Preferences.ActivityLevel != "" && a.Preferences.ActivityLevel == b.Preferences.ActivityLevel {
			explanation.Reasons = append(explanation.Reasons, MatchReason{
				Type:    "activity",
				Message: fmt.Sprintf("Similar activity levels: %s", prettyLevel(a.Preferences.ActivityLevel)),
			})
		}

		if a.Preferences.TimePreference != "" && b.Preferences.TimePreference != "" {
			if a.Preferences.TimePreference == b.Preferences.TimePreference ||
				a.Preferences.TimePreference == "flexible" ||
				b.Preferences.TimePreference == "flexible" {
				explanation.Reasons = append(explanation.Reasons, MatchReason{
					Type:    "timing",
					Message: "Compatible availability",
				})
			}
		}
	}

	return explanation
}

// CompatibilityLabel maps a combined percentage to its display band.
func CompatibilityLabel(percentage int) string {
	switch {
	case percentage >= 80:
		return "Excellent Match"
	case percentage >= 60:
		return "Great Match"
	case percentage >= 40:
		return "Good Match"
	case percentage >= 20:
		return "Moderate Match"
	default:
		return "Some Common Interests"
	}
}

func prettyLevel(level string) string {
	return strings.ReplaceAll(level, "_", " ")
}
