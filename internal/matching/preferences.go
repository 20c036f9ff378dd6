package matching

import (
	"math"
	"sort"
	"strings"
)

// socialStyleScores encodes symmetric compatibility between social
// styles, keyed by the two values sorted lexicographically and joined
// with "-". Pairs not in the table fall back to 50.
var socialStyleScores = map[string]int{
	"extroverted-extroverted": 100,
	"introverted-introverted": 100,
	"ambivert-extroverted":    80,
	"balanced-extroverted":    75,
	"ambivert-introverted":    80,
	"balanced-introverted":    75,
	"balanced-balanced":       90,
	"ambivert-ambivert":       95,
	"extroverted-introverted": 40,
}

var activityLevels = []string{"sedentary", "lightly_active", "moderately_active", "very_active"}
var budgetLevels = []string{"low", "medium", "high", "flexible"}
var groupSizes = []string{"small", "medium", "large"}

func ordinal(levels []string, value string) int {
	for i, level := range levels {
		if level == value {
			return i
		}
	}
	return -1
}

// PreferenceCompatibility scores two preference profiles on a 0-100
// scale. Only axes present on both sides contribute; missing axes are
// skipped entirely rather than counted as neutral. An entirely absent
// profile, or no shared axes, returns the neutral midpoint 50 so
// incomplete profiles are not penalized.
func PreferenceCompatibility(a, b *Preferences) int {
	if a == nil || b == nil {
		return 50
	}

	score := 0
	factors := 0

	// Social style via the symmetric lookup table
	if a.SocialStyle != "" && b.SocialStyle != "" {
		pair := []string{a.SocialStyle, b.SocialStyle}
		sort.Strings(pair)
		key := strings.Join(pair, "-")

		if s, ok := socialStyleScores[key]; ok {
			score += s
		} else {
			score += 50
		}
		factors++
	}

	// Activity level: 30-point penalty per ordinal step apart
	if a.ActivityLevel != "" && b.ActivityLevel != "" {
		i1 := ordinal(activityLevels, a.ActivityLevel)
		i2 := ordinal(activityLevels, b.ActivityLevel)

		if i1 != -1 && i2 != -1 {
			diff := i1 - i2
			if diff < 0 {
				diff = -diff
			}
			score += maxInt(0, 100-diff*30)
			factors++
		}
	}

	// Budget: "flexible" on either side short-circuits to 90,
	// otherwise 25-point penalty per step
	if a.BudgetLevel != "" && b.BudgetLevel != "" {
		if a.BudgetLevel == "flexible" || b.BudgetLevel == "flexible" {
			score += 90
		} else {
			i1 := ordinal(budgetLevels, a.BudgetLevel)
			i2 := ordinal(budgetLevels, b.BudgetLevel)

			if i1 != -1 && i2 != -1 {
				diff := i1 - i2
				if diff < 0 {
					diff = -diff
				}
				score += maxInt(0, 100-diff*25)
			}
		}
		factors++
	}

	// Time of day: equal or flexible is a full match, else partial credit
	if a.TimePreference != "" && b.TimePreference != "" {
		if a.TimePreference == b.TimePreference ||
			a.TimePreference == "flexible" ||
			b.TimePreference == "flexible" {
			score += 100
		} else {
			score += 60
		}
		factors++
	}

	// Day of week: equal or "both" is a full match, else partial credit
	if a.DayPreference != "" && b.DayPreference != "" {
		if a.DayPreference == b.DayPreference ||
			a.DayPreference == "both" ||
			b.DayPreference == "both" {
			score += 100
		} else {
			score += 50
		}
		factors++
	}

	// Group size: 25-point penalty per bucket apart
	if a.PreferredGroupSize != "" && b.PreferredGroupSize != "" {
		i1 := ordinal(groupSizes, a.PreferredGroupSize)
		i2 := ordinal(groupSizes, b.PreferredGroupSize)

		if i1 != -1 && i2 != -1 {
			diff := i1 - i2
			if diff < 0 {
				diff = -diff
			}
			score += maxInt(0, 100-diff*25)
			factors++
		}
	}

	if factors == 0 {
		return 50
	}

	return int(math.Round(float64(score) / float64(factors)))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
