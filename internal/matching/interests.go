package matching

import (
	"math"
	"strings"
)

// normalizeInterests lowercases and trims every interest and drops
// duplicates, preserving first-appearance order. Blank entries are
// skipped.
func normalizeInterests(interests []string) []string {
	seen := make(map[string]bool, len(interests))
	normalized := make([]string, 0, len(interests))

	for _, interest := range interests {
		key := strings.ToLower(strings.TrimSpace(interest))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		normalized = append(normalized, key)
	}

	return normalized
}

// InterestOverlap computes the set-similarity between a reference
// interest list and a candidate interest list. Matching is
// case-insensitive and whitespace-insensitive; duplicates collapse.
//
// The percentage is relative to the reference set, and the score
// weights both the match count and the percentage:
//
//	score = 10*matches + percentage
//
// Empty or absent input on either side yields the zero Overlap. That
// is a deliberate neutral floor, not an error.
func InterestOverlap(reference, candidate []string) Overlap {
	if len(reference) == 0 || len(candidate) == 0 {
		return Overlap{MatchedInterests: []string{}}
	}

	refSet := normalizeInterests(reference)
	candSet := normalizeInterests(candidate)

	inCandidate := make(map[string]bool, len(candSet))
	for _, interest := range candSet {
		inCandidate[interest] = true
	}

	matched := []string{}
	for _, interest := range refSet {
		if inCandidate[interest] {
			matched = append(matched, interest)
		}
	}

	percentage := 0.0
	if len(refSet) > 0 {
		percentage = float64(len(matched)) / float64(len(refSet)) * 100
	}

	score := float64(len(matched))*10 + percentage

	return Overlap{
		Score:            int(math.Round(score)),
		MatchedInterests: matched,
		Percentage:       int(math.Round(percentage)),
		TotalMatches:     len(matched),
	}
}
