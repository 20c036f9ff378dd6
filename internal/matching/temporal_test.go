package matching

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeScore(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	days := func(d float64) time.Time {
		return now.Add(time.Duration(d * 24 * float64(time.Hour)))
	}

	cases := []struct {
		name      string
		daysUntil float64
		want      float64
	}{
		{"past activity", -1, 0},
		{"happening right now", 0, 50},
		{"tomorrow ramps to 75", 1, 75},
		{"window start", 2, 100},
		{"sweet spot", 7, 100},
		{"window end", 14, 100},
		{"decay after the window", 20, 70},
		{"decay floors at zero", 34, 0},
		{"far future stays at zero", 60, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, TimeScore(days(tc.daysUntil), now), 1e-9)
		})
	}
}
