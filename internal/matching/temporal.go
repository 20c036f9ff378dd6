package matching

import "time"

const hoursPerDay = 24

// TimeScore rates how well an activity's date fits a "soon but not too
// soon" window, on a 0-100 scale. The curve is piecewise linear:
//
//	daysUntil < 0          -> 0 (already happened)
//	0 <= daysUntil < 2     -> ramp from 50 up to 100
//	2 <= daysUntil <= 14   -> 100 (sweet spot)
//	daysUntil > 14         -> decay by 5 per day, floored at 0
func TimeScore(activityDate, now time.Time) float64 {
	daysUntil := activityDate.Sub(now).Hours() / hoursPerDay

	switch {
	case daysUntil < 0:
		return 0
	case daysUntil >= 2 && daysUntil <= 14:
		return 100
	case daysUntil < 2:
		return 50 + (daysUntil/2)*50
	default:
		score := 100 - (daysUntil-14)*5
		if score < 0 {
			return 0
		}
		return score
	}
}
