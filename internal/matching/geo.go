package matching

import "math"

const earthRadiusKm = 6371

// Distance returns the great-circle distance between two coordinates
// in kilometers using the Haversine formula. When either coordinate is
// unknown it returns +Inf; callers must treat that as "unscoreable",
// never as zero distance.
func Distance(a, b *Coordinate) float64 {
	if a == nil || b == nil {
		return math.Inf(1)
	}

	dLat := toRad(b.Lat - a.Lat)
	dLng := toRad(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

func toRad(degrees float64) float64 {
	return degrees * (math.Pi / 180)
}
