// Package geo resolves the nearest location-tagged news source for a
// client coordinate.
package geo

import (
	"math"

	"newschomp/internal/domain"
	"newschomp/internal/source"
)

const earthRadiusKM = 6371

// Match is the nearest-source lookup result.
type Match struct {
	Key        string          `json:"source_key"`
	Name       string          `json:"name"`
	Location   domain.Location `json:"location"`
	DistanceKM float64         `json:"distance_km"`
}

// Nearest returns the location-tagged source closest to the given
// coordinate by great-circle distance, or nil when no located sources are
// registered. Ties resolve to the first source in registration order.
func Nearest(reg *source.Registry, lat, lng float64) *Match {
	var best *Match
	for _, d := range reg.WithLocation() {
		dist := haversineKM(lat, lng, d.Location.Latitude, d.Location.Longitude)
		if best == nil || dist < best.DistanceKM {
			best = &Match{
				Key:        d.Key,
				Name:       d.Name,
				Location:   d.Location,
				DistanceKM: dist,
			}
		}
	}
	return best
}

// haversineKM computes the great-circle distance between two coordinates.
func haversineKM(lat1, lng1, lat2, lng2 float64) float64 {
	rad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := rad(lat2 - lat1)
	dLng := rad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(lat1))*math.Cos(rad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKM * c
}
