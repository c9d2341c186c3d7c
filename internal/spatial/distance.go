package spatial

import (
	"relocation-route-service/internal/domain"

	"github.com/golang/geo/s2"
)

// Mean Earth radius used for great-circle distances.
const EarthRadiusMeters = 6371008.8

// StraightLineMeters returns the great-circle distance between a and b.
func StraightLineMeters(a, b domain.Coordinates) float64 {
	p1 := s2.LatLngFromDegrees(a.Lat, a.Lon)
	p2 := s2.LatLngFromDegrees(b.Lat, b.Lon)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// PolylineMeters returns the great-circle length of a route geometry.
func PolylineMeters(points []domain.Coordinates) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += StraightLineMeters(points[i-1], points[i])
	}
	return total
}
