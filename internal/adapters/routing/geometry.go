package routing

import (
	"fmt"
	"relocation-route-service/internal/domain"
)

// GeoJSON LineString as returned by OSRM (geometries=geojson) and ORS.
type lineString struct {
	Type        string      `json:"type"`
	Coordinates [][]float64 `json:"coordinates"`
}

// toRoute converts raw provider metrics into a validated RouteInfo.
func toRoute(distance, duration float64, geom lineString) (domain.RouteInfo, error) {
	points := make([]domain.Coordinates, 0, len(geom.Coordinates))
	for i, pair := range geom.Coordinates {
		c, err := domain.CoordsFromList(pair)
		if err != nil {
			return domain.RouteInfo{}, fmt.Errorf("%w: geometry point %d: %v", ErrMalformedRoute, i, err)
		}
		points = append(points, c)
	}

	route := domain.RouteInfo{
		DistanceMeters:  distance,
		DurationSeconds: duration,
		Geometry:        points,
	}
	if err := route.Validate(); err != nil {
		return domain.RouteInfo{}, fmt.Errorf("%w: %v", ErrMalformedRoute, err)
	}

	return route, nil
}
