package dto

import (
	"relocation-route-service/internal/domain"
	"relocation-route-service/internal/format"
	"relocation-route-service/internal/services"
	"relocation-route-service/internal/spatial"
)

// Coordinates travel as [lon, lat] pairs.
type RouteBatchRequest struct {
	Origin       []float64   `json:"origin" validate:"required,lonlat"`
	Destinations [][]float64 `json:"destinations" validate:"max=100,dive,lonlat"`
}

type RouteResponse struct {
	DistanceMeters     float64     `json:"distance_meters"`
	DurationSeconds    float64     `json:"duration_seconds"`
	Distance           string      `json:"distance"`
	Duration           string      `json:"duration"`
	StraightLineMeters float64     `json:"straight_line_meters"`
	GeometryMeters     float64     `json:"geometry_meters"`
	Source             string      `json:"source"`
	Geometry           [][]float64 `json:"geometry"`
}

type RouteBatchResponse struct {
	Routes []RouteResponse `json:"routes"`
}

func NewRouteResponse(origin, destination domain.Coordinates, r services.ResolvedRoute) RouteResponse {
	return RouteResponse{
		DistanceMeters:     r.Route.DistanceMeters,
		DurationSeconds:    r.Route.DurationSeconds,
		Distance:           format.Distance(r.Route.DistanceMeters),
		Duration:           format.Duration(r.Route.DurationSeconds),
		StraightLineMeters: spatial.StraightLineMeters(origin, destination),
		GeometryMeters:     spatial.PolylineMeters(r.Route.Geometry),
		Source:             string(r.Source),
		Geometry:           geometryToList(r.Route.Geometry),
	}
}

func geometryToList(points []domain.Coordinates) [][]float64 {
	out := make([][]float64, len(points))
	for i, p := range points {
		out[i] = p.CoordsToList()
	}
	return out
}
