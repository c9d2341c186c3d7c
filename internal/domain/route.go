package domain

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidRoute = errors.New("invalid route")

// Represents a resolved travel route between an origin and a destination.
// Geometry is an ordered polyline from origin to destination with at least
// two points. RouteInfo is immutable planning data: holders must not modify
// the Geometry slice, and shared values are handed out via Clone.
type RouteInfo struct {
	DistanceMeters  float64
	DurationSeconds float64
	Geometry        []Coordinates
}

// Validate enforces the route invariants: non-negative finite metrics and a
// polyline of at least two valid points.
func (r RouteInfo) Validate() error {
	if math.IsNaN(r.DistanceMeters) || math.IsInf(r.DistanceMeters, 0) || r.DistanceMeters < 0 {
		return fmt.Errorf("%w: distance %v must be a non-negative number", ErrInvalidRoute, r.DistanceMeters)
	}
	if math.IsNaN(r.DurationSeconds) || math.IsInf(r.DurationSeconds, 0) || r.DurationSeconds < 0 {
		return fmt.Errorf("%w: duration %v must be a non-negative number", ErrInvalidRoute, r.DurationSeconds)
	}
	if len(r.Geometry) < 2 {
		return fmt.Errorf("%w: geometry needs at least 2 points, got %d", ErrInvalidRoute, len(r.Geometry))
	}
	for i, c := range r.Geometry {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("%w: geometry point %d: %v", ErrInvalidRoute, i, err)
		}
	}

	return nil
}

// Clone returns a copy that shares no memory with r.
func (r RouteInfo) Clone() RouteInfo {
	geom := make([]Coordinates, len(r.Geometry))
	copy(geom, r.Geometry)
	return RouteInfo{
		DistanceMeters:  r.DistanceMeters,
		DurationSeconds: r.DurationSeconds,
		Geometry:        geom,
	}
}

// Start returns the first geometry point.
func (r RouteInfo) Start() Coordinates {
	if len(r.Geometry) == 0 {
		return Coordinates{}
	}
	return r.Geometry[0]
}

// End returns the last geometry point.
func (r RouteInfo) End() Coordinates {
	if len(r.Geometry) == 0 {
		return Coordinates{}
	}
	return r.Geometry[len(r.Geometry)-1]
}
