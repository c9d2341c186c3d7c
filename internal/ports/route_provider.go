package ports

import (
	"context"
	"relocation-route-service/internal/domain"
)

// Outcome of a single routing call: either a route or the reason there is none.
// Exactly one of Route and Err is meaningful; Ok reports which.
type RouteResult struct {
	Route domain.RouteInfo
	Err   error
}

func RouteOK(route domain.RouteInfo) RouteResult { return RouteResult{Route: route} }

func RouteErr(err error) RouteResult { return RouteResult{Err: err} }

func (r RouteResult) Ok() bool { return r.Err == nil }

// Contract for retrieving a driving route between two coordinates.
type RouteProvider interface {
	// Return the route from origin to destination. Implementations report
	// every failure through RouteResult.Err and never panic.
	Route(ctx context.Context, origin, destination domain.Coordinates) RouteResult
}
