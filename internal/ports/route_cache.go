package ports

import (
	"context"
	"relocation-route-service/internal/domain"
)

// Optional store for routes previously returned by a RouteProvider.
type RouteCache interface {
	// Return the cached route, reporting false on a miss.
	Get(ctx context.Context, origin, destination domain.Coordinates) (domain.RouteInfo, bool, error)
	Put(ctx context.Context, origin, destination domain.Coordinates, route domain.RouteInfo) error
}
