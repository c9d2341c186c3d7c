package routing

import (
	"context"
	"fmt"
	"relocation-route-service/internal/domain"
	"relocation-route-service/internal/ports"
	"sync/atomic"
)

// StaticRoute is one destination served by StaticRouteProvider.
type StaticRoute struct {
	Destination domain.Coordinates
	Route       domain.RouteInfo
}

// StaticRouteProvider serves fixed routes keyed by exact destination and
// fails for every other destination. It ignores the origin.
type StaticRouteProvider struct {
	m     map[domain.Coordinates]domain.RouteInfo
	calls atomic.Int64
}

func NewStaticRouteProvider(routes []StaticRoute) *StaticRouteProvider {
	m := make(map[domain.Coordinates]domain.RouteInfo, len(routes))
	for _, r := range routes {
		m[r.Destination] = r.Route
	}
	return &StaticRouteProvider{m: m}
}

func (p *StaticRouteProvider) Route(ctx context.Context, origin, destination domain.Coordinates) ports.RouteResult {
	p.calls.Add(1)

	if err := ctx.Err(); err != nil {
		return ports.RouteErr(err)
	}

	r, ok := p.m[destination]
	if !ok {
		return ports.RouteErr(fmt.Errorf("missing route %s -> %s: %w", origin, destination, ErrNoRoute))
	}

	return ports.RouteOK(r.Clone())
}

// Calls returns how many times Route has been invoked.
func (p *StaticRouteProvider) Calls() int64 { return p.calls.Load() }
