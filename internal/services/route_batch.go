package services

import (
	"context"
	"errors"
	"fmt"
	"relocation-route-service/internal/domain"
	"relocation-route-service/internal/platform/logging"
	"relocation-route-service/internal/platform/obs"
	"relocation-route-service/internal/ports"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// ErrBatchFailed reports a batch that could not produce a complete result.
// Provider failures never cause it; they are absorbed by the fallback.
var ErrBatchFailed = errors.New("route batch failed")

// ResolvedRoute is the route for one destination together with its provenance.
type ResolvedRoute struct {
	Route  domain.RouteInfo
	Source domain.RouteSource
}

// RouteBatchCoordinator resolves routes from one origin to many destinations
// concurrently. Each destination is tried against the provider and, on
// failure, the fallback resolver, so every index always yields a route.
type RouteBatchCoordinator struct {
	provider ports.RouteProvider
	fallback *FallbackResolver
	cache    ports.RouteCache
	limit    int
	log      *zap.Logger
}

type BatchOption func(*RouteBatchCoordinator)

// WithRouteCache consults cache before the provider and stores live results in it.
func WithRouteCache(cache ports.RouteCache) BatchOption {
	return func(c *RouteBatchCoordinator) { c.cache = cache }
}

// WithConcurrencyLimit bounds in-flight provider calls per batch. n <= 0 means unbounded.
func WithConcurrencyLimit(n int) BatchOption {
	return func(c *RouteBatchCoordinator) { c.limit = n }
}

func WithLogger(log *zap.Logger) BatchOption {
	return func(c *RouteBatchCoordinator) { c.log = log }
}

func NewRouteBatchCoordinator(
	provider ports.RouteProvider,
	fallback *FallbackResolver,
	opts ...BatchOption,
) *RouteBatchCoordinator {
	c := &RouteBatchCoordinator{
		provider: provider,
		fallback: fallback,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = logging.OrNop(c.log)

	return c
}

// ResolveBatch returns one route per destination, in input order.
//
// All destinations are resolved concurrently and the call waits for the
// slowest one. Identical destinations within a batch share a single provider
// call. On error the result is nil; no partial result is ever returned.
func (c *RouteBatchCoordinator) ResolveBatch(
	ctx context.Context,
	origin domain.Coordinates,
	destinations []domain.Coordinates,
) (_ []ResolvedRoute, err error) {
	defer obs.Time(ctx, c.log, "routes.ResolveBatch")(&err)

	if c.provider == nil || c.fallback == nil {
		return nil, fmt.Errorf("%w: coordinator is missing a provider or fallback", ErrBatchFailed)
	}

	if err := origin.Validate(); err != nil {
		return nil, fmt.Errorf("%w: origin: %w", ErrBatchFailed, err)
	}
	for i, d := range destinations {
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("%w: destination %d: %w", ErrBatchFailed, i, err)
		}
	}

	out := make([]ResolvedRoute, len(destinations))
	if len(destinations) == 0 {
		return out, nil
	}

	var g errgroup.Group
	if c.limit > 0 {
		g.SetLimit(c.limit)
	}

	var inflight singleflight.Group

	for i, dest := range destinations {
		i, dest := i, dest
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%w: destination %d (%s): panic: %v", ErrBatchFailed, i, dest, r)
				}
			}()

			v, _, _ := inflight.Do(dest.String(), func() (any, error) {
				return c.resolveOne(ctx, origin, dest), nil
			})

			// Slots never share geometry, even when the call was shared.
			r := v.(ResolvedRoute)
			out[i] = ResolvedRoute{Route: r.Route.Clone(), Source: r.Source}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// resolveOne never fails: cache, then provider, then fallback.
func (c *RouteBatchCoordinator) resolveOne(
	ctx context.Context,
	origin domain.Coordinates,
	dest domain.Coordinates,
) ResolvedRoute {
	if c.cache != nil {
		route, ok, err := c.cache.Get(ctx, origin, dest)
		switch {
		case err != nil:
			c.log.Warn("route cache read failed", zap.Stringer("destination", dest), zap.Error(err))
		case ok:
			return ResolvedRoute{Route: route, Source: domain.RouteSourceCache}
		}
	}

	res := c.provider.Route(ctx, origin, dest)
	if res.Ok() {
		if c.cache != nil {
			if err := c.cache.Put(ctx, origin, dest, res.Route); err != nil {
				c.log.Warn("route cache write failed", zap.Stringer("destination", dest), zap.Error(err))
			}
		}
		return ResolvedRoute{Route: res.Route, Source: domain.RouteSourceLive}
	}

	route, source := c.fallback.Resolve(dest)
	c.log.Warn("route provider failed, using fallback",
		zap.Stringer("origin", origin),
		zap.Stringer("destination", dest),
		zap.String("source", string(source)),
		zap.Error(res.Err),
	)

	return ResolvedRoute{Route: route, Source: source}
}
