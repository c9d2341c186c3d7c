package services

import "relocation-route-service/internal/domain"

// MatchTolerance is the per-axis tolerance, in degrees, for matching a
// destination against a synthetic route. The bound is inclusive.
const MatchTolerance = 0.01

// Placeholder estimate used when no synthetic route matches.
const (
	PlaceholderDistanceMeters  = 3000
	PlaceholderDurationSeconds = 600
)

// FallbackResolver serves precomputed routes when the routing service fails.
// The table is fixed at construction and only read afterwards, so a resolver
// is safe for concurrent use.
type FallbackResolver struct {
	entries []SyntheticRoute
}

// NewFallbackResolver builds a resolver over entries, scanned in the given order.
func NewFallbackResolver(entries []SyntheticRoute) *FallbackResolver {
	return &FallbackResolver{entries: cloneSyntheticRoutes(entries)}
}

// NewDefaultFallbackResolver builds a resolver over the built-in table.
func NewDefaultFallbackResolver() *FallbackResolver {
	return NewFallbackResolver(builtinSyntheticRoutes)
}

// Match returns the first entry within MatchTolerance of destination on both axes.
func (f *FallbackResolver) Match(destination domain.Coordinates) (SyntheticRoute, bool) {
	for _, e := range f.entries {
		if e.Destination.Within(destination, MatchTolerance) {
			return SyntheticRoute{Name: e.Name, Destination: e.Destination, Route: e.Route.Clone()}, true
		}
	}
	return SyntheticRoute{}, false
}

// ResolveFallback always returns a usable route: the matching synthetic route,
// or a placeholder estimate whose geometry is [destination, destination].
func (f *FallbackResolver) ResolveFallback(destination domain.Coordinates) domain.RouteInfo {
	route, _ := f.Resolve(destination)
	return route
}

// Resolve is ResolveFallback that also reports where the route came from.
func (f *FallbackResolver) Resolve(destination domain.Coordinates) (domain.RouteInfo, domain.RouteSource) {
	if e, ok := f.Match(destination); ok {
		return e.Route, domain.RouteSourceSynthetic
	}

	return domain.RouteInfo{
		DistanceMeters:  PlaceholderDistanceMeters,
		DurationSeconds: PlaceholderDurationSeconds,
		Geometry:        []domain.Coordinates{destination, destination},
	}, domain.RouteSourcePlaceholder
}
