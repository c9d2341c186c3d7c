package domain

// Where a candidate's route data came from.
type RouteSource string

const (
	RouteSourceNone        RouteSource = ""
	RouteSourceLive        RouteSource = "live"
	RouteSourceCache       RouteSource = "cache"
	RouteSourceSynthetic   RouteSource = "synthetic"
	RouteSourcePlaceholder RouteSource = "placeholder"
)

// Precise reports whether the route came from a routing service rather than
// built-in estimates.
func (s RouteSource) Precise() bool {
	return s == RouteSourceLive || s == RouteSourceCache
}

// Represents a replacement site under evaluation.
// Route is nil while routes are resolving, and stays nil when the whole
// resolution batch failed. A candidate without a route is still displayable.
type Candidate struct {
	Location
	Route  *RouteInfo
	Source RouteSource
}

// Build an unresolved candidate list from locations, preserving order.
func NewCandidates(locations []Location) []Candidate {
	out := make([]Candidate, len(locations))
	for i, loc := range locations {
		out[i] = Candidate{Location: loc}
	}
	return out
}

// Attach a resolved route to the candidate.
func (c *Candidate) Resolve(route RouteInfo, source RouteSource) {
	r := route.Clone()
	c.Route = &r
	c.Source = source
}

// Return a deep copy of the candidate list.
func CloneCandidates(in []Candidate) []Candidate {
	if in == nil {
		return nil
	}

	out := make([]Candidate, len(in))
	for i, c := range in {
		out[i] = Candidate{Location: c.Location, Source: c.Source}
		if c.Route != nil {
			r := c.Route.Clone()
			out[i].Route = &r
		}
	}
	return out
}
