package services

import "relocation-route-service/internal/domain"

// SyntheticRoute is a precomputed route served when the routing service is
// unavailable. Destination is the approximate coordinate lookups match against.
type SyntheticRoute struct {
	Name        string
	Destination domain.Coordinates
	Route       domain.RouteInfo
}

func line(points ...[2]float64) []domain.Coordinates {
	out := make([]domain.Coordinates, len(points))
	for i, p := range points {
		out[i] = domain.Coordinates{Lon: p[0], Lat: p[1]}
	}
	return out
}

func synthetic(name string, meters, seconds float64, points ...[2]float64) SyntheticRoute {
	geom := line(points...)
	return SyntheticRoute{
		Name:        name,
		Destination: geom[len(geom)-1],
		Route: domain.RouteInfo{
			DistanceMeters:  meters,
			DurationSeconds: seconds,
			Geometry:        geom,
		},
	}
}

// builtinSyntheticRoutes is scanned in order; the first match wins.
// Downtown LA routes start at (-118.244, 34.052), Culver City routes at
// (-118.3965, 34.0211).
var builtinSyntheticRoutes = []SyntheticRoute{
	synthetic("Arts District", 2100, 420,
		[2]float64{-118.244, 34.052},
		[2]float64{-118.2395, 34.0493},
		[2]float64{-118.233, 34.044},
	),
	synthetic("Echo Park Lake", 3500, 600,
		[2]float64{-118.244, 34.052},
		[2]float64{-118.2500, 34.0640},
		[2]float64{-118.2560, 34.0730},
		[2]float64{-118.259, 34.078},
	),
	synthetic("Chinatown", 1800, 360,
		[2]float64{-118.244, 34.052},
		[2]float64{-118.2400, 34.0580},
		[2]float64{-118.2365, 34.0623},
	),
	synthetic("Exposition Park", 6200, 900,
		[2]float64{-118.244, 34.052},
		[2]float64{-118.2600, 34.0400},
		[2]float64{-118.2750, 34.0280},
		[2]float64{-118.2878, 34.0169},
	),
	synthetic("Koreatown", 5600, 840,
		[2]float64{-118.244, 34.052},
		[2]float64{-118.2650, 34.0570},
		[2]float64{-118.2850, 34.0600},
		[2]float64{-118.3009, 34.0618},
	),
	synthetic("Santa Monica Pier", 8500, 1200,
		[2]float64{-118.3965, 34.0211},
		[2]float64{-118.4100, 34.0200},
		[2]float64{-118.4300, 34.0150},
		[2]float64{-118.4500, 34.0120},
		[2]float64{-118.4700, 34.0100},
		[2]float64{-118.4969, 34.0089},
	),
	synthetic("Venice Beach Boardwalk", 6500, 900,
		[2]float64{-118.3965, 34.0211},
		[2]float64{-118.4100, 34.0150},
		[2]float64{-118.4300, 34.0050},
		[2]float64{-118.4500, 33.9950},
		[2]float64{-118.4700, 33.9900},
		[2]float64{-118.4912, 33.9856},
	),
	synthetic("Beverly Hills", 6000, 900,
		[2]float64{-118.3965, 34.0211},
		[2]float64{-118.3900, 34.0300},
		[2]float64{-118.3850, 34.0400},
		[2]float64{-118.3800, 34.0500},
		[2]float64{-118.3950, 34.0650},
		[2]float64{-118.4004, 34.0736},
	),
	synthetic("West Hollywood", 12000, 1500,
		[2]float64{-118.3965, 34.0211},
		[2]float64{-118.3800, 34.0300},
		[2]float64{-118.3700, 34.0400},
		[2]float64{-118.3650, 34.0500},
		[2]float64{-118.3630, 34.0700},
		[2]float64{-118.3617, 34.0900},
	),
	synthetic("Marina del Rey", 5500, 780,
		[2]float64{-118.3965, 34.0211},
		[2]float64{-118.4100, 34.0150},
		[2]float64{-118.4250, 34.0100},
		[2]float64{-118.4400, 33.9950},
		[2]float64{-118.4500, 33.9850},
		[2]float64{-118.4517, 33.9806},
	),
	synthetic("Manhattan Beach", 15000, 1800,
		[2]float64{-118.3965, 34.0211},
		[2]float64{-118.4000, 34.0100},
		[2]float64{-118.4050, 33.9900},
		[2]float64{-118.4080, 33.9700},
		[2]float64{-118.4100, 33.9000},
		[2]float64{-118.4103, 33.8847},
	),
}

// BuiltinSyntheticRoutes returns a copy of the built-in fallback table in scan order.
func BuiltinSyntheticRoutes() []SyntheticRoute {
	return cloneSyntheticRoutes(builtinSyntheticRoutes)
}

func cloneSyntheticRoutes(in []SyntheticRoute) []SyntheticRoute {
	out := make([]SyntheticRoute, len(in))
	for i, e := range in {
		out[i] = SyntheticRoute{Name: e.Name, Destination: e.Destination, Route: e.Route.Clone()}
	}
	return out
}
