package domain

import "testing"

func TestCandidatesResolveAndClone(t *testing.T) {
	locs := []Location{
		{ID: "alt1", Name: "Santa Monica Pier", Coords: Coordinates{Lon: -118.4969, Lat: 34.0089}},
		{ID: "alt2", Name: "Venice Beach Boardwalk", Coords: Coordinates{Lon: -118.4912, Lat: 33.9856}},
	}

	cands := NewCandidates(locs)
	if len(cands) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(cands))
	}
	for _, c := range cands {
		if c.Route != nil {
			t.Fatalf("candidate %s should start unresolved", c.ID)
		}
	}

	route := RouteInfo{
		DistanceMeters:  8500,
		DurationSeconds: 1200,
		Geometry:        []Coordinates{{Lon: -118.3965, Lat: 34.0211}, locs[0].Coords},
	}
	cands[0].Resolve(route, RouteSourceSynthetic)

	// Resolve must copy so the shared route stays untouched.
	cands[0].Route.Geometry[0] = Coordinates{}
	if route.Geometry[0] != (Coordinates{Lon: -118.3965, Lat: 34.0211}) {
		t.Fatalf("Resolve shared geometry with caller")
	}

	clone := CloneCandidates(cands)
	clone[0].Route.DistanceMeters = 1
	if cands[0].Route.DistanceMeters != 8500 {
		t.Fatalf("CloneCandidates shared route pointer")
	}
	if clone[1].Route != nil {
		t.Fatalf("unresolved candidate gained a route on clone")
	}
	if cands[0].Source.Precise() {
		t.Errorf("synthetic source should not be precise")
	}
}
