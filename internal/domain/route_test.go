package domain

import (
	"errors"
	"math"
	"testing"
)

func TestRouteInfoValidate(t *testing.T) {
	origin := Coordinates{Lon: -118.244, Lat: 34.052}
	dest := Coordinates{Lon: -118.233, Lat: 34.044}

	cases := []struct {
		name    string
		route   RouteInfo
		wantErr bool
	}{
		{
			name:  "valid",
			route: RouteInfo{DistanceMeters: 2100, DurationSeconds: 420, Geometry: []Coordinates{origin, dest}},
		},
		{
			name:  "zero metrics are allowed",
			route: RouteInfo{Geometry: []Coordinates{dest, dest}},
		},
		{
			name:    "negative distance",
			route:   RouteInfo{DistanceMeters: -1, Geometry: []Coordinates{origin, dest}},
			wantErr: true,
		},
		{
			name:    "negative duration",
			route:   RouteInfo{DurationSeconds: -5, Geometry: []Coordinates{origin, dest}},
			wantErr: true,
		},
		{
			name:    "NaN distance",
			route:   RouteInfo{DistanceMeters: math.NaN(), Geometry: []Coordinates{origin, dest}},
			wantErr: true,
		},
		{
			name:    "single point geometry",
			route:   RouteInfo{Geometry: []Coordinates{origin}},
			wantErr: true,
		},
		{
			name:    "out of range point",
			route:   RouteInfo{Geometry: []Coordinates{origin, {Lon: 200, Lat: 0}}},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.route.Validate()
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidRoute) {
					t.Fatalf("Validate() = %v, want ErrInvalidRoute", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestRouteInfoCloneDoesNotShareGeometry(t *testing.T) {
	orig := RouteInfo{
		DistanceMeters:  10,
		DurationSeconds: 5,
		Geometry:        []Coordinates{{Lon: 1, Lat: 1}, {Lon: 2, Lat: 2}},
	}

	clone := orig.Clone()
	clone.Geometry[0] = Coordinates{Lon: 9, Lat: 9}

	if orig.Geometry[0] != (Coordinates{Lon: 1, Lat: 1}) {
		t.Fatalf("clone mutated original geometry: %v", orig.Geometry)
	}
	if orig.Start() != (Coordinates{Lon: 1, Lat: 1}) || orig.End() != (Coordinates{Lon: 2, Lat: 2}) {
		t.Fatalf("unexpected endpoints: start=%v end=%v", orig.Start(), orig.End())
	}
}

func TestCoordinatesWithin(t *testing.T) {
	base := Coordinates{Lon: 0, Lat: 0}

	if !base.Within(Coordinates{Lon: 0.01, Lat: -0.01}, 0.01) {
		t.Errorf("boundary point should be within tolerance")
	}
	if base.Within(Coordinates{Lon: 0.02, Lat: 0}, 0.01) {
		t.Errorf("0.02 longitude offset should not match")
	}
	if base.Within(Coordinates{Lon: 0, Lat: 0.02}, 0.01) {
		t.Errorf("0.02 latitude offset should not match")
	}

	// Degree differences at LA longitudes do not come out as exactly 0.01.
	arts := Coordinates{Lon: -118.233, Lat: 34.044}
	for _, c := range []Coordinates{
		{Lon: -118.223, Lat: 34.044},
		{Lon: -118.243, Lat: 34.044},
		{Lon: -118.233, Lat: 34.054},
		{Lon: -118.233, Lat: 34.034},
	} {
		if !arts.Within(c, 0.01) {
			t.Errorf("%s is exactly 0.01 from %s and should be within tolerance", c, arts)
		}
	}
	if arts.Within(Coordinates{Lon: -118.2229, Lat: 34.044}, 0.01) {
		t.Errorf("0.0101 longitude offset should not match")
	}
}

func TestCoordsFromList(t *testing.T) {
	c, err := CoordsFromList([]float64{-118.3965, 34.0211})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Lon != -118.3965 || c.Lat != 34.0211 {
		t.Fatalf("got %v", c)
	}

	if _, err := CoordsFromList([]float64{1}); !errors.Is(err, ErrInvalidCoordinates) {
		t.Errorf("short pair: err = %v, want ErrInvalidCoordinates", err)
	}
	if _, err := CoordsFromList([]float64{10, 95}); !errors.Is(err, ErrInvalidCoordinates) {
		t.Errorf("latitude out of range: err = %v, want ErrInvalidCoordinates", err)
	}
}
