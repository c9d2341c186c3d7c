package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

var ErrInvalidCoordinates = errors.New("invalid coordinates")

// Immutable geographic coordinates (longitude, latitude).
type Coordinates struct {
	Lon float64
	Lat float64
}

// Return coordinates as [lon, lat] for external API compatibility.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }

// Build Coordinates from a [lon, lat] pair as used by GeoJSON and routing APIs.
func CoordsFromList(pair []float64) (Coordinates, error) {
	if len(pair) != 2 {
		return Coordinates{}, fmt.Errorf("%w: expected [lon, lat], got %d values", ErrInvalidCoordinates, len(pair))
	}

	c := Coordinates{Lon: pair[0], Lat: pair[1]}
	if err := c.Validate(); err != nil {
		return Coordinates{}, err
	}

	return c, nil
}

// Validate checks that both axes are finite and inside WGS84 bounds.
func (c Coordinates) Validate() error {
	if math.IsNaN(c.Lon) || math.IsInf(c.Lon, 0) || math.IsNaN(c.Lat) || math.IsInf(c.Lat, 0) {
		return fmt.Errorf("%w: coordinates must be finite", ErrInvalidCoordinates)
	}
	if c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("%w: longitude %v must be between -180 and 180", ErrInvalidCoordinates, c.Lon)
	}
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("%w: latitude %v must be between -90 and 90", ErrInvalidCoordinates, c.Lat)
	}

	return nil
}

// Absorbs rounding in degree differences, e.g. -118.223 - -118.233 is
// slightly above 0.01 in float64.
const withinEpsilon = 1e-9

// Within reports whether c lies within tolerance degrees of other on both axes.
// The bound is inclusive. The axes are compared independently; this is not a
// geodesic distance.
func (c Coordinates) Within(other Coordinates, tolerance float64) bool {
	limit := tolerance + withinEpsilon
	return math.Abs(c.Lon-other.Lon) <= limit && math.Abs(c.Lat-other.Lat) <= limit
}

// String formats the coordinates as "lon,lat" in plain decimal notation.
func (c Coordinates) String() string {
	return strconv.FormatFloat(c.Lon, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lat, 'f', -1, 64)
}
