// Package format renders route metrics for display.
package format

import (
	"fmt"
	"math"
	"relocation-route-service/internal/domain"
)

const metersToMiles = 0.000621371

const (
	LabelCalculating = "Calculating..."
	LabelUnavailable = "N/A"
)

// Distance renders meters as miles with one decimal place, e.g. "1.0 mi".
func Distance(meters float64) string {
	return fmt.Sprintf("%.1f mi", meters*metersToMiles)
}

// Duration renders seconds as whole minutes, rounding half up, e.g. "2 min".
func Duration(seconds float64) string {
	return fmt.Sprintf("%d min", int64(math.Floor(seconds/60+0.5)))
}

// DistanceLabel renders a candidate's distance, or a status label when no route is attached.
func DistanceLabel(route *domain.RouteInfo, loading bool) string {
	switch {
	case route != nil:
		return Distance(route.DistanceMeters)
	case loading:
		return LabelCalculating
	default:
		return LabelUnavailable
	}
}

// DurationLabel renders a candidate's travel time, or a status label when no route is attached.
func DurationLabel(route *domain.RouteInfo, loading bool) string {
	switch {
	case route != nil:
		return Duration(route.DurationSeconds)
	case loading:
		return LabelCalculating
	default:
		return LabelUnavailable
	}
}
