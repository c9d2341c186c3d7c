package repositories

import (
	"context"
	"relocation-route-service/internal/domain"
)

// StaticLocationRepository serves a fixed dashboard held in memory.
type StaticLocationRepository struct {
	dashboard domain.Dashboard
}

func NewStaticLocationRepository(d domain.Dashboard) *StaticLocationRepository {
	return &StaticLocationRepository{dashboard: cloneDashboard(d)}
}

// NewDefaultLocationRepository serves the built-in Culver City dashboard.
func NewDefaultLocationRepository() *StaticLocationRepository {
	return NewStaticLocationRepository(DefaultDashboard())
}

func (s *StaticLocationRepository) Dashboard(ctx context.Context) (domain.Dashboard, error) {
	if err := ctx.Err(); err != nil {
		return domain.Dashboard{}, err
	}
	return cloneDashboard(s.dashboard), nil
}

// DefaultDashboard is the demo dataset: a food truck blocked in downtown
// Culver City choosing among nearby westside sites.
func DefaultDashboard() domain.Dashboard {
	return domain.Dashboard{
		Current: domain.Location{
			ID:     "current",
			Name:   "Culver City",
			Coords: domain.Coordinates{Lon: -118.3965, Lat: 34.0211},
		},
		Blocked: domain.Location{
			ID:     "blocked",
			Name:   "Culver City Downtown",
			Coords: domain.Coordinates{Lon: -118.3965, Lat: 34.0211},
		},
		Alternatives: []domain.Location{
			{ID: "alt1", Name: "Santa Monica Pier", Coords: domain.Coordinates{Lon: -118.4969, Lat: 34.0089}, RevenueImpact: "+$1,800/day"},
			{ID: "alt2", Name: "Venice Beach Boardwalk", Coords: domain.Coordinates{Lon: -118.4912, Lat: 33.9856}, RevenueImpact: "+$1,600/day"},
			{ID: "alt3", Name: "Beverly Hills", Coords: domain.Coordinates{Lon: -118.4004, Lat: 34.0736}, RevenueImpact: "+$1,400/day"},
			{ID: "alt4", Name: "West Hollywood", Coords: domain.Coordinates{Lon: -118.3617, Lat: 34.0900}, RevenueImpact: "+$1,300/day"},
			{ID: "alt5", Name: "Marina del Rey", Coords: domain.Coordinates{Lon: -118.4517, Lat: 33.9806}, RevenueImpact: "+$1,200/day"},
			{ID: "alt6", Name: "Manhattan Beach", Coords: domain.Coordinates{Lon: -118.4103, Lat: 33.8847}, RevenueImpact: "+$1,100/day"},
		},
	}
}

func cloneDashboard(d domain.Dashboard) domain.Dashboard {
	alts := make([]domain.Location, len(d.Alternatives))
	copy(alts, d.Alternatives)
	d.Alternatives = alts
	return d
}
