package dto

import "relocation-route-service/internal/domain"

type LocationResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Coords        []float64 `json:"coords"`
	RevenueImpact string    `json:"revenue_impact,omitempty"`
}

type DashboardResponse struct {
	Current      LocationResponse   `json:"current"`
	Blocked      LocationResponse   `json:"blocked"`
	Alternatives []LocationResponse `json:"alternatives"`
}

func NewLocationResponse(loc domain.Location) LocationResponse {
	return LocationResponse{
		ID:            loc.ID,
		Name:          loc.Name,
		Coords:        loc.Coords.CoordsToList(),
		RevenueImpact: loc.RevenueImpact,
	}
}

func NewDashboardResponse(d domain.Dashboard) DashboardResponse {
	res := DashboardResponse{
		Current:      NewLocationResponse(d.Current),
		Blocked:      NewLocationResponse(d.Blocked),
		Alternatives: make([]LocationResponse, 0, len(d.Alternatives)),
	}
	for _, alt := range d.Alternatives {
		res.Alternatives = append(res.Alternatives, NewLocationResponse(alt))
	}
	return res
}
