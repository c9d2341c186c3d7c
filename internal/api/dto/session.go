package dto

import (
	"relocation-route-service/internal/domain"
	"relocation-route-service/internal/format"
	"relocation-route-service/internal/spatial"
	"relocation-route-service/internal/workflow"
	"time"
)

type CandidateActionRequest struct {
	CandidateID string `json:"candidate_id" validate:"required"`
}

type CandidateResponse struct {
	LocationResponse
	// Display labels: a formatted metric, "Calculating..." or "N/A".
	Distance           string      `json:"distance"`
	Duration           string      `json:"duration"`
	DistanceMeters     *float64    `json:"distance_meters,omitempty"`
	DurationSeconds    *float64    `json:"duration_seconds,omitempty"`
	StraightLineMeters float64     `json:"straight_line_meters"`
	// Great-circle length of the drawn polyline.
	GeometryMeters     *float64    `json:"geometry_meters,omitempty"`
	Source             string      `json:"source,omitempty"`
	Precise            bool        `json:"precise"`
	Geometry           [][]float64 `json:"geometry,omitempty"`
	Selected           bool        `json:"selected"`
}

type SessionResponse struct {
	ID               string              `json:"id"`
	Status           string              `json:"status"`
	Degraded         bool                `json:"degraded"`
	Selection        string              `json:"selection"`
	SelectedID       string              `json:"selected_id,omitempty"`
	BrowsingOpen     bool                `json:"browsing_open"`
	ShowConfirmation bool                `json:"show_confirmation"`
	Current          LocationResponse    `json:"current"`
	Blocked          LocationResponse    `json:"blocked"`
	Candidates       []CandidateResponse `json:"candidates"`
	Selected         *CandidateResponse  `json:"selected,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

func NewSessionResponse(s workflow.Snapshot) SessionResponse {
	loading := s.Load != workflow.Ready

	res := SessionResponse{
		ID:               s.ID,
		Status:           s.Load.String(),
		Degraded:         s.Degraded,
		Selection:        s.Selection.String(),
		BrowsingOpen:     s.BrowsingOpen,
		ShowConfirmation: s.ShowConfirmation,
		Current:          NewLocationResponse(s.Current),
		Blocked:          NewLocationResponse(s.Blocked),
		Candidates:       make([]CandidateResponse, 0, len(s.Candidates)),
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
	if s.Selection != workflow.NoSelection {
		res.SelectedID = s.SelectedID
	}

	for _, c := range s.Candidates {
		cr := newCandidateResponse(s.Current.Coords, c, loading)
		cr.Selected = s.Selection != workflow.NoSelection && c.ID == s.SelectedID
		res.Candidates = append(res.Candidates, cr)
	}

	if sel, ok := s.Selected(); ok {
		cr := newCandidateResponse(s.Current.Coords, sel, loading)
		cr.Selected = true
		res.Selected = &cr
	}

	return res
}

func newCandidateResponse(origin domain.Coordinates, c domain.Candidate, loading bool) CandidateResponse {
	cr := CandidateResponse{
		LocationResponse:   NewLocationResponse(c.Location),
		Distance:           format.DistanceLabel(c.Route, loading),
		Duration:           format.DurationLabel(c.Route, loading),
		StraightLineMeters: spatial.StraightLineMeters(origin, c.Coords),
		Source:             string(c.Source),
		Precise:            c.Source.Precise(),
	}
	if c.Route != nil {
		dist, dur := c.Route.DistanceMeters, c.Route.DurationSeconds
		geom := spatial.PolylineMeters(c.Route.Geometry)
		cr.DistanceMeters = &dist
		cr.DurationSeconds = &dur
		cr.GeometryMeters = &geom
		cr.Geometry = geometryToList(c.Route.Geometry)
	}
	return cr
}
