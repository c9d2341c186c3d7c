package domain

// Represents a physical site the operator can work from.
// ID is unique within a session. RevenueImpact is a free-form display label
// (e.g. "+$1,800/day") and is never parsed numerically.
type Location struct {
	ID            string
	Name          string
	Coords        Coordinates
	RevenueImpact string
}

// Dashboard groups the locations one relocation decision works with:
// where the operator is, the site that is blocked, and the candidate
// replacement sites in display order.
type Dashboard struct {
	Current      Location
	Blocked      Location
	Alternatives []Location
}

// Return the coordinates of every alternative, in order.
func (d Dashboard) AlternativeCoords() []Coordinates {
	out := make([]Coordinates, 0, len(d.Alternatives))
	for _, alt := range d.Alternatives {
		out = append(out, alt.Coords)
	}
	return out
}
