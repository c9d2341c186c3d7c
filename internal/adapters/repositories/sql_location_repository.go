package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"relocation-route-service/internal/domain"
	"relocation-route-service/internal/platform/obs"

	"go.uber.org/zap"
)

const (
	RoleCurrent     = "current"
	RoleBlocked     = "blocked"
	RoleAlternative = "alternative"
)

var ErrIncompleteDashboard = errors.New("dashboard needs exactly one current and one blocked location")

// SQL-backed implementation of the LocationRepository port.
// Works with both the Postgres and SQLite schemas created by InitSchema.
type SQLLocationRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

func NewSQLLocationRepository(db *sql.DB, log *zap.Logger) *SQLLocationRepository {
	return &SQLLocationRepository{DB: db, Log: log}
}

// Return the current, blocked and alternative locations. Alternatives are
// ordered by position, then id.
func (s *SQLLocationRepository) Dashboard(ctx context.Context) (_ domain.Dashboard, err error) {
	defer obs.Time(ctx, s.Log, "locations.Dashboard")(&err)

	if s.DB == nil {
		return domain.Dashboard{}, errors.New("sql location repository: DB is nil")
	}

	query := `
	SELECT
		id,
		name,
		lon,
		lat,
		revenue_impact,
		role
	FROM locations
	ORDER BY position, id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return domain.Dashboard{}, fmt.Errorf("list locations: query locations table: %w", err)
	}
	defer rows.Close()

	var (
		d                  domain.Dashboard
		currents, blockeds int
	)
	d.Alternatives = make([]domain.Location, 0, 8)

	for rows.Next() {
		var loc domain.Location
		var role string
		if err := rows.Scan(&loc.ID, &loc.Name, &loc.Coords.Lon, &loc.Coords.Lat, &loc.RevenueImpact, &role); err != nil {
			return domain.Dashboard{}, fmt.Errorf("list locations: scan row: %w", err)
		}

		if err := loc.Coords.Validate(); err != nil {
			return domain.Dashboard{}, fmt.Errorf("list locations: location %q: %w", loc.ID, err)
		}

		switch role {
		case RoleCurrent:
			d.Current = loc
			currents++
		case RoleBlocked:
			d.Blocked = loc
			blockeds++
		case RoleAlternative:
			d.Alternatives = append(d.Alternatives, loc)
		default:
			return domain.Dashboard{}, fmt.Errorf("list locations: location %q has unknown role %q", loc.ID, role)
		}
	}

	if err := rows.Err(); err != nil {
		return domain.Dashboard{}, fmt.Errorf("list locations: row iteration: %w", err)
	}

	if currents != 1 || blockeds != 1 {
		return domain.Dashboard{}, fmt.Errorf("list locations: %w (current=%d blocked=%d)", ErrIncompleteDashboard, currents, blockeds)
	}

	return d, nil
}
