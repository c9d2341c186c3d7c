package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"relocation-route-service/internal/domain"
	"relocation-route-service/internal/platform/db"
	"strings"
)

// Initialize the locations schema. The DDL is valid for both Postgres and SQLite.
func InitSchema(conn *sql.DB) error {
	if conn == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createLocationsQuery := `
	CREATE TABLE IF NOT EXISTS locations (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		lon DOUBLE PRECISION NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		revenue_impact TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL CHECK (role IN ('current', 'blocked', 'alternative')),
		position INTEGER NOT NULL DEFAULT 0
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_locations_role_position
	ON locations(role, position);
	`

	statements := []string{
		createLocationsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type LocationSeed struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Coords        []float64 `json:"coords"`
	RevenueImpact string    `json:"revenue_impact"`
}

type DashboardSeed struct {
	Current      LocationSeed   `json:"current"`
	Blocked      LocationSeed   `json:"blocked"`
	Alternatives []LocationSeed `json:"alternatives"`
}

type seedRow struct {
	loc      domain.Location
	role     string
	position int
}

// Populate the locations table from a JSON file. Existing rows with the
// same id are updated. driver selects the placeholder style.
func SeedFromJSON(conn *sql.DB, driver string, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed locations: read %q: %w", jsonPath, err)
	}

	var data DashboardSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed locations: parse json: %w", err)
	}

	rows := make([]seedRow, 0, 2+len(data.Alternatives))
	add := func(s LocationSeed, role string, position int) error {
		loc, err := s.toLocation()
		if err != nil {
			return fmt.Errorf("seed locations: %s location %q: %w", role, s.ID, err)
		}
		rows = append(rows, seedRow{loc: loc, role: role, position: position})
		return nil
	}

	if err := add(data.Current, RoleCurrent, 0); err != nil {
		return err
	}
	if err := add(data.Blocked, RoleBlocked, 0); err != nil {
		return err
	}
	for i, alt := range data.Alternatives {
		if err := add(alt, RoleAlternative, i+1); err != nil {
			return err
		}
	}

	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("seed locations: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := fmt.Sprintf(`
	INSERT INTO locations (
		id,
		name,
		lon,
		lat,
		revenue_impact,
		role,
		position
	)
	VALUES (%s)
	ON CONFLICT (id) DO UPDATE
	SET name = EXCLUDED.name,
		lon = EXCLUDED.lon,
		lat = EXCLUDED.lat,
		revenue_impact = EXCLUDED.revenue_impact,
		role = EXCLUDED.role,
		position = EXCLUDED.position;
	`, placeholders(driver, 7))

	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed locations: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.Exec(r.loc.ID, r.loc.Name, r.loc.Coords.Lon, r.loc.Coords.Lat, r.loc.RevenueImpact, r.role, r.position); err != nil {
			return fmt.Errorf("seed locations: insert id=%q: %w", r.loc.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed locations: commit tx: %w", err)
	}

	return nil
}

func (s LocationSeed) toLocation() (domain.Location, error) {
	id := strings.TrimSpace(s.ID)
	if id == "" {
		return domain.Location{}, errors.New("id cannot be empty")
	}

	name := strings.TrimSpace(s.Name)
	if name == "" {
		return domain.Location{}, errors.New("name cannot be empty")
	}

	coords, err := domain.CoordsFromList(s.Coords)
	if err != nil {
		return domain.Location{}, err
	}

	return domain.Location{
		ID:            id,
		Name:          name,
		Coords:        coords,
		RevenueImpact: strings.TrimSpace(s.RevenueImpact),
	}, nil
}

// placeholders returns "$1, $2, ..." for Postgres and "?, ?, ..." for SQLite.
func placeholders(driver string, n int) string {
	ph := make([]string, n)
	for i := range ph {
		if driver == db.DriverPostgres {
			ph[i] = fmt.Sprintf("$%d", i+1)
		} else {
			ph[i] = "?"
		}
	}
	return strings.Join(ph, ", ")
}
