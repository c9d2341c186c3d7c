package ports

import (
	"context"
	"relocation-route-service/internal/domain"
)

// Port: a boundary for retrieving the locations a relocation decision works with.
type LocationRepository interface {
	// Retrieve the current, blocked and alternative locations.
	Dashboard(ctx context.Context) (domain.Dashboard, error)
}
