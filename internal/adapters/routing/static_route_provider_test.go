package routing

import (
	"context"
	"relocation-route-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticRouteProvider(t *testing.T) {
	route := domain.RouteInfo{
		DistanceMeters:  100,
		DurationSeconds: 60,
		Geometry:        []domain.Coordinates{testOrigin, testDest},
	}
	p := NewStaticRouteProvider([]StaticRoute{{Destination: testDest, Route: route}})

	res := p.Route(context.Background(), testOrigin, testDest)
	require.True(t, res.Ok())
	assert.Equal(t, route, res.Route)

	res = p.Route(context.Background(), testOrigin, domain.Coordinates{Lon: 1, Lat: 1})
	assert.ErrorIs(t, res.Err, ErrNoRoute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res = p.Route(ctx, testOrigin, testDest)
	assert.ErrorIs(t, res.Err, context.Canceled)

	assert.Equal(t, int64(3), p.Calls())
}
