package main

import (
	"context"
	"testing"
	"time"

	"relocation-route-service/internal/adapters/routing"
	"relocation-route-service/internal/config"
	"relocation-route-service/internal/domain"
	"relocation-route-service/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func routingConfig(provider string) config.RoutingConfig {
	return config.RoutingConfig{
		Provider:    provider,
		OSRMBaseURL: "https://router.project-osrm.org",
		ORSBaseURL:  "https://api.openrouteservice.org",
		ORSProfile:  "driving-car",
		Timeout:     time.Second,
	}
}

func TestNewRouteProvider(t *testing.T) {
	p, err := newRouteProvider(routingConfig("osrm"), nil)
	require.NoError(t, err)
	assert.IsType(t, &routing.OSRMRouteProvider{}, p)

	_, err = newRouteProvider(routingConfig("ors"), nil)
	assert.Error(t, err, "ors needs an api key")

	cfg := routingConfig("ors")
	cfg.ORSAPIKey = "secret"
	p, err = newRouteProvider(cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &routing.ORSRouteProvider{}, p)

	_, err = newRouteProvider(routingConfig("google"), nil)
	assert.Error(t, err)
}

func TestOfflineProviderServesFallbackRoutes(t *testing.T) {
	p, err := newRouteProvider(routingConfig("offline"), nil)
	require.NoError(t, err)
	assert.IsType(t, &routing.StaticRouteProvider{}, p)

	coordinator := services.NewRouteBatchCoordinator(p, services.NewDefaultFallbackResolver())
	got, err := coordinator.ResolveBatch(
		context.Background(),
		domain.Coordinates{Lon: -118.3965, Lat: 34.0211},
		[]domain.Coordinates{{Lon: -118.4969, Lat: 34.0089}, {Lon: 0, Lat: 0}},
	)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, domain.RouteSourceSynthetic, got[0].Source)
	assert.Equal(t, 8500.0, got[0].Route.DistanceMeters)
	assert.Equal(t, domain.RouteSourcePlaceholder, got[1].Source)
}
