package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"relocation-route-service/internal/adapters/cache"
	"relocation-route-service/internal/adapters/repositories"
	"relocation-route-service/internal/adapters/routing"
	"relocation-route-service/internal/api"
	"relocation-route-service/internal/config"
	"relocation-route-service/internal/platform/db"
	"relocation-route-service/internal/platform/logging"
	"relocation-route-service/internal/ports"
	"relocation-route-service/internal/services"
	"relocation-route-service/internal/workflow"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// main is the application composition root.
// It wires concrete adapters (routing service, Redis, SQL) behind ports and starts the HTTP server.
func main() {
	os.Exit(serve())
}

// serve returns the process exit code so deferred cleanup always runs.
func serve() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", zap.Error(err))
		return 1
	}
	return 0
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider, err := newRouteProvider(cfg.Routing, log)
	if err != nil {
		return err
	}

	opts := []services.BatchOption{
		services.WithConcurrencyLimit(cfg.Routing.BatchConcurrency),
		services.WithLogger(log),
	}

	// The route cache is optional; without it every batch goes to the provider.
	if cfg.Cache.RedisURL != "" {
		client, err := cache.NewRedisClient(ctx, cfg.Cache.RedisURL)
		if err != nil {
			return err
		}
		defer client.Close()

		opts = append(opts, services.WithRouteCache(cache.NewRedisRouteCache(client, cfg.Cache.TTL, log)))
		log.Info("route cache enabled", zap.Duration("ttl", cfg.Cache.TTL))
	}

	coordinator := services.NewRouteBatchCoordinator(provider, services.NewDefaultFallbackResolver(), opts...)

	var locations ports.LocationRepository = repositories.NewDefaultLocationRepository()
	if cfg.Database.URL != "" {
		conn, err := db.Open(cfg.Database.Driver, cfg.Database.URL)
		if err != nil {
			return err
		}
		defer conn.Close()

		locations = repositories.NewSQLLocationRepository(conn, log)
		log.Info("serving locations from database", zap.String("driver", cfg.Database.Driver))
	}

	if !cfg.HasMapTileToken() {
		log.Warn("MAPBOX_TOKEN not set, map clients will use OpenStreetMap tiles")
	}

	router := api.NewRouter(api.Dependencies{
		Locations:      locations,
		Routes:         coordinator,
		Sessions:       workflow.NewStore(coordinator, cfg.SessionTTL, log),
		HasMapboxToken: cfg.HasMapTileToken(),
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Log:            log,
	})

	// WriteTimeout leaves room for a full batch bounded by the routing timeout.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Routing.Timeout + 50*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr), zap.String("provider", cfg.Routing.Provider))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

func newRouteProvider(cfg config.RoutingConfig, log *zap.Logger) (ports.RouteProvider, error) {
	switch cfg.Provider {
	case "ors":
		p, err := routing.NewORSRouteProvider(cfg.ORSAPIKey, cfg.ORSBaseURL, cfg.ORSProfile, cfg.Timeout, log)
		if err != nil {
			return nil, err
		}
		return p, nil
	case "osrm":
		p, err := routing.NewOSRMRouteProvider(cfg.OSRMBaseURL, cfg.Timeout, log)
		if err != nil {
			return nil, err
		}
		return p, nil
	case "offline":
		// No routes: every destination is answered by the fallback table.
		return routing.NewStaticRouteProvider(nil), nil
	default:
		return nil, fmt.Errorf("new route provider: unknown provider %q", cfg.Provider)
	}
}
