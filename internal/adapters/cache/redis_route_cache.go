package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"relocation-route-service/internal/domain"
	"relocation-route-service/internal/platform/obs"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "route:"

// RedisRouteCache stores live provider routes in Redis with a fixed TTL.
type RedisRouteCache struct {
	Client *redis.Client
	TTL    time.Duration
	Log    *zap.Logger
}

func NewRedisRouteCache(client *redis.Client, ttl time.Duration, log *zap.Logger) *RedisRouteCache {
	return &RedisRouteCache{Client: client, TTL: ttl, Log: log}
}

// NewRedisClient parses a redis:// URL and verifies the server responds.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("route cache: parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("route cache: ping redis: %w", err)
	}

	return client, nil
}

type cachedRoute struct {
	Distance float64      `json:"distance"`
	Duration float64      `json:"duration"`
	Geometry [][2]float64 `json:"geometry"`
}

func (c *RedisRouteCache) Get(ctx context.Context, origin, destination domain.Coordinates) (_ domain.RouteInfo, _ bool, err error) {
	defer obs.Time(ctx, c.Log, "route.cache.Get")(&err)

	if c.Client == nil {
		return domain.RouteInfo{}, false, errors.New("route cache: client is nil")
	}

	raw, err := c.Client.Get(ctx, Key(origin, destination)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.RouteInfo{}, false, nil
	}
	if err != nil {
		return domain.RouteInfo{}, false, fmt.Errorf("route cache: get: %w", err)
	}

	var cr cachedRoute
	if err := json.Unmarshal(raw, &cr); err != nil {
		return domain.RouteInfo{}, false, fmt.Errorf("route cache: decode entry: %w", err)
	}

	route := domain.RouteInfo{
		DistanceMeters:  cr.Distance,
		DurationSeconds: cr.Duration,
		Geometry:        make([]domain.Coordinates, len(cr.Geometry)),
	}
	for i, p := range cr.Geometry {
		route.Geometry[i] = domain.Coordinates{Lon: p[0], Lat: p[1]}
	}

	// A corrupt entry is treated as a miss so the provider gets a chance.
	if err := route.Validate(); err != nil {
		return domain.RouteInfo{}, false, nil
	}

	return route, true, nil
}

func (c *RedisRouteCache) Put(ctx context.Context, origin, destination domain.Coordinates, route domain.RouteInfo) (err error) {
	defer obs.Time(ctx, c.Log, "route.cache.Put")(&err)

	if c.Client == nil {
		return errors.New("route cache: client is nil")
	}

	if err := route.Validate(); err != nil {
		return fmt.Errorf("route cache: refusing to store: %w", err)
	}

	cr := cachedRoute{
		Distance: route.DistanceMeters,
		Duration: route.DurationSeconds,
		Geometry: make([][2]float64, len(route.Geometry)),
	}
	for i, p := range route.Geometry {
		cr.Geometry[i] = [2]float64{p.Lon, p.Lat}
	}

	raw, err := json.Marshal(cr)
	if err != nil {
		return fmt.Errorf("route cache: encode entry: %w", err)
	}

	if err := c.Client.Set(ctx, Key(origin, destination), raw, c.TTL).Err(); err != nil {
		return fmt.Errorf("route cache: set: %w", err)
	}

	return nil
}

// Key is "route:{lon},{lat}->{lon},{lat}" with both points rounded to 5
// decimals (about one metre).
func Key(origin, destination domain.Coordinates) string {
	return keyPrefix + roundPoint(origin) + "->" + roundPoint(destination)
}

func roundPoint(c domain.Coordinates) string {
	return strconv.FormatFloat(c.Lon, 'f', 5, 64) + "," + strconv.FormatFloat(c.Lat, 'f', 5, 64)
}
