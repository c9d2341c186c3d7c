package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Placeholder shipped in sample .env files; treated the same as no token.
const mapboxTokenPlaceholder = "your_mapbox_token_here"

type Config struct {
	Port      string `validate:"required,numeric"`
	LogLevel  string `validate:"oneof=debug info warn error"`
	LogFormat string `validate:"oneof=json console"`

	Routing  RoutingConfig
	Cache    CacheConfig
	Database DatabaseConfig

	// Idle workflow sessions older than this are pruned.
	SessionTTL time.Duration `validate:"gt=0"`

	MapboxToken        string
	CORSAllowedOrigins []string
}

type RoutingConfig struct {
	// offline skips the routing service and serves built-in estimates.
	Provider    string        `validate:"oneof=osrm ors offline"`
	OSRMBaseURL string        `validate:"required,url"`
	ORSBaseURL  string        `validate:"required,url"`
	ORSAPIKey   string        `validate:"required_if=Provider ors"`
	ORSProfile  string        `validate:"required"`
	Timeout     time.Duration `validate:"gt=0"`
	// Maximum in-flight provider calls per batch; 0 means unbounded.
	BatchConcurrency int `validate:"gte=0"`
}

type CacheConfig struct {
	RedisURL string        `validate:"omitempty,url"`
	TTL      time.Duration `validate:"gt=0"`
}

type DatabaseConfig struct {
	Driver   string `validate:"oneof=pgx sqlite"`
	URL      string
	SeedPath string
}

// Load reads .env (if present) and the environment into a validated Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	timeout, err := getDuration("ROUTING_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	ttl, err := getDuration("ROUTE_CACHE_TTL", 15*time.Minute)
	if err != nil {
		return nil, err
	}
	sessionTTL, err := getDuration("SESSION_TTL", 30*time.Minute)
	if err != nil {
		return nil, err
	}
	concurrency, err := getInt("ROUTE_BATCH_CONCURRENCY", 0)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:      Get("PORT", "8080"),
		LogLevel:  strings.ToLower(Get("LOG_LEVEL", "info")),
		LogFormat: strings.ToLower(Get("LOG_FORMAT", "json")),
		Routing: RoutingConfig{
			Provider:         strings.ToLower(Get("ROUTING_PROVIDER", "osrm")),
			OSRMBaseURL:      Get("OSRM_BASE_URL", "https://router.project-osrm.org"),
			ORSBaseURL:       Get("ORS_BASE_URL", "https://api.openrouteservice.org"),
			ORSAPIKey:        strings.TrimSpace(os.Getenv("ORS_API_KEY")),
			ORSProfile:       Get("ORS_PROFILE", "driving-car"),
			Timeout:          timeout,
			BatchConcurrency: concurrency,
		},
		Cache: CacheConfig{
			RedisURL: strings.TrimSpace(os.Getenv("REDIS_URL")),
			TTL:      ttl,
		},
		Database: DatabaseConfig{
			Driver:   Get("DATABASE_DRIVER", "pgx"),
			URL:      strings.TrimSpace(os.Getenv("DATABASE_URL")),
			SeedPath: Get("SEED_PATH", "data/seeds/locations.json"),
		},
		SessionTTL:         sessionTTL,
		MapboxToken:        strings.TrimSpace(os.Getenv("MAPBOX_TOKEN")),
		CORSAllowedOrigins: splitList(Get("CORS_ALLOWED_ORIGINS", "*")),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}

// HasMapTileToken reports whether a usable Mapbox token is configured.
// Without one, map rendering falls back to OpenStreetMap tiles; routing is
// unaffected.
func (c *Config) HasMapTileToken() bool {
	return c.MapboxToken != "" && c.MapboxToken != mapboxTokenPlaceholder
}

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("load config: %s: %w", key, err)
	}
	return d, nil
}

func getInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("load config: %s: %w", key, err)
	}
	return n, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
