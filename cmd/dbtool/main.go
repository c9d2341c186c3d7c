package main

import (
	"database/sql"
	"fmt"
	"os"
	"relocation-route-service/internal/adapters/repositories"
	"relocation-route-service/internal/config"
	"relocation-route-service/internal/platform/db"
	"relocation-route-service/internal/platform/logging"

	"go.uber.org/zap"
)

// dbtool creates the locations schema and loads the seed dashboard into
// the database named by DATABASE_DRIVER and DATABASE_URL.
func main() {
	os.Exit(run())
}

func run() int {
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

	if cfg.Database.URL == "" {
		log.Error("DATABASE_URL is required")
		return 1
	}

	conn, err := db.Open(cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		log.Error("open database", zap.Error(err))
		return 1
	}
	defer conn.Close()

	if err := initAndSeed(log, conn, cfg.Database.Driver, cfg.Database.SeedPath); err != nil {
		log.Error("init and seed", zap.Error(err))
		return 1
	}
	return 0
}

func initAndSeed(log *zap.Logger, conn *sql.DB, driver, seedPath string) error {
	log.Info("initializing database schema", zap.String("driver", driver))
	if err := repositories.InitSchema(conn); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	log.Info("schema ready")

	log.Info("seeding database", zap.String("seed_path", seedPath))
	if err := repositories.SeedFromJSON(conn, driver, seedPath); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	log.Info("seeding complete")

	return nil
}
