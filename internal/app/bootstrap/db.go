// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	aboutstore "github.com/dalemusser/ngohub/internal/app/store/about"
	homestore "github.com/dalemusser/ngohub/internal/app/store/home"
	"github.com/dalemusser/ngohub/internal/app/system/database"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// ConnectDB opens the SQLite content database named by db_path.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	db, err := database.Open(ctx, appCfg.DBPath, database.Options{MaxOpenConns: appCfg.DBMaxOpenConns})
	if err != nil {
		logger.Error("database open failed", zap.String("path", appCfg.DBPath), zap.Error(err))
		return DBDeps{}, err
	}

	logger.Info("connected to SQLite",
		zap.String("path", appCfg.DBPath),
		zap.Int("max_open_conns", appCfg.DBMaxOpenConns))

	return DBDeps{DB: db}, nil
}

// EnsureSchema applies pending migrations and, when seed_defaults is on,
// fills empty content tables with the default organization content.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if err := database.Migrate(ctx, deps.DB, logger); err != nil {
		logger.Error("migrations failed", zap.Error(err))
		return err
	}

	if !appCfg.SeedDefaults {
		return nil
	}
	if err := SeedDefaults(ctx, deps.DB); err != nil {
		logger.Error("seeding default content failed", zap.Error(err))
		return err
	}
	logger.Info("default content ensured")
	return nil
}

// SeedDefaults inserts the default About Us and Home content into any
// table that is still empty. Tables with rows are left alone.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	if err := aboutstore.New(db).Seed(ctx); err != nil {
		return fmt.Errorf("seed about: %w", err)
	}
	if err := homestore.New(db).Seed(ctx); err != nil {
		return fmt.Errorf("seed home: %w", err)
	}
	return nil
}
