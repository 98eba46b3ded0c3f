package infra

import (
	"fmt"
	"log/slog"

	"sick-fits/config"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func gormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	}
}

// SetupDB opens PostgreSQL when DB_NAME is set and a SQLite file otherwise.
func SetupDB(cfg config.DBConfig, prod bool) (*gorm.DB, error) {
	if cfg.Name != "" {
		// 本番環境ではsslmode=require、それ以外はsslmode=disable
		sslmode := "disable"
		if prod {
			sslmode = "require"
		}

		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s connect_timeout=10",
			cfg.Host,
			cfg.User,
			cfg.Password,
			cfg.Name,
			cfg.Port,
			sslmode,
		)

		db, err := gorm.Open(postgres.Open(dsn), gormConfig())
		if err != nil {
			return nil, fmt.Errorf("connect to postgres %s@%s:%s/%s: %w", cfg.User, cfg.Host, cfg.Port, cfg.Name, err)
		}
		slog.Info("setup postgres database", "host", cfg.Host, "dbname", cfg.Name)
		return db, nil
	}

	return OpenSQLite(cfg.SQLitePath)
}

// OpenSQLite opens a SQLite database at path. ":memory:" and file: URIs are
// passed through unchanged.
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("connect to sqlite %s: %w", path, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// SQLite serialises writers; a single connection avoids "database is locked".
	sqlDB.SetMaxOpenConns(1)
	slog.Info("setup sqlite database", "path", path)
	return db, nil
}
