// Package database owns the process-wide GORM handle for the marketplace schema.
package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/temply-mn/temply-api/internal/config"
	"github.com/temply-mn/temply-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

const pingTimeout = 2 * time.Second

// Connect opens the pool. Driver errors are translated so repositories can
// match gorm.ErrDuplicatedKey and friends.
func Connect(cfg *config.Config) error {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.NewSlogLogger(slog.Default(), logger.Config{
			SlowThreshold:             500 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxOpenConns / 2)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	DB = db
	slog.Info("database connected", "host", cfg.DBHost, "db", cfg.DBName, "max_open_conns", cfg.DBMaxOpenConns)
	return nil
}

// Migrate creates or updates users, templates, cart_items, purchases,
// downloads and system_logs.
func Migrate() error {
	if err := DB.AutoMigrate(
		&models.User{},
		&models.Template{},
		&models.CartItem{},
		&models.Purchase{},
		&models.Download{},
		&models.SystemLog{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// Ping backs the health endpoint.
func Ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

func Close() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
