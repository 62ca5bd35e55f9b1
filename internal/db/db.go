package db

import (
	"errors"
	"log"
	"os"
	"time"

	"emoji-songs/internal/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open connects to Postgres using DATABASE_URL.
func Open() (*gorm.DB, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}
	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

// Configure applies connection pool settings to an open connection.
func Configure(conn *gorm.DB, cfg config.Config) error {
	if conn == nil {
		return errors.New("db connection is nil")
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.DBConnMaxLifetimeSeconds) * time.Second)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.DBConnMaxIdleTimeSeconds) * time.Second)
	return nil
}

// Migrate runs GORM auto-migrations for the core tables. The partial unique
// index is created by hand because AutoMigrate cannot express the WHERE
// clause; persistence relies on it to reject a racing second joiner.
func Migrate(conn *gorm.DB) error {
	if conn == nil {
		return errors.New("db connection is nil")
	}
	if err := conn.AutoMigrate(
		&Room{},
		&RoomPlayer{},
		&Puzzle{},
		&RoomEvent{},
		&Session{},
	); err != nil {
		return err
	}
	if err := conn.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_room_players_single_joiner
		 ON room_players (room_id) WHERE NOT is_creator`,
	).Error; err != nil {
		return err
	}
	log.Println("database migration complete")
	return nil
}
