package database

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/roxydental/roxydental_backend/config"
)

// InitializeDatabase creates the application database if it doesn't exist.
// It connects to the default 'postgres' database to create it, and should run before migrations.
func InitializeDatabase(cfg *config.Config) error {
	if cfg.Database.DBName == "" {
		return fmt.Errorf("no database name provided")
	}

	maintenance := cfg.Database
	maintenance.DBName = "postgres"
	maintenance.Logging.Enabled = false

	conn, err := NewGorm(maintenance)
	if err != nil {
		return fmt.Errorf("failed to connect to postgres database: %w", err)
	}
	defer Close(conn)

	if err := createDatabaseIfNotExists(conn, cfg.Database.DBName); err != nil {
		return fmt.Errorf("failed to create database %q: %w", cfg.Database.DBName, err)
	}

	return nil
}

func createDatabaseIfNotExists(conn *gorm.DB, dbName string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var exists bool
	err := conn.WithContext(ctx).
		Raw(`SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = ?)`, dbName).
		Scan(&exists).Error
	if err != nil {
		return fmt.Errorf("failed to check if database exists: %w", err)
	}

	if exists {
		return nil
	}

	// CREATE DATABASE does not accept bind parameters.
	if err := conn.WithContext(ctx).Exec(fmt.Sprintf(`CREATE DATABASE "%s"`, dbName)).Error; err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}

	return nil
}
