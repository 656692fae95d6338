package database

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/roxydental/roxydental_backend/config"
)

// NewGorm opens a pooled PostgreSQL connection from central config.
func NewGorm(cfg config.DatabaseConfig) (*gorm.DB, error) {
	return OpenDialector(postgres.Open(DSN(cfg)), optionsFrom(cfg))
}

// OpenDialector opens gorm over any dialector. Tests use it with an in-memory sqlite dialector.
func OpenDialector(dialector gorm.Dialector, opts Options) (*gorm.DB, error) {
	level := gormlogger.Warn
	if opts.LogQueries {
		level = gormlogger.Info
	}
	slow := opts.SlowQuery
	if slow <= 0 {
		slow = defaultSlowQuery
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         NewSlogLogger(level, slow),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql db: %w", err)
	}

	if opts.MaxOpen > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpen)
	}
	if opts.MaxIdle > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdle)
	}
	if opts.MaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(opts.MaxLifetime)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// Close releases the underlying pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks if the database connection is alive
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}
