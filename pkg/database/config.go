package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/roxydental/roxydental_backend/config"
)

const (
	defaultMaxLifetime = 5 * time.Minute
	defaultSlowQuery   = 200 * time.Millisecond
)

// Options tunes an opened pool. Zero values keep the database/sql defaults,
// except SlowQuery which falls back to 200ms.
type Options struct {
	MaxOpen     int
	MaxIdle     int
	MaxLifetime time.Duration
	LogQueries  bool
	SlowQuery   time.Duration
}

func optionsFrom(c config.DatabaseConfig) Options {
	opts := Options{
		MaxOpen:     c.Pool.MaxOpenConns,
		MaxIdle:     c.Pool.MaxIdleConns,
		MaxLifetime: time.Duration(c.Pool.ConnMaxLifetimeMin) * time.Minute,
		LogQueries:  c.Logging.Enabled,
		SlowQuery:   time.Duration(c.Logging.SlowQueryThresholdMs) * time.Millisecond,
	}
	if opts.MaxLifetime <= 0 {
		opts.MaxLifetime = defaultMaxLifetime
	}
	return opts
}

// DSN renders c as a libpq keyword/value connection string.
func DSN(c config.DatabaseConfig) string {
	sslmode := c.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	parts := []string{
		"host=" + c.Host,
		fmt.Sprintf("port=%d", c.Port),
		"user=" + c.User,
		"password=" + c.Password,
		"dbname=" + c.DBName,
		"sslmode=" + sslmode,
	}
	if c.TimeZone != "" {
		parts = append(parts, "TimeZone="+c.TimeZone)
	}
	return strings.Join(parts, " ")
}
