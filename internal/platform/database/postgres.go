package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
)

type Config struct {
	Driver   string // postgres (lib/pq) or pgx
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

func (cfg Config) DSN() string {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     cfg.Host + ":" + cfg.Port,
		Path:     "/" + cfg.DBName,
		RawQuery: url.Values{"sslmode": {sslMode}}.Encode(),
	}
	return u.String()
}

func (cfg Config) driverName() string {
	if cfg.Driver == "pgx" {
		return "pgx"
	}
	return "postgres"
}

const (
	maxRetries = 10
	retryDelay = 2 * time.Second
)

// NewPostgresDB opens the pool and waits for the server to accept pings.
func NewPostgresDB(ctx context.Context, cfg Config, logger zerolog.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	for i := 1; i <= maxRetries; i++ {
		logger.Info().Int("attempt", i).Int("max", maxRetries).Str("driver", cfg.driverName()).Msg("connecting to database")
		db, err = sql.Open(cfg.driverName(), cfg.DSN())
		if err == nil {
			err = db.PingContext(ctx)
			if err != nil {
				_ = db.Close()
			}
		}

		if err == nil {
			logger.Info().Msg("database connected")
			db.SetMaxOpenConns(25)
			db.SetMaxIdleConns(25)
			db.SetConnMaxLifetime(5 * time.Minute)
			return db, nil
		}

		logger.Warn().Err(err).Dur("retry_in", retryDelay).Msg("database not ready yet")
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryDelay):
		}
	}

	return nil, fmt.Errorf("failed to connect to database: %w", err)
}
