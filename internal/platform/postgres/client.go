package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"matrimony-backend/internal/common/config"
	"matrimony-backend/internal/common/logger"

	_ "github.com/lib/pq"
)

type Client struct {
	db *sql.DB
}

func NewClient(cfg *config.Config) (*Client, error) {
	db, err := sql.Open("postgres", cfg.PostgresDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Postgres.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// The pool connects lazily, so an unreachable database is not fatal:
	// roster operations fall back to the local store until it recovers.
	if err := db.PingContext(ctx); err != nil {
		logger.Warn().
			Err(err).
			Str("host", cfg.Postgres.Host).
			Int("port", cfg.Postgres.Port).
			Msg("PostgreSQL unreachable, relying on local store until it recovers")
	} else {
		logger.Info().
			Str("host", cfg.Postgres.Host).
			Int("port", cfg.Postgres.Port).
			Str("database", cfg.Postgres.Database).
			Msg("PostgreSQL client initialized")
	}

	return &Client{db: db}, nil
}

func (c *Client) GetDB() *sql.DB {
	return c.db
}

func (c *Client) Close() error {
	return c.db.Close()
}

func (c *Client) HealthCheck(ctx context.Context) error {
	return c.db.PingContext(ctx)
}
