// Package main implements the entry point for the lingooru session server,
// which schedules spaced-repetition reviews and drives batched learning,
// review and pronunciation exercise sessions.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	goredis "github.com/redis/go-redis/v9"

	"github.com/ruslan-korneev/lingooru-sub000/internal/config"
	"github.com/ruslan-korneev/lingooru-sub000/internal/platform/logger"
	"github.com/ruslan-korneev/lingooru-sub000/migrations"
)

const (
	dbPingTimeout = 5 * time.Second
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("failed to start: %v", err)
	}
}

// run loads configuration, establishes the database and redis connections,
// applies pending migrations and keeps the application alive until a
// shutdown signal arrives.
func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	appLogger.Info("configuration loaded", slog.String("log_level", cfg.Server.LogLevel))

	db, err := openDatabase(ctx, cfg.Database.URL)
	if err != nil {
		return err
	}

	if err := migrateDatabase(db); err != nil {
		_ = db.Close()
		return err
	}
	appLogger.Info("database migrations applied")

	rdb, err := openRedis(ctx, cfg.Redis)
	if err != nil {
		_ = db.Close()
		return err
	}

	app, err := newApplication(cfg, appLogger, db, rdb)
	if err != nil {
		_ = rdb.Close()
		_ = db.Close()
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer app.cleanup()

	return app.Run(ctx)
}

// openDatabase connects to postgres through the pgx stdlib driver and
// verifies the connection with a bounded ping.
func openDatabase(ctx context.Context, url string) (*sql.DB, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// migrateDatabase applies the embedded goose migrations.
func migrateDatabase(db *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// openRedis connects to redis and verifies the connection with a bounded
// ping.
func openRedis(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}
