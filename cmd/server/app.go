package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/ruslan-korneev/lingooru-sub000/internal/config"
	"github.com/ruslan-korneev/lingooru-sub000/internal/domain/srs"
	"github.com/ruslan-korneev/lingooru-sub000/internal/platform/postgres"
	"github.com/ruslan-korneev/lingooru-sub000/internal/platform/redis"
	"github.com/ruslan-korneev/lingooru-sub000/internal/service"
	"github.com/ruslan-korneev/lingooru-sub000/internal/service/session"
	"github.com/ruslan-korneev/lingooru-sub000/internal/store"
)

// evaluatorTimeout bounds a single pronunciation evaluation.
const evaluatorTimeout = 10 * time.Second

// application holds the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB
	redis  *goredis.Client

	// Stores (using interfaces for proper abstraction)
	wordStore    store.WordStore
	reviewStore  store.ReviewStore
	logStore     store.ReviewLogStore
	attemptStore store.AttemptStore
	sessionStore store.SessionStore

	// Services
	reviewService   *service.ReviewService
	practiceService *service.PracticeService
	orchestrator    *session.Orchestrator
}

// newApplication creates an application instance with all dependencies
// initialized. It accepts the core dependencies that must be established
// before wiring: configuration, logger, database and redis connections.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB, rdb *goredis.Client) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
		redis:  rdb,
	}

	// Initialize stores
	app.wordStore = postgres.NewWordStore(db, logger)
	app.reviewStore = postgres.NewReviewStore(db, logger)
	app.logStore = postgres.NewReviewLogStore(db, logger)
	app.attemptStore = postgres.NewAttemptStore(db, logger)
	app.sessionStore = redis.NewSessionStore(
		rdb,
		time.Duration(cfg.Redis.SessionTTLMinutes)*time.Minute,
		logger,
	)

	// Initialize services
	app.reviewService = service.NewReviewService(
		store.NewSQLRunner(db),
		app.reviewStore,
		app.logStore,
		app.wordStore,
		srs.NewScheduler(),
		logger,
	)
	app.practiceService = service.NewPracticeService(
		app.attemptStore,
		service.NewTextMatchEvaluator(),
		evaluatorTimeout,
		logger,
	)

	// Initialize the session engine with one handler per exercise kind
	handlers := []session.OutcomeHandler{
		session.NewLearningHandler(app.reviewService, app.wordStore, cfg.Session.LearningBatchSize, logger),
		session.NewReviewHandler(app.reviewService, cfg.Session.ReviewBatchSize, logger),
		session.NewPronunciationHandler(app.practiceService, app.wordStore, cfg.Session.PronunciationBatchSize, logger),
	}
	app.orchestrator = session.NewOrchestrator(app.sessionStore, handlers, logger)

	logger.Info("application initialized successfully")
	return app, nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("failed to close redis client", slog.String("error", err.Error()))
		}
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", slog.String("error", err.Error()))
		}
	}
	app.logger.Info("application shut down")
}

// Run blocks until the context is cancelled. The session engine is driven
// entirely by its callers; nothing needs an event loop here beyond keeping
// the process alive for the transport layer mounted on top.
func (app *application) Run(ctx context.Context) error {
	app.logger.Info("application running")
	<-ctx.Done()
	if err := ctx.Err(); err != nil && err != context.Canceled {
		return fmt.Errorf("application context error: %w", err)
	}
	return nil
}
