package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ruslan-korneev/lingooru-sub000/internal/domain"
	"github.com/ruslan-korneev/lingooru-sub000/internal/platform/logger"
	"github.com/ruslan-korneev/lingooru-sub000/internal/service"
	"github.com/ruslan-korneev/lingooru-sub000/internal/store"
)

// ErrUnknownKind is returned when no handler is registered for the kind.
var ErrUnknownKind = errors.New("no handler registered for exercise kind")

// Orchestrator drives the session state machine shared by all exercise
// kinds. It owns the generic control flow (batch materialization, cursor,
// phase, completion) and delegates kind-specific side effects to the
// registered OutcomeHandler.
//
// Sessions are keyed by (user, kind) and persisted in the SessionStore
// between round-trips; no lock or resource is held while waiting for the
// next user action.
type Orchestrator struct {
	sessions store.SessionStore
	handlers map[domain.ExerciseKind]OutcomeHandler
	logger   *slog.Logger
	now      func() time.Time
}

// NewOrchestrator creates an Orchestrator over the given session store and
// per-kind handlers. If log is nil, a default logger will be used.
func NewOrchestrator(sessions store.SessionStore, handlers []OutcomeHandler, log *slog.Logger) *Orchestrator {
	if sessions == nil {
		panic("session store cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	byKind := make(map[domain.ExerciseKind]OutcomeHandler, len(handlers))
	for _, h := range handlers {
		byKind[h.Kind()] = h
	}

	return &Orchestrator{
		sessions: sessions,
		handlers: byKind,
		logger:   log.With(slog.String("component", "session_orchestrator")),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// StartSession materializes a fresh batch and opens a session for the
// (user, kind) pair, superseding any session already in flight. The batch is
// a snapshot: catalog or scheduling changes after this point do not affect
// the session. An empty batch returns the empty view and stores nothing.
func (o *Orchestrator) StartSession(
	ctx context.Context,
	userID uuid.UUID,
	kind domain.ExerciseKind,
	filter BatchFilter,
) (*View, error) {
	log := logger.FromContextOrDefault(ctx, o.logger)

	handler, ok := o.handlers[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}

	items, err := handler.LoadBatch(ctx, userID, filter)
	if err != nil {
		log.Error("failed to load session batch",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("kind", string(kind)))
		return nil, fmt.Errorf("failed to load batch: %w", err)
	}

	if len(items) == 0 {
		log.Debug("no eligible items, session not started",
			slog.String("user_id", userID.String()),
			slog.String("kind", string(kind)))
		return &View{Type: ViewEmpty}, nil
	}

	state, err := domain.NewSessionState(userID, kind, items, o.now())
	if err != nil {
		return nil, err
	}

	if err := o.sessions.Save(ctx, state); err != nil {
		log.Error("failed to save session state",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("kind", string(kind)))
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	log.Info("session started",
		slog.String("user_id", userID.String()),
		slog.String("kind", string(kind)),
		slog.Int("batch_size", len(items)))
	return itemView(state), nil
}

// SubmitOutcome applies one user outcome to the session's current item.
//
// Side effects commit before the cursor moves: a failed write leaves the
// session addressing the same item, so the caller can retry. Recoverable
// user errors (invalid action, bad quality) come back as a notice view with
// the session untouched. An outcome addressed to a completed, cancelled or
// never-started session returns the session-ended view and mutates nothing.
func (o *Orchestrator) SubmitOutcome(
	ctx context.Context,
	userID uuid.UUID,
	kind domain.ExerciseKind,
	outcome Outcome,
) (*View, error) {
	log := logger.FromContextOrDefault(ctx, o.logger)

	handler, ok := o.handlers[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}

	state, err := o.sessions.Get(ctx, userID, kind)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			log.Debug("outcome addressed to ended session",
				slog.String("user_id", userID.String()),
				slog.String("kind", string(kind)))
			return &View{Type: ViewSessionEnded}, nil
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	if _, ok := state.CurrentItem(); !ok {
		// Defensive: completed sessions are deleted, so a stored state with
		// an exhausted cursor is stale either way.
		_ = o.sessions.Delete(ctx, userID, kind)
		return &View{Type: ViewSessionEnded}, nil
	}

	effect, err := handler.HandleOutcome(ctx, state, outcome)
	if err != nil {
		if service.IsRecoverable(err) {
			log.Debug("recoverable outcome error",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()),
				slog.String("kind", string(kind)))
			return &View{Type: ViewNotice, Notice: err.Error()}, nil
		}
		log.Error("failed to handle outcome",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("kind", string(kind)))
		return nil, err
	}

	if effect.OutcomeID != uuid.Nil {
		state.OutcomeIDs = append(state.OutcomeIDs, effect.OutcomeID)
	}

	if !effect.Advance {
		state.Phase = effect.Phase
		if err := o.sessions.Save(ctx, state); err != nil {
			return nil, fmt.Errorf("failed to save session: %w", err)
		}
		if effect.View != nil {
			return effect.View, nil
		}
		return itemView(state), nil
	}

	state.Cursor++
	state.Phase = domain.PhasePresenting

	if state.Completed() {
		return o.complete(ctx, handler, state)
	}

	if err := o.sessions.Save(ctx, state); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return itemView(state), nil
}

// complete computes the summary and destroys the session state.
func (o *Orchestrator) complete(
	ctx context.Context,
	handler OutcomeHandler,
	state *domain.SessionState,
) (*View, error) {
	log := logger.FromContextOrDefault(ctx, o.logger)

	stats, err := handler.Summarize(ctx, state, o.now())
	if err != nil {
		return nil, fmt.Errorf("failed to summarize session: %w", err)
	}

	if err := o.sessions.Delete(ctx, state.UserID, state.Kind); err != nil {
		return nil, fmt.Errorf("failed to delete session: %w", err)
	}

	log.Info("session completed",
		slog.String("user_id", state.UserID.String()),
		slog.String("kind", string(state.Kind)),
		slog.Int("total", stats.Total),
		slog.Float64("average_quality", stats.AverageQuality))

	return &View{
		Type:  ViewCompleted,
		Total: len(state.Items),
		Stats: stats,
	}, nil
}

// CancelSession discards the session state without further side effects;
// whatever earlier items already committed stays committed. Cancelling a
// session that does not exist is not an error.
func (o *Orchestrator) CancelSession(ctx context.Context, userID uuid.UUID, kind domain.ExerciseKind) error {
	log := logger.FromContextOrDefault(ctx, o.logger)

	if err := o.sessions.Delete(ctx, userID, kind); err != nil {
		return fmt.Errorf("failed to cancel session: %w", err)
	}

	log.Info("session cancelled",
		slog.String("user_id", userID.String()),
		slog.String("kind", string(kind)))
	return nil
}
