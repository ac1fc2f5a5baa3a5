// Package redis implements the session state store on Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ruslan-korneev/lingooru-sub000/internal/domain"
	"github.com/ruslan-korneev/lingooru-sub000/internal/platform/logger"
	"github.com/ruslan-korneev/lingooru-sub000/internal/store"
)

// SessionStore implements the store.SessionStore interface using Redis.
// One key per (user, kind) pair holds the JSON-encoded session state; the
// optimistic version check rides on WATCH/MULTI so a redelivered transition
// cannot overwrite a newer state.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewSessionStore creates a Redis-backed session store. The TTL bounds how
// long an abandoned session survives; completed and cancelled sessions are
// deleted eagerly by the orchestrator. If logger is nil, a default logger
// will be used.
func NewSessionStore(client *redis.Client, ttl time.Duration, log *slog.Logger) *SessionStore {
	if client == nil {
		panic("client cannot be nil")
	}
	if ttl <= 0 {
		panic("ttl must be positive")
	}
	if log == nil {
		log = slog.Default()
	}

	return &SessionStore{
		client: client,
		ttl:    ttl,
		logger: log.With(slog.String("component", "session_store")),
	}
}

// Ensure SessionStore implements store.SessionStore interface
var _ store.SessionStore = (*SessionStore)(nil)

func sessionKey(userID uuid.UUID, kind domain.ExerciseKind) string {
	return fmt.Sprintf("session:%s:%s", userID, kind)
}

// Get implements store.SessionStore.Get
func (s *SessionStore) Get(ctx context.Context, userID uuid.UUID, kind domain.ExerciseKind) (*domain.SessionState, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	raw, err := s.client.Get(ctx, sessionKey(userID, kind)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, store.ErrSessionNotFound
		}
		log.Error("failed to get session state",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("kind", string(kind)))
		return nil, err
	}

	var state domain.SessionState
	if err := json.Unmarshal(raw, &state); err != nil {
		log.Error("failed to decode session state",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("kind", string(kind)))
		return nil, fmt.Errorf("failed to decode session state: %w", err)
	}

	return &state, nil
}

// Save implements store.SessionStore.Save
func (s *SessionStore) Save(ctx context.Context, state *domain.SessionState) error {
	log := logger.FromContextOrDefault(ctx, s.logger)
	key := sessionKey(state.UserID, state.Kind)

	// A fresh start supersedes whatever is stored, no version check.
	if state.Version == 0 {
		payload, err := encodeWithVersion(state, 1)
		if err != nil {
			return err
		}
		if err := s.client.Set(ctx, key, payload, s.ttl).Err(); err != nil {
			log.Error("failed to save session state",
				slog.String("error", err.Error()),
				slog.String("user_id", state.UserID.String()),
				slog.String("kind", string(state.Kind)))
			return err
		}
		state.Version = 1
		return nil
	}

	newVersion := state.Version + 1
	payload, err := encodeWithVersion(state, newVersion)
	if err != nil {
		return err
	}

	err = s.client.Watch(ctx, func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return store.ErrSessionNotFound
			}
			return err
		}

		var current domain.SessionState
		if err := json.Unmarshal(raw, &current); err != nil {
			return fmt.Errorf("failed to decode session state: %w", err)
		}
		if current.Version != state.Version {
			return store.ErrSessionConflict
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, s.ttl)
			return nil
		})
		return err
	}, key)

	if err != nil {
		if errors.Is(err, redis.TxFailedErr) {
			// Another writer touched the key between WATCH and EXEC.
			return store.ErrSessionConflict
		}
		return err
	}

	state.Version = newVersion
	return nil
}

// Delete implements store.SessionStore.Delete
func (s *SessionStore) Delete(ctx context.Context, userID uuid.UUID, kind domain.ExerciseKind) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.client.Del(ctx, sessionKey(userID, kind)).Err(); err != nil {
		log.Error("failed to delete session state",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("kind", string(kind)))
		return err
	}
	return nil
}

func encodeWithVersion(state *domain.SessionState, version int64) ([]byte, error) {
	clone := state.Clone()
	clone.Version = version
	payload, err := json.Marshal(clone)
	if err != nil {
		return nil, fmt.Errorf("failed to encode session state: %w", err)
	}
	return payload, nil
}
