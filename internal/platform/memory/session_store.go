// Package memory provides in-process implementations of store interfaces,
// used by tests and single-node deployments.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/ruslan-korneev/lingooru-sub000/internal/domain"
	"github.com/ruslan-korneev/lingooru-sub000/internal/store"
)

// SessionStore implements the store.SessionStore interface with a
// mutex-guarded map. It honors the same versioning contract as the Redis
// implementation, so the orchestrator behaves identically on either.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*domain.SessionState
}

// NewSessionStore creates an empty in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*domain.SessionState),
	}
}

// Ensure SessionStore implements store.SessionStore interface
var _ store.SessionStore = (*SessionStore)(nil)

func key(userID uuid.UUID, kind domain.ExerciseKind) string {
	return fmt.Sprintf("%s:%s", userID, kind)
}

// Get implements store.SessionStore.Get
func (s *SessionStore) Get(ctx context.Context, userID uuid.UUID, kind domain.ExerciseKind) (*domain.SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.sessions[key(userID, kind)]
	if !ok {
		return nil, store.ErrSessionNotFound
	}
	return state.Clone(), nil
}

// Save implements store.SessionStore.Save
func (s *SessionStore) Save(ctx context.Context, state *domain.SessionState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(state.UserID, state.Kind)
	current, exists := s.sessions[k]

	if state.Version == 0 {
		// Fresh start supersedes whatever is stored.
		stored := state.Clone()
		stored.Version = 1
		s.sessions[k] = stored
		state.Version = 1
		return nil
	}

	if !exists {
		return store.ErrSessionNotFound
	}
	if current.Version != state.Version {
		return store.ErrSessionConflict
	}

	stored := state.Clone()
	stored.Version = state.Version + 1
	s.sessions[k] = stored
	state.Version = stored.Version
	return nil
}

// Delete implements store.SessionStore.Delete
func (s *SessionStore) Delete(ctx context.Context, userID uuid.UUID, kind domain.ExerciseKind) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, key(userID, kind))
	return nil
}
