package domain

import (
	"time"

	"github.com/google/uuid"
)

// ExerciseKind identifies which exercise flow a session drives.
type ExerciseKind string

// Supported exercise kinds
const (
	KindLearning      ExerciseKind = "learning"
	KindReview        ExerciseKind = "review"
	KindPronunciation ExerciseKind = "pronunciation"
)

// Valid reports whether the kind is one of the supported exercise kinds.
func (k ExerciseKind) Valid() bool {
	switch k {
	case KindLearning, KindReview, KindPronunciation:
		return true
	default:
		return false
	}
}

// SessionPhase is the sub-state within the current item.
type SessionPhase string

// Session phases. Presenting means the item prompt is shown; AwaitingOutcome
// means the kind-specific reveal/submit sub-step has happened (answer shown
// for review, attempt evaluated for pronunciation) and the session is waiting
// for the outcome that advances the cursor.
const (
	PhasePresenting      SessionPhase = "presenting"
	PhaseAwaitingOutcome SessionPhase = "awaiting_outcome"
)

// SessionItem is one entry of the batch snapshot captured at session start.
// It is a materialized copy of catalog and scheduling data, not a live
// reference: catalog changes after start must not affect an in-flight session.
type SessionItem struct {
	WordID          uuid.UUID `json:"word_id"`
	ReviewID        uuid.UUID `json:"review_id,omitempty"` // set for review sessions only
	Text            string    `json:"text"`
	Translation     string    `json:"translation"`
	Phonetic        *string   `json:"phonetic,omitempty"`
	ExampleSentence *string   `json:"example_sentence,omitempty"`
	Language        Language  `json:"language"`
}

// SessionState is the persisted workflow state of one exercise session.
// It is keyed by (user, kind); at most one session per pair is active, and a
// new start for the same pair supersedes whatever was stored before.
type SessionState struct {
	UserID     uuid.UUID     `json:"user_id"`
	Kind       ExerciseKind  `json:"kind"`
	Items      []SessionItem `json:"items"`
	Cursor     int           `json:"cursor"`
	Phase      SessionPhase  `json:"phase"`
	StartedAt  time.Time     `json:"started_at"`
	OutcomeIDs []uuid.UUID   `json:"outcome_ids"`

	// Version guards the read-modify-write cycle of each transition. Zero
	// means "fresh start, overwrite whatever is there"; stores bump it on
	// every successful save and reject saves carrying a stale version.
	Version int64 `json:"version"`
}

// NewSessionState creates the state for a freshly started session over the
// given batch snapshot.
func NewSessionState(userID uuid.UUID, kind ExerciseKind, items []SessionItem, startedAt time.Time) (*SessionState, error) {
	if !kind.Valid() {
		return nil, ErrInvalidExerciseKind
	}

	return &SessionState{
		UserID:     userID,
		Kind:       kind,
		Items:      items,
		Cursor:     0,
		Phase:      PhasePresenting,
		StartedAt:  startedAt,
		OutcomeIDs: []uuid.UUID{},
	}, nil
}

// CurrentItem returns the item under the cursor.
// The second return value is false when the cursor has run past the batch.
func (s *SessionState) CurrentItem() (SessionItem, bool) {
	if s.Cursor < 0 || s.Cursor >= len(s.Items) {
		return SessionItem{}, false
	}
	return s.Items[s.Cursor], true
}

// Completed reports whether the cursor has passed the last item.
func (s *SessionState) Completed() bool {
	return s.Cursor >= len(s.Items)
}

// Clone returns a deep copy, so stores can hand out state without sharing
// the backing slices with callers.
func (s *SessionState) Clone() *SessionState {
	clone := *s
	clone.Items = make([]SessionItem, len(s.Items))
	copy(clone.Items, s.Items)
	clone.OutcomeIDs = make([]uuid.UUID, len(s.OutcomeIDs))
	copy(clone.OutcomeIDs, s.OutcomeIDs)
	return &clone
}
