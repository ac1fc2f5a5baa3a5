package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ruslan-korneev/lingooru-sub000/internal/domain"
	"github.com/ruslan-korneev/lingooru-sub000/internal/service"
	"github.com/ruslan-korneev/lingooru-sub000/internal/store"
)

// OutcomeHandler supplies the kind-specific behavior of the generic session
// state machine: how the batch is materialized, what each outcome does, and
// how a finished session is summarized. One implementation exists per
// exercise kind.
type OutcomeHandler interface {
	// Kind identifies the exercise kind this handler drives.
	Kind() domain.ExerciseKind

	// LoadBatch materializes the batch snapshot for a new session.
	// An empty result means the session is never created.
	LoadBatch(ctx context.Context, userID uuid.UUID, filter BatchFilter) ([]domain.SessionItem, error)

	// HandleOutcome applies one outcome to the current item, performing the
	// kind's side effects (enrollment, scheduling update, attempt logging)
	// exactly once. The returned Effect tells the orchestrator whether to
	// advance the cursor. Side effects must be durably committed before
	// HandleOutcome returns a nil error.
	HandleOutcome(ctx context.Context, state *domain.SessionState, outcome Outcome) (*Effect, error)

	// Summarize computes the completion statistics from the outcome ids
	// recorded in the session.
	Summarize(ctx context.Context, state *domain.SessionState, now time.Time) (*service.SessionStats, error)
}

// Effect describes what a handled outcome did and what the state machine
// should do next.
type Effect struct {
	// OutcomeID is the recorded outcome's id (review id, attempt id),
	// or uuid.Nil when the outcome recorded nothing.
	OutcomeID uuid.UUID

	// Advance moves the cursor to the next item (or completion).
	// When false, the session stays on the current item in Phase.
	Advance bool

	// Phase is the phase to enter when not advancing.
	Phase domain.SessionPhase

	// View optionally overrides the orchestrator's default view for
	// non-advancing transitions (revealed answer, attempt result).
	View *View
}

// ReviewOperations is the slice of the review service the session handlers
// need. *service.ReviewService satisfies it.
type ReviewOperations interface {
	Enroll(ctx context.Context, wordID uuid.UUID) (*domain.Review, error)
	RecordReview(ctx context.Context, reviewID uuid.UUID, quality int, responseTimeMs *int) (*domain.Review, error)
	DueReviews(ctx context.Context, userID uuid.UUID, filter store.DueFilter, limit int) ([]*store.DueReview, error)
	SessionStats(ctx context.Context, reviewIDs []uuid.UUID, startedAt, now time.Time) (*service.SessionStats, error)
}

// PracticeOperations is the slice of the practice service the pronunciation
// handler needs. *service.PracticeService satisfies it.
type PracticeOperations interface {
	RecordAttempt(ctx context.Context, userID, wordID uuid.UUID, expected, transcribed string, language domain.Language) (*domain.PronunciationAttempt, error)
	SessionStats(ctx context.Context, attemptIDs []uuid.UUID, startedAt, now time.Time) (*service.SessionStats, error)
}

// WordCatalog is the slice of the word store the handlers need for batch
// loading.
type WordCatalog interface {
	ListUnlearned(ctx context.Context, userID uuid.UUID, language *domain.Language, limit int) ([]*domain.Word, error)
	ListLearned(ctx context.Context, userID uuid.UUID, language *domain.Language, limit int) ([]*domain.Word, error)
}

// wordItem materializes a catalog word into a batch snapshot entry.
func wordItem(word *domain.Word) domain.SessionItem {
	return domain.SessionItem{
		WordID:          word.ID,
		Text:            word.Text,
		Translation:     word.Translation,
		Phonetic:        word.Phonetic,
		ExampleSentence: word.ExampleSentence,
		Language:        word.Language,
	}
}
