package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ruslan-korneev/lingooru-sub000/internal/domain"
	"github.com/ruslan-korneev/lingooru-sub000/internal/service"
)

// PronunciationHandler drives pronunciation practice sessions over the
// user's learned words. Each attempt is evaluated and persisted immediately;
// the user may retry the same word any number of times before moving on, and
// every retry counts toward the session average.
type PronunciationHandler struct {
	practice  PracticeOperations
	words     WordCatalog
	batchSize int
	logger    *slog.Logger
}

// NewPronunciationHandler creates the pronunciation-session handler.
func NewPronunciationHandler(practice PracticeOperations, words WordCatalog, batchSize int, log *slog.Logger) *PronunciationHandler {
	if practice == nil {
		panic("practice operations cannot be nil")
	}
	if words == nil {
		panic("word catalog cannot be nil")
	}
	if batchSize <= 0 {
		panic("batch size must be positive")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PronunciationHandler{
		practice:  practice,
		words:     words,
		batchSize: batchSize,
		logger:    log.With(slog.String("component", "pronunciation_handler")),
	}
}

// Ensure PronunciationHandler implements OutcomeHandler
var _ OutcomeHandler = (*PronunciationHandler)(nil)

// Kind implements OutcomeHandler.Kind
func (h *PronunciationHandler) Kind() domain.ExerciseKind {
	return domain.KindPronunciation
}

// LoadBatch implements OutcomeHandler.LoadBatch
// Only learned words are eligible for pronunciation practice.
func (h *PronunciationHandler) LoadBatch(ctx context.Context, userID uuid.UUID, filter BatchFilter) ([]domain.SessionItem, error) {
	words, err := h.words.ListLearned(ctx, userID, filter.Language, h.batchSize)
	if err != nil {
		return nil, err
	}

	items := make([]domain.SessionItem, 0, len(words))
	for _, word := range words {
		items = append(items, wordItem(word))
	}
	return items, nil
}

// HandleOutcome implements OutcomeHandler.HandleOutcome
// "attempt" is legal in either phase so the user can retry after seeing the
// verdict. "next" is only legal once at least one attempt was evaluated;
// "skip" moves on without attempting.
func (h *PronunciationHandler) HandleOutcome(ctx context.Context, state *domain.SessionState, outcome Outcome) (*Effect, error) {
	item, ok := state.CurrentItem()
	if !ok {
		return nil, service.ErrNoCurrentItem
	}

	switch outcome.Action {
	case ActionAttempt:
		attempt, err := h.practice.RecordAttempt(ctx, state.UserID, item.WordID, item.Text, outcome.Transcribed, item.Language)
		if err != nil {
			return nil, err
		}
		return &Effect{
			OutcomeID: attempt.ID,
			Advance:   false,
			Phase:     domain.PhaseAwaitingOutcome,
			View: attemptResultView(state, &AttemptResult{
				Transcribed: attempt.TranscribedText,
				Rating:      attempt.Rating,
				Feedback:    attempt.Feedback,
			}),
		}, nil

	case ActionNext:
		if state.Phase != domain.PhaseAwaitingOutcome {
			return nil, service.ErrInvalidOutcome
		}
		return &Effect{Advance: true}, nil

	case ActionSkip:
		return &Effect{Advance: true}, nil

	default:
		return nil, service.ErrInvalidOutcome
	}
}

// Summarize implements OutcomeHandler.Summarize
func (h *PronunciationHandler) Summarize(ctx context.Context, state *domain.SessionState, now time.Time) (*service.SessionStats, error) {
	return h.practice.SessionStats(ctx, state.OutcomeIDs, state.StartedAt, now)
}
