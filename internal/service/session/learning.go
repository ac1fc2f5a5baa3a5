package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ruslan-korneev/lingooru-sub000/internal/domain"
	"github.com/ruslan-korneev/lingooru-sub000/internal/service"
)

// LearningHandler drives vocabulary learning sessions: unlearned words are
// shown with their translation, and the user either accepts the word into
// spaced repetition or moves on. Accepting is the only side effect; the
// grade happens in the same step as the card, with no reveal sub-step.
type LearningHandler struct {
	reviews   ReviewOperations
	words     WordCatalog
	batchSize int
	logger    *slog.Logger
}

// NewLearningHandler creates the learning-session handler.
func NewLearningHandler(reviews ReviewOperations, words WordCatalog, batchSize int, log *slog.Logger) *LearningHandler {
	if reviews == nil {
		panic("review operations cannot be nil")
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

	return &LearningHandler{
		reviews:   reviews,
		words:     words,
		batchSize: batchSize,
		logger:    log.With(slog.String("component", "learning_handler")),
	}
}

// Ensure LearningHandler implements OutcomeHandler
var _ OutcomeHandler = (*LearningHandler)(nil)

// Kind implements OutcomeHandler.Kind
func (h *LearningHandler) Kind() domain.ExerciseKind {
	return domain.KindLearning
}

// LoadBatch implements OutcomeHandler.LoadBatch
// The batch is the user's oldest unlearned words, optionally filtered by
// source language.
func (h *LearningHandler) LoadBatch(ctx context.Context, userID uuid.UUID, filter BatchFilter) ([]domain.SessionItem, error) {
	words, err := h.words.ListUnlearned(ctx, userID, filter.Language, h.batchSize)
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
// "accept" enrolls the word into spaced repetition; "defer" and "skip" just
// move on. Every outcome advances the cursor.
func (h *LearningHandler) HandleOutcome(ctx context.Context, state *domain.SessionState, outcome Outcome) (*Effect, error) {
	item, ok := state.CurrentItem()
	if !ok {
		return nil, service.ErrNoCurrentItem
	}

	switch outcome.Action {
	case ActionAccept:
		review, err := h.reviews.Enroll(ctx, item.WordID)
		if err != nil {
			return nil, err
		}
		return &Effect{OutcomeID: review.ID, Advance: true}, nil

	case ActionDefer, ActionSkip:
		return &Effect{Advance: true}, nil

	default:
		return nil, service.ErrInvalidOutcome
	}
}

// Summarize implements OutcomeHandler.Summarize
// Learning sessions have no quality ratings; the summary reports how many
// words were seen and how long the pass took.
func (h *LearningHandler) Summarize(_ context.Context, state *domain.SessionState, now time.Time) (*service.SessionStats, error) {
	return &service.SessionStats{
		Total:          len(state.Items),
		AverageQuality: 0,
		ElapsedSeconds: int(now.Sub(state.StartedAt).Seconds()),
	}, nil
}
