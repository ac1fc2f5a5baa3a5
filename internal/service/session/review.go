package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ruslan-korneev/lingooru-sub000/internal/domain"
	"github.com/ruslan-korneev/lingooru-sub000/internal/service"
	"github.com/ruslan-korneev/lingooru-sub000/internal/store"
)

// ReviewHandler drives spaced-repetition review sessions. Each item goes
// through a two-step exchange: the prompt is shown, the user reveals the
// answer, then grades their own recall. Grading is the side effect that
// reschedules the review and appends a log entry.
type ReviewHandler struct {
	reviews   ReviewOperations
	batchSize int
	logger    *slog.Logger
}

// NewReviewHandler creates the review-session handler.
func NewReviewHandler(reviews ReviewOperations, batchSize int, log *slog.Logger) *ReviewHandler {
	if reviews == nil {
		panic("review operations cannot be nil")
	}
	if batchSize <= 0 {
		panic("batch size must be positive")
	}
	if log == nil {
		log = slog.Default()
	}

	return &ReviewHandler{
		reviews:   reviews,
		batchSize: batchSize,
		logger:    log.With(slog.String("component", "review_handler")),
	}
}

// Ensure ReviewHandler implements OutcomeHandler
var _ OutcomeHandler = (*ReviewHandler)(nil)

// Kind implements OutcomeHandler.Kind
func (h *ReviewHandler) Kind() domain.ExerciseKind {
	return domain.KindReview
}

// LoadBatch implements OutcomeHandler.LoadBatch
// The batch is the user's most overdue reviews at the moment the session
// starts. Items carry the review id so grading later in the session does not
// depend on the schedule staying unchanged.
func (h *ReviewHandler) LoadBatch(ctx context.Context, userID uuid.UUID, filter BatchFilter) ([]domain.SessionItem, error) {
	due, err := h.reviews.DueReviews(ctx, userID, store.DueFilter{Language: filter.Language}, h.batchSize)
	if err != nil {
		return nil, err
	}

	items := make([]domain.SessionItem, 0, len(due))
	for _, d := range due {
		item := wordItem(&d.Word)
		item.ReviewID = d.Review.ID
		items = append(items, item)
	}
	return items, nil
}

// HandleOutcome implements OutcomeHandler.HandleOutcome
// "reveal" is only legal while the prompt is showing, "grade" only after the
// answer was revealed. "skip" is legal in either phase and records nothing.
func (h *ReviewHandler) HandleOutcome(ctx context.Context, state *domain.SessionState, outcome Outcome) (*Effect, error) {
	item, ok := state.CurrentItem()
	if !ok {
		return nil, service.ErrNoCurrentItem
	}

	switch outcome.Action {
	case ActionReveal:
		if state.Phase != domain.PhasePresenting {
			return nil, service.ErrInvalidOutcome
		}
		return &Effect{
			Advance: false,
			Phase:   domain.PhaseAwaitingOutcome,
			View:    answerView(state),
		}, nil

	case ActionGrade:
		if state.Phase != domain.PhaseAwaitingOutcome {
			return nil, service.ErrInvalidOutcome
		}
		if _, err := h.reviews.RecordReview(ctx, item.ReviewID, outcome.Quality, outcome.ResponseTimeMs); err != nil {
			return nil, err
		}
		return &Effect{OutcomeID: item.ReviewID, Advance: true}, nil

	case ActionSkip:
		return &Effect{Advance: true}, nil

	default:
		return nil, service.ErrInvalidOutcome
	}
}

// Summarize implements OutcomeHandler.Summarize
func (h *ReviewHandler) Summarize(ctx context.Context, state *domain.SessionState, now time.Time) (*service.SessionStats, error) {
	return h.reviews.SessionStats(ctx, state.OutcomeIDs, state.StartedAt, now)
}
