package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ruslan-korneev/lingooru-sub000/internal/domain"
	"github.com/ruslan-korneev/lingooru-sub000/internal/service"
	"github.com/ruslan-korneev/lingooru-sub000/internal/store"
)

type recordedGrade struct {
	reviewID uuid.UUID
	quality  int
}

type fakeReviewOps struct {
	due []*store.DueReview

	enrolled  []uuid.UUID
	recorded  []recordedGrade
	enrollErr error
	recordErr error

	statsCalls [][]uuid.UUID
}

func (f *fakeReviewOps) Enroll(_ context.Context, wordID uuid.UUID) (*domain.Review, error) {
	if f.enrollErr != nil {
		return nil, f.enrollErr
	}
	review, err := domain.NewReview(wordID)
	if err != nil {
		return nil, err
	}
	f.enrolled = append(f.enrolled, wordID)
	return review, nil
}

func (f *fakeReviewOps) RecordReview(_ context.Context, reviewID uuid.UUID, quality int, _ *int) (*domain.Review, error) {
	if quality < domain.MinQuality || quality > domain.MaxQuality {
		return nil, service.ErrInvalidQuality
	}
	if f.recordErr != nil {
		return nil, f.recordErr
	}
	f.recorded = append(f.recorded, recordedGrade{reviewID: reviewID, quality: quality})
	return &domain.Review{ID: reviewID}, nil
}

func (f *fakeReviewOps) DueReviews(_ context.Context, _ uuid.UUID, _ store.DueFilter, limit int) ([]*store.DueReview, error) {
	if len(f.due) > limit {
		return f.due[:limit], nil
	}
	return f.due, nil
}

func (f *fakeReviewOps) SessionStats(_ context.Context, reviewIDs []uuid.UUID, startedAt, now time.Time) (*service.SessionStats, error) {
	f.statsCalls = append(f.statsCalls, reviewIDs)
	return &service.SessionStats{
		Total:          len(reviewIDs),
		AverageQuality: 4.0,
		ElapsedSeconds: int(now.Sub(startedAt).Seconds()),
	}, nil
}

type fakePracticeOps struct {
	rating     int
	attempts   []uuid.UUID
	attemptErr error

	statsCalls [][]uuid.UUID
}

func (f *fakePracticeOps) RecordAttempt(_ context.Context, userID, wordID uuid.UUID, expected, transcribed string, language domain.Language) (*domain.PronunciationAttempt, error) {
	if f.attemptErr != nil {
		return nil, f.attemptErr
	}
	attempt, err := domain.NewPronunciationAttempt(userID, wordID, expected, transcribed, language, f.rating, "ok")
	if err != nil {
		return nil, err
	}
	f.attempts = append(f.attempts, attempt.ID)
	return attempt, nil
}

func (f *fakePracticeOps) SessionStats(_ context.Context, attemptIDs []uuid.UUID, startedAt, now time.Time) (*service.SessionStats, error) {
	f.statsCalls = append(f.statsCalls, attemptIDs)
	return &service.SessionStats{
		Total:          len(attemptIDs),
		AverageQuality: 3.5,
		ElapsedSeconds: int(now.Sub(startedAt).Seconds()),
	}, nil
}

type fakeCatalog struct {
	unlearned []*domain.Word
	learned   []*domain.Word
}

func capped(words []*domain.Word, limit int) []*domain.Word {
	if len(words) > limit {
		return words[:limit]
	}
	return words
}

func (f *fakeCatalog) ListUnlearned(_ context.Context, _ uuid.UUID, _ *domain.Language, limit int) ([]*domain.Word, error) {
	return capped(f.unlearned, limit), nil
}

func (f *fakeCatalog) ListLearned(_ context.Context, _ uuid.UUID, _ *domain.Language, limit int) ([]*domain.Word, error) {
	return capped(f.learned, limit), nil
}

func catalogWord(userID uuid.UUID, text string) *domain.Word {
	return &domain.Word{
		ID:          uuid.New(),
		UserID:      userID,
		Text:        text,
		Translation: text + " (en)",
		Language:    "es",
		CreatedAt:   time.Now().UTC(),
	}
}

func dueEntry(userID uuid.UUID, text string) *store.DueReview {
	word := catalogWord(userID, text)
	return &store.DueReview{
		Review: domain.Review{ID: uuid.New(), WordID: word.ID, Easiness: domain.DefaultEasiness},
		Word:   *word,
	}
}
