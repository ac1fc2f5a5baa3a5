package service

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ruslan-korneev/lingooru-sub000/internal/domain"
	"github.com/ruslan-korneev/lingooru-sub000/internal/store"
)

// fakeTxRunner executes the function directly with a nil transaction; the
// fake stores ignore the tx handle, so transactional composition reduces to
// plain sequencing.
type fakeTxRunner struct {
	beginErr error
}

func (r *fakeTxRunner) RunInTransaction(ctx context.Context, fn store.TxFn) error {
	if r.beginErr != nil {
		return r.beginErr
	}
	return fn(ctx, nil)
}

type fakeWordStore struct {
	mu    sync.Mutex
	words map[uuid.UUID]*domain.Word

	markLearnedErr error
}

func newFakeWordStore() *fakeWordStore {
	return &fakeWordStore{words: make(map[uuid.UUID]*domain.Word)}
}

func (s *fakeWordStore) put(word *domain.Word) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.words[word.ID] = word
}

func (s *fakeWordStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Word, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	word, ok := s.words[id]
	if !ok {
		return nil, store.ErrWordNotFound
	}
	copied := *word
	return &copied, nil
}

func (s *fakeWordStore) list(userID uuid.UUID, language *domain.Language, learned bool, limit int) []*domain.Word {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*domain.Word
	for _, word := range s.words {
		if word.UserID != userID || word.Learned != learned {
			continue
		}
		if language != nil && word.Language != *language {
			continue
		}
		copied := *word
		out = append(out, &copied)
		if len(out) == limit {
			break
		}
	}
	return out
}

func (s *fakeWordStore) ListUnlearned(_ context.Context, userID uuid.UUID, language *domain.Language, limit int) ([]*domain.Word, error) {
	return s.list(userID, language, false, limit), nil
}

func (s *fakeWordStore) ListLearned(_ context.Context, userID uuid.UUID, language *domain.Language, limit int) ([]*domain.Word, error) {
	return s.list(userID, language, true, limit), nil
}

func (s *fakeWordStore) MarkLearned(_ context.Context, id uuid.UUID) error {
	if s.markLearnedErr != nil {
		return s.markLearnedErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	word, ok := s.words[id]
	if !ok {
		return store.ErrWordNotFound
	}
	word.Learned = true
	return nil
}

func (s *fakeWordStore) WithTx(_ *sql.Tx) store.WordStore { return s }

type fakeReviewStore struct {
	mu        sync.Mutex
	reviews   map[uuid.UUID]*domain.Review
	due       []*store.DueReview
	lastNow   time.Time
	lastDue   store.DueFilter
	updateErr error
}

func newFakeReviewStore() *fakeReviewStore {
	return &fakeReviewStore{reviews: make(map[uuid.UUID]*domain.Review)}
}

func (s *fakeReviewStore) put(review *domain.Review) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reviews[review.ID] = review
}

func (s *fakeReviewStore) GetOrCreate(_ context.Context, wordID uuid.UUID) (*domain.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, review := range s.reviews {
		if review.WordID == wordID {
			copied := *review
			return &copied, nil
		}
	}

	review, err := domain.NewReview(wordID)
	if err != nil {
		return nil, err
	}
	s.reviews[review.ID] = review
	copied := *review
	return &copied, nil
}

func (s *fakeReviewStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	review, ok := s.reviews[id]
	if !ok {
		return nil, store.ErrReviewNotFound
	}
	copied := *review
	return &copied, nil
}

func (s *fakeReviewStore) ListDue(_ context.Context, _ uuid.UUID, filter store.DueFilter, limit int, now time.Time) ([]*store.DueReview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastDue = filter
	s.lastNow = now
	if len(s.due) > limit {
		return s.due[:limit], nil
	}
	return s.due, nil
}

func (s *fakeReviewStore) CountDue(_ context.Context, _ uuid.UUID, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastNow = now
	return len(s.due), nil
}

func (s *fakeReviewStore) Update(_ context.Context, review *domain.Review) error {
	if s.updateErr != nil {
		return s.updateErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reviews[review.ID]; !ok {
		return store.ErrReviewNotFound
	}
	copied := *review
	s.reviews[review.ID] = &copied
	return nil
}

func (s *fakeReviewStore) WithTx(_ *sql.Tx) store.ReviewStore { return s }

type fakeReviewLogStore struct {
	mu      sync.Mutex
	entries []*domain.ReviewLog

	appendErr error
}

func (s *fakeReviewLogStore) Append(_ context.Context, entry *domain.ReviewLog) error {
	if s.appendErr != nil {
		return s.appendErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *entry
	s.entries = append(s.entries, &copied)
	return nil
}

// LatestQualityAverage mirrors the SQL semantics: only each review's most
// recent entry counts, where recency is append order.
func (s *fakeReviewLogStore) LatestQualityAverage(_ context.Context, reviewIDs []uuid.UUID) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	latest := make(map[uuid.UUID]int)
	for _, entry := range s.entries {
		latest[entry.ReviewID] = entry.Quality
	}

	sum, n := 0, 0
	for _, id := range reviewIDs {
		quality, ok := latest[id]
		if !ok {
			continue
		}
		sum += quality
		n++
	}
	if n == 0 {
		return 0, nil
	}
	return float64(sum) / float64(n), nil
}

func (s *fakeReviewLogStore) WithTx(_ *sql.Tx) store.ReviewLogStore { return s }

type fakeAttemptStore struct {
	mu      sync.Mutex
	entries []*domain.PronunciationAttempt

	appendErr error
}

func (s *fakeAttemptStore) Append(_ context.Context, attempt *domain.PronunciationAttempt) error {
	if s.appendErr != nil {
		return s.appendErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *attempt
	s.entries = append(s.entries, &copied)
	return nil
}

func (s *fakeAttemptStore) RatingAverage(_ context.Context, attemptIDs []uuid.UUID) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	byID := make(map[uuid.UUID]int, len(s.entries))
	for _, attempt := range s.entries {
		byID[attempt.ID] = attempt.Rating
	}

	sum, n := 0, 0
	for _, id := range attemptIDs {
		rating, ok := byID[id]
		if !ok {
			continue
		}
		sum += rating
		n++
	}
	if n == 0 {
		return 0, nil
	}
	return float64(sum) / float64(n), nil
}

func (s *fakeAttemptStore) WithTx(_ *sql.Tx) store.AttemptStore { return s }

type stubEvaluator struct {
	rating   int
	feedback string
	err      error
}

func (e *stubEvaluator) Evaluate(_ context.Context, _, _ string, _ domain.Language) (int, string, error) {
	if e.err != nil {
		return 0, "", e.err
	}
	return e.rating, e.feedback, nil
}
