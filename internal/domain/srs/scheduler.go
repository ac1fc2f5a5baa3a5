package srs

import (
	"errors"
	"time"

	"github.com/ruslan-korneev/lingooru-sub000/internal/domain"
)

// ErrNilReview is returned when a nil review is passed to the scheduler.
var ErrNilReview = errors.New("srs: review cannot be nil")

// Scheduler applies the SM-2 algorithm to review records.
type Scheduler interface {
	// NextReview computes the review state after a graded response.
	// It returns a new Review rather than modifying the argument.
	NextReview(review *domain.Review, quality int, now time.Time) (*domain.Review, error)
}

type defaultScheduler struct{}

// NewScheduler creates the standard SM-2 scheduler.
func NewScheduler() Scheduler {
	return defaultScheduler{}
}

// NextReview implements Scheduler.
func (defaultScheduler) NextReview(review *domain.Review, quality int, now time.Time) (*domain.Review, error) {
	if review == nil {
		return nil, ErrNilReview
	}

	result, err := Advance(quality, review.Repetitions, review.Easiness, review.Interval)
	if err != nil {
		return nil, err
	}

	reviewedAt := now
	next := &domain.Review{
		ID:             review.ID,
		WordID:         review.WordID,
		Easiness:       result.Easiness,
		Interval:       result.Interval,
		Repetitions:    result.Repetitions,
		NextReviewAt:   now.AddDate(0, 0, result.Interval),
		LastReviewedAt: &reviewedAt,
		CreatedAt:      review.CreatedAt,
	}

	return next, nil
}
