package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Scheduling defaults and limits for spaced repetition.
const (
	DefaultEasiness = 2.5
	MinEasiness     = 1.3
	MinQuality      = 1
	MaxQuality      = 5
)

// Common validation errors for Review
var (
	ErrEmptyReviewWordID  = errors.New("review word ID cannot be empty")
	ErrEmptyLogReviewID   = errors.New("review log review ID cannot be empty")
	ErrInvalidEasiness    = errors.New("easiness factor must be at least 1.3")
	ErrInvalidInterval    = errors.New("interval must be greater than or equal to 0")
	ErrInvalidRepetitions = errors.New("repetitions must be greater than or equal to 0")
)

// Review tracks a user's spaced repetition scheduling state for a single
// catalog word. Exactly one Review exists per word; the user association
// comes through the word. The history of responses lives in ReviewLog.
type Review struct {
	ID             uuid.UUID  `json:"id"`
	WordID         uuid.UUID  `json:"word_id"`
	Easiness       float64    `json:"easiness"`    // interval growth multiplier, floored at 1.3
	Interval       int        `json:"interval"`    // current interval in days
	Repetitions    int        `json:"repetitions"` // consecutive successful reviews
	NextReviewAt   time.Time  `json:"next_review_at"`
	LastReviewedAt *time.Time `json:"last_reviewed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// NewReview creates scheduling state for a freshly enrolled word.
// Defaults make the word due immediately.
func NewReview(wordID uuid.UUID) (*Review, error) {
	now := time.Now().UTC()
	review := &Review{
		ID:           uuid.New(),
		WordID:       wordID,
		Easiness:     DefaultEasiness,
		Interval:     0,
		Repetitions:  0,
		NextReviewAt: now,
		CreatedAt:    now,
	}

	if err := review.Validate(); err != nil {
		return nil, err
	}

	return review, nil
}

// Validate checks if the Review has valid data.
// Returns an error if any field fails validation.
func (r *Review) Validate() error {
	if r.WordID == uuid.Nil {
		return ErrEmptyReviewWordID
	}
	if r.Easiness < MinEasiness {
		return ErrInvalidEasiness
	}
	if r.Interval < 0 {
		return ErrInvalidInterval
	}
	if r.Repetitions < 0 {
		return ErrInvalidRepetitions
	}
	return nil
}

// ReviewLog is one recorded response. Entries are append-only and never
// mutated after write.
type ReviewLog struct {
	ID             uuid.UUID `json:"id"`
	ReviewID       uuid.UUID `json:"review_id"`
	Quality        int       `json:"quality"` // 1-5 rating
	ResponseTimeMs *int      `json:"response_time_ms,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewReviewLog creates a log entry for a graded response.
func NewReviewLog(reviewID uuid.UUID, quality int, responseTimeMs *int) (*ReviewLog, error) {
	if reviewID == uuid.Nil {
		return nil, ErrEmptyLogReviewID
	}
	if quality < MinQuality || quality > MaxQuality {
		return nil, ErrInvalidQuality
	}

	return &ReviewLog{
		ID:             uuid.New(),
		ReviewID:       reviewID,
		Quality:        quality,
		ResponseTimeMs: responseTimeMs,
		CreatedAt:      time.Now().UTC(),
	}, nil
}
