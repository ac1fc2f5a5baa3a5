package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for PronunciationAttempt
var (
	ErrEmptyAttemptUserID = errors.New("attempt user ID cannot be empty")
	ErrEmptyAttemptWordID = errors.New("attempt word ID cannot be empty")
)

// PronunciationAttempt records one practice attempt for a word: what the user
// was asked to say, what the evaluator heard, and how it was rated. Attempts
// are append-only; retries create new entries.
type PronunciationAttempt struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	WordID          uuid.UUID `json:"word_id"`
	ExpectedText    string    `json:"expected_text"`
	TranscribedText string    `json:"transcribed_text"`
	Language        Language  `json:"language"`
	Rating          int       `json:"rating"` // 1-5, supplied by the evaluator
	Feedback        string    `json:"feedback"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewPronunciationAttempt creates an attempt entry with an evaluator-supplied
// rating and feedback.
func NewPronunciationAttempt(
	userID, wordID uuid.UUID,
	expected, transcribed string,
	language Language,
	rating int,
	feedback string,
) (*PronunciationAttempt, error) {
	attempt := &PronunciationAttempt{
		ID:              uuid.New(),
		UserID:          userID,
		WordID:          wordID,
		ExpectedText:    expected,
		TranscribedText: transcribed,
		Language:        language,
		Rating:          rating,
		Feedback:        feedback,
		CreatedAt:       time.Now().UTC(),
	}

	if err := attempt.Validate(); err != nil {
		return nil, err
	}

	return attempt, nil
}

// Validate checks if the PronunciationAttempt has valid data.
func (a *PronunciationAttempt) Validate() error {
	if a.UserID == uuid.Nil {
		return ErrEmptyAttemptUserID
	}
	if a.WordID == uuid.Nil {
		return ErrEmptyAttemptWordID
	}
	if a.ExpectedText == "" {
		return ErrEmptyText
	}
	if a.Rating < MinQuality || a.Rating > MaxQuality {
		return ErrInvalidRating
	}
	return nil
}
