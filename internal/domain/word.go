package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Language identifies the language a word belongs to (ISO 639-1 code).
// The set of supported languages is owned by the catalog, not by this core.
type Language string

// Common validation errors for Word
var (
	ErrEmptyWordUserID = errors.New("word user ID cannot be empty")
	ErrEmptyWordText   = errors.New("word text cannot be empty")
)

// Word is a user's catalog entry: the word itself plus the translation and
// display data shown during exercises. The catalog itself is an external
// collaborator; this core only reads entries and flips the learned flag.
type Word struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	Text            string    `json:"text"`
	Translation     string    `json:"translation"`
	Phonetic        *string   `json:"phonetic,omitempty"`
	ExampleSentence *string   `json:"example_sentence,omitempty"`
	Language        Language  `json:"language"`
	Learned         bool      `json:"learned"` // learned words are eligible for review and pronunciation
	CreatedAt       time.Time `json:"created_at"`
}

// Validate checks if the Word has valid data.
func (w *Word) Validate() error {
	if w.UserID == uuid.Nil {
		return ErrEmptyWordUserID
	}
	if w.Text == "" {
		return ErrEmptyWordText
	}
	return nil
}
