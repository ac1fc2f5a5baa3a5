// Package session implements the batched exercise session engine: one
// generic, resumable state machine driving learning, review and
// pronunciation flows over a batch snapshot and a cursor.
package session

import (
	"github.com/ruslan-korneev/lingooru-sub000/internal/domain"
)

// OutcomeAction is the typed user action driving a transition.
type OutcomeAction string

// Outcome actions. Which actions are legal depends on the exercise kind and
// the current phase; handlers reject the rest with a validation error.
const (
	// ActionReveal shows the answer for the current review item.
	ActionReveal OutcomeAction = "reveal"
	// ActionGrade rates the current review item (quality 1-5).
	ActionGrade OutcomeAction = "grade"
	// ActionAccept enrolls the current learning item into spaced repetition.
	ActionAccept OutcomeAction = "accept"
	// ActionDefer leaves the current learning item for later.
	ActionDefer OutcomeAction = "defer"
	// ActionSkip moves past the current item without recording anything.
	ActionSkip OutcomeAction = "skip"
	// ActionAttempt submits a transcribed pronunciation attempt.
	ActionAttempt OutcomeAction = "attempt"
	// ActionNext advances past an evaluated pronunciation item.
	ActionNext OutcomeAction = "next"
)

// Outcome is one user response addressed to the current item.
type Outcome struct {
	Action OutcomeAction

	// Quality carries the 1-5 rating for ActionGrade.
	Quality int

	// ResponseTimeMs optionally carries how long the rating took.
	ResponseTimeMs *int

	// Transcribed carries the recognized speech for ActionAttempt.
	Transcribed string
}

// BatchFilter narrows the batch materialized at session start.
// A nil Language matches all languages.
type BatchFilter struct {
	Language *domain.Language
}
