package service

import (
	"context"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"

	"github.com/ruslan-korneev/lingooru-sub000/internal/domain"
)

// TextMatchEvaluator rates pronunciation attempts by comparing the
// transcribed speech against the expected text. It is a deterministic
// fallback for when no speech-scoring backend is configured: both strings
// are normalized (lowercased, punctuation stripped, whitespace collapsed)
// and scored by edit distance relative to the expected length.
type TextMatchEvaluator struct{}

// NewTextMatchEvaluator creates the edit-distance based evaluator.
func NewTextMatchEvaluator() *TextMatchEvaluator {
	return &TextMatchEvaluator{}
}

// Ensure TextMatchEvaluator implements Evaluator
var _ Evaluator = (*TextMatchEvaluator)(nil)

// Evaluate implements Evaluator.Evaluate
func (e *TextMatchEvaluator) Evaluate(
	_ context.Context,
	expected, transcribed string,
	_ domain.Language,
) (int, string, error) {
	want := normalizeUtterance(expected)
	got := normalizeUtterance(transcribed)

	if want == "" {
		return domain.MinQuality, "nothing to compare against", nil
	}
	if got == want {
		return domain.MaxQuality, "perfect match", nil
	}

	distance := levenshtein.ComputeDistance(want, got)
	similarity := 1.0 - float64(distance)/float64(max(len([]rune(want)), len([]rune(got))))

	switch {
	case similarity >= 0.9:
		return 4, "very close, minor differences", nil
	case similarity >= 0.75:
		return 3, "recognizable, but several sounds were off", nil
	case similarity >= 0.5:
		return 2, "partially recognized, keep practicing", nil
	default:
		return 1, "not recognized, try again slowly", nil
	}
}

// normalizeUtterance lowercases, drops punctuation and collapses whitespace
// so that transcription artifacts do not dominate the distance.
func normalizeUtterance(s string) string {
	var b strings.Builder
	lastSpace := true
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			b.WriteRune(r)
			lastSpace = false
		case unicode.IsSpace(r):
			if !lastSpace {
				b.WriteRune(' ')
				lastSpace = true
			}
		}
	}
	return strings.TrimSpace(b.String())
}
