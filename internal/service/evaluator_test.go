package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextMatchEvaluator(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	evaluator := NewTextMatchEvaluator()

	tests := []struct {
		name        string
		expected    string
		transcribed string
		wantRating  int
	}{
		{"exact match", "bonjour", "bonjour", 5},
		{"case and punctuation ignored", "Comment ça va ?", "comment ça va", 5},
		{"extra whitespace ignored", "guten  Tag", "guten tag", 5},
		{"single character off", "hello world", "hello worl", 4},
		{"completely different", "hippopotamus", "cat", 1},
		{"empty transcription", "hola", "", 1},
		{"empty expected text", "", "anything", 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rating, feedback, err := evaluator.Evaluate(ctx, tc.expected, tc.transcribed, "es")
			require.NoError(t, err)
			assert.Equal(t, tc.wantRating, rating)
			assert.NotEmpty(t, feedback)
		})
	}
}

func TestTextMatchEvaluator_RatingBounds(t *testing.T) {
	t.Parallel()

	evaluator := NewTextMatchEvaluator()
	pairs := [][2]string{
		{"palabra", "palabra"},
		{"palabra", "palabr"},
		{"palabra", "pala"},
		{"palabra", "xyz"},
		{"palabra", ""},
	}

	for _, pair := range pairs {
		rating, _, err := evaluator.Evaluate(context.Background(), pair[0], pair[1], "es")
		require.NoError(t, err)
		assert.GreaterOrEqual(t, rating, 1)
		assert.LessOrEqual(t, rating, 5)
	}
}
