package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruslan-korneev/lingooru-sub000/internal/domain"
)

func TestPracticeService_RecordAttempt(t *testing.T) {
	t.Parallel()

	attempts := &fakeAttemptStore{}
	svc := NewPracticeService(attempts, &stubEvaluator{rating: 4, feedback: "close"}, 0, nil)

	userID, wordID := uuid.New(), uuid.New()
	attempt, err := svc.RecordAttempt(context.Background(), userID, wordID, "bonjour", "bonjur", "fr")
	require.NoError(t, err)

	assert.Equal(t, userID, attempt.UserID)
	assert.Equal(t, wordID, attempt.WordID)
	assert.Equal(t, "bonjour", attempt.ExpectedText)
	assert.Equal(t, "bonjur", attempt.TranscribedText)
	assert.Equal(t, 4, attempt.Rating)
	assert.Equal(t, "close", attempt.Feedback)

	require.Len(t, attempts.entries, 1)
	assert.Equal(t, attempt.ID, attempts.entries[0].ID)
}

func TestPracticeService_RecordAttempt_EvaluatorError(t *testing.T) {
	t.Parallel()

	attempts := &fakeAttemptStore{}
	svc := NewPracticeService(attempts, &stubEvaluator{err: errors.New("speech backend down")}, 0, nil)

	_, err := svc.RecordAttempt(context.Background(), uuid.New(), uuid.New(), "hola", "ola", "es")
	require.Error(t, err)
	assert.False(t, IsRecoverable(err))
	assert.Empty(t, attempts.entries)
}

func TestPracticeService_RecordAttempt_InvalidRating(t *testing.T) {
	t.Parallel()

	attempts := &fakeAttemptStore{}
	svc := NewPracticeService(attempts, &stubEvaluator{rating: 0}, 0, nil)

	_, err := svc.RecordAttempt(context.Background(), uuid.New(), uuid.New(), "hola", "ola", "es")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, attempts.entries)
}

func TestPracticeService_SessionStats_CountsRetries(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	attempts := &fakeAttemptStore{}
	svc := NewPracticeService(attempts, &stubEvaluator{rating: 3}, 0, nil)

	userID, wordID := uuid.New(), uuid.New()
	var ids []uuid.UUID
	for _, rating := range []int{2, 4, 3} {
		attempt, err := domain.NewPronunciationAttempt(userID, wordID, "hola", "ola", "es", rating, "")
		require.NoError(t, err)
		require.NoError(t, attempts.Append(ctx, attempt))
		ids = append(ids, attempt.ID)
	}

	startedAt := time.Now().UTC().Add(-30 * time.Second)
	stats, err := svc.SessionStats(ctx, ids, startedAt, time.Now().UTC())
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Total)
	assert.InDelta(t, 3.0, stats.AverageQuality, 1e-9)
	assert.Equal(t, 1, stats.ElapsedMinutes())
}
