package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewSessionStats_RoundsToOneDecimal(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	tests := []struct {
		average float64
		want    float64
	}{
		{0, 0},
		{3.0, 3.0},
		{3.8333333, 3.8},
		{3.85, 3.9},
		{4.9999, 5.0},
	}

	for _, tc := range tests {
		stats := newSessionStats(5, tc.average, now, now)
		assert.InDelta(t, tc.want, stats.AverageQuality, 1e-9, "average %v", tc.average)
	}
}

func TestSessionStats_ElapsedMinutes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		seconds int
		want    int
	}{
		{0, 1},
		{59, 1},
		{60, 1},
		{119, 1},
		{120, 2},
		{754, 12},
	}

	for _, tc := range tests {
		stats := SessionStats{ElapsedSeconds: tc.seconds}
		assert.Equal(t, tc.want, stats.ElapsedMinutes(), "%d seconds", tc.seconds)
	}
}

func TestNewSessionStats_Elapsed(t *testing.T) {
	t.Parallel()

	startedAt := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	now := startedAt.Add(7*time.Minute + 30*time.Second)

	stats := newSessionStats(10, 4.2, startedAt, now)
	assert.Equal(t, 450, stats.ElapsedSeconds)
	assert.Equal(t, 7, stats.ElapsedMinutes())
	assert.Equal(t, 10, stats.Total)
}
