package service

import (
	"math"
	"time"
)

// SessionStats summarizes a completed exercise session.
type SessionStats struct {
	Total          int     `json:"total"`
	AverageQuality float64 `json:"average_quality"` // rounded to one decimal place
	ElapsedSeconds int     `json:"elapsed_seconds"`
}

// ElapsedMinutes reports the session duration in whole minutes, floored at 1
// so fast sessions never read as zero.
func (s SessionStats) ElapsedMinutes() int {
	minutes := s.ElapsedSeconds / 60
	if minutes < 1 {
		return 1
	}
	return minutes
}

// newSessionStats assembles stats from an already-computed average.
func newSessionStats(total int, averageQuality float64, startedAt, now time.Time) *SessionStats {
	return &SessionStats{
		Total:          total,
		AverageQuality: roundQuality(averageQuality),
		ElapsedSeconds: int(now.Sub(startedAt).Seconds()),
	}
}

// roundQuality rounds to one decimal place.
func roundQuality(q float64) float64 {
	return math.Round(q*10) / 10
}
